// Package encoder 实现与输出格式无关的对象编码引擎。
//
// 引擎按固定优先级对值做类型分派（none、bool、整数、浮点、文本、序列、映射），
// 无法识别的类型交由 Config.Hook 提供的自定义生产者处理。所有与格式相关的决定
// （常量字面量、转义、分隔符、顺序、标签语法）都来自 Config。
package encoder

// Constant 表示需要由配置提供字面量的原子常量。
type Constant int

const (
	ConstNone Constant = iota
	ConstTrue
	ConstFalse
	ConstPosInf
	ConstNegInf
	ConstNaN
)

var constantNames = map[Constant]string{
	ConstNone:   "none",
	ConstTrue:   "true",
	ConstFalse:  "false",
	ConstPosInf: "+Inf",
	ConstNegInf: "-Inf",
	ConstNaN:    "NaN",
}

func (c Constant) String() string {
	if name, ok := constantNames[c]; ok {
		return name
	}
	return "unknown"
}

// Constants 返回所有常量，按声明顺序排列。
func Constants() []Constant {
	return []Constant{ConstNone, ConstTrue, ConstFalse, ConstPosInf, ConstNegInf, ConstNaN}
}

// Literals 保存常量的字面量拼写。未出现的常量表示当前格式不支持。
type Literals map[Constant]string

// Lookup 返回常量对应的字面量，ok 为 false 表示不支持。
func (l Literals) Lookup(c Constant) (string, bool) {
	s, ok := l[c]
	return s, ok
}

// Clone 返回字面量表的副本。
func (l Literals) Clone() Literals {
	out := make(Literals, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// NoneType 是 None 的类型。
type NoneType struct{}

// None 显式表示“空值”，与 nil 编码结果相同。
var None = NoneType{}

// Delimiters 描述序列的语法。全部为空表示元素直接拼接。
type Delimiters struct {
	Open      string
	Close     string
	Separator string
}

// MappingSyntax 描述映射的语法。
type MappingSyntax struct {
	Open           string
	Close          string
	EntrySeparator string
	KeyValue       string
}

// Attr 是标签上的一个属性，按给定顺序输出。
type Attr struct {
	Name  string
	Value string
}

// ScopeSyntax 负责生成标签作用域的开始与结束标记。
type ScopeSyntax interface {
	Open(name string, attrs []Attr) string
	Close(name string) string
}

// Config 是格式变体提供给引擎的能力描述。
//
// 编码期间 Config 只读，可在并发的编码调用间共享，前提是 Hook 本身可重入。
type Config struct {
	// Name 为格式名，用于错误信息、日志与指标。
	Name string

	// Literals 为常量字面量表。
	Literals Literals

	// Escapes 为文本转义表。
	Escapes EscapeTable

	// Quote 包裹文本标量，可以为空。
	Quote string

	// Sequence 为 nil 时序列不可表示。
	Sequence *Delimiters

	// Mapping 为 nil 时映射不可表示。
	Mapping *MappingSyntax

	// PreserveInsertionOrder 为 true 时映射按插入顺序输出。
	PreserveInsertionOrder bool

	// SortMapKeys 为 true 时 Go 内建 map 按键文本排序输出。
	// Go map 没有插入顺序，需要按插入顺序输出时请使用 typeutil.OrderedMap。
	SortMapKeys bool

	// Hook 为无法识别的类型提供自定义编码入口，可以为空。
	Hook Hook

	// Scope 为 nil 时自定义生产者不能打开标签作用域。
	Scope ScopeSyntax
}
