// Package profile 从 YAML/JSON 文件加载声明式的编码配置。
//
// 示例：
//
//	name: report
//	base: json-ordered
//	literals:
//	  nan: "null"
//	unsupported: [infinity, negative_infinity]
//	escapes:
//	  - char: "/"
//	    replacement: "\\/"
package profile

import (
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/lk2023060901/encoder-go/pkg/encoder"
	"github.com/lk2023060901/encoder-go/pkg/encoder/jsonenc"
	"github.com/lk2023060901/encoder-go/pkg/encoder/xmlenc"
	"github.com/lk2023060901/encoder-go/pkg/util/merr"
	"github.com/lk2023060901/encoder-go/pkg/util/viper"
)

// 常量在配置文件中的名字。
const (
	LiteralNone             = "none"
	LiteralTrue             = "true"
	LiteralFalse            = "false"
	LiteralInfinity         = "infinity"
	LiteralNegativeInfinity = "negative_infinity"
	LiteralNaN              = "nan"
)

var literalConstants = map[string]encoder.Constant{
	LiteralNone:             encoder.ConstNone,
	LiteralTrue:             encoder.ConstTrue,
	LiteralFalse:            encoder.ConstFalse,
	LiteralInfinity:         encoder.ConstPosInf,
	LiteralNegativeInfinity: encoder.ConstNegInf,
	LiteralNaN:              encoder.ConstNaN,
}

// Profile 描述基于某个内置变体的编码配置。
type Profile struct {
	Name string `mapstructure:"name" validate:"required"`
	Base string `mapstructure:"base" validate:"required,oneof=json json-ordered xml"`

	Literals    LiteralSpec  `mapstructure:"literals"`
	Unsupported []string     `mapstructure:"unsupported" validate:"dive,oneof=none true false infinity negative_infinity nan"`
	Escapes     []EscapeSpec `mapstructure:"escapes" validate:"dive"`

	Quote                  *string `mapstructure:"quote"`
	PreserveInsertionOrder *bool   `mapstructure:"preserve_insertion_order"`
	SortMapKeys            *bool   `mapstructure:"sort_map_keys"`
}

// LiteralSpec 覆盖常量的字面量，未设置的常量沿用基础变体。
type LiteralSpec struct {
	None             *string `mapstructure:"none"`
	True             *string `mapstructure:"true"`
	False            *string `mapstructure:"false"`
	Infinity         *string `mapstructure:"infinity"`
	NegativeInfinity *string `mapstructure:"negative_infinity"`
	NaN              *string `mapstructure:"nan"`
}

// EscapeSpec 为单个字符追加或覆盖转义。
type EscapeSpec struct {
	Char        string `mapstructure:"char" validate:"len=1"`
	Replacement string `mapstructure:"replacement"`
}

var validate = validator.New()

// Load 从文件加载并校验 Profile，文件类型由扩展名推断。
func Load(path string, opts ...viper.Option) (*Profile, error) {
	c := viper.New(opts...)
	if err := c.LoadFile(path); err != nil {
		return nil, merr.WrapErrIoFailed(path, err)
	}
	return decode(c)
}

// LoadReader 从 r 加载并校验 Profile，configType 为 "yaml" 或 "json"。
func LoadReader(r io.Reader, configType string, opts ...viper.Option) (*Profile, error) {
	c := viper.New(opts...)
	if err := c.LoadReader(r, configType); err != nil {
		return nil, merr.WrapErrIoFailed("reader", err)
	}
	return decode(c)
}

func decode(c *viper.Config) (*Profile, error) {
	p := &Profile{}
	if err := c.Unmarshal(p); err != nil {
		return nil, merr.WrapErrParameterInvalidMsg("decode profile: %s", err.Error())
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodeList 将 c 中 key 对应的 Profile 列表解码并逐个校验。key 不存在时返回空列表。
func DecodeList(c *viper.Config, key string) ([]*Profile, error) {
	var profiles []*Profile
	if !c.IsSet(key) {
		return profiles, nil
	}
	if err := c.UnmarshalKey(key, &profiles); err != nil {
		return nil, merr.WrapErrParameterInvalidMsg("decode %s: %s", key, err.Error())
	}
	names := make(map[string]struct{}, len(profiles))
	for i, p := range profiles {
		if p == nil {
			return nil, merr.WrapErrParameterMissing(fmt.Sprintf("%s[%d]", key, i))
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, ok := names[p.Name]; ok {
			return nil, merr.WrapErrParameterInvalidMsg("duplicate profile name %q", p.Name)
		}
		names[p.Name] = struct{}{}
	}
	return profiles, nil
}

// Validate 校验 Profile 的字段。
func (p *Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return merr.WrapErrParameterInvalidMsg("invalid profile: %s", err.Error())
	}
	overridden := lo.Keys(p.Literals.overrides())
	if both := lo.Intersect(overridden, p.Unsupported); len(both) > 0 {
		return merr.WrapErrParameterInvalidMsg("literal both overridden and unsupported: %v", both)
	}
	return nil
}

func (l LiteralSpec) overrides() map[string]string {
	out := make(map[string]string)
	for name, v := range map[string]*string{
		LiteralNone:             l.None,
		LiteralTrue:             l.True,
		LiteralFalse:            l.False,
		LiteralInfinity:         l.Infinity,
		LiteralNegativeInfinity: l.NegativeInfinity,
		LiteralNaN:              l.NaN,
	} {
		if v != nil {
			out[name] = *v
		}
	}
	return out
}

func baseConfig(base string) (encoder.Config, error) {
	switch base {
	case jsonenc.Name:
		return jsonenc.Config(), nil
	case jsonenc.OrderedName:
		return jsonenc.OrderedConfig(), nil
	case xmlenc.Name:
		return xmlenc.Config(), nil
	}
	return encoder.Config{}, merr.WrapErrParameterInvalid("json|json-ordered|xml", base, "unknown base")
}

// Config 在基础变体之上应用 Profile，返回新的 encoder.Config。
func (p *Profile) Config() (encoder.Config, error) {
	cfg, err := baseConfig(p.Base)
	if err != nil {
		return encoder.Config{}, err
	}
	cfg.Name = p.Name

	literals := cfg.Literals.Clone()
	for name, text := range p.Literals.overrides() {
		literals[literalConstants[name]] = text
	}
	for _, name := range p.Unsupported {
		delete(literals, literalConstants[name])
	}
	cfg.Literals = literals

	escapes := make(encoder.EscapeTable, len(cfg.Escapes)+len(p.Escapes))
	for k, v := range cfg.Escapes {
		escapes[k] = v
	}
	for _, e := range p.Escapes {
		escapes[[]rune(e.Char)[0]] = e.Replacement
	}
	cfg.Escapes = escapes

	if p.Quote != nil {
		cfg.Quote = *p.Quote
	}
	if p.PreserveInsertionOrder != nil {
		cfg.PreserveInsertionOrder = *p.PreserveInsertionOrder
	}
	if p.SortMapKeys != nil {
		cfg.SortMapKeys = *p.SortMapKeys
	}
	return cfg, nil
}

// Encoder 根据 Profile 创建 Encoder。
func (p *Profile) Encoder(opts ...encoder.Option) (*encoder.Encoder, error) {
	cfg, err := p.Config()
	if err != nil {
		return nil, err
	}
	return encoder.New(cfg, opts...), nil
}
