package application

import (
	"os"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"

	"github.com/lk2023060901/encoder-go/pkg/encoder"
	"github.com/lk2023060901/encoder-go/pkg/encoder/jsonenc"
	"github.com/lk2023060901/encoder-go/pkg/encoder/profile"
	"github.com/lk2023060901/encoder-go/pkg/encoder/xmlenc"
	zlog "github.com/lk2023060901/encoder-go/pkg/log"
	"github.com/lk2023060901/encoder-go/pkg/metrics"
	"github.com/lk2023060901/encoder-go/pkg/util/merr"
	zviper "github.com/lk2023060901/encoder-go/pkg/util/viper"
)

const (
	defaultConfigPath = "./encoder.yaml"
	configPathEnv     = "ENCODER_CONFIG_FILE_PATH"
)

// Application 是使用编码器的进程的运行时容器。
// 它负责加载配置、初始化日志与指标，并按名字提供 Encoder。
type Application struct {
	configPath string
	registerer prometheus.Registerer

	cfg      *zviper.Config
	loggers  map[string]*zlog.MLogger
	encoders map[string]*encoder.Encoder
}

// Option 用于配置 Application。
type Option func(a *Application)

// WithConfigFile 指定配置文件路径，优先级高于环境变量。
func WithConfigFile(path string) Option {
	return func(a *Application) {
		a.configPath = path
	}
}

// WithRegisterer 指定指标注册表，默认使用 prometheus.DefaultRegisterer。
func WithRegisterer(r prometheus.Registerer) Option {
	return func(a *Application) {
		a.registerer = r
	}
}

// New 创建 Application。
func New(opts ...Option) *Application {
	a := &Application{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run 初始化 Application。配置文件路径的优先级：
//  1. WithConfigFile
//  2. 环境变量 ENCODER_CONFIG_FILE_PATH
//  3. 默认 ./encoder.yaml，不存在时只提供内置的 json、json-ordered 与 xml
func (a *Application) Run() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := a.initLogging(); err != nil {
		return err
	}
	a.initMetrics()
	return a.initEncoders()
}

// Config 返回已加载的配置，可能为 nil。
func (a *Application) Config() *zviper.Config {
	return a.cfg
}

// Logger 返回配置中定义的命名 Logger，未知名字时返回全局 Logger。
func (a *Application) Logger(name string) *zlog.MLogger {
	if lg, ok := a.loggers[name]; ok && lg != nil {
		return lg
	}
	return zlog.NewMLogger(zlog.L())
}

// Encoder 返回名为 name 的 Encoder。
func (a *Application) Encoder(name string) (*encoder.Encoder, bool) {
	enc, ok := a.encoders[name]
	return enc, ok
}

// Encoders 返回所有 Encoder 的名字，按字典序排列。
func (a *Application) Encoders() []string {
	names := lo.Keys(a.encoders)
	slices.Sort(names)
	return names
}

func (a *Application) loadConfig() (*zviper.Config, error) {
	configPath := a.configPath
	explicit := configPath != ""
	if !explicit {
		if envPath := os.Getenv(configPathEnv); envPath != "" {
			configPath = envPath
			explicit = true
		} else {
			configPath = defaultConfigPath
		}
	}

	if !explicit {
		if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
	}

	cfg := zviper.New(zviper.WithEnvPrefix("ENCODER"))
	if err := cfg.LoadFile(configPath); err != nil {
		return nil, merr.WrapErrIoFailed(configPath, err)
	}
	return cfg, nil
}

// initLogging 初始化全局 Logger 与配置中的命名 Logger。
func (a *Application) initLogging() error {
	if err := a.initGlobalLoggerFromEnv(); err != nil {
		return err
	}
	return a.initModuleLoggersFromConfig()
}

// initGlobalLoggerFromEnv 根据 ENCODER_LOG_* 环境变量配置全局 Logger。
//
//   - ENCODER_LOG_ENABLE："1"/"true" 时生效，否则保留默认的标准输出 Logger。
//   - ENCODER_LOG_LEVEL：日志级别，默认 info。
//   - ENCODER_LOG_STDOUT：是否输出到标准输出。
//   - ENCODER_LOG_FILE_DIR：日志目录。
//   - ENCODER_LOG_FILE：日志文件名，留空表示不写文件。
//   - ENCODER_LOG_FORMAT：text 或 json，默认 text。
func (a *Application) initGlobalLoggerFromEnv() error {
	if !getenvBool("ENCODER_LOG_ENABLE", false) {
		return nil
	}

	cfg := &zlog.Config{
		Level:  getenvDefault("ENCODER_LOG_LEVEL", "info"),
		Format: getenvDefault("ENCODER_LOG_FORMAT", "text"),
		Stdout: getenvBool("ENCODER_LOG_STDOUT", false),
		File: zlog.FileLogConfig{
			RootPath: getenvDefault("ENCODER_LOG_FILE_DIR", ""),
			Filename: getenvDefault("ENCODER_LOG_FILE", ""),
		},
	}
	logger, props, err := zlog.InitLogger(cfg)
	if err != nil {
		return errors.Wrap(err, "init global logger from env")
	}
	zlog.ReplaceGlobals(logger, props)
	return nil
}

// initModuleLoggersFromConfig 根据 "logging" 配置创建命名 Logger。
// 与 Profile 同名的 Logger 会被对应的 Encoder 使用。
//
//	logging:
//	  report:
//	    level: debug
//	    file:
//	      rootpath: ./logs
//	      filename: report.log
func (a *Application) initModuleLoggersFromConfig() error {
	if a.cfg == nil {
		return nil
	}

	raw := make(map[string]zlog.Config)
	if err := a.cfg.UnmarshalKey("logging", &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}

	a.loggers = make(map[string]*zlog.MLogger, len(raw))
	for name, lc := range raw {
		cfgCopy := lc
		logger, _, err := zlog.InitLogger(&cfgCopy)
		if err != nil {
			return errors.Wrapf(err, "init module logger %q", name)
		}
		a.loggers[name] = zlog.NewMLogger(logger.With(zlog.FieldModule(name)))
	}
	return nil
}

func (a *Application) initMetrics() {
	if a.registerer != nil {
		metrics.Register(a.registerer)
		return
	}
	metrics.Register(metrics.GetRegisterer())
}

// initEncoders 创建内置 Encoder 以及 "profiles" 中声明的 Encoder，同名时 Profile 优先。
func (a *Application) initEncoders() error {
	a.encoders = map[string]*encoder.Encoder{
		jsonenc.Name:        encoder.New(jsonenc.Config()),
		jsonenc.OrderedName: encoder.New(jsonenc.OrderedConfig()),
		xmlenc.Name:         encoder.New(xmlenc.Config()),
	}
	if a.cfg == nil {
		return nil
	}

	profiles, err := profile.DecodeList(a.cfg, "profiles")
	if err != nil {
		return err
	}
	for _, p := range profiles {
		var opts []encoder.Option
		if lg, ok := a.loggers[p.Name]; ok {
			opts = append(opts, encoder.WithLogger(lg))
		}
		enc, err := p.Encoder(opts...)
		if err != nil {
			return err
		}
		a.encoders[p.Name] = enc
	}
	return nil
}

func getenvDefault(key, def string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	return val
}

func getenvBool(key string, def bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
