package config

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"wallet-reputation/pkg/logger"
)

const (
	CONFIG_NAME = "config.worker"
	CONFIG_TYPE = "yaml"
	CONFIG_PATH = "./config/"

	OFFSET_RESET_EARLIEST = "earliest"
	OFFSET_RESET_LATEST   = "latest"
)

// Config 定义整个配置的结构
type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	Log     LogConfig     `mapstructure:"log"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Worker  WorkerConfig  `mapstructure:"worker"`
	Server  ServerConfig  `mapstructure:"server"`
	Monitor MonitorConfig `mapstructure:"monitor"`
}

type ServiceConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// KafkaConfig Kafka 配置
type KafkaConfig struct {
	Brokers         string `mapstructure:"brokers"`
	TopicInput      string `mapstructure:"topic_input"`
	TopicOutput     string `mapstructure:"topic_output"`
	GroupID         string `mapstructure:"group_id"`
	AutoOffsetReset string `mapstructure:"auto_offset_reset"` // earliest | latest
	WriteTimeoutMs  int    `mapstructure:"write_timeout_ms"`
}

// LogConfig Log 日志配置
type LogConfig struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"`
}

type WorkerConfig struct {
	RateLimit           int `mapstructure:"rate_limit"`            // 每秒最多消费的消息数, 0 表示不限速
	ResultCacheTTL      int `mapstructure:"result_cache_ttl"`      // 秒
	StatsReportInterval int `mapstructure:"stats_report_interval"` // 秒, 0 表示不输出
}

// ServerConfig 状态接口配置
type ServerConfig struct {
	Enable bool   `mapstructure:"enable"`
	Addr   string `mapstructure:"addr"`
}

type MonitorConfig struct {
	Enable         bool   `mapstructure:"enable"`
	PrometheusAddr string `mapstructure:"prometheus_addr"`
}

var defaults = map[string]any{
	"service.name":                 "defi-reputation-service",
	"service.environment":          "development",
	"log.level":                    "info",
	"log.dir":                      "logs",
	"kafka.brokers":                "localhost:9092",
	"kafka.topic_input":            "wallet-transactions",
	"kafka.topic_output":           "wallet-scores",
	"kafka.group_id":               "scoring-service",
	"kafka.auto_offset_reset":      OFFSET_RESET_EARLIEST,
	"kafka.write_timeout_ms":       5000,
	"worker.rate_limit":            0,
	"worker.result_cache_ttl":      600,
	"worker.stats_report_interval": 60,
	"server.enable":                true,
	"server.addr":                  ":8000",
	"monitor.enable":               false,
	"monitor.prometheus_addr":      ":9100",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(CONFIG_NAME)
	v.SetConfigType(CONFIG_TYPE)
	v.AddConfigPath(CONFIG_PATH)
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	// KAFKA_BROKERS 覆盖 kafka.brokers
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load 读取配置, file 为空时使用 ./config/config.worker.yaml; 配置文件不存在时只用默认值与环境变量
func Load(file string) (Config, error) {
	v := newViper()
	if file != "" {
		v.SetConfigFile(file)
	}
	return load(v)
}

func load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, errors.Wrap(err, "read config")
		}
	}

	if err := mapstructure.WeakDecode(v.AllSettings(), &cfg); err != nil {
		return cfg, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate 检查必填的连接参数
func (c Config) Validate() error {
	if strings.TrimSpace(c.Kafka.Brokers) == "" {
		return errors.New("kafka.brokers is required")
	}
	if c.Kafka.TopicInput == "" || c.Kafka.TopicOutput == "" {
		return errors.New("kafka.topic_input and kafka.topic_output are required")
	}
	switch c.Kafka.AutoOffsetReset {
	case OFFSET_RESET_EARLIEST, OFFSET_RESET_LATEST:
	default:
		return errors.Errorf("unsupported kafka.auto_offset_reset %q", c.Kafka.AutoOffsetReset)
	}
	return nil
}

func InitConfig() Config {
	cfg, err := Load("")
	if err != nil {
		panic(errors.Wrap(err, "fatal error config file"))
	}
	return cfg
}

// WatchConfig 配置文件变化时只热更新日志级别, 连接参数需要重启生效
func WatchConfig(file string) {
	v := newViper()
	if file != "" {
		v.SetConfigFile(file)
	}
	if err := v.ReadInConfig(); err != nil {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		newConfig, err := load(v)
		if err != nil {
			return
		}
		logger.SetLogLevel(newConfig.Log.Level)
	})
	v.WatchConfig()
}
