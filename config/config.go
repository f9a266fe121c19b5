package config

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	ServiceName string `yaml:"service_name"`
	LogLevel    string `yaml:"log_level"`
	PprofAddr   string `yaml:"pprof_addr"`
	OutputDir   string `yaml:"output_dir"`

	Feeds      FeedsConfig      `yaml:"feeds"`
	Downstream DownstreamConfig `yaml:"downstream"`
	GUI        GUIConfig        `yaml:"gui"`
	Datagen    DatagenConfig    `yaml:"datagen"`
}

// FeedConfig describes one intake. When ReplayFile is set the feed reads the
// file directly instead of listening on ListenAddr.
type FeedConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	ReplayFile string `yaml:"replay_file"`
}

type FeedsConfig struct {
	Price      FeedConfig `yaml:"price"`
	MarketData FeedConfig `yaml:"marketdata"`
	Trade      FeedConfig `yaml:"trade"`
	Inquiry    FeedConfig `yaml:"inquiry"`
}

type DownstreamConfig struct {
	StreamAddr    string `yaml:"stream_addr"`
	ExecutionAddr string `yaml:"execution_addr"`
}

type GUIConfig struct {
	ThrottleMs int64 `yaml:"throttle_ms"`
}

type DatagenConfig struct {
	DataDir string `yaml:"data_dir"`
	Seed    int64  `yaml:"seed"`
	Points  int    `yaml:"points"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	fields := []interface{}{
		"func",
		"config.readFromFile",
		"filePath",
		filePath,
	}

	sugar := zap.S().With(fields...)

	sugar.Debug("Load config...")

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}
