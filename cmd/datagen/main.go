package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/bradleyboyuyang/bond-trading-system/config"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/datagen"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/logging"
)

func main() {
	configFile := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.Init(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	gen := &datagen.Config{
		DataDir: cfg.Datagen.DataDir,
		Seed:    cfg.Datagen.Seed,
		Points:  cfg.Datagen.Points,
	}
	if err := datagen.Generate(gen); err != nil {
		zap.S().Fatalw("generating data", "err", err)
	}
	zap.S().Infow("data generated",
		"dir", gen.DataDir, "seed", gen.Seed, "points", gen.Points)
}
