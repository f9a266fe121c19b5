package main

import (
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/bradleyboyuyang/bond-trading-system/config"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/logging"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/trading"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/treasury"
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

	if cfg.PprofAddr != "" {
		go func() {
			http.ListenAndServe(cfg.PprofAddr, nil)
		}()
	}

	zap.S().Infow("trading system starting", "service", cfg.ServiceName)

	pipeline, err := trading.NewPipeline(cfg)
	if err != nil {
		zap.S().Fatalw("building pipeline", "err", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	pipeline.Start()
	zap.S().Info("trading system running, Ctrl+C to exit")

	<-sigs
	zap.S().Info("shutting down")
	pipeline.Close()

	for _, sector := range treasury.Sectors() {
		risk := pipeline.Risk.GetBucketedRisk(sector)
		zap.S().Infow("bucketed risk",
			"sector", sector.Name, "pv01", risk.PV01, "quantity", risk.Quantity)
	}
}
