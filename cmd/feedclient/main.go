package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"

	"github.com/bradleyboyuyang/bond-trading-system/config"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/datagen"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/logging"
)

// feedTarget pairs a generated file with the intake that consumes it.
type feedTarget struct {
	file string
	addr string
}

func main() {
	configFile := flag.String("config", "config/config.yaml", "config file path")
	feedName := flag.String("feed", "", "feed to replay: price, marketdata, trade or inquiry")
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

	targets := map[string]feedTarget{
		"price":      {datagen.FilePrices, cfg.Feeds.Price.ListenAddr},
		"marketdata": {datagen.FileMarketData, cfg.Feeds.MarketData.ListenAddr},
		"trade":      {datagen.FileTrades, cfg.Feeds.Trade.ListenAddr},
		"inquiry":    {datagen.FileInquiries, cfg.Feeds.Inquiry.ListenAddr},
	}
	target, ok := targets[*feedName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown feed %q: want price, marketdata, trade or inquiry\n", *feedName)
		os.Exit(1)
	}

	path := filepath.Join(cfg.Datagen.DataDir, target.file)
	n, err := replay(path, target.addr)
	if err != nil {
		zap.S().Fatalw("replay failed", "feed", *feedName, "file", path, "err", err)
	}
	zap.S().Infow("replay finished", "feed", *feedName, "lines", n)
}

// replay streams every line of the file to the intake, newline framed.
func replay(path, addr string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	conn, err := dial(addr)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	w := bufio.NewWriter(conn)
	n := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			return n, err
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, err
	}
	return n, w.Flush()
}

// dial retries so the client can come up before the trading system does.
func dial(addr string) (net.Conn, error) {
	var conn net.Conn
	boff := backoff.NewExponentialBackOff()
	boff.MaxElapsedTime = 30 * time.Second
	err := backoff.Retry(func() error {
		var err error
		conn, err = net.DialTimeout("tcp", addr, 2*time.Second)
		return err
	}, boff)
	return conn, err
}
