package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/bradleyboyuyang/bond-trading-system/config"
	"github.com/bradleyboyuyang/bond-trading-system/pkg/logging"
)

// downstream stands in for the consumers of the two broadcast sockets: it
// accepts connections, reads carriage-return framed dumps and prints them.
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

	endpoints := []struct {
		name string
		addr string
	}{
		{"stream", cfg.Downstream.StreamAddr},
		{"execution", cfg.Downstream.ExecutionAddr},
	}

	var listeners []net.Listener
	for _, ep := range endpoints {
		ln, err := net.Listen("tcp", ep.addr)
		if err != nil {
			zap.S().Fatalw("listen failed", "name", ep.name, "addr", ep.addr, "err", err)
		}
		listeners = append(listeners, ln)
		zap.S().Infow("listening", "name", ep.name, "addr", ep.addr)
		go accept(ep.name, ln)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	for _, ln := range listeners {
		ln.Close()
	}
}

func accept(name string, ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go dump(name, conn)
	}
}

// dump prints every frame from one connection. Frames end with a carriage
// return; the payload keeps its own newlines.
func dump(name string, conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	for {
		frame, err := r.ReadString('\r')
		if err != nil {
			return
		}
		fmt.Printf("[%s] %s", name, strings.TrimSuffix(frame, "\r"))
	}
}
