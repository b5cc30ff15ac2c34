package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chainsafe/bridge-swap/pkg/app"
	"github.com/chainsafe/bridge-swap/pkg/app/server"
	"github.com/chainsafe/bridge-swap/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	var runner app.Runner = server.NewServer(cfg)
	if err := runner.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "bridged: %v\n", err)
		os.Exit(1)
	}
}
