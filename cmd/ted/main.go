package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/filedesless/ted/internal/app"
	"github.com/filedesless/ted/internal/config"
	"github.com/filedesless/ted/internal/renderer/backend"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", config.DefaultPath(), "config file path")
	logFile := flag.String("log", "", "log file path (overrides config)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	var path string
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ted: %v\n", err)
		return 1
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}

	log, err := app.NewLogger(cfg.LogFile, app.ParseLogLevel(cfg.LogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ted: %v\n", err)
		return 1
	}
	defer log.Close()

	be := backend.NewTerminal()
	if err := be.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "ted: %v\n", err)
		return 1
	}

	editor, err := app.New(be, cfg, path, log)
	if err != nil {
		be.Fini()
		fmt.Fprintf(os.Stderr, "ted: %v\n", err)
		return 1
	}

	if *configPath != "" {
		if err := editor.WatchConfig(*configPath); err != nil {
			log.Warnf("config watch failed: %v", err)
		}
	}

	err = editor.Run()
	be.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ted: %v\n", err)
		return 1
	}
	return 0
}
