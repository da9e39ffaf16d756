package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okamoto/clusterd-tester/internal/config"
	"github.com/okamoto/clusterd-tester/internal/discovery"
	"github.com/okamoto/clusterd-tester/internal/logging"
	"github.com/okamoto/clusterd-tester/internal/tester"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Test an rclusterd daemon by replaying payload files.\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <directory> <server_ip> <server_port>\n\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	mode := flag.String("mode", "fast", "run mode: 'fast' for statistics only, 'detailed' for a per-file listing")
	configPath := flag.String("config", "", "optional YAML configuration file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 3 {
		usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), flag.Arg(1), flag.Arg(2), tester.Mode(*mode), *configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(dir, host, portArg string, mode tester.Mode, configPath string) error {
	port, err := strconv.Atoi(portArg)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %q", portArg)
	}
	if !mode.Valid() {
		return fmt.Errorf("invalid mode %q: use 'fast' or 'detailed'", mode)
	}

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	logger, logPath, err := logging.New(&cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger = logger.With(zap.String("run_id", uuid.NewString()))
	logger.Info("logging to file", zap.String("path", logPath))

	files, err := discovery.ListFiles(dir, cfg.Client.FileExtension)
	if err != nil {
		logger.Error("file discovery failed", zap.Error(err))
		return err
	}
	logger.Info("discovered files",
		zap.Int("count", len(files)),
		zap.String("directory", dir),
		zap.String("extension", cfg.Client.FileExtension))

	addr := net.JoinHostPort(host, portArg)
	session := tester.NewSession(addr, mode, &cfg.Client, logger)
	defer session.Close()

	if _, err := session.Replay(files); err != nil {
		logger.Error("initial connection failed", zap.Error(err))
		return fmt.Errorf("initial connection failed: %w", err)
	}
	return nil
}
