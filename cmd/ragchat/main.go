// Command ragchat is a terminal client for the traffic law assistant.
//
// Usage:
//
//	ragchat [flags]
//
// Flags:
//
//	-api string        Service base URL (default $RAGCHAT_API_URL or http://localhost:8000/api)
//	-compare           Start in comparison mode (naive vs hybrid retrieval)
//	-poll duration     Document list refresh interval (default 10s)
//	-upload string     Upload files matching this glob (supports **) before starting
//	-log string        Write logs to this file (default: no logs)
//	-log-level string  Log level (default $RAGCHAT_LOG_LEVEL or info)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fwojciec/ragchat"
	"github.com/fwojciec/ragchat/api"
	bt "github.com/fwojciec/ragchat/bubbletea"
	"github.com/fwojciec/ragchat/chat"
)

const healthTimeout = 3 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ragchat: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var f flags
	flag.StringVar(&f.api, "api", "", "Service base URL (default $RAGCHAT_API_URL or "+defaultAPIURL+")")
	flag.BoolVar(&f.compare, "compare", false, "Start in comparison mode (naive vs hybrid retrieval)")
	flag.DurationVar(&f.poll, "poll", bt.DefaultPollInterval, "Document list refresh interval")
	flag.StringVar(&f.upload, "upload", "", "Upload files matching this glob (supports **) before starting")
	flag.StringVar(&f.logPath, "log", "", "Write logs to this file")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error (default $RAGCHAT_LOG_LEVEL or info)")
	flag.Parse()

	// Env vars are read here and passed as values.
	cfg, err := resolveConfig(f, env{
		apiURL:   os.Getenv("RAGCHAT_API_URL"),
		logLevel: os.Getenv("RAGCHAT_LOG_LEVEL"),
	})
	if err != nil {
		return err
	}

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, closeLog, err := openLogger(cfg.logPath, cfg.logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	client := api.New(cfg.apiURL, api.WithLogger(logger))

	hctx, cancel := context.WithTimeout(ctx, healthTimeout)
	if err := client.Health(hctx); err != nil {
		logger.Warn().Err(err).Str("api", cfg.apiURL).Msg("service not healthy")
	}
	cancel()

	if cfg.upload != "" {
		if err := uploadFiles(ctx, client, cfg.upload, os.Stderr); err != nil {
			return err
		}
	}

	session := chat.New(client, chat.WithLogger(logger))
	send := func(ctx context.Context, text string, comparison bool, onUpdate func(ragchat.Message)) error {
		return session.Send(ctx, text, comparison, chat.WithUpdateHandler(onUpdate))
	}

	m := bt.New(send, ragchat.DefaultTheme(),
		bt.WithHistory(session.Messages()),
		bt.WithLibrary(client),
		bt.WithComparison(cfg.comparison),
		bt.WithPollInterval(cfg.poll),
	)
	if err := bt.Run(ctx, m); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}
