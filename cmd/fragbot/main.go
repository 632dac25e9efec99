// Package main runs the fragbot Telegram bot: a Playwright-driven
// fragment.com session behind /connect, /logout, and inline login-code
// lookups.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"fragbot/pkg/bot"
	"fragbot/pkg/browser"
	"fragbot/pkg/config"
	"fragbot/pkg/fragment"
	"fragbot/pkg/logging"
)

const version = "0.1.0"

type cliFlags struct {
	configFile  string
	headful     bool
	showVersion bool
}

func main() {
	flags := parseFlags()

	if flags.showVersion {
		fmt.Printf("fragbot v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, flags); err != nil {
		logrus.WithError(err).Error("fragbot exited with error")
		os.Exit(1)
	}
}

func parseFlags() *cliFlags {
	flags := &cliFlags{}

	flag.StringVar(&flags.configFile, "config", "", "Path to configuration file (YAML)")
	flag.BoolVar(&flags.headful, "headful", false, "Run Chromium with a visible window")
	flag.BoolVar(&flags.showVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "fragbot - Telegram bot for fragment.com TON Connect and login codes\n\n")
		fmt.Fprintf(os.Stderr, "Usage: fragbot [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nThe bot token comes from bot_token in the config file or FRAGBOT_TOKEN.\n")
	}

	flag.Parse()
	return flags
}

func run(ctx context.Context, flags *cliFlags) error {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return err
	}
	if flags.headful {
		cfg.Headless = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	manager := browser.NewManager(browser.Options{
		Headless:    cfg.Headless,
		UserDataDir: cfg.UserDataDir,
		EntryURL:    cfg.EntryURL,
	}, logger)
	defer manager.Shutdown()

	orchestrator := fragment.NewOrchestrator(manager, fragment.DefaultBudgets(), logger)
	b := bot.New(cfg.BotToken, orchestrator, logger)

	logger.WithFields(logrus.Fields{
		"version":  version,
		"headless": cfg.Headless,
	}).Info("starting fragbot")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.Run(gctx)
	})
	return g.Wait()
}
