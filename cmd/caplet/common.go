package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/oukeidos/caplet/internal/config"
	"github.com/oukeidos/caplet/internal/identity"
	"github.com/oukeidos/caplet/internal/logger"
)

type globalOptions struct {
	configPath string
	debug      bool
}

var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
	loadToken    = identity.LoadToken
	saveToken    = identity.SaveToken
	clearToken   = identity.ClearToken
)

// loadConfig resolves the config path, loads it and initializes logging.
func loadConfig(opts *globalOptions) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	level := logger.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = logger.LevelDebug
	case "warn":
		level = logger.LevelWarn
	case "error":
		level = logger.LevelError
	}
	if opts.debug {
		level = logger.LevelDebug
	}
	logger.Init(level, nil)
	return cfg, nil
}

// promptCredentials reads the email from the argument or stdin and the
// password without echo.
func promptCredentials(emailArg string) (email, password string, err error) {
	email = strings.TrimSpace(emailArg)
	if email == "" {
		fmt.Print("Email: ")
		if _, scanErr := fmt.Scanln(&email); scanErr != nil {
			return "", "", fmt.Errorf("error reading email: %w", scanErr)
		}
		email = strings.TrimSpace(email)
	}

	if !isTerminal(int(os.Stdin.Fd())) {
		return "", "", fmt.Errorf("password prompt requires an interactive terminal")
	}
	fmt.Print("Password: ")
	raw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", fmt.Errorf("error reading password: %w", err)
	}
	return email, string(raw), nil
}

func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn("Cancellation requested")
		cancel()
	}()
	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, stop
}
