package main

import (
	"fmt"
	"os"

	"github.com/benbeisheim/martianchess-backend/internal/config"
	"github.com/benbeisheim/martianchess-backend/internal/console"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("martian", os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	fd := os.Stdin.Fd()
	interactive := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	c := console.New(os.Stdin, os.Stdout, interactive, logger)
	state, err := c.Run(cfg.Rules())
	if err != nil {
		logger.Fatal("game aborted", zap.Error(err))
	}
	logger.Debug("game finished", zap.Uint32("turns", state.Turn))
}
