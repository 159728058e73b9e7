// cmd/windscout/main.go
//
// This is the entry point for the windscout CLI.
//
// Flow:
// 1. Load optional .env overrides (server host/port)
// 2. Initialize the .windscout project directory
// 3. Either serve the latest run over HTTP (--serve) or launch the TUI

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/kingrea/windscout/internal/config"
	"github.com/kingrea/windscout/internal/logging"
	"github.com/kingrea/windscout/internal/server"
	"github.com/kingrea/windscout/internal/tui"
)

func main() {
	projectDir := flag.String("project", "", "path to the project directory (defaults to cwd)")
	serve := flag.Bool("serve", false, "serve the latest run over HTTP instead of opening the TUI")
	flag.Parse()

	// .env is optional; environment variables win over project config.
	_ = godotenv.Load()

	project := *projectDir
	if project == "" {
		cwd, err := os.Getwd()
		if err != nil {
			die("determine working directory: %v", err)
		}
		project = cwd
	}
	project, err := filepath.Abs(project)
	if err != nil {
		die("resolve project dir: %v", err)
	}
	if err := config.InitProjectDir(project); err != nil {
		die("init .windscout: %v", err)
	}

	logger, err := logging.New(project)
	if err == nil {
		defer logger.Close()
	}

	if *serve {
		runServer(project, logger)
		return
	}

	app, err := tui.NewApp(project)
	if err != nil {
		die("load project: %v", err)
	}
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		die("run TUI: %v", err)
	}
}

func runServer(project string, logger *logging.Logger) {
	cfg, err := config.NewConfig(project)
	if err != nil {
		die("load config: %v", err)
	}
	// --serve implies the server should run even if config leaves it off.
	cfg.Project.Server.Enabled = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg)
	addr := cfg.Project.Server.Address()
	fmt.Printf("Serving latest run on http://%s\n", addr)
	if logger != nil {
		logger.Printf("results server listening on %s", addr)
	}
	if err := srv.Start(ctx); err != nil {
		die("serve: %v", err)
	}
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
