package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/formsiq/fieldbridge/pkg/api"
	"github.com/formsiq/fieldbridge/pkg/fieldmap"
	"github.com/formsiq/fieldbridge/pkg/store"
	"github.com/formsiq/fieldbridge/pkg/taxonomy"
)

type config struct {
	Addr          string  `yaml:"addr"`
	TaxonomyDir   string  `yaml:"taxonomy_dir"`
	StorePath     string  `yaml:"store_path"`
	MinScore      float64 `yaml:"min_score"`
	CategoryBonus float64 `yaml:"category_bonus"`
	ConceptWeight float64 `yaml:"concept_weight"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "mcp":
		cmdMCP(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: fieldbridge <command>\n\nCommands:\n  serve   Start the HTTP server\n  mcp     Serve MCP tools over stdio\n")
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg := loadConfig(*cfgPath, logger)
	svc := buildService(cfg, logger)
	if svc.Store != nil {
		defer svc.Store.Close()
	}

	router := api.NewRouter(svc)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	// SIGHUP: hot reload taxonomy tables.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading taxonomy")
			if err := svc.Registry.Reload(); err != nil {
				logger.Error("reload failed", "error", err)
			} else {
				t := svc.Registry.Current()
				logger.Info("taxonomy reloaded", "concepts", t.ConceptCount(), "checkbox_concepts", len(t.CheckboxConcepts()))
			}
		}
	}()

	go func() {
		logger.Info("fieldbridge listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	// Stdout carries the protocol; logs must stay on stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg := loadConfig(*cfgPath, logger)
	svc := buildService(cfg, logger)
	if svc.Store != nil {
		defer svc.Store.Close()
	}

	srv := server.NewMCPServer("fieldbridge", "1.0.0")
	api.RegisterMCPTools(srv, svc)

	if err := server.ServeStdio(srv); err != nil {
		logger.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

func buildService(cfg config, logger *slog.Logger) *api.Service {
	reg := taxonomy.NewRegistry(cfg.TaxonomyDir)
	if err := reg.Load(); err != nil {
		logger.Error("failed to load taxonomy", "error", err)
		os.Exit(1)
	}
	t := reg.Current()
	logger.Info("taxonomy loaded", "concepts", t.ConceptCount(), "categories", t.CategoryCount(), "checkbox_concepts", len(t.CheckboxConcepts()))

	var st *store.Store
	if cfg.StorePath != "" {
		var err error
		st, err = store.Open(cfg.StorePath)
		if err != nil {
			logger.Error("failed to open mapping store", "error", err)
			os.Exit(1)
		}
		logger.Info("mapping store ready", "path", cfg.StorePath)
	}

	return &api.Service{
		Registry: reg,
		Store:    st,
		Options: fieldmap.Options{
			MinScore:      cfg.MinScore,
			CategoryBonus: cfg.CategoryBonus,
			ConceptWeight: cfg.ConceptWeight,
		},
		Logger: logger,
	}
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		Addr:      ":8430",
		StorePath: "mappings.db",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}
