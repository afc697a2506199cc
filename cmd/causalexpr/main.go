// Package main is the entry point for the causalexpr CLI: a "demo"
// subcommand that builds and renders a few sample expressions, and a
// "serve" subcommand that runs the HTTP surface. Grounded on
// cmd/gcw-emulator/main.go's Cobra root command, envOrDefault
// flag/env-merge convention, and signal-driven graceful shutdown.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fennimore-labs/causalexpr/pkg/api"
	"github.com/fennimore-labs/causalexpr/pkg/builder"
	"github.com/fennimore-labs/causalexpr/pkg/config"
	"github.com/fennimore-labs/causalexpr/pkg/render"
	"github.com/fennimore-labs/causalexpr/pkg/store"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "causalexpr",
	Short: "Build, simplify, and render causal expression trees",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for submitting and rendering expression trees",
	RunE:  runServe,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Build a handful of sample expressions and print their rendered justification",
	RunE:  runDemo,
}

func init() {
	rootCmd.Version = version + " (commit=" + commit + ", built=" + date + ")"
	rootCmd.SetVersionTemplate("causalexpr version {{.Version}}\n")

	serveCmd.Flags().Int("port", 0, "HTTP server port (default 8080, env PORT)")
	serveCmd.Flags().String("host", "", "Bind address (default 0.0.0.0, env HOST)")
	serveCmd.Flags().String("config", "", "Path to a YAML config file (env CONFIG_FILE)")
	serveCmd.Flags().String("store", "", "Store backend: memory or sqlite (default memory, env STORE_BACKEND)")
	serveCmd.Flags().String("sqlite-dsn", "", "sqlite DSN when --store=sqlite (default causalexpr.db, env SQLITE_DSN)")

	rootCmd.AddCommand(serveCmd, demoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	configPath := envOrDefault("CONFIG_FILE", "")
	if v, _ := cmd.Flags().GetString("config"); v != "" {
		configPath = v
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if v := os.Getenv("HOST"); v != "" {
		cfg.Host = v
	}
	if v, _ := cmd.Flags().GetString("host"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Port)
	}
	if v, _ := cmd.Flags().GetInt("port"); v != 0 {
		cfg.Port = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		cfg.StoreBackend = config.StoreBackend(v)
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.StoreBackend = config.StoreBackend(v)
	}
	if v := os.Getenv("SQLITE_DSN"); v != "" {
		cfg.SQLiteDSN = v
	}
	if v, _ := cmd.Flags().GetString("sqlite-dsn"); v != "" {
		cfg.SQLiteDSN = v
	}

	var sink store.Sink
	var source store.Source
	var closer func() error

	switch cfg.StoreBackend {
	case config.BackendSQLite:
		sqlStore, err := store.OpenSQLStore(cfg.SQLiteDSN)
		if err != nil {
			return fmt.Errorf("open sqlite store: %w", err)
		}
		sink, source, closer = sqlStore, sqlStore, sqlStore.Close
		log.Printf("store backend: sqlite (%s)", cfg.SQLiteDSN)
	default:
		memStore := store.NewMemoryStore()
		sink, source = memStore, memStore
		log.Printf("store backend: memory")
	}

	server := api.New(sink, source)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("shutting down causalexpr server...")
		if err := server.Shutdown(); err != nil {
			log.Printf("error during shutdown: %v", err)
		}
		if closer != nil {
			if err := closer(); err != nil {
				log.Printf("error closing store: %v", err)
			}
		}
	}()

	log.Printf("causalexpr listening on %s", cfg.Addr())
	return server.Listen(cfg.Addr())
}

func runDemo(*cobra.Command, []string) error {
	for _, sample := range samples() {
		fmt.Println(sample)
	}
	return nil
}

// samples builds a handful of small expression trees exercising each
// builder and prints their canonical rendered justification, mirroring
// the worked examples of spec.md §8.
func samples() []string {
	var out []string

	if n, err := builder.Numeric(builder.Bind("a", 2)); err == nil {
		if gt, err := n.Gt(builder.Bind("b", 4)); err == nil {
			out = append(out, render.Render(gt.Node()))
		}
	}

	if open, err := builder.Bool(builder.Bind("open", true)); err == nil {
		if and, err := open.And(builder.Bind("staffed", false)); err == nil {
			out = append(out, render.Render(and.Node()))
		}
	}

	if x, err := builder.Int(builder.Bind("x", 1)); err == nil {
		if sum, err := x.Plus(builder.Bind("y", 2)); err == nil {
			if sum, err := sum.Plus(builder.Bind("z", 3)); err == nil {
				out = append(out, render.Render(sum.Node()))
			}
		}
	}

	if cond, err := builder.If(builder.Bind("weekend", false)); err == nil {
		if partial, err := cond.Then(builder.Bind("rate", 1)); err == nil {
			if final, err := partial.Else(builder.Bind("rate", 2)); err == nil {
				out = append(out, render.Render(final.Node()))
			}
		}
	}

	return out
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
