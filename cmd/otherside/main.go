// Package main is the entry point for Otherside.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/samdwyer/otherside/internal/cli"
	"github.com/samdwyer/otherside/internal/dice"
	"github.com/samdwyer/otherside/internal/game"
	"github.com/samdwyer/otherside/internal/gamedata"
	"github.com/samdwyer/otherside/internal/narrate"
	"github.com/samdwyer/otherside/internal/telemetry"
	"github.com/samdwyer/otherside/internal/ui"
)

var version = "dev"

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_OTHERSIDE_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var showVersion bool
	flag.BoolVar(&cfg.Plain, "plain", cfg.Plain, "use the plain line console")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for reproducible games (0 = random)")
	flag.BoolVar(&showVersion, "version", false, "print the version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("otherside", version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Telemetry {
		// Set up OTEL environment variables from our .env variables
		setupOTelEnv()

		shutdown, err := telemetry.Setup(ctx, version)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Game will run without observability")
			telemetry.Disable()
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	} else {
		telemetry.Disable()
	}

	if cfg.Seed == 0 {
		if cfg.Seed, err = dice.NewSeed(); err != nil {
			log.Fatalf("Failed to seed dice: %v", err)
		}
	}

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Game error: %v", err)
	}
}

func run(ctx context.Context, cfg game.Config) error {
	cat, err := gamedata.LoadCatalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	s, err := game.NewSession(cfg, dice.New(cfg.Seed), cat, nil)
	if err != nil {
		return err
	}
	narrator := narrate.New(cat)

	if cfg.Plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		con := cli.New(os.Stdin, os.Stdout, narrator)
		con.Welcome()
		return game.Menu(ctx, s, con)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	defer screen.Close()

	con := ui.NewConsole(screen, cat, narrator, s)
	con.Welcome()
	return game.Menu(ctx, s, con)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_OTHERSIDE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_OTHERSIDE_DATASET")
	if dataset == "" {
		dataset = "otherside" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
