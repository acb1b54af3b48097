package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/garyjia/coffee-machine/internal/config"
	"github.com/garyjia/coffee-machine/internal/domain/coffee"
	"github.com/garyjia/coffee-machine/pkg/logger"
)

const (
	exitOK          = 0
	exitBrewFailed  = 1
	exitConfigError = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("coffeemachine", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	describe := fs.Bool("describe", false, "print the brew transition table as YAML and exit")
	config.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitConfigError
	}

	if *describe {
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(coffee.TransitionTable()); err != nil {
			fmt.Fprintf(stderr, "Failed to encode transition table: %v\n", err)
			return exitConfigError
		}
		if err := enc.Close(); err != nil {
			fmt.Fprintf(stderr, "Failed to encode transition table: %v\n", err)
			return exitConfigError
		}
		return exitOK
	}

	cfg, err := config.Load(*configPath, fs)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return exitConfigError
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return exitConfigError
	}
	defer log.Sync()

	sensors := cfg.Machine.Sensors()
	log.Info("Starting coffee machine",
		zap.Bool("water_tank_filled", sensors.WaterTankFilled),
		zap.Bool("capsule_bin_empty", sensors.CapsuleBinEmpty),
		zap.Bool("capsule_inserted", sensors.CapsuleInserted),
		zap.Int("brew_attempts", cfg.Machine.BrewAttempts))

	machine := coffee.NewMachine(
		sensors.WaterTankFilled,
		sensors.CapsuleBinEmpty,
		sensors.CapsuleInserted,
		coffee.WithLogger(log.Named("machine")),
	)

	code := exitOK
	for i := 0; i < cfg.Machine.BrewAttempts; i++ {
		res := machine.BrewContext(ctx)
		fmt.Fprintln(stdout, res.Message)
		if !res.Success {
			code = exitBrewFailed
		}
	}

	return code
}
