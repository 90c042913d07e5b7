package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/game"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/simulation"
	"github.com/spf13/cobra"
	golog "github.com/tochemey/goakt/v3/log"
)

type options struct {
	configFile string
	schemaFile string
	agents     int
	seed       uint64
	grid       bool
	debug      bool
}

// rootCmd represents the base command when called without any subcommands
func rootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "flock",
		Short:         "Boids flocking simulation, steer the flock with the mouse",
		Long:          "Left button attracts the flock, right button repels it. Tab shows the tuning panel.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, opts.debug)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "JSON configuration file, defaults apply when empty")
	cmd.Flags().StringVar(&opts.schemaFile, "schema", "", "JSON schema used to validate --config instead of the embedded one")
	cmd.Flags().IntVarP(&opts.agents, "agents", "n", 0, "number of agents, overrides the configuration")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for a reproducible run, overrides the configuration")
	cmd.Flags().BoolVar(&opts.grid, "grid", false, "use the spatial grid for neighbour search")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log at debug level")
	return cmd
}

// loadConfig reads the configuration file, then applies the flags explicitly set.
func loadConfig(cmd *cobra.Command, opts options) (*flock.Config, error) {
	cfg := flock.DefaultConfig()
	if opts.configFile != "" {
		var err error
		if cfg, err = flock.LoadConfig(opts.configFile, opts.schemaFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("agents") {
		cfg.NumAgents = opts.agents
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if flags.Changed("grid") {
		cfg.SpatialIndex = opts.grid
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *flock.Config, debug bool) error {
	level := golog.InfoLevel
	if debug {
		level = golog.DebugLevel
	}
	logger := golog.New(level, os.Stdout)

	engine, err := simulation.NewEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := engine.Stop(ctx); err != nil {
			logger.Errorf("failed to stop the actor system: %v", err)
		}
	}()

	ebiten.SetWindowSize(int(cfg.Arena.Width), int(cfg.Arena.Height))
	ebiten.SetWindowTitle("boid system")

	return ebiten.RunGame(game.NewGame(engine, cfg))
}

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
