package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cowsed/Random/SolarSystem/internal/app"
	"github.com/cowsed/Random/SolarSystem/internal/config"
)

const defaultConfigPath = "solarsystem.toml"

var (
	// Global flags
	configPath string
	verbose    bool

	// Viewer flags
	systemPath string
	assetsDir  string
	windowed   bool
	timeScale  float64
	cpuProfile string
	memProfile string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "solarsystem",
	Short: "Animated 3D solar system viewer",
	Long: `Renders the sun, the eight planets and their larger moons on scripted
circular orbits. Fly around with WASD and the mouse, hold left shift to go
faster, scroll to zoom and press Escape to quit. Tab toggles the tweak panel.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	RunE: runViewer,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the bodies of the system without opening a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := app.LoadCatalog(cfg.Simulation.System)
		if err != nil {
			return err
		}
		s, err := c.Build()
		if err != nil {
			return err
		}
		return s.Describe(cmd.OutOrStdout())
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration as TOML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultConfigPath
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := config.Default().Write(path); err != nil {
			return err
		}
		logger.Info("wrote default config", zap.String("path", path))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "TOML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&systemPath, "system", "", "YAML system catalog (default: built-in solar system)")

	rootCmd.Flags().StringVar(&assetsDir, "assets", "", "texture directory")
	rootCmd.Flags().BoolVar(&windowed, "windowed", false, "open a window instead of going fullscreen")
	rootCmd.Flags().Float64Var(&timeScale, "time-scale", 0, "simulation speed multiplier")
	rootCmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "write a CPU profile to this file")
	rootCmd.Flags().StringVar(&memProfile, "memprofile", "", "write a heap profile to this file on exit")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(catalogCmd, configCmd)
}

// loadConfig reads the config file and applies flag overrides. The
// default config path may be absent; an explicit one must exist.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	optional := !cmd.Flags().Changed("config")
	cfg, err := config.Load(configPath, optional)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("system") {
		cfg.Simulation.System = systemPath
	}
	if f := cmd.Flags().Lookup("assets"); f != nil && f.Changed {
		cfg.Assets.Dir = assetsDir
	}
	if f := cmd.Flags().Lookup("windowed"); f != nil && f.Changed {
		cfg.Window.Fullscreen = !windowed
	}
	if f := cmd.Flags().Lookup("time-scale"); f != nil && f.Changed {
		cfg.Simulation.TimeScale = timeScale
	}
	return cfg, cfg.Validate()
}

func runViewer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	stop, err := app.StartCPUProfile(cpuProfile)
	if err != nil {
		return err
	}
	defer stop()

	if err := app.New(cfg, logger).Run(); err != nil {
		return err
	}
	return app.WriteHeapProfile(memProfile)
}

// execute runs the command line and flushes the logger whether or not
// the command failed.
func execute(args []string, out io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.Execute()
}

func main() {
	if err := execute(os.Args[1:], os.Stdout); err != nil {
		os.Exit(1)
	}
}
