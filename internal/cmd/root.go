package cmd

import (
	"context"
	"strings"

	configcmd "github.com/Iron-Ham/tasker/internal/cmd/config"
	"github.com/Iron-Ham/tasker/internal/config"
	"github.com/Iron-Ham/tasker/internal/console"
	"github.com/Iron-Ham/tasker/internal/errors"
	"github.com/Iron-Ham/tasker/internal/logging"
	"github.com/Iron-Ham/tasker/internal/registry"
	"github.com/Iron-Ham/tasker/internal/styles"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "tasker",
	Short: "Interactive command-line task manager",
	Long: `Tasker keeps a list of short tasks and lets you add, find, edit,
remove and print them from a numbered menu. Tasks can be stored to and
loaded from JSON files.

Without a subcommand, starts the interactive menu on standard input.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runInteractive,
}

// ExecuteContext runs the root command with ctx, which ends the interactive
// menu when canceled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/tasker/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	configcmd.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/tasker")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TASKER")
	// e.g., TASKER_STORAGE_DIR for storage.dir
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	out := cmd.OutOrStdout()
	reg := registry.New(afero.NewOsFs(), cfg.Storage.ResolveDir(), logger)
	c := console.New(reg, cmd.InOrStdin(), out, console.Options{
		Styles:               styles.New(out, cfg.Console.Color),
		Logger:               logger,
		ShowMenuAfterCommand: cfg.Console.ShowMenuAfterCommand,
	})
	return c.Run(cmd.Context())
}

// newLogger builds the file logger described by cfg, or a logger that
// discards everything when logging is disabled.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(logging.Options{
		File:  cfg.Logging.ResolveFile(),
		Level: cfg.Logging.Level,
		Rotation: logging.RotationConfig{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to start logging")
	}
	return logger, nil
}
