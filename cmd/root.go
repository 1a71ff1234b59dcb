package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bodocord/bodocord/bcdice"
	"github.com/bodocord/bodocord/config"
	"github.com/bodocord/bodocord/filter"
)

var (
	cfgFile      string
	cfg          *config.Config
	logger       zerolog.Logger
	bcdiceClient *bcdice.Client

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bodocord",
	Short: "A Discord bot for rolling dice with BCDice-API",
	Long: `bodocord is a Discord bot that rolls dice and original tables through a
BCDice-API server. The same operations are available from the command line
for checking a server before the bot is started.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// SetVersion records the build information injected by the linker
func SetVersion(v, t string) {
	version = v
	buildTime = t
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml, env BC_CONFIG)")
}

// initializeApp loads the configuration and creates the BCDice-API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, os.Stderr)

	bcdiceClient, err = bcdice.NewClient(cfg.BCDice.URL, logger,
		bcdice.WithTimeout(cfg.BCDice.Timeout),
		bcdice.WithUserAgent("bodocord/"+version),
	)
	if err != nil {
		return fmt.Errorf("failed to create BCDice-API client: %w", err)
	}

	logger.Debug().Str("url", bcdiceClient.BaseURL()).Msg("BCDice-API client ready")
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newFilterManager compiles the configured presets
func newFilterManager(presets map[string]string) (*filter.Manager, error) {
	m := filter.NewManager()
	if err := m.RegisterPresets(presets); err != nil {
		return nil, err
	}
	return m, nil
}
