package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"newsdesk/internal/config"
)

var rootCmdPersistentFlags struct {
	ConfigFile string
	LogLevel   string
}

var (
	cfg    config.Config
	logger = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "newsdesk",
	Short: "Newsdesk serves user articles and proxies news searches",
	Example: `newsdesk --config config.yml
  newsdesk serve --log-level debug
  newsdesk user create --username admin --email admin@example.com --password secret --admin`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if rootCmdPersistentFlags.LogLevel != "" {
			loaded.Log.Level = rootCmdPersistentFlags.LogLevel
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		cfg = loaded
		configureLogger(logger, cfg.Log.Level, cfg.Log.Format)
		return nil
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootCmdPersistentFlags.ConfigFile, "config", "c", "", "Path to config file (default: config.yml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
}

func configureLogger(l *logrus.Logger, level, format string) {
	l.SetOutput(os.Stdout)
	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		l.Warnf("unknown log level %q, defaulting to info", level)
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)
}
