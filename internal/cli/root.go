package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"dslsplit/config"
	"dslsplit/internal/logging"
)

var (
	cfgFile   string
	cfg       *config.Config
	rootDir   string
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "dslsplit",
	Short: "Danish compound splitter",
	Long: `dslsplit splits Danish compound words into two parts and an optional
joining fragment, using n-gram statistics trained from a lexicon.

Example usage:
  dslsplit train                       # Train every table that is out of date
  dslsplit split operakoncert          # Split a word
  dslsplit split -m brute badeand      # Split with the pentagram scorer
  dslsplit serve --watch               # Run the HTTP service`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.ApplyEnv(rootDir); err != nil {
			return fmt.Errorf("failed to load environment: %w", err)
		}

		logCloser, err = logging.Setup(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./dslsplit.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory for data files and the table store (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
