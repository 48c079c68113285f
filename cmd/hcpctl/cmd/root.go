package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arolim/hcp-mcmc/internal/config"
	"github.com/arolim/hcp-mcmc/pkg/utils"
)

var (
	verbose bool
	logger  utils.Logger
	ambient *config.Ambient
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "hcpctl",
	Short: "Hierarchical community-detection MCMC sampler",
	Long: `hcpctl runs the hierarchical-community-detection Metropolis-Hastings
sampler over a GML-encoded graph and records the sampled group
assignments, sufficient statistics, and log-likelihood trajectory.`,
	Example: `  # Run a sampler job using a parameters file
  hcpctl run ./params.properties

  # Inspect a previously recorded flat-file snapshot
  hcpctl show ./out data`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ambient = config.LoadAmbient(defaultLogLevel())
		level := utils.ParseLogLevel(ambient.LogLevel)
		logger = utils.NewDefaultLogger(level, os.Stdout)
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug-level logging")
}

func defaultLogLevel() string {
	if verbose {
		return "debug"
	}
	return "info"
}

// GetLogger returns the logger configured by PersistentPreRunE.
func GetLogger() utils.Logger {
	return logger
}

// GetAmbient returns the ambient configuration loaded by PersistentPreRunE.
func GetAmbient() *config.Ambient {
	return ambient
}

// BinName returns the base name of the current executable.
func BinName() string {
	return filepath.Base(os.Args[0])
}
