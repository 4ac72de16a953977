// Package cli provides the command-line interface for cbsafe.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	hclog "github.com/hashicorp/go-hclog"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/akaawase-bernard/ColorBlindSafe-Palette/internal/version"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// logger is shared by all commands; configured by initLogger. The
	// null default keeps direct command invocations in tests safe.
	logger hclog.Logger = hclog.NewNullLogger()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "cbsafe",
		Short: "Colour-blind safety analyser for image palettes",
		Long: `cbsafe reduces an image to its dominant colours and checks whether the
palette stays distinguishable under the three common colour-vision
deficiencies: protanopia, deuteranopia and tritanopia.

Each extracted colour is simulated under every deficiency, pairwise
perceptual distances are measured in CIELAB, and any colour whose
closest simulated neighbour falls below a threshold is flagged unsafe.
The results are written as a summary figure, a text report and
optionally JSON.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cbsafe.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(simulateCmd)
}

// initConfig reads in the config file and environment variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search for ".cbsafe.yaml" in the home directory.
		viper.AddConfigPath(home)
		viper.SetConfigName(".cbsafe")
	}

	viper.SetEnvPrefix("cbsafe")
	viper.AutomaticEnv()

	// A missing config file is fine; flag defaults cover everything.
	_ = viper.ReadInConfig()
}

// initLogger configures the shared logger based on the verbose flag.
func initLogger() {
	if verbose {
		logger = hclog.New(&hclog.LoggerOptions{
			Name:   "cbsafe",
			Output: log.Writer(),
			Level:  hclog.Debug,
		})
	} else {
		logger = hclog.New(&hclog.LoggerOptions{
			Name:   "cbsafe",
			Output: io.Discard,
			Level:  hclog.Off,
		})
	}
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
