package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "jobmatcher",
	Short: "Check your job readiness against a job matching service",
	Long: `jobmatcher sends your skills, the roles you want, and optionally your CV
to a job matching service and prints the readiness report it returns:
skills you have and lack, certifications and courses to pursue, roles you
can apply for today, and how well you match the roles you want.`,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.jobmatcher/config.json)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// newLogger returns a stderr logger for request diagnostics when verbose,
// otherwise one that discards everything.
func newLogger() (logger *slog.Logger) {
	if !getVerbose() {
		logger = slog.New(slog.DiscardHandler)
		return logger
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger
}
