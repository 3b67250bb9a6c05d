// Package cmd provides the command-line interface of intcsim.
package cmd

import (
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// The environment variables that supply flag defaults. They may also come
// from a .env file in the working directory.
const (
	envPlatform = "IRQHAL_PLATFORM"
	envRecord   = "IRQHAL_RECORD"
	envPort     = "IRQHAL_PORT"
)

var (
	platformPath string
	verbosity    int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "intcsim",
	Short: "Intcsim drives simulated interrupt controllers.",
	Long: `Intcsim brings up the interrupt controllers described in a ` +
		`machine file. It can describe them, run scenarios against them ` +
		`and serve them over HTTP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	loadEnv(".env")

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&platformPath, "platform", "p", "",
		"machine description file (default $"+envPlatform+")")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"log more, repeat for deliveries")
}

// loadEnv reads the .env file if there is one. Variables already set in the
// environment win.
func loadEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}

	if err := godotenv.Load(path); err != nil {
		os.Stderr.WriteString("ignoring " + path + ": " + err.Error() + "\n")
	}
}

func envOr(value, key string) string {
	if value != "" {
		return value
	}

	return os.Getenv(key)
}

func newLogger() (logr.Logger, func()) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	cfg.DisableStacktrace = true

	zapLog, err := cfg.Build()
	if err != nil {
		return logr.Discard(), func() {}
	}

	return zapr.NewLogger(zapLog), func() { _ = zapLog.Sync() }
}
