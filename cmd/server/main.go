// Command codelens serves the code explainer web UI and JSON API, and runs
// single analyses from the command line.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/codelens/api/internal/config"
	"github.com/codelens/api/internal/version"
)

// @title			CodeLens API
// @version		0.1.0
// @description	Explains, refactors, generates unit tests for, and measures code snippets.
// @host			localhost:8080
// @BasePath		/api/v1
// @schemes		http
func main() {
	v := config.New()

	rootCmd := &cobra.Command{
		Use:           "codelens",
		Short:         "Code explainer, refactoring, unit test and code quality service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			return config.LoadEnvFile(envFile)
		},
	}
	rootCmd.PersistentFlags().String("env-file", ".env", "File of KEY=VALUE pairs loaded into the environment")
	rootCmd.PersistentFlags().Bool("debug", false, "Development logging")
	_ = v.BindPFlag(config.KeyDebug, rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.AddCommand(newServeCmd(v))
	rootCmd.AddCommand(newAnalyzeCmd(v))
	rootCmd.AddCommand(newModelsCmd(v))
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", version.Service, version.Version)
		},
	}
}

// newLogger builds the production logger writing to output, or a
// development logger when debug is set
func newLogger(v *viper.Viper, output string) *zap.Logger {
	zapConfig := zap.NewProductionConfig()
	if v.GetBool(config.KeyDebug) {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{output}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	return logger
}
