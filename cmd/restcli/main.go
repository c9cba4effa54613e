package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studiowebux/restcli-core/internal/cli"
	"github.com/studiowebux/restcli-core/internal/config"
	"github.com/studiowebux/restcli-core/internal/tui"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "restcli",
	Short:   "A terminal HTTP request and load-testing tool",
	Long:    `restcli manages collections of HTTP requests and runs them interactively or as one-shot commands, with built-in load testing.`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return tui.Run()
	},
}

var runCmd = &cobra.Command{
	Use:   "run <collection> <endpoint>",
	Short: "Execute a saved endpoint without the interactive UI",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		opts := cli.RunOptions{
			Collection: args[0],
			Endpoint:   args[1],
			ExtraVars:  flagExtraVars,
			EnvFile:    flagEnvFile,
			OutputFile: flagOutput,
			ShowFull:   flagFull,
		}
		return cli.Run(opts)
	},
}

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Manage saved collections outside the interactive UI",
}

var exportCmd = &cobra.Command{
	Use:   "export <collection> <file>",
	Short: "Export a saved collection to a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return cli.ExportCollection(args[0], args[1], flagExportFormat)
	},
}

var (
	flagExtraVars    []string
	flagFull         bool
	flagEnvFile      string
	flagOutput       string
	flagExportFormat string
)

func init() {
	runCmd.Flags().StringArrayVarP(&flagExtraVars, "extra-vars", "e", []string{}, "Set variable (key=value), can be repeated")
	runCmd.Flags().BoolVarP(&flagFull, "full", "f", false, "Show response headers in addition to the body")
	runCmd.Flags().StringVar(&flagEnvFile, "env-file", "", "Load variables from a key=value file (lower priority than --extra-vars)")
	runCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write the response body to this file instead of stdout")
	rootCmd.AddCommand(runCmd)

	exportCmd.Flags().StringVar(&flagExportFormat, "format", "yaml", "Export format (only yaml is supported)")
	collectionsCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(collectionsCmd)
}
