package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:8190"

type options struct {
	server  string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "playground-cli",
		Short: "Command-line client for the Playground API",
		Long: `playground-cli talks to a running Playground API.

Examples:
  playground-cli models list
  playground-cli templates search review
  playground-cli templates save --name "Bug Report" --prompt "Describe the bug"
  playground-cli complete --model gpt-4 --temperature 1.3 "Write a haiku about Go"`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	server := os.Getenv("PLAYGROUND_URL")
	if server == "" {
		server = defaultServer
	}
	rootCmd.PersistentFlags().StringVar(&opts.server, "server", server, "Playground API base URL (env PLAYGROUND_URL)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(newModelsCmd(opts))
	rootCmd.AddCommand(newTemplatesCmd(opts))
	rootCmd.AddCommand(newCompleteCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newHealthCmd(opts))

	return rootCmd
}
