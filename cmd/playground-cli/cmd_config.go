package main

import (
	"net/http"

	"github.com/spf13/cobra"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Work with generation parameters",
	}

	var cfg completionConfig
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check generation parameters against their allowed ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, http.MethodPost, "/v1/config/validate", nil, cfg)
		},
	}
	addConfigFlags(validateCmd, &cfg)
	cmd.AddCommand(validateCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the generation parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, http.MethodGet, "/v1/config/schema", nil, nil)
		},
	})

	return cmd
}
