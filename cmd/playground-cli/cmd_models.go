package main

import (
	"net/http"

	"github.com/spf13/cobra"
)

func newModelsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Inspect the model catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, http.MethodGet, "/v1/models", nil, nil)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, http.MethodGet, "/v1/models/"+args[0], nil, nil)
		},
	})

	return cmd
}

// run performs one request and prints the response body as indented JSON.
func run(cmd *cobra.Command, opts *options, method, path string, query map[string]string, body any) error {
	client := newAPIClient(opts)
	defer client.Close()

	raw, err := client.do(cmd.Context(), method, path, query, body)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), raw)
}
