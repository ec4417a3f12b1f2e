package main

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"
)

func newTemplatesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"tpl"},
		Short:   "Manage saved prompt templates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, http.MethodGet, "/v1/templates", nil, nil)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, http.MethodGet, "/v1/templates", map[string]string{"id": args[0]}, nil)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search name, prompt and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, http.MethodGet, "/v1/templates", map[string]string{"query": args[0]}, nil)
		},
	})

	cmd.AddCommand(newTemplateSaveCmd(opts))
	cmd.AddCommand(newTemplateUpdateCmd(opts))

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, http.MethodDelete, "/v1/templates", map[string]string{"id": args[0]}, nil)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, http.MethodPost, "/v1/templates/reset", nil, nil)
		},
	})

	return cmd
}

func newTemplateSaveCmd(opts *options) *cobra.Command {
	var name, prompt, description string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a new template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{"name": name, "prompt": prompt}
			if cmd.Flags().Changed("description") {
				body["description"] = description
			}
			return run(cmd, opts, http.MethodPost, "/v1/templates", nil, body)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Template name")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Template prompt")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

func newTemplateUpdateCmd(opts *options) *cobra.Command {
	var name, prompt, description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the name, prompt or description of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{"id": args[0]}
			for flag, value := range map[string]string{"name": name, "prompt": prompt, "description": description} {
				if cmd.Flags().Changed(flag) {
					body[flag] = value
				}
			}
			if len(body) == 1 {
				return errors.New("nothing to update: pass --name, --prompt or --description")
			}
			return run(cmd, opts, http.MethodPut, "/v1/templates", nil, body)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&prompt, "prompt", "", "New prompt")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	return cmd
}
