package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

type completionConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxTokens        int     `json:"maxTokens"`
	TopP             float64 `json:"topP"`
	FrequencyPenalty float64 `json:"frequencyPenalty"`
	SystemMessage    string  `json:"systemMessage,omitempty"`
}

func newCompleteCmd(opts *options) *cobra.Command {
	var (
		modelID string
		asJSON  bool
		cfg     completionConfig
	)

	cmd := &cobra.Command{
		Use:   "complete <prompt>",
		Short: "Request a mocked completion",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"prompt":  strings.Join(args, " "),
				"modelId": modelID,
				"config":  cfg,
			}
			if asJSON {
				return run(cmd, opts, http.MethodPost, "/v1/completions", nil, body)
			}

			client := newAPIClient(opts)
			defer client.Close()

			raw, err := client.do(cmd.Context(), http.MethodPost, "/v1/completions", nil, body)
			if err != nil {
				return err
			}

			var env envelope
			if err := json.Unmarshal(raw, &env); err != nil {
				return fmt.Errorf("decode completion: %w", err)
			}
			var text string
			if err := json.Unmarshal(env.Data, &text); err != nil {
				return fmt.Errorf("decode completion text: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVarP(&modelID, "model", "m", "gpt-3.5", "Model ID")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full response envelope")
	addConfigFlags(cmd, &cfg)
	return cmd
}

func addConfigFlags(cmd *cobra.Command, cfg *completionConfig) {
	cmd.Flags().Float64Var(&cfg.Temperature, "temperature", 0.7, "Sampling temperature (0-2)")
	cmd.Flags().IntVar(&cfg.MaxTokens, "max-tokens", 2048, "Maximum tokens (1-32000)")
	cmd.Flags().Float64Var(&cfg.TopP, "top-p", 1, "Nucleus sampling (0-1)")
	cmd.Flags().Float64Var(&cfg.FrequencyPenalty, "frequency-penalty", 0, "Frequency penalty (0-2)")
	cmd.Flags().StringVar(&cfg.SystemMessage, "system", "", "System message")
}
