package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd(opts *options) *cobra.Command {
	var (
		wait     time.Duration
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the API is up, optionally waiting for it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(opts)
			defer client.Close()

			if err := waitForHealth(cmd.Context(), client, wait, interval); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "healthy")
			return err
		},
	}
	cmd.Flags().DurationVar(&wait, "wait", 0, "Keep polling /healthz for up to this long")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "Delay between polls")
	return cmd
}

// waitForHealth polls /healthz until it answers or wait elapses. A zero
// wait performs a single check.
func waitForHealth(ctx context.Context, client *apiClient, wait, interval time.Duration) error {
	deadline := time.Now().Add(wait)
	for {
		_, err := client.do(ctx, http.MethodGet, "/healthz", nil, nil)
		if err == nil {
			return nil
		}
		if !time.Now().Add(interval).Before(deadline) {
			if wait == 0 {
				return fmt.Errorf("unhealthy: %w", err)
			}
			return fmt.Errorf("health check timeout after %v: %w", wait, err)
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
