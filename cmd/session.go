package cmd

import (
	"errors"
	"fmt"

	"github.com/bankrkit/bankr/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage betting sessions",
	}

	cmd.AddCommand(newSessionStartCmd(app), newSessionEndCmd(app))

	return cmd
}

func newSessionStartCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a new betting session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.service.StartSession(cmd.Context())
			if errors.Is(err, domain.ErrSessionConflict) {
				return fmt.Errorf("%w; end it with 'bankr session end' first", err)
			}
			if err != nil {
				return fmt.Errorf("start session: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Started session %s at balance %.2f\n", session.ID, session.StartBalance)
			return err
		},
	}
}

func newSessionEndCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the active session without recording a result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ended, err := app.service.ForceEndSession(cmd.Context())
			if err != nil {
				return fmt.Errorf("end session: %w", err)
			}

			if !ended {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No session was active.")
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Ended the active session.")
			return err
		},
	}
}
