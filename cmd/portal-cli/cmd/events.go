package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nfrund/clubportal/cmd/portal-cli/internal/output"
	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/events"
	"github.com/nfrund/clubportal/internal/feedback"
	"github.com/nfrund/clubportal/internal/registration"
)

var (
	searchFlag   string
	categoryFlag string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Browse and register for club events",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the events catalog",
	Long: `List the events catalog, filtered the same way the events page filters it.

Examples:
  portal-cli events list
  portal-cli events list --search hack
  portal-cli events list --category Workshops --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := output.CheckFormat(formatFlag); err != nil {
			return err
		}
		c, err := client(loadedConfig, cookieFlag)
		if err != nil {
			return err
		}
		return listEvents(cmd.Context(), cmd.OutOrStdout(), c, formatFlag, searchFlag, categoryFlag)
	},
}

var eventsRegisterCmd = &cobra.Command{
	Use:   "register <event-id>",
	Short: "Register the signed-in member for an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := output.CheckFormat(formatFlag); err != nil {
			return err
		}
		if cookieFlag == "" {
			return errNeedsCookie
		}
		c, err := client(loadedConfig, cookieFlag)
		if err != nil {
			return err
		}
		return submit(cmd.Context(), cmd.OutOrStdout(), registration.NewFlow(registration.EventsEndpoint(), c), formatFlag, args[0])
	},
}

func init() {
	eventsListCmd.Flags().StringVarP(&searchFlag, "search", "s", "", "Case-insensitive search over title, description and location")
	eventsListCmd.Flags().StringVarP(&categoryFlag, "category", "c", events.CategoryAll, "Category filter (All, Workshops, Hackathons, Meetups)")

	eventsCmd.AddCommand(eventsListCmd, eventsRegisterCmd)
	rootCmd.AddCommand(eventsCmd)
}

func listEvents(ctx context.Context, w io.Writer, c *backend.Client, format, search, category string) error {
	list, err := c.Events(ctx)
	if err != nil {
		return fmt.Errorf("fetch events: %w", err)
	}
	return output.Events(w, format, events.Filter(list, search, category))
}

// submitter is implemented by every registration.Flow.
type submitter interface {
	Submit(ctx context.Context, snap registration.Snapshot, subject string) (registration.Snapshot, feedback.Message, error)
}

func submit(ctx context.Context, w io.Writer, flow submitter, format, subject string) error {
	_, msg, err := flow.Submit(ctx, registration.NewSnapshot(), subject)
	if err != nil {
		return err
	}
	ok := msg.Severity == feedback.SeveritySuccess
	if err := output.Message(w, format, ok, msg.Text); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("registration failed: %s", msg.Text)
	}
	return nil
}
