// Package cli implements the activityctl command tree.
//
// activityctl talks to the same activities API as the web frontend, for
// terminal use by office staff.
package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mergington/activities-web/internal/catalog"
)

const defaultAPIBaseURL = "http://localhost:8000"

// NewRootCmd builds the activityctl command tree.
func NewRootCmd() *cobra.Command {
	var apiBaseURL string

	cmd := &cobra.Command{
		Use:           "activityctl",
		Short:         "Inspect and manage activity signups from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&apiBaseURL, "api", apiBaseURLDefault(), "activities API base URL")

	cmd.AddCommand(
		newListCmd(&apiBaseURL),
		newSignupCmd(&apiBaseURL),
		newUnregisterCmd(&apiBaseURL),
	)
	return cmd
}

func apiBaseURLDefault() string {
	if v := strings.TrimSpace(os.Getenv("ACTIVITIES_WEB_API_BASE_URL")); v != "" {
		return v
	}
	return defaultAPIBaseURL
}

func newListCmd(apiBaseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List activities with availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := catalog.NewClient(*apiBaseURL)
			if err != nil {
				return err
			}
			cat, err := client.Activities(cmd.Context())
			if err != nil {
				return fmt.Errorf("list activities: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSCHEDULE\tSPOTS LEFT\tPARTICIPANTS")
			for _, name := range cat.Names() {
				activity, ok := cat.Get(name)
				if !ok {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", name, activity.Schedule, activity.SpotsLeft(), len(activity.Participants))
			}
			return w.Flush()
		},
	}
}

func newSignupCmd(apiBaseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "signup <activity> <email>",
		Short: "Sign a student up for an activity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := catalog.NewClient(*apiBaseURL)
			if err != nil {
				return err
			}
			msg, err := client.Signup(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("signup: %w", err)
			}
			if msg == "" {
				msg = fmt.Sprintf("Signed up %s for %s", args[1], args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func newUnregisterCmd(apiBaseURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "unregister <activity> <email>",
		Short: "Remove a student from an activity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := catalog.NewClient(*apiBaseURL)
			if err != nil {
				return err
			}
			msg, err := client.Unregister(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("unregister: %w", err)
			}
			if msg == "" {
				msg = fmt.Sprintf("Unregistered %s from %s", args[1], args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}
