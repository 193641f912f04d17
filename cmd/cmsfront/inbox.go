package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cmsfront/pkg/contact"
)

func newInboxCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List contact messages stored by the relay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			inbox, err := contact.OpenSQLiteInbox(ctx, a.cfg.Contact.InboxDSN)
			if err != nil {
				return err
			}
			a.closers = append(a.closers, inbox)

			messages, err := inbox.List(ctx, limit)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RECEIVED\tCATEGORY\tFROM\tSUBJECT")
			for _, msg := range messages {
				s := msg.Submission
				fmt.Fprintf(w, "%s\t%s\t%s <%s>\t%s\n",
					msg.ReceivedAt.Local().Format(time.DateTime), s.Category, s.Name, s.Email, s.Subject)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of messages to show (0 for all)")
	return cmd
}
