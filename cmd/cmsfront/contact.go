package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cmsfront/internal/prompt"
	"github.com/goliatone/go-cmsfront/pkg/contact"
	"github.com/goliatone/go-cmsfront/pkg/i18n"
)

func newContactCmd(a *app) *cobra.Command {
	var (
		base   string
		locale string
	)
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Fill in and send the contact form from the terminal",
		Long: `contact asks for each contact form field and posts the payload once to the
configured endpoint. Relative endpoints are resolved against --base.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := i18n.Default()
			if err != nil {
				return err
			}
			client, err := contact.NewClient(a.cfg.Contact.Endpoint, contact.WithTimeout(a.cfg.Contact.Timeout)).Resolve(base)
			if err != nil {
				return err
			}
			translate := func(key string) string {
				return i18n.T(catalog, locale, key, nil)
			}

			outcome, err := prompt.Run(cmd.Context(), prompt.NewSurveyDriver(cmd.OutOrStdout()), client, translate, contact.Submission{})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submission %s (%s)\n", outcome, client.Endpoint())
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base", "http://localhost:8080", "site URL used to resolve a relative endpoint")
	cmd.Flags().StringVar(&locale, "locale", i18n.DefaultLocale, "language of the prompts")
	return cmd
}
