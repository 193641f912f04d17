package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cmsfront/pkg/content"
)

func newPagesCmd(a *app) *cobra.Command {
	var locale string
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "List the published pages and their routes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, _, err := a.newSite(cmd.Context())
			if err != nil {
				return err
			}
			locales, err := a.locales(s)
			if err != nil {
				return err
			}
			if locale != "" {
				if !s.Repository().HasLocale(locale) {
					return fmt.Errorf("%w: %s", content.ErrLocaleNotFound, locale)
				}
				locales = []string{locale}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tTITLE\tRENDERER\tCONTAINERS")
			for _, loc := range locales {
				for _, page := range s.Repository().Pages(loc) {
					renderer, err := s.Renderers().Resolve(page)
					name := "-"
					if err == nil {
						name = renderer.Name()
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", content.PagePath(loc, page.Slug), page.Title, name, len(page.Content))
				}
				for _, post := range s.Repository().News(loc, 0) {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", content.NewsPath(loc, post.Slug), post.Title, "news", 0)
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "", "only list pages of this locale")
	return cmd
}
