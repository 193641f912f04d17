package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cmsfront "github.com/goliatone/go-cmsfront"
	"github.com/goliatone/go-cmsfront/pkg/export"
	"github.com/goliatone/go-cmsfront/pkg/i18n"
	"github.com/goliatone/go-cmsfront/pkg/render"
)

func newBuildCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export every page as static HTML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, _, err := a.newSite(ctx)
			if err != nil {
				return err
			}
			catalog, err := i18n.Default()
			if err != nil {
				return err
			}
			exporter, err := export.New(s, out,
				export.WithLogger(a.logger.Named("export")),
				export.WithAssets(cmsfront.AssetsFS()),
				export.WithRenderOptions(render.RenderOptions{Translator: catalog}),
			)
			if err != nil {
				return err
			}
			report, err := exporter.Export(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d pages and %d assets to %s\n", len(report.Pages), len(report.Assets), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "public", "output directory")
	return cmd
}
