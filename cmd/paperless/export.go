package main

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var filter filterFlags
	var overwrite bool
	var original bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export documents and their metadata into the configured storage",
		Long: `export downloads every document matching the filter into the storage backend
configured under [export.storage], writing <prefix>/<id>/<file> and
<prefix>/<id>/document.json. Documents already exported are skipped unless
--overwrite is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filter.filter(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("original") {
				a.infra.Config.Export.Original = original
			}

			exp, err := a.infra.Exporter(cmd.Context(), overwrite)
			if err != nil {
				return err
			}
			summary, err := exp.Run(cmd.Context(), f)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "exported %d documents (%s), skipped %d\n",
				summary.Exported, units.HumanSize(float64(summary.Bytes)), summary.Skipped)
			return nil
		},
	}
	filter.bind(cmd)
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace documents already exported")
	cmd.Flags().BoolVar(&original, "original", false, "Export original files instead of archived versions")
	return cmd
}
