package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/paperless/internal/config"
	"github.com/JaimeStill/paperless/internal/infrastructure"
)

// app carries state shared by every command of one invocation.
type app struct {
	configDir string
	format    string
	out       io.Writer
	errOut    io.Writer
	infra     *infrastructure.Infrastructure
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   "paperless",
		Short: "Paperless-ngx command line client",
		Long: `paperless manages documents on a Paperless-ngx server: listing, uploading,
downloading, and exporting documents along with their tags, correspondents,
document types, storage paths, custom fields, and tasks.

Connection settings are read from paperless.toml, the overlay selected by
PAPERLESS_ENV, and PAPERLESS_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVarP(&a.configDir, "config-dir", "c", ".", "Directory containing paperless.toml")
	cmd.PersistentFlags().StringVarP(&a.format, "output", "o", formatTable, "Output format: table or json")

	cmd.AddCommand(
		newDocumentsCmd(a),
		newFieldsCmd(a),
		newTasksCmd(a),
		newTagsCmd(a),
		newCorrespondentsCmd(a),
		newDocumentTypesCmd(a),
		newStoragePathsCmd(a),
		newExportCmd(a),
	)
	return cmd
}

func (a *app) init() error {
	if a.format != formatTable && a.format != formatJSON {
		return fmt.Errorf("invalid output format: %s (must be table or json)", a.format)
	}

	cfg, err := config.LoadDir(a.configDir)
	if err != nil {
		return err
	}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	infra, err := infrastructure.New(cfg, a.errOut)
	if err != nil {
		return err
	}
	a.infra = infra
	return nil
}
