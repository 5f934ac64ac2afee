package commands

import (
	"github.com/spf13/cobra"

	"github.com/aeroclub-poitou/preflight/pkg/app"
	"github.com/aeroclub-poitou/preflight/pkg/runner/ui"
	"github.com/aeroclub-poitou/preflight/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive checklist view.",
		Example: `
preflight ui
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			return ui.Run(app.New(p))
		},
	}

	topLevel.AddCommand(cmd)
}
