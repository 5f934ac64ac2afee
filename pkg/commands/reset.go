package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aeroclub-poitou/preflight/pkg/app"
	"github.com/aeroclub-poitou/preflight/pkg/runner/reset"
	"github.com/aeroclub-poitou/preflight/pkg/store"
)

func addReset(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "reset <checklist>",
		Short: "Uncheck every item, ready for the next flight.",
		Example: `
preflight reset F-BUBK
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := reset.Reset{
				Checklist: args[0],
				Service:   app.New(p),
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
