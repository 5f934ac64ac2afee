package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aeroclub-poitou/preflight/pkg/app"
	"github.com/aeroclub-poitou/preflight/pkg/runner/check"
	"github.com/aeroclub-poitou/preflight/pkg/store"
)

func addCheck(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "check <checklist> <item-number>",
		Short: "Toggle one item by its printed position.",
		Example: `
preflight check F-BUBK 3
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := check.Check{
				Checklist: args[0],
				Item:      item,
				Service:   app.New(p),
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
