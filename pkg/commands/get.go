package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aeroclub-poitou/preflight/pkg/app"
	"github.com/aeroclub-poitou/preflight/pkg/runner/get"
	"github.com/aeroclub-poitou/preflight/pkg/store"
)

func addGet(topLevel *cobra.Command) {
	links := false

	cmd := &cobra.Command{
		Use:   "get [checklist]",
		Short: "Print a checklist, or the summary of all of them.",
		Example: `
preflight get
preflight get F-BUBK
preflight get --links
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := get.Get{
				Checklist: strings.Join(args, " "),
				Links:     links,
				Service:   app.New(p),
			}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().BoolVar(&links, "links", false, "Print the useful links instead.")

	topLevel.AddCommand(cmd)
}
