package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "preflight",
		Short: base.Wrap80("Checklists avion de l'aéroclub, consultables hors ligne."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addGet(topLevel)
	addCheck(topLevel)
	addReset(topLevel)
	addBackup(topLevel)
	addCache(topLevel)
	addVersion(topLevel)
}
