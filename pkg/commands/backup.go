package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aeroclub-poitou/preflight/pkg/app"
	"github.com/aeroclub-poitou/preflight/pkg/runner/backup"
	"github.com/aeroclub-poitou/preflight/pkg/store"
)

func addBackup(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage named snapshots of the whole collection.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	create := &cobra.Command{
		Use:  "create <name>",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service()
			if err != nil {
				return err
			}
			s := backup.Create{Name: strings.Join(args, " "), Service: svc}
			return s.Do(context.Background())
		},
	}

	list := &cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service()
			if err != nil {
				return err
			}
			s := backup.List{Service: svc}
			return s.Do(context.Background())
		},
	}

	restore := &cobra.Command{
		Use:  "restore <id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service()
			if err != nil {
				return err
			}
			s := backup.Restore{ID: args[0], Service: svc}
			return s.Do(context.Background())
		},
	}

	del := &cobra.Command{
		Use:  "delete <id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service()
			if err != nil {
				return err
			}
			s := backup.Delete{ID: args[0], Service: svc}
			return s.Do(context.Background())
		},
	}

	cmd.AddCommand(create, list, restore, del)
	topLevel.AddCommand(cmd)
}

func service() (*app.Service, error) {
	p, err := store.Load(nil)
	if err != nil {
		return nil, err
	}
	return app.New(p), nil
}
