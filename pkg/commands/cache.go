package commands

import (
	"context"

	"github.com/spf13/cobra"

	cacherunner "github.com/aeroclub-poitou/preflight/pkg/runner/cache"
	"github.com/aeroclub-poitou/preflight/pkg/shell"
	"github.com/aeroclub-poitou/preflight/pkg/store"
)

func addCache(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Maintain the offline document cache.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	fetch := &cobra.Command{
		Use:   "fetch",
		Short: "Download every referenced document for offline use.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service()
			if err != nil {
				return err
			}
			c, err := cacheStore()
			if err != nil {
				return err
			}
			s := cacherunner.Fetch{Cache: c, Service: svc}
			return s.Do(context.Background())
		},
	}

	purge := &cobra.Command{
		Use:   "purge",
		Short: "Drop cache entries left by older versions.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cacheStore()
			if err != nil {
				return err
			}
			s := cacherunner.Purge{Cache: c}
			return s.Do(context.Background())
		},
	}

	cmd.AddCommand(fetch, purge)
	topLevel.AddCommand(cmd)
}

// cacheStore roots the document cache next to the state store.
func cacheStore() (*shell.Cache, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	return shell.New(cfg.BasePath()+".cache", nil), nil
}
