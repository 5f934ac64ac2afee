package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/aeroclub-poitou/preflight/pkg/app"
	"github.com/aeroclub-poitou/preflight/pkg/shell"
)

type Fetch struct {
	Cache   *shell.Cache
	Service *app.Service
}

// Do prefetches every document the collection references so the club
// tablet keeps working without a connection.
func (n *Fetch) Do(ctx context.Context) error {
	if n.Cache == nil {
		return errors.New("can not fetch, no cache")
	}
	if n.Service == nil {
		return errors.New("can not fetch, no service")
	}

	state, err := n.Service.State()
	if err != nil {
		return err
	}

	urls := make([]string, 0, len(state.Links))
	for _, cl := range state.Checklists {
		for _, a := range cl.Aircraft {
			urls = append(urls, a.URL)
		}
	}
	for _, l := range state.Links {
		urls = append(urls, l.URL)
	}

	if err := n.Cache.Fill(ctx, urls); err != nil {
		return err
	}
	fmt.Printf("%d document(s) en cache\n", len(urls))
	return nil
}

type Purge struct {
	Cache *shell.Cache
}

// Do removes cache namespaces left behind by older versions.
func (n *Purge) Do(ctx context.Context) error {
	if n.Cache == nil {
		return errors.New("can not purge, no cache")
	}
	if err := n.Cache.Purge(); err != nil {
		return err
	}
	fmt.Println("cache purgé")
	return nil
}
