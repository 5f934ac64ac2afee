package get

import (
	"context"
	"errors"
	"fmt"

	"github.com/aeroclub-poitou/preflight/pkg/app"
	"github.com/aeroclub-poitou/preflight/pkg/printers"
)

type Get struct {
	Checklist string
	Links     bool
	Service   *app.Service
}

// Do prints the requested checklist, or the summary of every checklist
// when none is named.
func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	pp := printers.PrettyPrint{}
	fmt.Println("")

	if n.Links {
		links, err := n.Service.Links()
		if err != nil {
			return err
		}
		pp.Title("Liens utiles")
		pp.Links(links)
		return nil
	}

	if n.Checklist != "" {
		cl, err := n.Service.ChecklistByTitle(n.Checklist)
		if errors.Is(err, app.ErrNotFound) {
			cl, err = n.Service.Checklist(n.Checklist)
		}
		if err != nil {
			return err
		}
		pp.Title(cl.Title)
		pp.Checklist(cl)
		return nil
	}

	state, err := n.Service.State()
	if err != nil {
		return err
	}
	pp.Title("Checklists")
	pp.Summary(state.Checklists)
	return nil
}
