package reset

import (
	"context"
	"errors"
	"fmt"

	"github.com/aeroclub-poitou/preflight/pkg/app"
	"github.com/aeroclub-poitou/preflight/pkg/printers"
)

type Reset struct {
	Checklist string
	Service   *app.Service
}

// Do unchecks every item. Sections marked checked-by-default come back
// checked, matching a fresh flight.
func (n *Reset) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not reset, no service")
	}

	cl, err := n.Service.ChecklistByTitle(n.Checklist)
	if errors.Is(err, app.ErrNotFound) {
		cl, err = n.Service.Checklist(n.Checklist)
	}
	if err != nil {
		return err
	}

	cl, err = n.Service.ResetChecks(cl.ID)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title(cl.Title)
	pp.Checklist(cl)
	return nil
}
