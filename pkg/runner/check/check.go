package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/aeroclub-poitou/preflight/pkg/app"
	"github.com/aeroclub-poitou/preflight/pkg/printers"
)

type Check struct {
	Checklist string
	Item      int // 1-based position in the flattened item list
	Service   *app.Service
}

// Do toggles one item by its printed position and reprints the
// checklist so skipped-item warnings are visible immediately.
func (n *Check) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not check, no service")
	}

	cl, err := n.Service.ChecklistByTitle(n.Checklist)
	if errors.Is(err, app.ErrNotFound) {
		cl, err = n.Service.Checklist(n.Checklist)
	}
	if err != nil {
		return err
	}

	items := cl.Flatten()
	if n.Item < 1 || n.Item > len(items) {
		return fmt.Errorf("item %d out of range, checklist has %d items", n.Item, len(items))
	}

	cl, err = n.Service.Toggle(cl.ID, items[n.Item-1].ID)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title(cl.Title)
	pp.Checklist(cl)
	return nil
}
