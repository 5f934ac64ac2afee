package backup

import (
	"context"
	"errors"
	"fmt"

	"github.com/aeroclub-poitou/preflight/pkg/app"
	"github.com/aeroclub-poitou/preflight/pkg/printers"
)

type Create struct {
	Name    string
	Service *app.Service
}

func (n *Create) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not backup, no service")
	}
	b, err := n.Service.CreateBackup(n.Name)
	if err != nil {
		return err
	}
	fmt.Printf("sauvegarde créée: %s (%s)\n", b.Name, b.ID)
	return nil
}

type List struct {
	Service *app.Service
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list backups, no service")
	}
	bs, err := n.Service.Backups(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title("Sauvegardes")
	pp.Backups(bs)
	return nil
}

type Restore struct {
	ID      string
	Service *app.Service
}

func (n *Restore) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not restore, no service")
	}
	if err := n.Service.RestoreBackup(ctx, n.ID); err != nil {
		return err
	}
	fmt.Printf("sauvegarde %s restaurée\n", n.ID)
	return nil
}

type Delete struct {
	ID      string
	Service *app.Service
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete backup, no service")
	}
	if err := n.Service.DeleteBackup(n.ID); err != nil {
		return err
	}
	fmt.Printf("sauvegarde %s supprimée\n", n.ID)
	return nil
}
