package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/aeroclub-poitou/preflight/pkg/checklist"
	"github.com/aeroclub-poitou/preflight/pkg/glyph"
	"github.com/aeroclub-poitou/preflight/pkg/store"
	"github.com/aeroclub-poitou/preflight/pkg/track"
)

type PrettyPrint struct{}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Checklist prints every section with per-item marks. Skipped items get
// the warning glyph and the next expected item gets the arrow, same as
// the interactive view.
func (pp *PrettyPrint) Checklist(cl checklist.Checklist) {
	a := track.Analyze(cl)

	section := color.New(color.Bold)
	warned := color.New(color.FgYellow)
	critical := color.New(color.FgRed, color.Bold)
	done := color.New(color.Faint)
	plain := color.New()

	for _, sec := range cl.Sections {
		title := sec.Title
		if sec.Complete() {
			title += " " + glyph.Checked.String()
		}
		_, _ = section.Println(title)

		if len(sec.Items) == 0 {
			f := color.New(color.Faint, color.Italic)
			_, _ = f.Println("  (vide)")
			continue
		}
		for _, it := range sec.Items {
			mark := glyph.ForItem(it.Checked, a.HighlightID == it.ID, a.IsWarned(it.ID))
			line := fmt.Sprintf("  %s %s", mark, itemLine(it))
			switch {
			case a.IsWarned(it.ID):
				_, _ = warned.Println(line)
			case it.Critical && !it.Checked:
				_, _ = critical.Println(line)
			case it.Checked:
				_, _ = done.Println(line)
			default:
				_, _ = plain.Println(line)
			}
		}
	}

	if n := len(a.Warned); n > 0 {
		w := color.New(color.FgYellow, color.Bold)
		_, _ = w.Printf("\n%s %d item(s) sauté(s)\n", glyph.Warned, n)
	}
	if cl.Notes != "" {
		pp.NewLine()
		_, _ = section.Println("NOTES")
		_, _ = plain.Println(cl.Notes)
	}
}

// Summary prints one row per checklist with its completion count.
func (pp *PrettyPrint) Summary(cls []checklist.Checklist) {
	if len(cls) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println(" aucune checklist")
		return
	}

	table := uitable.New()
	table.AddRow("CHECKLIST", "AVIONS", "SECTIONS", "COCHÉS")
	for _, cl := range cls {
		items := cl.Flatten()
		checked := 0
		for _, it := range items {
			if it.Checked {
				checked++
			}
		}
		names := make([]string, 0, len(cl.Aircraft))
		for _, a := range cl.Aircraft {
			names = append(names, a.Name)
		}
		table.AddRow(cl.Title, strings.Join(names, ", "), len(cl.Sections), fmt.Sprintf("%d/%d", checked, len(items)))
	}
	fmt.Println(table)
}

// Links prints the useful-links list.
func (pp *PrettyPrint) Links(links []checklist.Link) {
	if len(links) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println(" aucun lien")
		return
	}
	table := uitable.New()
	table.AddRow("TITRE", "URL")
	for _, l := range links {
		table.AddRow(l.Title, l.URL)
	}
	fmt.Println(table)
}

// Backups prints stored backups, newest first.
func (pp *PrettyPrint) Backups(bs []store.Backup) {
	if len(bs) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println(" aucune sauvegarde")
		return
	}
	table := uitable.New()
	table.AddRow("ID", "NOM", "CRÉÉE")
	for _, b := range bs {
		table.AddRow(b.ID, b.Name, b.Created.Local().Format("2006-01-02 15:04"))
	}
	fmt.Println(table)
}

func itemLine(it checklist.Item) string {
	if it.Action == "" {
		return it.Label
	}
	return fmt.Sprintf("%s .. %s", it.Label, strings.ToUpper(it.Action))
}
