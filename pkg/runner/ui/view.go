package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"github.com/aeroclub-poitou/preflight/pkg/app"
	"github.com/aeroclub-poitou/preflight/pkg/glyph"
)

var (
	styleSection   = lipgloss.NewStyle().Bold(true)
	styleChecked   = lipgloss.NewStyle().Faint(true)
	styleWarned    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleCritical  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleHighlight = lipgloss.NewStyle().Bold(true)
	styleBanner    = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	styleStatus    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleFaint     = lipgloss.NewStyle().Faint(true).Italic(true)
	styleCursor    = lipgloss.NewStyle().Reverse(true)
)

// View renders the view list, the body pane, and optional overlays.
func (m Model) View() string {
	left := m.viewList.View()
	right := m.renderBody()
	gap := lipgloss.NewStyle().Padding(0, 1).Render

	modeStr := "NORMAL"
	if m.svc != nil && m.svc.EditMode() {
		modeStr = "EDIT"
	}
	switch m.mode {
	case modeInsert:
		modeStr = "INSERT"
	case modeConfirm:
		modeStr = "CONFIRM"
	case modeHelp:
		modeStr = "HELP"
	}
	status := styleStatus.Render(fmt.Sprintf("[%s] %s", modeStr, m.status))

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, gap(" "), right)

	if m.mode == modeInsert {
		body += "\n\n" + m.input.Placeholder + ": " + m.input.View()
	}
	if m.mode == modeHelp {
		body += "\n\n" + m.renderHelp()
	}

	return body + "\n\n" + status
}

func (m Model) renderBody() string {
	switch m.view {
	case app.ViewSummary:
		return m.renderSummary()
	case app.ViewLinks:
		return m.renderLinks()
	case app.ViewGuide:
		return m.renderGuide()
	default:
		return m.renderChecklist()
	}
}

func (m Model) renderSummary() string {
	var b strings.Builder
	b.WriteString(styleSection.Render("Résumé") + "\n\n")
	if len(m.state.Checklists) == 0 {
		b.WriteString(styleFaint.Render(" aucune checklist"))
		return b.String()
	}
	for _, cl := range m.state.Checklists {
		items := cl.Flatten()
		checked := 0
		for _, it := range items {
			if it.Checked {
				checked++
			}
		}
		line := fmt.Sprintf("%s  %d/%d", cl.Title, checked, len(items))
		if len(cl.Aircraft) > 0 {
			names := make([]string, 0, len(cl.Aircraft))
			for _, a := range cl.Aircraft {
				names = append(names, a.Name)
			}
			line += styleChecked.Render("  (" + strings.Join(names, ", ") + ")")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderLinks() string {
	var b strings.Builder
	b.WriteString(styleSection.Render("Liens utiles") + "\n\n")
	if len(m.links) == 0 {
		b.WriteString(styleFaint.Render(" aucun lien"))
		return b.String()
	}
	for i, l := range m.links {
		line := fmt.Sprintf("%s  %s", l.Title, styleChecked.Render(l.URL))
		if m.focus == 1 && i == m.cursor {
			line = "→ " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderGuide() string {
	width := m.termWidth - 34
	if width < 40 {
		width = 40
	}
	return styleSection.Render("Guide") + "\n\n" + wordwrap.String(guideText, width)
}

func (m Model) renderChecklist() string {
	var b strings.Builder

	title := m.cur.Title
	if len(m.cur.Aircraft) > 0 {
		names := make([]string, 0, len(m.cur.Aircraft))
		for _, a := range m.cur.Aircraft {
			names = append(names, a.Name)
		}
		title += styleChecked.Render("  " + strings.Join(names, ", "))
	}
	b.WriteString(styleSection.Render(title) + "\n")

	if n := len(m.analysis.Warned); n > 0 {
		b.WriteString(styleBanner.Render(fmt.Sprintf("%s %d item(s) sauté(s) plus haut", glyph.Warned, n)) + "\n")
	}
	if m.filter != "" {
		b.WriteString(styleFaint.Render("filtre: "+m.filter) + "\n")
	}
	b.WriteString("\n")

	editing := m.svc != nil && m.svc.EditMode()

	for i, r := range m.rows {
		cursorOn := m.focus == 1 && i == m.cursor
		var line string
		switch r.kind {
		case rowSection:
			sec := m.findSection(r.sectionID)
			if sec == nil {
				continue
			}
			marker := "▾"
			if !editing && m.collapse.Collapsed(sec.ID) {
				marker = glyph.Collapsed.String()
			}
			checked := 0
			for _, it := range sec.Items {
				if it.Checked {
					checked++
				}
			}
			line = fmt.Sprintf("%s %s (%d/%d)", marker, sec.Title, checked, len(sec.Items))
			if sec.DefaultChecked {
				line += styleChecked.Render(" [défaut coché]")
			}
			line = styleSection.Render(line)
		case rowItem:
			it := m.findItem(r.itemID)
			if it == nil {
				continue
			}
			mark := glyph.ForItem(it.Checked, m.analysis.HighlightID == it.ID, m.analysis.IsWarned(it.ID))
			text := it.Label
			if it.Action != "" {
				text += " .. " + strings.ToUpper(it.Action)
			}
			if it.Critical {
				text += " " + glyph.Critical.String()
			}
			line = fmt.Sprintf("  %s %s", mark, text)
			switch {
			case m.analysis.IsWarned(it.ID):
				line = styleWarned.Render(line)
			case it.Critical && !it.Checked:
				line = styleCritical.Render(line)
			case m.analysis.HighlightID == it.ID:
				line = styleHighlight.Render(line)
			case it.Checked:
				line = styleChecked.Render(line)
			}
		}
		if cursorOn {
			line = styleCursor.Render("›") + line
		} else {
			line = " " + line
		}
		b.WriteString(line + "\n")
	}

	if m.cur.Notes != "" && !editing {
		b.WriteString("\n" + styleSection.Render("NOTES") + "\n")
		width := m.termWidth - 34
		if width < 40 {
			width = 40
		}
		b.WriteString(wordwrap.String(m.cur.Notes, width) + "\n")
	}
	return b.String()
}

func (m Model) renderHelp() string {
	help := []string{
		"j/k déplacer · h/l changer de panneau · espace/x cocher · entrée replier la section",
		"tab replier · z tout replier/déplier · / filtrer · r réinitialiser · b sauvegarder",
		"e mode édition · en édition: o item, O section, i modifier, R renommer, d supprimer,",
		"J/K déplacer, y copier la section, p coller, m défaut coché, * critique, N notes,",
		"u annuler, U refaire, n nouvelle checklist, D dupliquer",
	}
	return styleFaint.Render(strings.Join(help, "\n"))
}

const guideText = `Cette application suit vos checklists avion pendant la préparation du vol.

Cochez les items dans l'ordre: la flèche indique le prochain item attendu. Un item coché plus bas que des items non cochés déclenche un avertissement sur chaque item sauté. Une section entièrement cochée se replie automatiquement; décocher un de ses items la déplie.

Le bouton réinitialiser décoche tout, sauf les sections marquées cochées par défaut (la visite prévol, déjà faite au tour de l'avion).

Le mode édition permet de modifier la structure: checklists, sections, items, liens. Chaque modification de structure peut être annulée tant que vous restez en mode édition. Les sauvegardes nommées conservent un instantané complet, restaurable à tout moment.

Les documents référencés (fiches de pesée, manuels) sont mis en cache pour une utilisation hors ligne au hangar.`
