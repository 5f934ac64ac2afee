package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/aeroclub-poitou/preflight/pkg/app"
	"github.com/aeroclub-poitou/preflight/pkg/checklist"
	"github.com/aeroclub-poitou/preflight/pkg/schedule"
	"github.com/aeroclub-poitou/preflight/pkg/store"
	"github.com/aeroclub-poitou/preflight/pkg/track"
)

// Model states and actions
type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeConfirm
	modeHelp
)

type action int

const (
	actionNone action = iota
	actionAddChecklist
	actionRenameChecklist
	actionAddSection
	actionRenameSection
	actionAddItemLabel
	actionAddItemAction
	actionEditItemLabel
	actionEditItemAction
	actionNotes
	actionFilter
	actionAddLinkTitle
	actionAddLinkURL
	actionBackupName
)

type confirm int

const (
	confirmNone confirm = iota
	confirmReset
	confirmDeleteChecklist
	confirmDeleteSection
	confirmDeleteItem
	confirmDeleteLink
)

// view item for the left list
type viewItem struct {
	id    string
	title string
}

func (v viewItem) Title() string       { return v.title }
func (v viewItem) Description() string { return "" }
func (v viewItem) FilterValue() string { return v.title }

// row kinds for the checklist pane
type rowKind int

const (
	rowSection rowKind = iota
	rowItem
	rowLink
)

type row struct {
	kind      rowKind
	sectionID string
	itemID    string
	linkID    string
}

// Model contains UI state
type Model struct {
	svc *app.Service
	ctx context.Context

	mode    mode
	action  action
	confirm confirm

	focus int // 0: views, 1: body

	view  string
	state checklist.Collection
	cur   checklist.Checklist
	links []checklist.Link

	analysis track.Analysis
	collapse track.CollapseSet

	rows   []row
	cursor int
	filter string

	viewList list.Model
	input    textinput.Model

	status string

	clipboard *checklist.Section

	// pending pieces of a two-step item input
	pendingLabel  string
	pendingItem   string
	pendingTarget string

	confirmTarget string

	notes      *schedule.Debouncer
	notesDraft string

	events <-chan store.Event

	termWidth  int
	termHeight int

	focusDel list.DefaultDelegate
	blurDel  list.DefaultDelegate
}

// New creates a new UI model backed by the Service.
func New(svc *app.Service) Model {
	dFocus := list.NewDefaultDelegate()
	dBlur := list.NewDefaultDelegate()
	dBlur.Styles.SelectedTitle = dBlur.Styles.NormalTitle
	dBlur.Styles.SelectedDesc = dBlur.Styles.NormalDesc
	dFocus.ShowDescription = false
	dBlur.ShowDescription = false
	dFocus.SetSpacing(0)
	dBlur.SetSpacing(0)

	l := list.New([]list.Item{}, dBlur, 28, 20)
	l.Title = "Vues"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.Placeholder = "Saisir ici"
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Styles.Cursor.Color = lipgloss.Color("218")
	ti.Styles.Cursor.Shape = tea.CursorUnderline

	m := Model{
		svc:      svc,
		ctx:      context.Background(),
		mode:     modeNormal,
		action:   actionNone,
		focus:    1,
		view:     app.ViewSummary,
		viewList: l,
		input:    ti,
		collapse: track.NewCollapseSet(),
		notes:    &schedule.Debouncer{},
		status:   statusNormal,
		focusDel: dFocus,
		blurDel:  dBlur,
	}
	if svc != nil && svc.Persistence != nil {
		if events, err := svc.Persistence.Watch(m.ctx); err == nil {
			m.events = events
		}
	}
	m.updateFocusHeaders()
	return m
}

const (
	statusNormal = "h/l panneaux, j/k déplacer, espace cocher, tab replier, e éditer, r réinitialiser, ? aide, q quitter"
	statusEdit   = "EDIT: o item, O section, i modifier, d supprimer, J/K déplacer, u/U annuler/refaire, e terminer"
)

// Init loads initial data and starts listening for external writes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.watch())
}

type errMsg struct{ err error }
type loadedMsg struct {
	state checklist.Collection
	links []checklist.Link
	view  string
}
type storeChangedMsg struct{}

func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		if m.svc == nil {
			return loadedMsg{view: app.ViewSummary}
		}
		state, err := m.svc.State()
		if err != nil {
			return errMsg{err}
		}
		links, err := m.svc.Links()
		if err != nil {
			return errMsg{err}
		}
		return loadedMsg{state: state, links: links, view: m.svc.ActiveView()}
	}
}

func (m *Model) watch() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	skipListRouting := false

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case loadedMsg:
		m.state = msg.state
		m.links = msg.links
		m.rebuildViewList()
		m.setView(msg.view, false)
	case storeChangedMsg:
		// another process wrote the store; drop memory and reload
		if m.svc != nil {
			m.svc.Reload()
		}
		cmds = append(cmds, m.load(), m.watch())
	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.mode = modeNormal
				skipListRouting = true
			}
		case modeConfirm:
			switch msg.String() {
			case "y", "enter":
				m.applyConfirm(&cmds)
				m.mode = modeNormal
				m.confirm = confirmNone
				skipListRouting = true
			case "n", "esc", "q":
				m.mode = modeNormal
				m.confirm = confirmNone
				m.status = "Annulé"
				skipListRouting = true
			}
		case modeInsert:
			switch msg.String() {
			case "enter":
				m.applyInsert(&cmds)
				skipListRouting = true
			case "esc":
				m.leaveInsert("Annulé")
				skipListRouting = true
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
				if m.action == actionFilter {
					m.filter = m.input.Value()
					m.rebuildRows()
				}
				if m.action == actionNotes {
					m.notesDraft = m.input.Value()
					m.scheduleNotesSave()
				}
			}
		case modeNormal:
			skipListRouting = m.updateNormal(msg, &cmds)
		}
	}

	if m.mode == modeNormal && !skipListRouting && m.focus == 0 {
		prev := m.selectedView()
		var cmd tea.Cmd
		m.viewList, cmd = m.viewList.Update(msg)
		cmds = append(cmds, cmd)
		if sel := m.selectedView(); sel != prev {
			m.setView(sel, true)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateNormal(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	editing := m.svc != nil && m.svc.EditMode()

	switch msg.String() {
	case "ctrl+c", "q":
		*cmds = append(*cmds, tea.Quit)
		return true

	case "h", "left":
		m.focus = 0
		m.updateFocusHeaders()
		return true
	case "l", "right":
		m.focus = 1
		m.updateFocusHeaders()
		return true

	case "j", "down":
		if m.focus == 0 {
			m.viewList.CursorDown()
			m.setView(m.selectedView(), true)
		} else if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m.focus == 0
	case "k", "up":
		if m.focus == 0 {
			m.viewList.CursorUp()
			m.setView(m.selectedView(), true)
		} else if m.cursor > 0 {
			m.cursor--
		}
		return m.focus == 0
	case "g":
		if m.focus == 1 {
			m.cursor = 0
		}
	case "G":
		if m.focus == 1 && len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		}

	case " ", "space", "x":
		if m.focus == 1 && !editing {
			m.toggleCurrent(cmds)
		}
	case "enter":
		if m.focus == 1 && !editing {
			if r := m.currentRow(); r != nil && r.kind == rowSection {
				m.collapse.Toggle(r.sectionID)
				m.rebuildRows()
			} else {
				m.toggleCurrent(cmds)
			}
		}
	case "tab":
		if r := m.currentRow(); r != nil && r.sectionID != "" {
			m.collapse.Toggle(r.sectionID)
			m.rebuildRows()
		}
	case "z":
		if m.isChecklistView() {
			if m.collapse.AllCollapsed(m.cur) {
				m.collapse.ExpandAll()
			} else {
				m.collapse.CollapseAll(m.cur)
			}
			m.rebuildRows()
		}

	case "/":
		if m.isChecklistView() {
			m.enterInsert(actionFilter, "Filtrer", m.filter, cmds)
		}
	case "r":
		if m.isChecklistView() && !editing {
			m.confirm = confirmReset
			m.confirmTarget = m.cur.ID
			m.mode = modeConfirm
			m.status = "Tout décocher ? (y/n)"
			return true
		}

	case "e":
		m.toggleEditMode()
		return true

	case "b":
		m.enterInsert(actionBackupName, "Nom de la sauvegarde", "", cmds)
		return true

	case "?":
		m.mode = modeHelp
		return true
	}

	if editing {
		return m.updateEdit(msg, cmds)
	}
	return false
}

func (m *Model) updateEdit(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	switch msg.String() {
	case "n":
		m.enterInsert(actionAddChecklist, "Nouvelle checklist", "", cmds)
		return true
	case "D":
		if m.isChecklistView() {
			if id, err := m.svc.DuplicateChecklist(m.cur.ID); err != nil {
				m.fail(err)
			} else {
				m.status = "Checklist dupliquée"
				m.refresh(cmds)
				m.setView(id, true)
			}
		}
		return true
	case "O":
		if m.isChecklistView() {
			m.enterInsert(actionAddSection, "Titre de la section", "", cmds)
		}
		return true
	case "o":
		if m.view == app.ViewLinks {
			m.enterInsert(actionAddLinkTitle, "Titre du lien", "", cmds)
			return true
		}
		if r := m.currentRow(); r != nil && r.sectionID != "" {
			m.pendingTarget = r.sectionID
			m.enterInsert(actionAddItemLabel, "Libellé de l'item", "", cmds)
		}
		return true
	case "i":
		if r := m.currentRow(); r != nil && r.kind == rowItem {
			if it := m.findItem(r.itemID); it != nil {
				m.pendingItem = r.itemID
				m.enterInsert(actionEditItemLabel, "Libellé", it.Label, cmds)
			}
		}
		return true
	case "R":
		if m.focus == 0 && m.isChecklistView() {
			m.enterInsert(actionRenameChecklist, "Nouveau titre", m.cur.Title, cmds)
			return true
		}
		if r := m.currentRow(); r != nil && r.kind == rowSection {
			if sec := m.findSection(r.sectionID); sec != nil {
				m.pendingTarget = r.sectionID
				m.enterInsert(actionRenameSection, "Titre de la section", sec.Title, cmds)
			}
		}
		return true
	case "d":
		m.enterDeleteConfirm()
		return true
	case "J", "K":
		m.moveCurrent(msg.String() == "J", cmds)
		return true
	case "y":
		if r := m.currentRow(); r != nil && r.sectionID != "" {
			if sec := m.findSection(r.sectionID); sec != nil {
				cp := sec.Clone()
				m.clipboard = &cp
				m.status = fmt.Sprintf("Section %q copiée", sec.Title)
			}
		}
		return true
	case "p":
		if m.isChecklistView() && m.clipboard != nil {
			if err := m.svc.PasteSection(m.cur.ID, *m.clipboard); err != nil {
				m.fail(err)
			} else {
				m.status = "Section collée"
				m.refresh(cmds)
			}
		}
		return true
	case "m":
		if r := m.currentRow(); r != nil && r.kind == rowSection {
			if sec := m.findSection(r.sectionID); sec != nil {
				if err := m.svc.SetSectionDefaultChecked(m.cur.ID, sec.ID, !sec.DefaultChecked); err != nil {
					m.fail(err)
				} else {
					m.status = "Section cochée par défaut basculée"
					m.refresh(cmds)
				}
			}
		}
		return true
	case "*":
		if r := m.currentRow(); r != nil && r.kind == rowItem {
			if it := m.findItem(r.itemID); it != nil {
				if err := m.svc.EditItem(m.cur.ID, it.ID, it.Label, it.Action, !it.Critical); err != nil {
					m.fail(err)
				} else {
					m.status = "Item critique basculé"
					m.refresh(cmds)
				}
			}
		}
		return true
	case "N":
		if m.isChecklistView() {
			m.notesDraft = m.cur.Notes
			m.enterInsert(actionNotes, "Notes", m.cur.Notes, cmds)
		}
		return true
	case "u":
		if err := m.svc.Undo(); err != nil {
			m.fail(err)
		} else {
			m.status = "Annulé"
			m.refresh(cmds)
		}
		return true
	case "U", "ctrl+r":
		if err := m.svc.Redo(); err != nil {
			m.fail(err)
		} else {
			m.status = "Refait"
			m.refresh(cmds)
		}
		return true
	}
	return false
}

func (m *Model) toggleCurrent(cmds *[]tea.Cmd) {
	r := m.currentRow()
	if r == nil {
		return
	}
	if r.kind == rowSection {
		if sec := m.findSection(r.sectionID); sec != nil {
			if _, err := m.svc.SetSectionChecked(m.cur.ID, sec.ID, !sec.Complete()); err != nil {
				m.fail(err)
				return
			}
			m.afterCheck(cmds)
		}
		return
	}
	if r.kind != rowItem {
		return
	}
	if _, err := m.svc.Toggle(m.cur.ID, r.itemID); err != nil {
		m.fail(err)
		return
	}
	m.afterCheck(cmds)
}

// afterCheck reloads the checklist and applies the collapse rules using
// the pre-change section states.
func (m *Model) afterCheck(cmds *[]tea.Cmd) {
	prev := m.cur
	cl, err := m.svc.Checklist(m.cur.ID)
	if err != nil {
		m.fail(err)
		return
	}
	m.cur = cl
	m.analysis = track.Analyze(cl)
	m.collapse.Advance(prev, cl, m.analysis)
	m.rebuildRows()
	if state, err := m.svc.State(); err == nil {
		m.state = state
	}
}

func (m *Model) applyConfirm(cmds *[]tea.Cmd) {
	var err error
	switch m.confirm {
	case confirmReset:
		_, err = m.svc.ResetChecks(m.confirmTarget)
		if err == nil {
			m.status = "Checklist réinitialisée"
			m.afterCheck(cmds)
			return
		}
	case confirmDeleteChecklist:
		if err = m.svc.DeleteChecklist(m.confirmTarget); err == nil {
			m.status = "Checklist supprimée"
			m.view = app.ViewSummary
		}
	case confirmDeleteSection:
		err = m.svc.DeleteSection(m.cur.ID, m.confirmTarget)
		m.status = "Section supprimée"
	case confirmDeleteItem:
		err = m.svc.DeleteItem(m.cur.ID, m.confirmTarget)
		m.status = "Item supprimé"
	case confirmDeleteLink:
		err = m.svc.DeleteLink(m.confirmTarget)
		m.status = "Lien supprimé"
	}
	if err != nil {
		m.fail(err)
		return
	}
	m.refresh(cmds)
}

func (m *Model) applyInsert(cmds *[]tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	switch m.action {
	case actionFilter:
		m.filter = input
		m.leaveInsert("Filtre appliqué")
		m.rebuildRows()
		return
	case actionNotes:
		m.notes.Cancel()
		if err := m.svc.SetNotes(m.cur.ID, m.input.Value()); err != nil {
			m.fail(err)
		} else {
			m.status = "Notes enregistrées"
		}
	case actionAddChecklist:
		id, err := m.svc.AddChecklist(input)
		if err != nil {
			m.failInsert(err)
			return
		}
		m.leaveInsert("Checklist créée")
		m.refresh(cmds)
		m.setView(id, true)
		return
	case actionRenameChecklist:
		if err := m.svc.RenameChecklist(m.cur.ID, input); err != nil {
			m.failInsert(err)
			return
		}
		m.status = "Checklist renommée"
	case actionAddSection:
		if _, err := m.svc.AddSection(m.cur.ID, input); err != nil {
			m.failInsert(err)
			return
		}
		m.status = "Section ajoutée"
	case actionRenameSection:
		if err := m.svc.RenameSection(m.cur.ID, m.pendingTarget, input); err != nil {
			m.failInsert(err)
			return
		}
		m.status = "Section renommée"
	case actionAddItemLabel:
		if input == "" {
			m.leaveInsert("Annulé")
			return
		}
		m.pendingLabel = input
		m.action = actionAddItemAction
		m.input.Placeholder = "Action (SERRÉ, VÉRIFIÉE, ...)"
		m.input.SetValue("")
		return
	case actionAddItemAction:
		if _, err := m.svc.AddItem(m.cur.ID, m.pendingTarget, m.pendingLabel, input); err != nil {
			m.failInsert(err)
			return
		}
		m.status = "Item ajouté"
	case actionEditItemLabel:
		m.pendingLabel = input
		m.action = actionEditItemAction
		m.input.Placeholder = "Action"
		if it := m.findItem(m.pendingItem); it != nil {
			m.input.SetValue(it.Action)
			m.input.CursorEnd()
		}
		return
	case actionEditItemAction:
		critical := false
		if it := m.findItem(m.pendingItem); it != nil {
			critical = it.Critical
		}
		if err := m.svc.EditItem(m.cur.ID, m.pendingItem, m.pendingLabel, input, critical); err != nil {
			m.failInsert(err)
			return
		}
		m.status = "Item modifié"
	case actionAddLinkTitle:
		if input == "" {
			m.leaveInsert("Annulé")
			return
		}
		m.pendingLabel = input
		m.action = actionAddLinkURL
		m.input.Placeholder = "https://..."
		m.input.SetValue("")
		return
	case actionAddLinkURL:
		if _, err := m.svc.AddLink(m.pendingLabel, input); err != nil {
			m.failInsert(err)
			return
		}
		m.status = "Lien ajouté"
	case actionBackupName:
		if _, err := m.svc.CreateBackup(input); err != nil {
			m.failInsert(err)
			return
		}
		m.status = "Sauvegarde créée"
	}
	m.leaveInsert(m.status)
	m.refresh(cmds)
}

func (m *Model) enterInsert(a action, placeholder, value string, cmds *[]tea.Cmd) {
	m.mode = modeInsert
	m.action = a
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	if cmd := m.input.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	*cmds = append(*cmds, textinput.Blink)
}

func (m *Model) leaveInsert(status string) {
	m.mode = modeNormal
	m.action = actionNone
	m.pendingLabel = ""
	m.pendingItem = ""
	m.pendingTarget = ""
	m.input.Reset()
	m.input.Blur()
	m.status = status
}

func (m *Model) failInsert(err error) {
	m.leaveInsert("")
	m.fail(err)
}

func (m *Model) enterDeleteConfirm() {
	if m.view == app.ViewLinks {
		if r := m.currentRow(); r != nil && r.kind == rowLink {
			m.confirm = confirmDeleteLink
			m.confirmTarget = r.linkID
			m.mode = modeConfirm
			m.status = "Supprimer ce lien ? (y/n)"
		}
		return
	}
	if m.focus == 0 && m.isChecklistView() {
		m.confirm = confirmDeleteChecklist
		m.confirmTarget = m.cur.ID
		m.mode = modeConfirm
		m.status = fmt.Sprintf("Supprimer %q ? (y/n)", m.cur.Title)
		return
	}
	r := m.currentRow()
	if r == nil {
		return
	}
	switch r.kind {
	case rowSection:
		m.confirm = confirmDeleteSection
		m.confirmTarget = r.sectionID
		m.mode = modeConfirm
		m.status = "Supprimer cette section et ses items ? (y/n)"
	case rowItem:
		m.confirm = confirmDeleteItem
		m.confirmTarget = r.itemID
		m.mode = modeConfirm
		m.status = "Supprimer cet item ? (y/n)"
	}
}

func (m *Model) moveCurrent(down bool, cmds *[]tea.Cmd) {
	r := m.currentRow()
	if r == nil {
		return
	}
	delta := -1
	if down {
		delta = 1
	}
	var err error
	switch r.kind {
	case rowSection:
		from := m.sectionIndex(r.sectionID)
		err = m.svc.MoveSection(m.cur.ID, from, from+delta)
	case rowItem:
		sec := m.findSection(r.sectionID)
		if sec == nil {
			return
		}
		from := -1
		for i, it := range sec.Items {
			if it.ID == r.itemID {
				from = i
				break
			}
		}
		err = m.svc.MoveItem(m.cur.ID, r.sectionID, from, from+delta)
	default:
		return
	}
	if err != nil {
		m.fail(err)
		return
	}
	m.refresh(cmds)
	if down && m.cursor < len(m.rows)-1 {
		m.cursor++
	} else if !down && m.cursor > 0 {
		m.cursor--
	}
}

func (m *Model) toggleEditMode() {
	if m.svc == nil {
		return
	}
	entering := !m.svc.EditMode()
	m.svc.SetEditMode(entering)
	if entering {
		// editing shows the whole structure
		m.collapse.ExpandAll()
		m.status = statusEdit
	} else {
		m.collapse.InitFromCompletion(m.cur)
		m.status = statusNormal
	}
	m.rebuildRows()
}

func (m *Model) scheduleNotesSave() {
	if m.svc == nil || !m.isChecklistView() {
		return
	}
	svc, id, draft := m.svc, m.cur.ID, m.notesDraft
	m.notes.Schedule(750*time.Millisecond, func() {
		_ = svc.SetNotes(id, draft)
	})
}

// refresh re-reads service state and rebuilds everything derived.
func (m *Model) refresh(cmds *[]tea.Cmd) {
	if m.svc == nil {
		return
	}
	state, err := m.svc.State()
	if err != nil {
		m.fail(err)
		return
	}
	m.state = state
	if links, err := m.svc.Links(); err == nil {
		m.links = links
	}
	m.rebuildViewList()
	if m.isChecklistView() {
		cl, err := m.svc.Checklist(m.view)
		if err != nil {
			// the checklist is gone, fall back
			m.setView(app.ViewSummary, true)
			return
		}
		m.cur = cl
		m.analysis = track.Analyze(cl)
	}
	m.rebuildRows()
}

// setView switches the body pane. Switching resets cursor and filter.
func (m *Model) setView(id string, persist bool) {
	if id == "" {
		id = app.ViewSummary
	}
	m.view = id
	m.cursor = 0
	m.filter = ""
	m.collapse = track.NewCollapseSet()
	if m.svc != nil {
		if persist {
			if err := m.svc.SetActiveView(id); err != nil {
				m.fail(err)
			}
		}
		switch id {
		case app.ViewSummary, app.ViewLinks, app.ViewGuide:
			m.cur = checklist.Checklist{}
			m.analysis = track.Analysis{}
		default:
			cl, err := m.svc.Checklist(id)
			if err != nil {
				m.fail(err)
				m.view = app.ViewSummary
			} else {
				m.cur = cl
				m.analysis = track.Analyze(cl)
				m.collapse.InitFromCompletion(cl)
			}
		}
	}
	m.rebuildRows()
	m.syncViewListSelection()
}

func (m *Model) isChecklistView() bool {
	switch m.view {
	case app.ViewSummary, app.ViewLinks, app.ViewGuide:
		return false
	}
	return true
}

func (m *Model) rebuildViewList() {
	items := []list.Item{
		viewItem{id: app.ViewSummary, title: "Résumé"},
		viewItem{id: app.ViewLinks, title: "Liens utiles"},
		viewItem{id: app.ViewGuide, title: "Guide"},
	}
	for _, cl := range m.state.Checklists {
		items = append(items, viewItem{id: cl.ID, title: cl.Title})
	}
	m.viewList.SetItems(items)
	m.syncViewListSelection()
}

func (m *Model) syncViewListSelection() {
	for i, it := range m.viewList.Items() {
		if v, ok := it.(viewItem); ok && v.id == m.view {
			m.viewList.Select(i)
			return
		}
	}
}

func (m *Model) selectedView() string {
	sel := m.viewList.SelectedItem()
	if sel == nil {
		return app.ViewSummary
	}
	return sel.(viewItem).id
}

// rebuildRows recomputes the visible rows of the body pane from the
// current checklist, collapse set, and filter.
func (m *Model) rebuildRows() {
	m.rows = m.rows[:0]
	switch {
	case m.view == app.ViewLinks:
		for _, l := range m.links {
			m.rows = append(m.rows, row{kind: rowLink, linkID: l.ID})
		}
	case m.isChecklistView():
		editing := m.svc != nil && m.svc.EditMode()
		for _, sec := range m.cur.Sections {
			m.rows = append(m.rows, row{kind: rowSection, sectionID: sec.ID})
			if !editing && m.collapse.Collapsed(sec.ID) {
				continue
			}
			for _, it := range sec.Items {
				if m.filter != "" && !matchesFilter(it, m.filter) {
					continue
				}
				m.rows = append(m.rows, row{kind: rowItem, sectionID: sec.ID, itemID: it.ID})
			}
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func matchesFilter(it checklist.Item, filter string) bool {
	f := strings.ToLower(filter)
	return strings.Contains(strings.ToLower(it.Label), f) ||
		strings.Contains(strings.ToLower(it.Action), f)
}

func (m *Model) currentRow() *row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

func (m *Model) findSection(id string) *checklist.Section {
	for i := range m.cur.Sections {
		if m.cur.Sections[i].ID == id {
			return &m.cur.Sections[i]
		}
	}
	return nil
}

func (m *Model) sectionIndex(id string) int {
	for i := range m.cur.Sections {
		if m.cur.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) findItem(id string) *checklist.Item {
	for si := range m.cur.Sections {
		for ii := range m.cur.Sections[si].Items {
			if m.cur.Sections[si].Items[ii].ID == id {
				return &m.cur.Sections[si].Items[ii]
			}
		}
	}
	return nil
}

func (m *Model) fail(err error) {
	m.status = "ERR: " + err.Error()
}

// applySizes recalculates pane sizes based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	left := m.termWidth / 4
	if left < 24 {
		left = 24
	}
	if left > 36 {
		left = 36
	}
	height := m.termHeight - 4
	if height < 5 {
		height = 5
	}
	m.viewList.SetSize(left, height)
}

// updateFocusHeaders updates pane titles to reflect which pane is focused.
func (m *Model) updateFocusHeaders() {
	const on = "» "
	const off = "  "
	if m.focus == 0 {
		m.viewList.Title = on + "Vues"
		m.viewList.SetDelegate(m.focusDel)
	} else {
		m.viewList.Title = off + "Vues"
		m.viewList.SetDelegate(m.blurDel)
	}
}

// Run is the program entry.
func Run(svc *app.Service) error {
	p := tea.NewProgram(New(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
