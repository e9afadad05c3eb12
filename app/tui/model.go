// Package tui is the terminal browser over a session.
package tui

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/noelzubin/cmdref/editor"
	"github.com/noelzubin/cmdref/search"
	"github.com/noelzubin/cmdref/session"
	"github.com/noelzubin/cmdref/store"
	"github.com/samber/lo"
)

var (
	ListStyle      = lipgloss.NewStyle().MarginTop(1)
	TabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	ActiveTabStyle = TabStyle.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Bold(true)
	StatusStyle    = lipgloss.NewStyle().MarginLeft(2).Foreground(lipgloss.Color("241"))
	ErrorStyle     = StatusStyle.Foreground(lipgloss.Color("#ff6b6b"))
)

// Main app model for bubbletea
type Model struct {
	width     int               // width of terminal
	height    int               // height of terminal
	session   *session.Session  // search state and mutations
	view      session.View      // what the session last reported
	list      list.Model        // the list widget model
	textInput textinput.Model   // the input search widget model
	preview   *viewport.Model   // the preview widget model, nil when closed
	previewed store.TopicHandle // topic shown in the preview
	editor    editor.Editor     // for opening up external editor.
	status    string            // last error, shown under the input
	logger    *log.Logger
}

// Create a new model for the app
func New(sess *session.Session, editorCmd string, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Model{
		session:   sess,
		list:      createListModel(),
		textInput: createTextInput(),
		editor:    editor.New(editorCmd),
		logger:    logger,
	}
	m.setView(sess.View())
	return m
}

// ViewMsg carries a fresh session view, emitted by every command that
// queries or changes the session.
type ViewMsg struct {
	session.View
}

func (m *Model) setListSize() {
	width := m.width
	height := m.height

	// If preview is open take half width
	if m.preview != nil {
		width = m.width / 2
	}

	// input, tabs and status line
	m.list.SetSize(width, height-4)
}

func (m *Model) setPreviewSize() {
	if m.preview != nil {
		m.preview.Width = m.width - m.width/2
		m.preview.Height = m.height - 3
	}
}

func (m *Model) updateSize(width, height int) {
	m.height = height
	m.width = width
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, textinput.Blink)
}

// Formats the content of a rendered preview for a list description.
// removes escapes and newlines and squeezes whitespace.
func formatContent(content string) string {
	s := stripansi.Strip(content)
	s = strings.ReplaceAll(s, "\n", " ↵ ")
	re := regexp.MustCompile(`\s{2,}|\t+`)
	return string(re.ReplaceAll([]byte(s), []byte(" ")))
}

// setView replaces the list items with the results of v.
func (m *Model) setView(v session.View) {
	m.view = v
	showCategory := v.Searching() && v.Results.Query.Scope.All()
	m.list.SetItems(lo.Map(v.Results.Results, func(r search.Result, _ int) list.Item {
		return Item{
			result:       r,
			content:      formatContent(RenderRuns(m.session.RenderPreview(r))),
			showCategory: showCategory,
		}
	}))
	if v.Index >= 0 {
		m.list.Select(v.Index)
	} else {
		m.list.Select(0)
	}
}

// sessionCmd runs fn off the update loop and reports the resulting view.
func sessionCmd(fn func() session.View) tea.Cmd {
	return func() tea.Msg {
		return ViewMsg{fn()}
	}
}

func (m *Model) selected() (search.Result, bool) {
	item, ok := m.list.SelectedItem().(Item)
	if !ok {
		return search.Result{}, false
	}
	return item.result, true
}

// openPreview renders the whole topic in the preview pane.
func (m *Model) openPreview(h store.TopicHandle) {
	t, err := m.session.Topic(h)
	if err != nil {
		m.preview = nil
		m.status = err.Error()
		return
	}
	content, err := RenderTopic(m.session, h, t)
	if err != nil {
		m.status = err.Error()
		return
	}
	if m.preview == nil {
		vp := viewport.New(m.width-m.width/2, m.height-3)
		m.preview = &vp
	}
	m.previewed = h
	m.preview.SetContent(content)
}

// switchCategory moves to the neighbouring category tab.
func (m *Model) switchCategory(step int) tea.Cmd {
	cats := m.session.Categories()
	if len(cats) == 0 {
		return nil
	}
	i := lo.IndexOf(cats, m.view.Category)
	next := cats[(i+step+len(cats))%len(cats)]
	return func() tea.Msg {
		v, err := m.session.SelectCategory(next)
		if err != nil {
			return errMsg{err}
		}
		return ViewMsg{v}
	}
}

func (m *Model) editSelected(f store.Field) tea.Cmd {
	r, ok := m.selected()
	if !ok {
		return nil
	}
	t, err := m.session.Topic(r.Handle())
	if err != nil {
		m.status = err.Error()
		return nil
	}
	return m.editor.Edit(r.Handle(), f, t.Get(f))
}

// applyEdit stores what came back from the editor.
func (m *Model) applyEdit(msg editor.Finished) tea.Cmd {
	if msg.Err != nil {
		m.logger.Error("editor failed", "topic", msg.Handle, "error", msg.Err)
		m.status = msg.Err.Error()
		return nil
	}
	if !msg.Changed {
		return nil
	}
	return func() tea.Msg {
		if err := m.session.EditField(msg.Handle, msg.Field, msg.Text); err != nil {
			return errMsg{err}
		}
		return ViewMsg{m.session.View()}
	}
}

// appendListItem starts an empty list item at the end of the selected
// topic's notes.
func (m *Model) appendListItem(numbered bool) tea.Cmd {
	r, ok := m.selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		if err := m.session.AppendListItem(r.Handle(), "", numbered); err != nil {
			return errMsg{err}
		}
		return ViewMsg{m.session.View()}
	}
}

type errMsg struct{ err error }

// The update fn for the bubbletea model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case ViewMsg:
		// drop results of a query the input has moved past
		if msg.Term != strings.TrimSpace(m.textInput.Value()) {
			return m, nil
		}
		m.status = ""
		m.setView(msg.View)
		if m.preview != nil {
			m.openPreview(m.previewed)
		}
	case errMsg:
		m.logger.Error("update failed", "error", msg.err)
		m.status = msg.err.Error()
	case editor.Finished:
		cmds = append(cmds, m.applyEdit(msg))
	case tea.KeyMsg:
		// Keybindings:
		// Tab / Shift+Tab - move down / up in the list
		// Ctrl+N / Ctrl+P - next / previous search result, wrapping around
		// Ctrl+Right / Ctrl+Left - next / previous category
		// Ctrl+A - toggle searching all categories
		// Ctrl+X - toggle exact (whole word) matching
		// Ctrl+G - go to the category of the selected result
		// Enter - preview the selected topic
		// Esc - close preview, or clear the search
		// Ctrl+K / Ctrl+J - scroll the preview
		// Ctrl+O - edit notes of the selected topic in the editor
		// Ctrl+E - edit code of the selected topic in the editor
		// Ctrl+B / Ctrl+L - append a bullet / numbered item to the selected topic's notes
		// Ctrl+C - quit the application
		switch msg.String() {
		case "tab":
			m.list.CursorDown()
			return m, nil
		case "shift+tab":
			m.list.CursorUp()
			return m, nil
		case "ctrl+n", "ctrl+p":
			if msg.String() == "ctrl+n" {
				m.session.Next()
			} else {
				m.session.Previous()
			}
			m.view = m.session.View()
			if m.view.Index >= 0 {
				m.list.Select(m.view.Index)
			}
			return m, nil
		case "ctrl+right":
			return m, m.switchCategory(1)
		case "ctrl+left":
			return m, m.switchCategory(-1)
		case "ctrl+a":
			all := !m.view.SearchAll
			return m, sessionCmd(func() session.View { return m.session.SetSearchAll(all) })
		case "ctrl+x":
			exact := !m.view.Exact
			return m, sessionCmd(func() session.View { return m.session.SetExact(exact) })
		case "ctrl+g":
			if r, ok := m.selected(); ok {
				return m, func() tea.Msg {
					v, err := m.session.GoTo(r)
					if err != nil {
						return errMsg{err}
					}
					return ViewMsg{v}
				}
			}
			return m, nil
		case "enter":
			if r, ok := m.selected(); ok {
				m.openPreview(r.Handle())
			}
		case "esc":
			if m.preview != nil {
				m.preview = nil
				break
			}
			m.textInput.SetValue("")
			return m, sessionCmd(m.session.Clear)
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+k":
			if m.preview != nil {
				m.preview.LineUp(5)
			}
			return m, nil
		case "ctrl+j":
			if m.preview != nil {
				m.preview.LineDown(5)
			}
			return m, nil
		case "ctrl+o":
			cmds = append(cmds, m.editSelected(store.FieldNotes))
		case "ctrl+e":
			cmds = append(cmds, m.editSelected(store.FieldCode))
		case "ctrl+b", "ctrl+l":
			return m, m.appendListItem(msg.String() == "ctrl+l")
		}
	case tea.WindowSizeMsg:
		m.updateSize(msg.Width, msg.Height)
	}

	// Update the widgets sizes
	m.setListSize()
	m.setPreviewSize()

	// save to compare if changed
	oldValue := m.textInput.Value()

	// pass on message to the other components
	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)

	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)

	// If input has changed, search for the new value
	newValue := m.textInput.Value()
	if oldValue != newValue {
		cmds = append(cmds, sessionCmd(func() session.View { return m.session.Search(newValue) }))
	}

	return m, tea.Batch(cmds...)
}

func (m Model) tabsView() string {
	tabs := lo.Map(m.session.Categories(), func(c string, _ int) string {
		if c == m.view.Category {
			return ActiveTabStyle.Render(c)
		}
		return TabStyle.Render(c)
	})
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) statusView() string {
	if m.status != "" {
		return ErrorStyle.Render(m.status)
	}
	parts := []string{}
	if m.view.SearchAll {
		parts = append(parts, "all categories")
	} else {
		parts = append(parts, "this category")
	}
	if m.view.Exact {
		parts = append(parts, "exact")
	}
	if m.view.Counter != "" {
		parts = append(parts, m.view.Counter)
	} else if m.view.Searching() {
		parts = append(parts, lo.Ternary(m.view.Results.Len() == 1, "1 match", strconv.Itoa(m.view.Results.Len())+" matches"))
	}
	return StatusStyle.Render(strings.Join(parts, " · "))
}

// View fn for bubbletea model
func (m Model) View() string {
	listContent := ListStyle.Render(m.list.View())

	// render list
	innerContent := listContent

	// if preview then preview takes up half the width
	if m.preview != nil {
		innerContent = lipgloss.JoinHorizontal(lipgloss.Left,
			listContent,      // render list
			m.preview.View(), // render preview.
		)
	}

	// render the input box and the content
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.textInput.View(), // render the text input
		m.tabsView(),       // render category tabs
		m.statusView(),     // render search mode and counter
		innerContent,       // render the main content
	)
}

// Item implements list.Item interface
type Item struct {
	result       search.Result
	content      string
	showCategory bool
}

func (i Item) Title() string {
	if i.showCategory {
		return i.result.Handle().String()
	}
	return i.result.Title
}
func (i Item) Description() string { return i.content }
func (i Item) FilterValue() string { return "" }

// Create the list model
func createListModel() list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.Styles.NoItems = l.Styles.NoItems.PaddingLeft(2)
	return l
}

// Create the text input model
func createTextInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "query"
	ti.Prompt = "Search:"
	ti.PromptStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("62")).
		Foreground(lipgloss.Color("230")).
		MarginRight(1).
		MarginLeft(2).
		Padding(0, 1)
	ti.Focus()
	return ti
}
