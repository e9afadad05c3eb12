package tui

import (
	"testing"

	"github.com/acarl005/stripansi"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/noelzubin/cmdref/editor"
	"github.com/noelzubin/cmdref/search"
	"github.com/noelzubin/cmdref/session"
	"github.com/noelzubin/cmdref/store"
	"github.com/noelzubin/cmdref/store/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T) (Model, *session.Session, *store.Store) {
	t.Helper()
	st := seed.Default()
	sess := session.New(st, nil, search.NewScanner(), session.Options{SearchAll: true})
	m := New(sess, "vi", nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), sess, st
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestFormatContent(t *testing.T) {
	t.Parallel()

	got := formatContent("\x1b[1mshow\x1b[0m  ip\n\troute")
	assert.Equal(t, "show ip ↵ route", got)
}

func TestModelListing(t *testing.T) {
	t.Parallel()

	m, _, st := newModel(t)
	assert.Equal(t, seed.Categories[0], m.view.Category)
	assert.Len(t, m.list.Items(), len(st.Topics(seed.Categories[0])))

	out := stripansi.Strip(m.View())
	assert.Contains(t, out, seed.Categories[3])
	assert.Contains(t, out, "all categories")
}

func TestModelSearch(t *testing.T) {
	t.Parallel()

	m, sess, _ := newModel(t)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("docker")})
	assert.Equal(t, "docker", m.textInput.Value())
	assert.NotNil(t, cmd)

	// a late answer for an older input is ignored
	m, _ = update(t, m, ViewMsg{session.View{Term: "dock"}})
	assert.Len(t, m.list.Items(), 2)

	m, _ = update(t, m, ViewMsg{sess.Search("docker")})
	require.Len(t, m.list.Items(), 1)
	item := m.list.Items()[0].(Item)
	assert.Equal(t, "[🐧 Linux Ops] 03. Docker Basics", item.Title())
	assert.Contains(t, item.Description(), "docker ps -a ↵")
	assert.Contains(t, stripansi.Strip(m.View()), "Result 1 of 1")

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.textInput.Value())
	require.NotNil(t, cmd)
	msg, ok := cmd().(ViewMsg)
	require.True(t, ok)
	assert.False(t, msg.Searching())
}

func TestModelToggles(t *testing.T) {
	t.Parallel()

	m, _, _ := newModel(t)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	require.NotNil(t, cmd)
	msg := cmd().(ViewMsg)
	assert.False(t, msg.SearchAll)

	m, _ = update(t, m, msg)
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	msg = cmd().(ViewMsg)
	assert.True(t, msg.Exact)
	assert.False(t, msg.SearchAll)
}

func TestModelNavigation(t *testing.T) {
	t.Parallel()

	m, sess, _ := newModel(t)
	m.textInput.SetValue("show")
	m, _ = update(t, m, ViewMsg{sess.Search("show")})
	n := len(m.list.Items())
	require.Greater(t, n, 2)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, n-1, m.list.Index())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, 0, m.list.Index())
	assert.Contains(t, stripansi.Strip(m.View()), "Result 1 of")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.list.Index())
}

func TestModelSwitchCategory(t *testing.T) {
	t.Parallel()

	m, _, _ := newModel(t)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlLeft})
	require.NotNil(t, cmd)
	msg := cmd().(ViewMsg)
	assert.Equal(t, seed.Categories[len(seed.Categories)-1], msg.Category)
}

func TestModelPreview(t *testing.T) {
	t.Parallel()

	m, _, _ := newModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.preview)

	out := stripansi.Strip(m.View())
	assert.Contains(t, out, "Verification")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.preview)
}

func TestModelApplyEdit(t *testing.T) {
	t.Parallel()

	m, sess, st := newModel(t)
	h := store.TopicHandle{Category: seed.Categories[0], Title: st.Topics(seed.Categories[0])[0].Title}

	assert.Nil(t, m.applyEdit(editor.Finished{Handle: h, Field: store.FieldNotes, Text: "", Changed: false}))

	cmd := m.applyEdit(editor.Finished{Handle: h, Field: store.FieldNotes, Text: "check the vty lines", Changed: true})
	require.NotNil(t, cmd)
	_, ok := cmd().(ViewMsg)
	assert.True(t, ok)

	topic, err := sess.Topic(h)
	require.NoError(t, err)
	assert.Equal(t, "check the vty lines", topic.Notes)

	cmd = m.applyEdit(editor.Finished{Handle: store.TopicHandle{Category: "x", Title: "y"}, Field: store.FieldNotes, Text: "z", Changed: true})
	_, ok = cmd().(errMsg)
	assert.True(t, ok)
}

func TestModelAppendListItem(t *testing.T) {
	t.Parallel()

	m, sess, st := newModel(t)
	h := store.TopicHandle{Category: seed.Categories[0], Title: st.Topics(seed.Categories[0])[0].Title}

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlB})
	require.NotNil(t, cmd)
	_, ok := cmd().(ViewMsg)
	require.True(t, ok)

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	require.NotNil(t, cmd)
	cmd()

	topic, err := sess.Topic(h)
	require.NoError(t, err)
	assert.Equal(t, "• \n1. ", topic.Notes)
}
