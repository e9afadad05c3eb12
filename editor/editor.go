// Package editor round trips a topic field through an external editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noelzubin/cmdref/store"
)

type Editor struct {
	Editing   bool   // Is the editor open
	EditorCmd string // Command to open the editor on shell, may carry arguments
	TempDir   string // Where field contents are written, os.TempDir() when empty
}

// Finished is sent once the editor exits.
type Finished struct {
	Handle  store.TopicHandle
	Field   store.Field
	Text    string // contents read back from the editor
	Changed bool   // Text differs from what was opened
	Err     error
}

func New(editorCmd string) Editor {
	return Editor{EditorCmd: editorCmd}
}

// command splits the configured editor into program and arguments and
// appends the file to open.
func command(editorCmd, path string) (*exec.Cmd, error) {
	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return nil, fmt.Errorf("no editor configured")
	}
	args := append(parts[1:], path)
	return exec.Command(parts[0], args...), nil
}

// writeTemp puts text in a fresh file named after the field.
func writeTemp(dir string, f store.Field, text string) (string, error) {
	file, err := os.CreateTemp(dir, "cmdref-*-"+string(f)+".txt")
	if err != nil {
		return "", err
	}
	if _, err := file.WriteString(text); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", err
	}
	return file.Name(), nil
}

// readBack collects the edited text and removes the file. The trailing
// newline most editors add on save is dropped unless the original had one.
func readBack(h store.TopicHandle, f store.Field, path, original string, runErr error) Finished {
	defer os.Remove(path)

	msg := Finished{Handle: h, Field: f}
	if runErr != nil {
		msg.Err = fmt.Errorf("editor: %w", runErr)
		return msg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		msg.Err = err
		return msg
	}

	text := string(data)
	if !strings.HasSuffix(original, "\n") {
		text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
	}
	msg.Text = text
	msg.Changed = text != original
	return msg
}

// Edit opens text, the current value of field f of topic h, in the editor.
// The program is suspended until the editor exits, then a Finished message
// is delivered.
func (m *Editor) Edit(h store.TopicHandle, f store.Field, text string) tea.Cmd {
	path, err := writeTemp(m.TempDir, f, text)
	if err != nil {
		return func() tea.Msg { return Finished{Handle: h, Field: f, Err: err} }
	}
	c, err := command(m.EditorCmd, path)
	if err != nil {
		os.Remove(path)
		return func() tea.Msg { return Finished{Handle: h, Field: f, Err: err} }
	}

	m.Editing = true
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return readBack(h, f, path, text, err)
	})
}

func (m Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	switch msg.(type) {
	case Finished:
		m.Editing = false
	}
	return m, nil
}

// Doesnt render anything
func (m Editor) View() string {
	return ""
}
