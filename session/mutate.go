package session

import (
	"fmt"
	"strings"

	"github.com/noelzubin/cmdref/annotate"
	"github.com/noelzubin/cmdref/store"
)

// mutate applies fn, saves, and refreshes the view so no stale results are
// left on screen. Nothing is saved when fn leaves the store untouched.
func (s *Session) mutate(action string, fn func() error, keyvals ...interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.store.Revision()
	if err := fn(); err != nil {
		return err
	}
	if s.store.Revision() == before {
		return nil
	}
	if !s.store.HasCategory(s.category) {
		s.category = s.firstCategory()
	}
	s.refresh()

	s.logger.Info(action, append(keyvals, "revision", s.store.Revision())...)

	if s.backend == nil {
		return nil
	}
	if err := s.backend.Save(s.store); err != nil {
		s.logger.Error("save failed", "action", action, "error", err)
		return fmt.Errorf("save after %s: %w", action, err)
	}
	return nil
}

// AddTopic creates or overwrites a topic. Title and code are required.
func (s *Session) AddTopic(category string, t store.Topic) (store.TopicHandle, error) {
	t.Desc = t.Example
	var h store.TopicHandle
	err := s.mutate("add topic", func() (err error) {
		h, err = s.store.Put(category, t)
		return err
	}, "category", category, "title", t.Title)
	return h, err
}

// EditField replaces one field of a topic.
func (s *Session) EditField(h store.TopicHandle, f store.Field, value string) error {
	return s.mutate("edit field", func() error {
		return s.store.SetField(h, f, value)
	}, "topic", h, "field", f)
}

// EditNotes replaces notes together with the styles the editor kept in step.
func (s *Session) EditNotes(h store.TopicHandle, notes string, styles []annotate.StyleRange) error {
	return s.mutate("edit notes", func() error {
		return s.store.SetNotes(h, notes, styles)
	}, "topic", h)
}

// ToggleStyle toggles tag over a selection of a topic's notes.
func (s *Session) ToggleStyle(h store.TopicHandle, start, end int, tag annotate.Tag) error {
	return s.mutate("toggle style", func() error {
		return s.store.ToggleStyle(h, start, end, tag)
	}, "topic", h, "tag", tag, "start", start, "end", end)
}

// AppendTemplate adds one of the notes templates to the end of a topic's
// notes. Existing styles keep their offsets.
func (s *Session) AppendTemplate(h store.TopicHandle, i int) error {
	if i < 0 || i >= len(annotate.NoteTemplates) {
		return fmt.Errorf("template %d: %w", i+1, store.ErrNotFound)
	}
	return s.mutate("append template", func() error {
		t, err := s.store.Topic(h)
		if err != nil {
			return err
		}
		return s.store.SetNotes(h, t.Notes+annotate.NoteTemplates[i], t.Styles)
	}, "topic", h, "template", i+1)
}

// AppendListItem adds a list item holding text on a new line at the end of a
// topic's notes. Numbered items continue the last number found above them.
func (s *Session) AppendListItem(h store.TopicHandle, text string, numbered bool) error {
	return s.mutate("append list item", func() error {
		t, err := s.store.Topic(h)
		if err != nil {
			return err
		}
		notes := t.Notes
		if notes != "" && !strings.HasSuffix(notes, "\n") {
			notes += "\n"
		}
		prefix := annotate.Bullet
		if numbered {
			prefix = annotate.ListPrefix(notes)
		}
		return s.store.SetNotes(h, notes+prefix+text, t.Styles)
	}, "topic", h, "numbered", numbered)
}

// DeleteTopic removes a topic.
func (s *Session) DeleteTopic(h store.TopicHandle) error {
	return s.mutate("delete topic", func() error {
		return s.store.Delete(h)
	}, "topic", h)
}

// DeleteCategory removes a category and all its topics.
func (s *Session) DeleteCategory(name string) error {
	return s.mutate("delete category", func() error {
		return s.store.DeleteCategory(name)
	}, "category", name)
}

// RenameCategory renames a category, following it if it is being browsed.
func (s *Session) RenameCategory(from, to string) error {
	return s.mutate("rename category", func() error {
		if err := s.store.RenameCategory(from, to); err != nil {
			return err
		}
		if s.category == from {
			s.category = to
		}
		return nil
	}, "from", from, "to", to)
}
