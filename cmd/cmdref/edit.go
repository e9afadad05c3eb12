package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/noelzubin/cmdref/annotate"
	"github.com/noelzubin/cmdref/store"
)

// Run executes the edit command.
func (c *EditCmd) Run(deps *Dependencies) error {
	field, err := store.ParseField(c.Field)
	if err != nil {
		return err
	}

	var value string
	if c.Value != nil {
		value = *c.Value
	} else {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read value: %w", err)
		}
		value = strings.TrimSuffix(string(data), "\n")
	}

	h := store.TopicHandle{Category: c.Category, Title: c.Title}
	if err := deps.Session.EditField(h, field, value); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Updated %s of %s\n", field, h)
	return nil
}

// Run executes the template command.
func (c *TemplateCmd) Run(deps *Dependencies) error {
	h := store.TopicHandle{Category: c.Category, Title: c.Title}
	if err := deps.Session.AppendTemplate(h, c.Number-1); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s (templates 1 to %d)\n", err, len(annotate.NoteTemplates))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Appended template %d to %s\n", c.Number, h)
	return nil
}

// Run executes the item command.
func (c *ItemCmd) Run(deps *Dependencies) error {
	h := store.TopicHandle{Category: c.Category, Title: c.Title}
	if err := deps.Session.AppendListItem(h, c.Text, c.Numbered); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	t, err := deps.Session.Topic(h)
	if err != nil {
		return err
	}
	lines := strings.Split(t.Notes, "\n")
	fmt.Fprintf(deps.Stdout, "Appended %q to %s\n", lines[len(lines)-1], h)
	return nil
}

// Run executes the style command.
func (c *StyleCmd) Run(deps *Dependencies) error {
	tag, err := annotate.ParseTag(c.Tag)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	h := store.TopicHandle{Category: c.Category, Title: c.Title}
	if err := deps.Session.ToggleStyle(h, c.Start, c.End, tag); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	t, err := deps.Session.Topic(h)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Toggled %s on [%d,%d) of %s\n", tag, c.Start, c.End, h)
	for _, r := range annotate.Normalize(t.Styles) {
		fmt.Fprintf(deps.Stdout, "  %s [%d,%d)\n", r.Tag, r.Start, r.End)
	}
	return nil
}
