package main

import (
	"fmt"

	"github.com/acarl005/stripansi"
	"github.com/noelzubin/cmdref/app/tui"
	"github.com/noelzubin/cmdref/store"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	h := store.TopicHandle{Category: c.Category, Title: c.Title}
	t, err := deps.Session.Topic(h)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: topic %s not found. Use 'cmdref search' to find topics.\n", h)
		return err
	}

	deps.Session.Search(c.Highlight)
	out, err := tui.RenderTopic(deps.Session, h, t)
	if err != nil {
		return err
	}
	if c.Plain {
		out = stripansi.Strip(out)
	}
	fmt.Fprintln(deps.Stdout, out)
	return nil
}
