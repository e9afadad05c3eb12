package main

import (
	"errors"
	"fmt"

	"github.com/noelzubin/cmdref/store"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	h, err := deps.Session.AddTopic(c.Category, store.Topic{
		Title:        c.Title,
		Code:         c.Code,
		Verification: c.Verification,
		Example:      c.Example,
		Notes:        c.Notes,
	})
	if errors.Is(err, store.ErrInvalid) {
		fmt.Fprintln(deps.Stderr, "error: title and --code are required")
		return err
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added %s\n", h)
	return nil
}
