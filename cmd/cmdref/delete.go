package main

import (
	"fmt"

	"github.com/noelzubin/cmdref/store"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if c.Title != "" {
		h := store.TopicHandle{Category: c.Category, Title: c.Title}
		if err := deps.Session.DeleteTopic(h); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Deleted %s\n", h)
		return nil
	}

	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to delete category %q and all its topics\n", c.Category)
		return fmt.Errorf("use --force to confirm deletion: %w", store.ErrInvalid)
	}
	if err := deps.Session.DeleteCategory(c.Category); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted category %q\n", c.Category)
	return nil
}

// Run executes the rename command.
func (c *RenameCmd) Run(deps *Dependencies) error {
	if err := deps.Session.RenameCategory(c.From, c.To); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Renamed %q to %q\n", c.From, c.To)
	return nil
}
