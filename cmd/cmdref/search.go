package main

import (
	"fmt"

	"github.com/noelzubin/cmdref/session"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	sess := deps.Session
	if c.Category != "" {
		if _, err := sess.SelectCategory(c.Category); err != nil {
			fmt.Fprintf(deps.Stderr, "error: category %q not found. Use 'cmdref categories' to see available categories.\n", c.Category)
			return err
		}
	}
	sess.SetSearchAll(c.Category == "")
	sess.SetExact(c.Exact || deps.Config.Exact)

	v := sess.Search(c.Term)
	if !v.Searching() && c.Category == "" {
		printAll(deps, sess)
		return nil
	}

	if v.Results.Len() == 0 {
		fmt.Fprintf(deps.Stdout, "No results for %q\n", c.Term)
		return nil
	}
	for _, r := range v.Results.Results {
		fmt.Fprintln(deps.Stdout, r.Handle())
	}
	fmt.Fprintf(deps.Stdout, "%d %s\n", v.Results.Len(), plural(v.Results.Len(), "result", "results"))
	return nil
}

// printAll lists every topic, category by category.
func printAll(deps *Dependencies, sess *session.Session) {
	for _, c := range sess.Categories() {
		for _, r := range sess.Listing(c).Results {
			fmt.Fprintln(deps.Stdout, r.Handle())
		}
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
