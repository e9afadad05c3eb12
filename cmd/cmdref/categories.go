package main

import "fmt"

// Run executes the categories command.
func (c *CategoriesCmd) Run(deps *Dependencies) error {
	cats := deps.Session.Categories()
	if len(cats) == 0 {
		fmt.Fprintln(deps.Stdout, "No categories found. Use 'cmdref add' to create one.")
		return nil
	}

	for _, name := range cats {
		n := deps.Session.Listing(name).Len()
		fmt.Fprintf(deps.Stdout, "%s  %d %s\n", name, n, plural(n, "topic", "topics"))
	}
	return nil
}
