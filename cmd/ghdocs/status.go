package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/ghdocs"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	for _, src := range deps.Catalog.Sources() {
		exists, err := deps.Catalog.Exists(deps.Ctx, src.Name)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ghdocs.ErrorMessage(err))
			return err
		}
		if !exists {
			fmt.Fprintf(deps.Stdout, "%-12s not fetched\n", src.Name)
			continue
		}

		n, err := deps.Catalog.Count(deps.Ctx, src.Name)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ghdocs.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "%-12s %d documents\n", src.Name, n)
	}
	return nil
}

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	sources := deps.Catalog.Sources()
	if len(sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources configured.")
		return nil
	}

	for _, src := range sources {
		fmt.Fprintf(deps.Stdout, "%s  %s@%s\n", src.Name, src.Repo, src.Branch)
		fmt.Fprintf(deps.Stdout, "  collections: %s\n", strings.Join(src.Collections, ", "))
		fmt.Fprintf(deps.Stdout, "  storage: %s\n", src.StoragePath)
	}
	return nil
}
