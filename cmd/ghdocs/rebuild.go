package main

import (
	"fmt"

	"github.com/fwojciec/ghdocs"
)

// Run executes the rebuild command.
func (c *RebuildCmd) Run(deps *Dependencies) error {
	sources, err := selectSources(deps, c.Source, c.All)
	if err != nil {
		return err
	}

	for _, src := range sources {
		err := deps.Catalog.RebuildWithContent(deps.Ctx, src.Name)
		if ghdocs.ErrorCode(err) == ghdocs.ENOINDEX {
			fmt.Fprintf(deps.Stderr, "warning: %s has no index, run 'ghdocs update -s %s' first\n", src.Name, src.Name)
			continue
		} else if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ghdocs.ErrorMessage(err))
			return err
		}

		n, err := deps.Catalog.Count(deps.Ctx, src.Name)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ghdocs.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Rebuilt %s index with content (%d documents)\n", src.Name, n)
	}
	return nil
}
