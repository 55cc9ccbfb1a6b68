package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/ghdocs"
	"github.com/fwojciec/ghdocs/fetch"
)

// Run executes the update command.
func (c *UpdateCmd) Run(deps *Dependencies) error {
	if deps.Pipeline == nil {
		return ghdocs.Errorf(ghdocs.EINTERNAL, "fetch pipeline not configured")
	}
	if c.Concurrency > 0 {
		deps.Pipeline.Concurrency = c.Concurrency
	}
	if c.Rate < 0 {
		return ghdocs.Errorf(ghdocs.EINVALID, "--rate must not be negative")
	}
	if deps.Pipeline.RateLimiter == nil {
		deps.Pipeline.RateLimiter = fetch.NewDomainLimiter(c.Rate)
	}

	sources, err := selectSources(deps, c.Source, c.All)
	if err != nil {
		return err
	}

	for _, src := range sources {
		index, err := deps.Catalog.Index(src.Name)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ghdocs.ErrorMessage(err))
			return err
		}

		fmt.Fprintf(deps.Stdout, "Updating %s from %s@%s\n", src.Name, src.Repo, src.Branch)

		progress := func(event fetch.ProgressEvent) {
			switch event.Type {
			case fetch.ProgressListed:
				fmt.Fprintf(deps.Stdout, "  %s: %d files\n", event.Collection, event.Total)
			case fetch.ProgressFailed:
				if event.Path == "" {
					fmt.Fprintf(deps.Stderr, "  skip collection %s: %s\n", event.Collection, ghdocs.ErrorMessage(event.Error))
				} else {
					fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.Path, event.Error)
				}
			}
		}

		begin := time.Now()
		stats, err := deps.Pipeline.Run(deps.Ctx, src, index, progress)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error updating %s: %s\n", src.Name, ghdocs.ErrorMessage(err))
			return err
		}

		fmt.Fprintf(deps.Stdout, "  Total: %d, updated: %d, unchanged: %d, errors: %d (%s)\n",
			stats.Total, stats.Updated, stats.Unchanged, stats.Errors, time.Since(begin).Round(time.Millisecond))
	}

	return nil
}

// selectSources returns every source when all is set, otherwise the named one.
func selectSources(deps *Dependencies, name string, all bool) ([]ghdocs.Source, error) {
	if all {
		return deps.Catalog.Sources(), nil
	}
	src, err := deps.Catalog.Source(name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ghdocs.ErrorMessage(err))
		fmt.Fprintln(deps.Stderr, "Hint: use 'ghdocs sources' to list configured sources")
		return nil, err
	}
	return []ghdocs.Source{src}, nil
}
