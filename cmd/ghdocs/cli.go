package main

import (
	"context"
	"io"

	"github.com/fwojciec/ghdocs"
	"github.com/fwojciec/ghdocs/fetch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Catalog  *ghdocs.Catalog
	Pipeline *fetch.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Configuration file (default $GHDOCS_CONFIG or ~/.ghdocs/config.yaml)" type:"path"`
	Verbose bool   `short:"v" help:"Log index and GitHub calls to stderr"`

	Search  SearchCmd  `cmd:"" help:"Search documentation"`
	Get     GetCmd     `cmd:"" help:"Show a documentation page by id"`
	Update  UpdateCmd  `cmd:"" help:"Download documentation from GitHub and rebuild the index"`
	Rebuild RebuildCmd `cmd:"" help:"Store page content inside the index"`
	Status  StatusCmd  `cmd:"" help:"Show index status for every source"`
	Sources SourcesCmd `cmd:"" help:"List configured documentation sources"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query  []string `arg:"" help:"Search terms"`
	Source string   `short:"s" default:"docs" help:"Documentation source"`
	Start  int      `default:"0" help:"Number of results to skip"`
	Limit  int      `short:"l" default:"10" help:"Results per page"`
	JSON   bool     `name:"json" help:"Print results as JSON"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	ID     string `arg:"" help:"Documentation id (collection:filename)"`
	Source string `short:"s" default:"docs" help:"Documentation source"`
	Format string `short:"f" enum:"text,json" default:"text" help:"Output format (text, json)"`
	TOC    bool   `name:"toc" help:"Show the table of contents"`
}

// UpdateCmd is the "update" subcommand.
type UpdateCmd struct {
	Source      string `short:"s" default:"docs" help:"Documentation source"`
	All         bool   `help:"Update every configured source"`
	Concurrency int     `short:"c" default:"10" help:"Concurrent download limit"`
	Rate        float64 `default:"10" help:"Downloads per second per host (0 disables throttling)"`
}

// RebuildCmd is the "rebuild" subcommand.
type RebuildCmd struct {
	Source string `short:"s" default:"docs" help:"Documentation source"`
	All    bool   `help:"Rebuild every configured source"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}
