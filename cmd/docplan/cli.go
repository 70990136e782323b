package main

import (
	"context"
	"io"

	"github.com/aiscrape/docplan"
	"github.com/aiscrape/docplan/crawl"
	"github.com/aiscrape/docplan/sqlite"
	"github.com/aiscrape/docplan/validate"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Projects  docplan.ProjectService
	Documents docplan.DocumentService
	Runner    *crawl.Runner
	Validator *validate.Validator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log render and planning operations to stderr"`

	Scrape   ScrapeCmd   `cmd:"" help:"Scrape a documentation site into a project"`
	List     ListCmd     `cmd:"" help:"List all registered projects"`
	Docs     DocsCmd     `cmd:"" help:"List documents for a project"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a project and its documents"`
	Export   ExportCmd   `cmd:"" help:"Export a project's documents as a markdown tree"`
	Validate ValidateCmd `cmd:"" help:"Validate stored documents against the live site"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Name        string   `arg:"" help:"Project name"`
	URL         string   `arg:"" help:"Documentation index URL"`
	Force       bool     `short:"f" help:"Delete existing project first"`
	Filter      []string `short:"F" name:"filter" help:"Restrict discovered URLs by regex (repeatable)"`
	Concurrency int      `short:"c" default:"10" help:"Concurrent extraction limit"`
	MinContent  int      `name:"min-content" default:"100" help:"Minimum markdown length per page"`
	Output      string   `short:"o" help:"Directory for markdown artifacts (default: no files, database only)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Name string `arg:"" help:"Project name"`
	Full bool   `help:"Show full document content"`
	TOC  bool   `name:"toc" help:"Show the heading outline of each document"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Project name"`
	Force bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Name string `arg:"" help:"Project name"`
	Dir  string `arg:"" help:"Output directory"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	Name   string `arg:"" help:"Project name"`
	Sample int    `short:"s" default:"5" help:"Number of documents to sample"`
}
