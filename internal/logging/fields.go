// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldDialect = "dialect"
	FieldFormat  = "format"
	FieldJobs    = "jobs"
	FieldConfig  = "config"

	// Parse statistics fields.
	FieldTokens  = "tokens"
	FieldNodes   = "nodes"
	FieldElapsed = "elapsed"
	FieldBlock   = "block"

	// Run statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesParsed     = "files_parsed"
	FieldFilesFailed     = "files_failed"
	FieldDivergences     = "divergences"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
