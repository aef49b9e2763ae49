package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldPreset = "preset"
	FieldFormat = "format"
	FieldJobs   = "jobs"
	FieldConfig = "config"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesParsed     = "files_parsed"
	FieldFilesFailed     = "files_failed"
	FieldTokensTotal     = "tokens_total"
	FieldDuration        = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
