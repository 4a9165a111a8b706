package logging

// Structured field names.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldConfig = "config"
	FieldSource = "source"

	// Move fields.
	FieldLine      = "line"
	FieldCursor    = "cursor"
	FieldDirection = "direction"
	FieldReason    = "reason"
	FieldBlock     = "block"
	FieldTarget    = "target"
	FieldHopped    = "hopped"
	FieldCount     = "count"
	FieldDryRun    = "dry_run"

	// File fields.
	FieldBackup = "backup"
	FieldBytes  = "bytes"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
	FieldGo      = "go"
)
