package logger

// Standard field names for structured logging.
const (
	FieldComponent = "component"
	FieldFile      = "file"
	FieldTemplate  = "template"
	FieldFormat    = "format"
	FieldPath      = "path"
	FieldError     = "error"
	FieldCount     = "count"
	FieldBranch    = "branch"
)
