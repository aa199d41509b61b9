package config

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/genny/internal/docgen"
	"github.com/mvp-joe/genny/internal/errors"
)

var (
	// ErrInvalidFormat indicates a default_format outside the export formats
	ErrInvalidFormat = errors.New("invalid default format")

	// ErrEmptyTemplate indicates a missing default_template
	ErrEmptyTemplate = errors.New("empty default template")

	// ErrEmptyTemplatesDir indicates a missing templates_dir
	ErrEmptyTemplatesDir = errors.New("empty templates directory")

	// ErrUnknownSetting indicates a key that is not a genny setting
	ErrUnknownSetting = errors.New("unknown setting")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if !docgen.IsSupportedFormat(cfg.DefaultFormat) {
		errs = append(errs, fmt.Errorf("%w: must be one of %s, got '%s'",
			ErrInvalidFormat, strings.Join(docgen.Formats, ", "), cfg.DefaultFormat))
	}

	if strings.TrimSpace(cfg.DefaultTemplate) == "" {
		errs = append(errs, fmt.Errorf("%w: default_template is required", ErrEmptyTemplate))
	}

	if strings.TrimSpace(cfg.TemplatesDir) == "" {
		errs = append(errs, fmt.Errorf("%w: templates_dir is required", ErrEmptyTemplatesDir))
	}

	// default_code, default_destination and repo_path may stay empty;
	// the CLI asks for them when a command needs one

	return joinErrors(errs)
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
