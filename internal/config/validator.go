package config

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"

	"github.com/nawah-io/cli/internal/appconfig"
)

//go:embed schema.cue
var schemaCUE []byte

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	root := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if root.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", root.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: root.LookupPath(cue.ParsePath("#Config")),
	}, nil
}

// Validate validates the given configuration.
func (v *Validator) Validate(cfg *Config) error {
	var errs ValidationErrors

	if cfg.APILevel != "" {
		if err := appconfig.ValidateAPILevel(cfg.APILevel); err != nil {
			errs = append(errs, ValidationError{Field: "api_level", Message: err.Error()})
		}
	}

	urls := []struct {
		field string
		value string
	}{
		{"remote.template_url", cfg.Remote.TemplateURL},
		{"remote.framework_url", cfg.Remote.FrameworkURL},
		{"remote.stubs_url", cfg.Remote.StubsURL},
		{"remote.requirements_url", cfg.Remote.RequirementsURL},
	}
	for _, u := range urls {
		if msg := checkURL(u.value); msg != "" {
			errs = append(errs, ValidationError{Field: u.field, Message: msg})
		}
	}

	if len(cfg.InstallerArgv()) == 0 {
		errs = append(errs, ValidationError{Field: "installer.command", Message: "must not be empty"})
	}
	if len(cfg.GitArgv()) == 0 {
		errs = append(errs, ValidationError{Field: "git.command", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func checkURL(raw string) string {
	if raw == "" {
		return "must not be empty"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err.Error()
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "must be an http or https URL"
	}
	if u.Host == "" {
		return "must include a host"
	}
	return ""
}

// ValidateFile checks the file at path against the schema, then validates
// the merged configuration it produces.
func (v *Validator) ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := v.validateSchema(path, data); err != nil {
		return err
	}

	cfg, err := NewLoader().Load(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	return v.Validate(cfg)
}

func (v *Validator) validateSchema(path string, data []byte) error {
	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return ValidationErrors{{Field: "file", Message: err.Error()}}
	}

	val := v.ctx.BuildFile(file)
	if val.Err() != nil {
		return ValidationErrors{{Field: "file", Message: val.Err().Error()}}
	}

	if err := v.schema.Unify(val).Validate(cue.Concrete(true)); err != nil {
		var errs ValidationErrors
		for _, e := range cueerrors.Errors(err) {
			errs = append(errs, ValidationError{
				Field:   strings.Join(e.Path(), "."),
				Message: e.Error(),
			})
		}
		return errs
	}
	return nil
}
