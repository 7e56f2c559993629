package checkpoint

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE []byte

// Validator checks encoded checkpoints against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	root := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if root.Err() != nil {
		return nil, fmt.Errorf("compiling checkpoint schema: %w", root.Err())
	}

	schema := root.LookupPath(cue.ParsePath("#Checkpoint"))
	if !schema.Exists() {
		return nil, fmt.Errorf("checkpoint schema: #Checkpoint not defined")
	}

	return &Validator{ctx: ctx, schema: schema}, nil
}

// Validate checks data, a JSON document, against #Checkpoint.
func (v *Validator) Validate(filename string, data []byte) error {
	val := v.ctx.CompileBytes(data, cue.Filename(filename))
	if val.Err() != nil {
		return fmt.Errorf("parsing: %s", cueerrors.Details(val.Err(), nil))
	}

	unified := v.schema.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema: %s", cueerrors.Details(err, nil))
	}
	return nil
}
