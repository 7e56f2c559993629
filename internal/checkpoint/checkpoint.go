// Package checkpoint persists provisioning progress so a failed run can be
// resumed from the step that failed.
package checkpoint

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/nawah-io/cli/internal/appconfig"
	oerrors "github.com/nawah-io/cli/internal/errors"
)

// BaseName is the checkpoint file name without extension.
const BaseName = "progress"

// MaxStep is the last provisioning step a checkpoint can resume from.
const MaxStep = 8

// Args are the invocation arguments a resumed run reuses.
type Args struct {
	AppPath       string `json:"app_path"`
	AppName       string `json:"app_name"`
	APILevel      string `json:"api_level"`
	Template      string `json:"template,omitempty"`
	DefaultConfig bool   `json:"default_config"`
}

// Checkpoint records the step to resume from together with the arguments
// and configuration of the run that failed.
type Checkpoint struct {
	Step   int                `json:"step"`
	Args   Args               `json:"args"`
	Config appconfig.Snapshot `json:"config"`
}

// Store reads and writes the checkpoint file of a workspace.
type Store struct {
	fs        afero.Fs
	codec     Codec
	validator *Validator
}

// NewStore creates a store using the JSON codec.
func NewStore(fs afero.Fs) (*Store, error) {
	return NewStoreWithCodec(fs, NewJSONCodec())
}

// NewStoreWithCodec creates a store using codec. Schema validation applies
// to JSON-encoded checkpoints only.
func NewStoreWithCodec(fs afero.Fs, codec Codec) (*Store, error) {
	v, err := NewValidator()
	if err != nil {
		return nil, err
	}
	return &Store{fs: fs, codec: codec, validator: v}, nil
}

// Path returns the checkpoint location inside workspace.
func (s *Store) Path(workspace string) string {
	return filepath.Join(workspace, BaseName+s.codec.Extension())
}

// Load returns the checkpoint of workspace, or nil when there is none.
// A checkpoint that cannot be decoded or fails the schema is reported as
// ErrCorruptState.
func (s *Store) Load(workspace string) (*Checkpoint, error) {
	path := s.Path(workspace)

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading checkpoint: %w", err)
	}

	if _, ok := s.codec.(*JSONCodec); ok {
		if err := s.validator.Validate(path, data); err != nil {
			return nil, oerrors.NewCorruptStateError(path, err)
		}
	}

	var cp Checkpoint
	if err := s.codec.Decode(bytes.NewReader(data), &cp); err != nil {
		return nil, oerrors.NewCorruptStateError(path, err)
	}
	if err := cp.Validate(); err != nil {
		return nil, oerrors.NewCorruptStateError(path, err)
	}

	return &cp, nil
}

// Save writes cp to workspace, replacing any earlier checkpoint. The file is
// written to a temporary name first and renamed into place.
func (s *Store) Save(workspace string, cp Checkpoint) error {
	if err := cp.Validate(); err != nil {
		return fmt.Errorf("invalid checkpoint: %w", err)
	}

	var buf bytes.Buffer
	if err := s.codec.Encode(&buf, cp); err != nil {
		return fmt.Errorf("encoding checkpoint: %w", err)
	}

	path := s.Path(workspace)
	if err := s.fs.MkdirAll(workspace, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", workspace, err)
	}

	tmp, err := afero.TempFile(s.fs, workspace, "."+BaseName+"-*.tmp")
	if err != nil {
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("syncing checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("writing checkpoint: %w", err)
	}

	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("replacing checkpoint: %w", err)
	}
	return nil
}

// Remove deletes the checkpoint of workspace. A missing file is not an error.
func (s *Store) Remove(workspace string) error {
	err := s.fs.Remove(s.Path(workspace))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing checkpoint: %w", err)
	}
	return nil
}

// Validate checks the structural invariants of a checkpoint.
func (c Checkpoint) Validate() error {
	if c.Step < 1 || c.Step > MaxStep {
		return fmt.Errorf("step must be in 1..%d, got %d", MaxStep, c.Step)
	}
	if c.Args.AppName == "" || c.Args.AppPath == "" || c.Args.APILevel == "" {
		return errors.New("args must include app_path, app_name and api_level")
	}
	if err := c.Config.Validate(); err != nil {
		return err
	}
	return nil
}
