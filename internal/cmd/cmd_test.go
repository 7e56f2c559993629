package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// executeRoot runs the root command with args and returns everything the
// command wrote to its output streams.
func executeRoot(t *testing.T, replace func(*createEnv), args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	if replace != nil {
		env := &createEnv{}
		replace(env)
		for _, c := range root.Commands() {
			if c.Name() == "create" {
				root.RemoveCommand(c)
			}
		}
		root.AddCommand(newCreateCmd(env))
	}

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
