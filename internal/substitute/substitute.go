// Package substitute replaces template placeholder tokens with configured
// values, each a bounded number of times.
package substitute

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/nawah-io/cli/internal/appconfig"
)

// TokenProjectName is the template placeholder for the app name.
const TokenProjectName = "__PROJECT_NAME__"

// ProjectNameCount is how many project name occurrences are rewritten.
const ProjectNameCount = 2

// Replacement replaces the first Count occurrences of Token with Value.
type Replacement struct {
	Token string
	Value string
	Count int
}

// Apply performs the replacement on s. Count <= 0 replaces nothing.
func (r Replacement) Apply(s string) string {
	if r.Count <= 0 || r.Token == "" {
		return s
	}
	return strings.Replace(s, r.Token, r.Value, r.Count)
}

// ProjectName returns the replacement for the app name placeholder.
func ProjectName(appName string) Replacement {
	return Replacement{Token: TokenProjectName, Value: appName, Count: ProjectNameCount}
}

// Plan returns the ordered replacements for contents: extra first, then
// every snapshot field once, in snapshot order.
func Plan(snapshot appconfig.Snapshot, extra ...Replacement) []Replacement {
	fields := snapshot.Fields()
	plan := make([]Replacement, 0, len(extra)+len(fields))
	plan = append(plan, extra...)
	for _, f := range fields {
		plan = append(plan, Replacement{Token: f.Field.Token, Value: f.Field.Value, Count: 1})
	}
	return plan
}

// Substitute applies Plan(snapshot, extra...) to contents. Tokens absent
// from contents are skipped.
func Substitute(contents string, snapshot appconfig.Snapshot, extra ...Replacement) string {
	return Apply(contents, Plan(snapshot, extra...))
}

// Apply runs replacements over contents in order.
func Apply(contents string, replacements []Replacement) string {
	for _, r := range replacements {
		contents = r.Apply(contents)
	}
	return contents
}

// Rewrite reads path, transforms it with fn and writes it back with its
// original permissions.
func Rewrite(fs afero.Fs, path string, fn func(string) string) error {
	info, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	out := fn(string(data))
	if err := afero.WriteFile(fs, path, []byte(out), perm(info)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func perm(info os.FileInfo) os.FileMode {
	if p := info.Mode().Perm(); p != 0 {
		return p
	}
	return 0o644
}
