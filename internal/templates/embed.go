// Package templates provides the files generated into a new app workspace
// alongside the downloaded template.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/spf13/afero"
)

//go:embed files/*
var filesFS embed.FS

// Name identifies a generated file by its name in the workspace.
type Name string

const (
	// README is the project readme.
	README Name = "README.md"

	// License is the placeholder license file, created empty.
	License Name = "LICENSE"
)

// IsValid checks if name is a known generated file.
func IsValid(name string) bool {
	switch Name(name) {
	case README, License:
		return true
	default:
		return false
	}
}

// Data contains data for template rendering.
type Data struct {
	// AppName is the name of the new app (e.g., "blog").
	AppName string

	// CLIVersion is the version label of this CLI (e.g., "v1.2.0").
	CLIVersion string

	// APILevel is the framework API level the app targets (e.g., "1.0").
	APILevel string
}

// RenderString renders the template for name.
func RenderString(name Name, data Data) (string, error) {
	if !IsValid(string(name)) {
		return "", fmt.Errorf("unknown template: %s", name)
	}

	path := "files/" + string(name) + ".tmpl"
	content, err := filesFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", path, err)
	}

	tmpl, err := template.New(string(name)).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", path, err)
	}
	return buf.String(), nil
}

// Render writes the rendered template for name into targetDir, replacing
// any existing file, and returns the written path.
func Render(fs afero.Fs, name Name, targetDir string, data Data) (string, error) {
	out, err := RenderString(name, data)
	if err != nil {
		return "", err
	}

	targetPath := filepath.Join(targetDir, string(name))
	if err := afero.WriteFile(fs, targetPath, []byte(out), 0o644); err != nil {
		return "", fmt.Errorf("creating file %s: %w", targetPath, err)
	}
	return targetPath, nil
}
