// Package testutil provides test helpers shared by the provisioning packages.
package testutil

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// Entry is one member of a test tarball. Entries with a trailing slash
// become directories; a non-empty Link makes a symlink.
type Entry struct {
	Name    string
	Content string
	Link    string
}

// File is shorthand for a regular file entry.
func File(name, content string) Entry {
	return Entry{Name: name, Content: content}
}

// Dir is shorthand for a directory entry.
func Dir(name string) Entry {
	return Entry{Name: name + "/"}
}

// Tarball builds a gzip-compressed tar archive from entries, in order.
func Tarball(t *testing.T, entries ...Entry) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for _, e := range entries {
		hdr := &tar.Header{Name: e.Name, Mode: 0o644}
		switch {
		case e.Link != "":
			hdr.Typeflag = tar.TypeSymlink
			hdr.Linkname = e.Link
			hdr.Mode = 0o777
		case len(e.Name) > 0 && e.Name[len(e.Name)-1] == '/':
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0o755
		default:
			hdr.Typeflag = tar.TypeReg
			hdr.Size = int64(len(e.Content))
		}

		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("failed to write tar header %s: %v", e.Name, err)
		}
		if hdr.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(e.Content)); err != nil {
				t.Fatalf("failed to write tar entry %s: %v", e.Name, err)
			}
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("failed to close tar writer: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}
	return buf.Bytes()
}

// WriteTarball stores a test tarball at path on fs and returns the path.
func WriteTarball(t *testing.T, fs afero.Fs, path string, entries ...Entry) string {
	t.Helper()
	writeBytes(t, fs, path, Tarball(t, entries...))
	return path
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, fs afero.Fs, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	writeBytes(t, fs, path, []byte(content))
	return path
}

// ReadFile returns the content of path, failing the test if it is missing.
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(data)
}

// Exists reports whether path exists on fs.
func Exists(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, path)
	if err != nil {
		t.Fatalf("failed to stat %s: %v", path, err)
	}
	return ok
}

func writeBytes(t *testing.T, fs afero.Fs, path string, data []byte) {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}
