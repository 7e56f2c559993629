// Package archive reads and writes the gzip-compressed tarballs that app
// templates and framework stubs are distributed as.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Archive is a tar.gz file on a filesystem. It holds no open handles; every
// iteration reads the file from the start.
type Archive struct {
	fs   afero.Fs
	path string
}

// Open returns an Archive for the tar.gz at path.
func Open(fs afero.Fs, path string) (*Archive, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("opening archive %s: is a directory", path)
	}
	return &Archive{fs: fs, path: path}, nil
}

// Path returns the archive's location.
func (a *Archive) Path() string {
	return a.path
}

// Member is one archive entry selected by FilteredMembers.
type Member struct {
	// Path is the entry name with the selection root removed.
	Path string

	// Header is the raw tar header. Header.Name is left untouched.
	Header *tar.Header

	// Content reads the entry body. It is only valid until the iteration
	// advances.
	Content io.Reader
}

// FilteredMembers yields the entries of a whose names start with root+"/",
// with that prefix removed. The root entry itself is skipped. Each call
// starts a fresh pass over the archive.
func FilteredMembers(a *Archive, root string) iter.Seq2[Member, error] {
	prefix := root + "/"

	return func(yield func(Member, error) bool) {
		f, err := a.fs.Open(a.path)
		if err != nil {
			yield(Member{}, fmt.Errorf("opening archive %s: %w", a.path, err))
			return
		}
		defer f.Close()

		gz, err := gzip.NewReader(f)
		if err != nil {
			yield(Member{}, fmt.Errorf("reading archive %s: %w", a.path, err))
			return
		}
		defer gz.Close()

		tr := tar.NewReader(gz)
		for {
			hdr, err := tr.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Member{}, fmt.Errorf("reading archive %s: %w", a.path, err))
				return
			}

			if !strings.HasPrefix(hdr.Name, prefix) {
				continue
			}
			rel := hdr.Name[len(prefix):]
			if rel == "" {
				continue
			}

			if !yield(Member{Path: rel, Header: hdr, Content: tr}, nil) {
				return
			}
		}
	}
}

// Extract writes the members of a under root into dst. Directories, regular
// files and symlinks are supported; other entry types are ignored.
func Extract(fs afero.Fs, a *Archive, root, dst string) (int, error) {
	if err := fs.MkdirAll(dst, 0o755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", dst, err)
	}

	count := 0
	for m, err := range FilteredMembers(a, root) {
		if err != nil {
			return count, err
		}

		target, err := safeJoin(dst, m.Path)
		if err != nil {
			return count, err
		}
		if err := checkParents(fs, dst, target); err != nil {
			return count, err
		}

		mode := os.FileMode(m.Header.Mode).Perm()
		switch m.Header.Typeflag {
		case tar.TypeDir:
			if err := refuseLink(fs, target); err != nil {
				return count, err
			}
			if err := fs.MkdirAll(target, mode|0o700); err != nil {
				return count, fmt.Errorf("creating %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := removeLink(fs, target); err != nil {
				return count, err
			}
			if err := writeFile(fs, target, m.Content, mode); err != nil {
				return count, err
			}
		case tar.TypeSymlink:
			if err := checkLink(dst, target, m.Header.Linkname); err != nil {
				return count, err
			}
			if err := symlink(fs, m.Header.Linkname, target); err != nil {
				return count, err
			}
		default:
			continue
		}
		count++
	}

	return count, nil
}

// safeJoin resolves name under dst and rejects results outside dst.
func safeJoin(dst, name string) (string, error) {
	target := filepath.Join(dst, filepath.FromSlash(name))
	if !within(dst, target) {
		return "", fmt.Errorf("archive member %q escapes destination", name)
	}
	return target, nil
}

// checkLink rejects symlinks whose target resolves outside dst.
func checkLink(dst, target, linkname string) error {
	if path.IsAbs(linkname) {
		return fmt.Errorf("symlink %q points to absolute path %q", target, linkname)
	}
	resolved := filepath.Join(filepath.Dir(target), filepath.FromSlash(linkname))
	if !within(dst, resolved) {
		return fmt.Errorf("symlink %q escapes destination", target)
	}
	return nil
}

// checkParents rejects targets reached through a symlink that an earlier
// member created between dst and target.
func checkParents(fs afero.Fs, dst, target string) error {
	rel, err := filepath.Rel(filepath.Clean(dst), filepath.Dir(target))
	if err != nil || rel == "." {
		return nil
	}

	dir := filepath.Clean(dst)
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		dir = filepath.Join(dir, part)
		if err := refuseLink(fs, dir); err != nil {
			return err
		}
	}
	return nil
}

// refuseLink fails when path exists and is a symlink.
func refuseLink(fs afero.Fs, path string) error {
	if isLink(fs, path) {
		return fmt.Errorf("archive member path %q passes through a symlink", path)
	}
	return nil
}

// removeLink deletes path when it is a symlink so writing to it does not
// follow the link.
func removeLink(fs afero.Fs, path string) error {
	if !isLink(fs, path) {
		return nil
	}
	if err := fs.Remove(path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func isLink(fs afero.Fs, path string) bool {
	l, ok := fs.(afero.Lstater)
	if !ok {
		return false
	}
	info, lstatCalled, err := l.LstatIfPossible(path)
	if err != nil || !lstatCalled {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

func within(dir, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func writeFile(fs afero.Fs, target string, r io.Reader, mode os.FileMode) error {
	if err := fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
	}
	if mode == 0 {
		mode = 0o644
	}

	f, err := fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return f.Close()
}

// symlink creates a link when fs supports it, replacing whatever newname
// held before. Filesystems without links get a regular file holding the
// link target instead.
func symlink(fs afero.Fs, oldname, newname string) error {
	if err := fs.MkdirAll(filepath.Dir(newname), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(newname), err)
	}

	l, ok := fs.(afero.Linker)
	if !ok {
		return afero.WriteFile(fs, newname, []byte(oldname), 0o644)
	}

	if _, err := lstat(fs, newname); err == nil {
		if err := fs.Remove(newname); err != nil {
			return fmt.Errorf("replacing %s: %w", newname, err)
		}
	}
	if err := l.SymlinkIfPossible(oldname, newname); err != nil {
		return fmt.Errorf("linking %s: %w", newname, err)
	}
	return nil
}

func lstat(fs afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fs.Stat(path)
}
