package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Pack writes srcDir as a tar.gz to w with every entry placed under root/.
// Anything inside a .git directory is left out.
func Pack(fs afero.Fs, srcDir, root string, w io.Writer) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	err := afero.Walk(fs, srcDir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if isGitPath(rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := root
		if rel != "." {
			name = path.Join(root, rel)
		}

		return addEntry(fs, tw, p, name, info)
	})
	if err != nil {
		return fmt.Errorf("packing %s: %w", srcDir, err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("packing %s: %w", srcDir, err)
	}
	return gz.Close()
}

func isGitPath(rel string) bool {
	return rel == ".git" || strings.HasPrefix(rel, ".git/") || strings.Contains(rel, "/.git/") || strings.HasSuffix(rel, "/.git")
}

func addEntry(fs afero.Fs, tw *tar.Writer, p, name string, info os.FileInfo) error {
	link := ""
	if info.Mode()&os.ModeSymlink != 0 {
		if r, ok := fs.(afero.LinkReader); ok {
			target, err := r.ReadlinkIfPossible(p)
			if err != nil {
				return err
			}
			link = target
		}
	}

	hdr, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	hdr.Name = name
	if info.IsDir() {
		hdr.Name += "/"
	}

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return nil
	}

	f, err := fs.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(tw, f)
	return err
}
