// Package archive reads and writes the zip archives used as PyHx packages.
//
// Entries are stored relative to the packed directory, so the directory's
// own name never appears inside the archive. Unpack refuses entries that
// would land outside the destination directory.
package archive

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

var ErrUnsafePath = errors.New("archive entry escapes destination")

// Pack writes the contents of srcDir into a new zip archive at dst. A
// partially written archive is removed on failure.
func Pack(srcDir, dst string) (err error) {
	absSrc, err := filepath.Abs(srcDir)
	if err != nil {
		return fmt.Errorf("resolve source: %w", err)
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}

	out, err := os.Create(absDst)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(absDst)
		}
	}()

	zw := zip.NewWriter(out)

	walkErr := filepath.WalkDir(absSrc, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == absSrc || path == absDst {
			return nil
		}

		rel, err := filepath.Rel(absSrc, path)
		if err != nil {
			return fmt.Errorf("relative path: %w", err)
		}
		name := filepath.ToSlash(rel)

		if d.IsDir() {
			_, err := zw.Create(name + "/")
			return err
		}

		info, err := entryInfo(path, d)
		if err != nil || info == nil {
			return err
		}
		return addFile(zw, path, name, info)
	})

	closeErr := zw.Close()
	fileErr := out.Close()

	switch {
	case walkErr != nil:
		return fmt.Errorf("pack %s: %w", srcDir, walkErr)
	case closeErr != nil:
		return fmt.Errorf("finalize archive: %w", closeErr)
	case fileErr != nil:
		return fmt.Errorf("close archive: %w", fileErr)
	}
	return nil
}

// entryInfo returns the info of the file to store for d, or nil when d is
// skipped. Symlinks to regular files are stored with the target's content;
// other non-regular entries, including links to directories, are skipped.
func entryInfo(path string, d fs.DirEntry) (fs.FileInfo, error) {
	switch {
	case d.Type().IsRegular():
		return d.Info()
	case d.Type()&fs.ModeSymlink != 0:
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, nil
			}
			return nil, err
		}
		if !info.Mode().IsRegular() {
			return nil, nil
		}
		return info, nil
	default:
		return nil, nil
	}
}

func addFile(zw *zip.Writer, path, name string, info fs.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("file header %s: %w", name, err)
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}

// Unpack extracts the archive at src into destDir, which must exist.
func Unpack(src, destDir string) error {
	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}

	zr, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	for _, file := range zr.File {
		target, err := safeJoin(absDest, file.Name)
		if err != nil {
			return err
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", file.Name, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create parent of %s: %w", file.Name, err)
		}
		if err := extractFile(file, target); err != nil {
			return fmt.Errorf("extract %s: %w", file.Name, err)
		}
	}
	return nil
}

func safeJoin(root, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}

	target := filepath.Join(root, filepath.FromSlash(name))
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return target, nil
}

func extractFile(file *zip.File, destPath string) (err error) {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	mode := file.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, rc)
	return err
}
