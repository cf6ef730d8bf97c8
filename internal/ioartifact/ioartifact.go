// Package ioartifact handles PDF files of records. A file belongs to a
// record when its name is the key of the record with a .pdf extension.
package ioartifact

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/papersdb/internal/iofs"
)

// Ext is the extension of artifact files.
const Ext = ".pdf"

// Path returns the location of the PDF file of a key.
func Path(root, key string) string {
	return filepath.Join(root, key+Ext)
}

// Index walks the root directory and its subdirectories and returns paths
// of PDF files named after the keys. The extension is matched ignoring
// case, the name has to be equal to a key. If several files match a key,
// the first one in lexical order wins.
func Index(root string, keys []string) (map[string]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, RootError(root, err)
	}
	if !info.IsDir() {
		return nil, RootError(root, errors.New("not a directory"))
	}

	want := make(map[string]struct{}, len(keys))
	for _, v := range keys {
		if v != "" {
			want[v] = struct{}{}
		}
	}

	res := make(map[string]string)
	if len(want) == 0 {
		return res, nil
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Cannot read path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		ext := filepath.Ext(name)
		if !strings.EqualFold(ext, Ext) {
			return nil
		}
		stem := strings.TrimSuffix(name, ext)
		if _, ok := want[stem]; !ok {
			return nil
		}
		if _, ok := res[stem]; !ok {
			res[stem] = path
		}
		return nil
	})
	if err != nil {
		return nil, RootError(root, err)
	}
	return res, nil
}

// Find returns the PDF file of a key, if there is one.
func Find(root, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	path := Path(root, key)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path, true
	}
	found, err := Index(root, []string{key})
	if err != nil {
		return "", false
	}
	path, ok := found[key]
	return path, ok
}

// Move renames a file. It refuses to overwrite an existing target.
func Move(from, to string) error {
	if from == to {
		return nil
	}
	if _, err := os.Lstat(to); err == nil {
		return ExistsError(to)
	}
	if err := os.Rename(from, to); err != nil {
		return RenameError(from, to, err)
	}
	return nil
}

// Attach copies a PDF file into the root directory under the key of a
// record. An existing file of the key is replaced only when replace is
// true. It returns the path of the copy.
func Attach(src, root, key string, replace bool) (string, error) {
	info, err := os.Stat(src)
	if err != nil {
		return "", NotFoundError(src, err)
	}
	if info.IsDir() {
		return "", NotFoundError(src, errors.New("is a directory"))
	}

	if err = os.MkdirAll(root, 0755); err != nil {
		return "", RootError(root, err)
	}

	dst := Path(root, key)
	if !replace && iofs.Exists(dst) {
		return "", ExistsError(dst)
	}

	absSrc, _ := filepath.Abs(src)
	absDst, _ := filepath.Abs(dst)
	if absSrc == absDst {
		return dst, nil
	}

	if err = iofs.CopyFile(src, dst); err != nil {
		return "", CopyError(src, dst, err)
	}
	return dst, nil
}
