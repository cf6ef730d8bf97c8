package iofs

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gnames/gnsys"
	"github.com/gnames/papersdb/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

// BackupSuffix is appended to the name of a store file to get its backup.
const BackupSuffix = ".backup"

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	if err := gnsys.MakeDir(dir); err != nil {
		return CreateDirError(dir, err)
	}
	// MakeDir returns nil when a parent of dir is a regular file
	info, err := os.Stat(dir)
	if err != nil {
		return CreateDirError(dir, err)
	}
	if !info.IsDir() {
		return CreateDirError(dir, fmt.Errorf("%s is not a directory", dir))
	}
	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	// Write embedded config.yaml to the config directory
	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// BackupFile copies a file next to itself with BackupSuffix added to the
// name. An older backup is overwritten. It returns the path of the copy.
func BackupFile(path string) (string, error) {
	res := path + BackupSuffix
	if err := CopyFile(path, res); err != nil {
		return "", err
	}
	return res, nil
}

// CopyFile copies src to dst keeping permissions and modification time
// of src. The directory of dst must exist.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return ReadFileError(src, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return ReadFileError(src, err)
	}
	defer in.Close()

	tmp := dst + ".tmp"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return CopyFileError(dst, err)
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return CopyFileError(dst, err)
	}
	if err = out.Close(); err != nil {
		os.Remove(tmp)
		return CopyFileError(dst, err)
	}

	if err = os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return CopyFileError(dst, err)
	}

	mtime := info.ModTime()
	_ = os.Chtimes(dst, mtime, mtime)
	return nil
}

// Exists checks if a file or a directory exists.
func Exists(path string) bool {
	_, err := os.Stat(filepath.Clean(path))
	return err == nil
}
