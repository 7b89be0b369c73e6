package storage

import (
	"os"
	"path/filepath"
)

const (
	DefaultFileName       = ".todo.json"
	DefaultSQLiteFileName = ".todo.db"
)

// DefaultPath returns the JSON store location in the user's home directory.
func DefaultPath() (string, error) {
	return homeFile(DefaultFileName)
}

func DefaultSQLitePath() (string, error) {
	return homeFile(DefaultSQLiteFileName)
}

func homeFile(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", &StorageError{Code: ErrCodeIO, Op: "resolve home directory", Err: err}
	}
	return filepath.Join(home, name), nil
}
