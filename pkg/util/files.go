package util

import (
	"os"
	"path/filepath"
)

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// GetExtension returns the file extension
func GetExtension(path string) string {
	return filepath.Ext(path)
}

// EnsureExtension appends ext when the path has no extension yet
func EnsureExtension(path, ext string) string {
	if GetExtension(path) == "" {
		return path + ext
	}
	return path
}
