package main

import (
	"os"
	"path/filepath"
)

// defaultSourcePaths lists the locations probed, in order, when no
// source file is passed on the command line.
func defaultSourcePaths() []string {
	paths := []string{
		filepath.Join("Logs", "unity_errors.json"),
		filepath.Join("..", "Logs", "unity_errors.json"),
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, "WISP", "Logs", "unity_errors.json"))
	}

	return paths
}

// findSourceFile returns the first probed path that exists, or "".
func findSourceFile() string {
	for _, path := range defaultSourcePaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
