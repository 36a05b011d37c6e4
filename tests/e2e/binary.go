package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindProjectBinary locates the recfix binary under test. RECFIX_BINARY wins;
// otherwise bin/recfix is searched for from the working directory upwards.
func FindProjectBinary() (string, error) {
	if p := os.Getenv("RECFIX_BINARY"); p != "" {
		return filepath.Abs(p)
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, "bin", "recfix")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("recfix binary not found; build it into bin/ or set RECFIX_BINARY")
		}
		dir = parent
	}
}
