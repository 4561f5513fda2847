package completions

import (
	"os"
	"path/filepath"
)

const fallbackBinary = "crun"

// BinaryName returns the name the running executable was installed under.
func BinaryName() string {
	exe, err := os.Executable()
	if err != nil {
		if len(os.Args) > 0 && os.Args[0] != "" {
			return filepath.Base(os.Args[0])
		}
		return fallbackBinary
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	name := filepath.Base(exe)
	if name == "" || name == "." {
		return fallbackBinary
	}
	return name
}
