package paths

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	appDirName = "crun"

	// DataDirEnv overrides the application data directory.
	DataDirEnv = "CRUN_DATA_DIR"
)

// AppDataDir returns the application data directory for logs and history.
// CRUN_DATA_DIR wins when set; otherwise os.UserConfigDir() is used:
//   - macOS: ~/Library/Application Support/crun
//   - Linux: $XDG_CONFIG_HOME/crun or ~/.config/crun
//   - Windows: %AppData%\crun
func AppDataDir() string {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		_ = os.MkdirAll(dir, 0700)
		return dir
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)
	_ = os.MkdirAll(path, 0700)

	return path
}

// LogFilePath returns the path to the application log file.
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "crun.log")
}

// HistoryDBPath returns the path to the run history database.
func HistoryDBPath() string {
	return filepath.Join(AppDataDir(), "history.db")
}

// homeToken matches ${HOME}, or $HOME not followed by a name character.
var homeToken = regexp.MustCompile(`\$\{HOME\}|\$HOME\b`)

// HomeDir returns the user's home directory, falling back to $HOME.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return os.Getenv("HOME")
	}
	return home
}

// ExpandHome replaces every $HOME or ${HOME} token and a leading ~ with the
// real home directory. A ~ that is not the first path element is left alone.
func ExpandHome(s string) string {
	if s == "" {
		return s
	}

	home := HomeDir()
	if home == "" {
		return s
	}

	s = homeToken.ReplaceAllLiteralString(s, home)

	if s == "~" {
		return home
	}
	if strings.HasPrefix(s, "~/") || strings.HasPrefix(s, `~\`) {
		return filepath.Join(home, s[2:])
	}
	return s
}
