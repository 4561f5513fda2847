package completions

import (
	"fmt"
	"strings"
)

// Shell names a supported completion target.
type Shell string

const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

var shells = []Shell{ShellBash, ShellZsh, ShellFish, ShellPowerShell}

// Supported returns the shell names accepted by --completions.
func Supported() []string {
	out := make([]string, len(shells))
	for i, s := range shells {
		out[i] = string(s)
	}
	return out
}

// ParseShell maps a user-supplied name to a Shell. "pwsh" is accepted for
// PowerShell.
func ParseShell(name string) (Shell, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "pwsh" {
		return ShellPowerShell, true
	}
	for _, s := range shells {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

// SourceInstructions returns the line a user adds to their shell profile.
func SourceInstructions(shell Shell, bin, treePath string) string {
	switch shell {
	case ShellBash, ShellZsh:
		return fmt.Sprintf(`eval "$(%s %s --completions=%s)"`, bin, treePath, shell)
	case ShellFish:
		return fmt.Sprintf(`%s %s --completions=fish | source`, bin, treePath)
	case ShellPowerShell:
		return fmt.Sprintf(`%s %s --completions=powershell | Out-String | Invoke-Expression`, bin, treePath)
	default:
		return ""
	}
}
