package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/footprint-tools/crun/internal/app"
	"github.com/footprint-tools/crun/internal/dispatchers"
	"github.com/footprint-tools/crun/internal/log"
	"github.com/footprint-tools/crun/internal/paths"
	"github.com/footprint-tools/crun/internal/ui/style"
)

// LogLevelEnv enables the debug log when --log-level is not given.
const LogLevelEnv = "CRUN_LOG_LEVEL"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	rawFlags, commands := extractFlagsAndCommands(args)
	flags := dispatchers.NewParsedFlags(rawFlags)

	// Enable styling if stdout is a terminal and --no-color is not set
	enableColor := term.IsTerminal(int(os.Stdout.Fd())) && !flags.Has("--no-color")
	style.Init(enableColor)

	if err := dispatchers.ValidateFlags(flags); err != nil {
		fmt.Fprintln(os.Stderr, style.Error(err.Error()))
		return app.ExitCode(err)
	}

	initLogging(flags.String("--log-level", os.Getenv(LogLevelEnv)))
	defer func() { _ = log.Close() }()
	log.Debug("crun %s: args=%q", app.Version, args)

	opts := app.DefaultOptions()
	opts.PagerDisabled = flags.Has("--no-pager")

	a := app.New(opts)
	defer func() { _ = app.Close(a) }()

	code, err := a.Run(context.Background(), commands, flags)
	if err != nil {
		log.Debug("crun: %v", err)
		if app.ShouldReport(err) {
			fmt.Fprintln(os.Stderr, style.Error(err.Error()))
		}
		return app.ExitCode(err)
	}
	return code
}

func initLogging(level string) {
	if level == "" {
		return
	}
	if err := log.Init(paths.LogFilePath(), log.ParseLevel(level)); err != nil {
		fmt.Fprintln(os.Stderr, style.Warning("crun: logging disabled: "+err.Error()))
	}
}

// extractFlagsAndCommands splits args into flags and positional tokens.
// A value flag followed by a separate value is joined as --flag=value, and
// everything after "--" is positional.
func extractFlagsAndCommands(args []string) ([]string, []string) {
	flags := make([]string, 0)
	commands := make([]string, 0)

	for i := 0; i < len(args); i++ {
		a := args[i]

		if a == "--" {
			commands = append(commands, args[i+1:]...)
			break
		}

		if len(a) < 2 || a[0] != '-' {
			commands = append(commands, a)
			continue
		}

		if !strings.Contains(a, "=") && takesValue(a) && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			flags = append(flags, a+"="+args[i+1])
			i++
			continue
		}

		flags = append(flags, a)
	}

	return flags, commands
}

func takesValue(name string) bool {
	for _, d := range dispatchers.GlobalFlags {
		for _, n := range d.Names {
			if n == name {
				return d.TakesValue()
			}
		}
	}
	return false
}
