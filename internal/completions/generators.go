package completions

import (
	"fmt"
	"strings"
)

func header(comment string, shell Shell, commands []CommandInfo, opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s completion script", comment, opts.Binary, shell)
	if name := commands[0].Name; name != "" {
		fmt.Fprintf(&b, " for %s", name)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s Load with: %s\n", comment, SourceInstructions(shell, opts.Binary, opts.TreePath))
	return b.String()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// GenerateBash renders a bash completion function. The first positional word
// is the tree file; the rest are joined with '.' to select candidates.
func GenerateBash(commands []CommandInfo, opts Options) string {
	fn := "_" + identifier(opts.Binary) + "_completions"

	var b strings.Builder
	b.WriteString(header("#", ShellBash, commands, opts))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    local cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    if [[ $COMP_CWORD -le 1 ]]; then\n")
	b.WriteString("        COMPREPLY=( $(compgen -f -- \"$cur\") )\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %s -- \"$cur\") )\n", shellQuote(strings.Join(flagWords(opts.Flags), " ")))
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    local path=\"\" i\n")
	b.WriteString("    for (( i=2; i<COMP_CWORD; i++ )); do\n")
	b.WriteString("        [[ \"${COMP_WORDS[i]}\" == -* ]] && continue\n")
	b.WriteString("        path=\"${path:+$path.}${COMP_WORDS[i]}\"\n")
	b.WriteString("    done\n")
	b.WriteString("    case \"$path\" in\n")
	for _, g := range groups(commands) {
		words := make([]string, 0)
		for _, c := range candidates(commands, g) {
			words = append(words, c.word)
		}
		fmt.Fprintf(&b, "        %s) COMPREPLY=( $(compgen -W %s -- \"$cur\") ) ;;\n",
			shellQuote(g.Key()), shellQuote(strings.Join(words, " ")))
	}
	b.WriteString("        *) COMPREPLY=() ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	fmt.Fprintf(&b, "complete -o default -F %s %s\n", fn, opts.Binary)
	return b.String()
}

func zshEntry(word, desc string) string {
	entry := strings.ReplaceAll(word, ":", `\:`)
	if desc != "" {
		entry += ":" + desc
	}
	return shellQuote(entry)
}

// GenerateZsh renders a zsh completion function for compdef.
func GenerateZsh(commands []CommandInfo, opts Options) string {
	id := "_" + identifier(opts.Binary)

	var b strings.Builder
	fmt.Fprintf(&b, "#compdef %s\n", opts.Binary)
	b.WriteString(header("#", ShellZsh, commands, opts))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s() {\n", id)
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _files\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    if [[ $PREFIX == -* ]]; then\n")
	fmt.Fprintf(&b, "        %s_flags\n", id)
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    local p=\"\" w\n")
	b.WriteString("    for w in ${words[3,CURRENT-1]}; do\n")
	b.WriteString("        [[ $w == -* ]] && continue\n")
	b.WriteString("        p=\"${p:+$p.}$w\"\n")
	b.WriteString("    done\n")
	fmt.Fprintf(&b, "    %s_commands \"$p\"\n", id)
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "%s_commands() {\n", id)
	b.WriteString("    local -a cmds\n")
	b.WriteString("    case \"$1\" in\n")
	for _, g := range groups(commands) {
		var entries []string
		for _, c := range candidates(commands, g) {
			entries = append(entries, zshEntry(c.word, c.desc))
		}
		fmt.Fprintf(&b, "        %s) cmds=( %s ) ;;\n", shellQuote(g.Key()), strings.Join(entries, " "))
	}
	b.WriteString("    esac\n")
	b.WriteString("    _describe 'command' cmds\n")
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "%s_flags() {\n", id)
	b.WriteString("    local -a flags\n")
	var entries []string
	for _, f := range opts.Flags {
		for _, n := range f.Names {
			if f.HasValue {
				n += "="
			}
			entries = append(entries, zshEntry(n, f.Description))
		}
	}
	fmt.Fprintf(&b, "    flags=( %s )\n", strings.Join(entries, " "))
	b.WriteString("    _describe 'flag' flags\n")
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "compdef %s %s\n", id, opts.Binary)
	return b.String()
}

func fishQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return "'" + s + "'"
}

// GenerateFish renders fish complete directives.
func GenerateFish(commands []CommandInfo, opts Options) string {
	bin := opts.Binary
	fn := "__" + identifier(bin) + "_path_is"

	var b strings.Builder
	b.WriteString(header("#", ShellFish, commands, opts))
	b.WriteString("\n")
	fmt.Fprintf(&b, "complete -c %s -f\n\n", bin)

	fmt.Fprintf(&b, "function %s\n", fn)
	b.WriteString("    set -l tokens (commandline -opc)\n")
	b.WriteString("    if test (count $tokens) -lt 2\n")
	b.WriteString("        return 1\n")
	b.WriteString("    end\n")
	b.WriteString("    set -l parts\n")
	b.WriteString("    set -l i 0\n")
	b.WriteString("    for t in $tokens\n")
	b.WriteString("        set i (math $i + 1)\n")
	b.WriteString("        test $i -le 2; and continue\n")
	b.WriteString("        string match -q -- '-*' $t; and continue\n")
	b.WriteString("        set parts $parts $t\n")
	b.WriteString("    end\n")
	b.WriteString("    set -l joined (string join . $parts)\n")
	b.WriteString("    test \"$joined\" = \"$argv[1]\"\n")
	b.WriteString("end\n\n")

	fmt.Fprintf(&b, "complete -c %s -n 'test (count (commandline -opc)) -eq 1' -F\n", bin)
	for _, g := range groups(commands) {
		cond := fishQuote(fn + " " + fishQuote(g.Key()))
		for _, c := range candidates(commands, g) {
			fmt.Fprintf(&b, "complete -c %s -n %s -a %s", bin, cond, fishQuote(c.word))
			if c.desc != "" {
				fmt.Fprintf(&b, " -d %s", fishQuote(c.desc))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	for _, f := range opts.Flags {
		fmt.Fprintf(&b, "complete -c %s", bin)
		for _, n := range f.Names {
			switch {
			case strings.HasPrefix(n, "--"):
				fmt.Fprintf(&b, " -l %s", strings.TrimPrefix(n, "--"))
			case strings.HasPrefix(n, "-"):
				fmt.Fprintf(&b, " -s %s", strings.TrimPrefix(n, "-"))
			}
		}
		if f.HasValue {
			if len(f.Values) > 0 {
				fmt.Fprintf(&b, " -x -a %s", fishQuote(strings.Join(f.Values, " ")))
			} else {
				b.WriteString(" -r")
			}
		}
		if f.Description != "" {
			fmt.Fprintf(&b, " -d %s", fishQuote(f.Description))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// GeneratePowerShell renders a native argument completer.
func GeneratePowerShell(commands []CommandInfo, opts Options) string {
	var b strings.Builder
	b.WriteString(header("#", ShellPowerShell, commands, opts))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Register-ArgumentCompleter -Native -CommandName %s -ScriptBlock {\n", psQuote(opts.Binary))
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $tree = @{\n")
	for _, g := range groups(commands) {
		fmt.Fprintf(&b, "        %s = [ordered]@{\n", psQuote(g.Key()))
		for _, c := range candidates(commands, g) {
			desc := c.desc
			if desc == "" {
				desc = c.word
			}
			fmt.Fprintf(&b, "            %s = %s\n", psQuote(c.word), psQuote(desc))
		}
		b.WriteString("        }\n")
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $flags = [ordered]@{\n")
	for _, f := range opts.Flags {
		for _, n := range f.Names {
			if f.HasValue {
				n += "="
			}
			desc := f.Description
			if desc == "" {
				desc = n
			}
			fmt.Fprintf(&b, "        %s = %s\n", psQuote(n), psQuote(desc))
		}
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $elements = @($commandAst.CommandElements | Select-Object -Skip 2 | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    if ($wordToComplete -ne '' -and $elements.Count -gt 0) {\n")
	b.WriteString("        $elements = @($elements | Select-Object -SkipLast 1)\n")
	b.WriteString("    }\n")
	b.WriteString("    $path = (@($elements | Where-Object { -not $_.StartsWith('-') }) -join '.')\n\n")

	b.WriteString("    $source = $tree[$path]\n")
	b.WriteString("    if ($wordToComplete.StartsWith('-')) { $source = $flags }\n")
	b.WriteString("    if ($null -eq $source) { return }\n\n")

	b.WriteString("    $source.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}
