package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/footprint-tools/crun/internal/filesearch"
)

const (
	affirmativeShort = "y"
	affirmativeLong  = "yes"
	negativeShort    = "n"
	negativeLong     = "no"

	maxListedFiles = 20
)

// Line asks questions one line at a time. It is used when stdin is not a
// terminal.
type Line struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewLine constructs a prompter reading answers from input and writing
// questions to output.
func NewLine(input io.Reader, output io.Writer) *Line {
	return &Line{reader: bufio.NewReader(input), writer: output}
}

// Reader returns the buffered input. Anything that reads stdin after a
// prompt must read through it, as the buffer may hold lines not yet asked for.
func (p *Line) Reader() io.Reader {
	return p.reader
}

func (p *Line) printf(format string, args ...any) {
	if p.writer != nil {
		_, _ = fmt.Fprintf(p.writer, format, args...)
	}
}

func (p *Line) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return strings.TrimSpace(line), nil
			}
			return "", ErrCancelled
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *Line) Text(message, def string, required bool) (string, error) {
	for {
		if def != "" {
			p.printf("%s [%s]: ", message, def)
		} else {
			p.printf("%s: ", message)
		}

		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = def
		}
		if answer == "" && required {
			p.printf("A value is required.\n")
			continue
		}
		return answer, nil
	}
}

func (p *Line) listChoices(message string, choices []Choice) {
	p.printf("%s\n", message)
	for i, c := range choices {
		if c.Description != "" {
			p.printf("  %d) %s - %s\n", i+1, c.Label, c.Description)
		} else {
			p.printf("  %d) %s\n", i+1, c.Label)
		}
	}
}

func (p *Line) Select(message string, choices []Choice, def string) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("select %q: no choices", message)
	}
	p.listChoices(message, choices)

	for {
		if def != "" {
			p.printf("Choose [%s]: ", def)
		} else {
			p.printf("Choose: ")
		}

		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		if answer == "" && def != "" {
			return def, nil
		}
		if i, ok := parseChoice(answer, choices); ok {
			return choices[i].Value, nil
		}
		p.printf("Invalid choice %q.\n", answer)
	}
}

func (p *Line) MultiSelect(message string, choices []Choice, defaults []string) ([]string, error) {
	p.listChoices(message, choices)

	for {
		if len(defaults) > 0 {
			p.printf("Choose, comma-separated [%s]: ", strings.Join(defaults, ","))
		} else {
			p.printf("Choose, comma-separated (empty for none): ")
		}

		answer, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if answer == "" {
			return append([]string(nil), defaults...), nil
		}

		picked := make(map[int]bool)
		valid := true
		for _, tok := range strings.Split(answer, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			i, ok := parseChoice(tok, choices)
			if !ok {
				p.printf("Invalid choice %q.\n", tok)
				valid = false
				break
			}
			picked[i] = true
		}
		if !valid {
			continue
		}

		var out []string
		for i, c := range choices {
			if picked[i] {
				out = append(out, c.Value)
			}
		}
		return out, nil
	}
}

func (p *Line) Confirm(message string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		p.printf("%s [%s]: ", message, hint)
		answer, err := p.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case affirmativeShort, affirmativeLong:
			return true, nil
		case negativeShort, negativeLong:
			return false, nil
		}
		p.printf("Please answer yes or no.\n")
	}
}

func (p *Line) FilePick(message string, candidates []string) (string, bool, error) {
	if len(candidates) == 0 {
		p.printf("%s\n  no matching files\n", message)
		return "", false, nil
	}

	query := ""
	for {
		matches := filesearch.Filter(query, candidates)
		p.printf("%s\n", message)
		for i, m := range matches {
			if i == maxListedFiles {
				p.printf("  ... %d more, type to filter\n", len(matches)-maxListedFiles)
				break
			}
			p.printf("  %d) %s\n", i+1, m)
		}
		p.printf("Number, text to filter, or empty to skip: ")

		answer, err := p.readLine()
		if err != nil {
			return "", false, err
		}
		if answer == "" {
			return "", false, nil
		}
		if n, err := strconv.Atoi(answer); err == nil {
			if n >= 1 && n <= len(matches) && n <= maxListedFiles {
				return matches[n-1], true, nil
			}
			p.printf("Invalid choice %q.\n", answer)
			continue
		}
		query = answer
	}
}

// parseChoice accepts a 1-based index, a value or a label.
func parseChoice(answer string, choices []Choice) (int, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(choices) {
			return n - 1, true
		}
		return 0, false
	}
	if i := indexOfValue(choices, answer); i >= 0 {
		return i, true
	}
	for i, c := range choices {
		if strings.EqualFold(c.Label, answer) {
			return i, true
		}
	}
	return 0, false
}
