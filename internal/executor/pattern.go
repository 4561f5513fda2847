package executor

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// Pattern decides whether a chunk of child output fires a trigger.
// *regexp.Regexp satisfies it.
type Pattern interface {
	Match(chunk []byte) bool
	String() string
}

// Substring matches chunks containing the literal text.
type Substring string

func (s Substring) Match(chunk []byte) bool {
	return bytes.Contains(chunk, []byte(s))
}

func (s Substring) String() string {
	return string(s)
}

const regexpFlags = "gimsuy"

// ParsePattern reads /expr/flags as a regular expression and anything else
// as a substring. Flags i, m and s map to their RE2 equivalents; g, u and y
// are accepted and ignored.
func ParsePattern(s string) (Pattern, error) {
	end := strings.LastIndex(s, "/")
	if len(s) < 3 || s[0] != '/' || end < 2 {
		return Substring(s), nil
	}

	expr, flags := s[1:end], s[end+1:]
	if strings.Trim(flags, regexpFlags) != "" {
		// Something like /usr/bin: not a regexp literal.
		return Substring(s), nil
	}

	var prefix string
	for _, f := range "ims" {
		if strings.ContainsRune(flags, f) {
			prefix += string(f)
		}
	}
	if prefix != "" {
		expr = "(?" + prefix + ")" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", s, err)
	}
	return re, nil
}

// Trigger writes Input to the child's stdin the first time Pattern matches.
type Trigger struct {
	Pattern Pattern
	Input   string
}

// NewTrigger parses pattern and pairs it with input.
func NewTrigger(pattern, input string) (*Trigger, error) {
	p, err := ParsePattern(pattern)
	if err != nil {
		return nil, err
	}
	return &Trigger{Pattern: p, Input: input}, nil
}
