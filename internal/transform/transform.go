// Package transform provides the named string transforms applied to matched
// and unmatched spans by the rangescan command.
package transform

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/rangescan/pkg/scan"
)

// ScriptPrefix marks a transform name that refers to a script function,
// as in "lua:shout".
const ScriptPrefix = "lua:"

// Common errors.
var (
	ErrUnknown   = errors.New("unknown transform")
	ErrNoScripts = errors.New("script transform requested but no script loaded")
)

// ScriptResolver resolves a script function name to a transform.
type ScriptResolver interface {
	Func(name string) (scan.StringFunc, error)
}

// Capitalize upper-cases the first letter of each word and lower-cases the rest.
func Capitalize(s string) string {
	return cases.Title(language.Und).String(s)
}

// Upper maps s to upper case.
func Upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// Lower maps s to lower case.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Reverse reverses s one grapheme cluster at a time, so combining marks
// and emoji sequences stay attached to their base character.
func Reverse(s string) string {
	var clusters []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	for i, j := 0, len(clusters)-1; i < j; i, j = i+1, j-1 {
		clusters[i], clusters[j] = clusters[j], clusters[i]
	}
	return strings.Join(clusters, "")
}

// Redact replaces every grapheme cluster in s with an asterisk.
func Redact(s string) string {
	return strings.Repeat("*", uniseg.GraphemeClusterCount(s))
}

var builtins = map[string]scan.StringFunc{
	"identity":   nil,
	"upper":      Upper,
	"lower":      Lower,
	"capitalize": Capitalize,
	"reverse":    Reverse,
	"redact":     Redact,
}

// Names returns the built-in transform names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsScript reports whether name refers to a script function.
func IsScript(name string) bool {
	return strings.HasPrefix(name, ScriptPrefix)
}

// Lookup returns the transform registered under name.
// An empty name and "identity" both resolve to nil, which leaves spans
// unchanged. Names with ScriptPrefix are resolved through scripts.
func Lookup(name string, scripts ScriptResolver) (scan.StringFunc, error) {
	if name == "" {
		return nil, nil
	}
	if IsScript(name) {
		if scripts == nil {
			return nil, fmt.Errorf("%s: %w", name, ErrNoScripts)
		}
		return scripts.Func(strings.TrimPrefix(name, ScriptPrefix))
	}
	fn, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknown)
	}
	return fn, nil
}
