// Package template implements the two-phase placeholder engine: stored
// user variables ({{NAME}}) and faker placeholders ({{f:kind}}).
package template

import (
	"regexp"
	"strings"

	"github.com/studiowebux/restcli-core/internal/model"
)

// placeholderPattern matches {{ NAME }} allowing optional interior
// whitespace. NAME is [A-Za-z0-9_:.-]+ per spec's resolved Open Question.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_:.\-]+)\s*\}\}`)

const fakerPrefix = "f:"

// isFaker reports whether a placeholder NAME denotes a faker reference.
func isFaker(name string) bool {
	return len(name) > len(fakerPrefix) && strings.EqualFold(name[:len(fakerPrefix)], fakerPrefix)
}

// FindVariables returns the unique user-variable names referenced by
// template, in order of first appearance. Faker placeholders are excluded.
func FindVariables(tmpl string) ([]string, error) {
	if err := checkSyntax(tmpl); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(tmpl, -1) {
		name := m[1]
		if isFaker(name) {
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names, nil
}

// HasVariables reports whether template contains any placeholder at all
// (user variable or faker).
func HasVariables(tmpl string) bool {
	return placeholderPattern.MatchString(tmpl)
}

// SubstituteStrict expands every placeholder in template, left to right.
// The first user variable missing from vars produces a
// *model.MissingVariableError naming it; the first faker placeholder with
// an unrecognized kind produces a *model.UnknownFakerKindError. Both
// substitution and error detection happen in a single left-to-right pass,
// matching spec's "error on first unresolved name" contract exactly.
func SubstituteStrict(tmpl string, vars map[string]string) (string, error) {
	return substitute(tmpl, vars, false)
}

// SubstituteLenient behaves like SubstituteStrict except missing user
// variables expand to the empty string instead of erroring.
func SubstituteLenient(tmpl string, vars map[string]string) (string, error) {
	return substitute(tmpl, vars, true)
}

func substitute(tmpl string, vars map[string]string, lenient bool) (string, error) {
	if err := checkSyntax(tmpl); err != nil {
		return "", err
	}
	matches := placeholderPattern.FindAllStringSubmatchIndex(tmpl, -1)
	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		nameStart, nameEnd := m[2], m[3]
		name := tmpl[nameStart:nameEnd]
		b.WriteString(tmpl[last:start])
		if isFaker(name) {
			kind := name[len(fakerPrefix):]
			val, err := generate(kind)
			if err != nil {
				return "", err
			}
			b.WriteString(val)
		} else if val, ok := vars[name]; ok {
			b.WriteString(val)
		} else if lenient {
			// missing user variable expands to empty string
		} else {
			return "", &model.MissingVariableError{Name: name}
		}
		last = end
	}
	b.WriteString(tmpl[last:])
	return b.String(), nil
}

// checkSyntax rejects an unclosed "{{" without a matching "}}". A literal
// "{" not followed by another "{", and a "}}" without an opening "{{", are
// both passed through untouched per spec.
func checkSyntax(tmpl string) error {
	depth := 0
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] == '{' && i+1 < len(tmpl) && tmpl[i+1] == '{' {
			depth++
			i++
			continue
		}
		if tmpl[i] == '}' && i+1 < len(tmpl) && tmpl[i+1] == '}' && depth > 0 {
			depth--
			i++
		}
	}
	if depth > 0 {
		return &model.TemplateSyntaxError{Template: tmpl, Reason: "unclosed '{{' without matching '}}'"}
	}
	return nil
}
