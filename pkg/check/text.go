// pkg/check/text.go

package check

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	cerr "github.com/cockroachdb/errors"
	"golang.org/x/text/cases"
)

// Equals accepts a candidate equal to one of options. Unless caseSensitive
// is set both sides are compared after Unicode case folding.
func Equals(caseSensitive bool, options ...string) Check {
	want := make(map[string]struct{}, len(options))
	fold := cases.Fold()
	for _, o := range options {
		if !caseSensitive {
			o = fold.String(o)
		}
		want[o] = struct{}{}
	}

	return Func(func(candidate string) error {
		if !caseSensitive {
			// Casers are stateful; each evaluation gets its own.
			candidate = cases.Fold().String(candidate)
		}
		if _, ok := want[candidate]; ok {
			return nil
		}
		return Reject("")
	})
}

// Matches accepts a candidate that re matches in full. re is re-anchored at
// both ends, so a pattern that would only find a substring rejects.
func Matches(re *regexp.Regexp) Check {
	return anchored(regexp.MustCompile(anchor(re.String())))
}

// MatchPattern is Matches for a pattern literal. An invalid pattern is a
// programming error and panics.
func MatchPattern(pattern string) Check {
	c, err := CompilePattern(pattern)
	if err != nil {
		panic(err)
	}
	return c
}

// CompilePattern is MatchPattern for patterns that come from configuration.
func CompilePattern(pattern string) (Check, error) {
	re, err := regexp.Compile(anchor(pattern))
	if err != nil {
		return nil, cerr.WithHint(
			cerr.Wrapf(err, "compile pattern %q", pattern),
			"patterns use RE2 syntax, see https://github.com/google/re2/wiki/Syntax",
		)
	}
	return anchored(re), nil
}

func anchor(pattern string) string {
	return `^(?:` + pattern + `)$`
}

func anchored(re *regexp.Regexp) Check {
	return Func(func(candidate string) error {
		if re.MatchString(candidate) {
			return nil
		}
		return Reject("")
	})
}

// Length accepts a candidate of exactly n characters. As with a regular
// expression dot, a newline does not count as a character.
func Length(n int) Check {
	if n < 0 {
		panic(fmt.Sprintf("check: negative length %d", n))
	}
	return Func(func(candidate string) error {
		if !strings.Contains(candidate, "\n") && utf8.RuneCountInString(candidate) == n {
			return nil
		}
		return Reject("")
	})
}

// Charset accepts a non-empty candidate made only of characters in allowed.
// allowed is a literal set; '-' and '^' carry no special meaning.
func Charset(allowed string) Check {
	set := make(map[rune]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}

	return Func(func(candidate string) error {
		if candidate == "" {
			return Reject("")
		}
		for _, r := range candidate {
			if _, ok := set[r]; !ok {
				return Reject("")
			}
		}
		return nil
	})
}
