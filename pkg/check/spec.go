// pkg/check/spec.go

package check

import (
	"fmt"
	"strconv"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
)

// Spec is the declarative form of a Check, as written in form files and on
// the command line. Exactly one predicate field must be set; Message, when
// present, replaces the rejection text.
type Spec struct {
	Equals        []string   `yaml:"equals,omitempty" json:"equals,omitempty"`
	CaseSensitive bool       `yaml:"case_sensitive,omitempty" json:"case_sensitive,omitempty"`
	Matches       string     `yaml:"matches,omitempty" json:"matches,omitempty"`
	Length        *int       `yaml:"length,omitempty" json:"length,omitempty"`
	Charset       string     `yaml:"charset,omitempty" json:"charset,omitempty"`
	Numeric       string     `yaml:"numeric,omitempty" json:"numeric,omitempty"`
	Range         *RangeSpec `yaml:"range,omitempty" json:"range,omitempty"`
	Not           *Spec      `yaml:"not,omitempty" json:"not,omitempty"`
	AnyOf         []Spec     `yaml:"any_of,omitempty" json:"any_of,omitempty"`
	Message       string     `yaml:"message,omitempty" json:"message,omitempty"`
}

// RangeSpec holds the arguments of a range check.
type RangeSpec struct {
	Type string `yaml:"type" json:"type"`
	Min  string `yaml:"min" json:"min"`
	Max  string `yaml:"max" json:"max"`
}

// Build compiles s into a Check.
func (s Spec) Build() (Check, error) {
	c, err := s.predicate()
	if err != nil {
		return nil, err
	}
	if s.Message != "" {
		c = WithMessage(c, s.Message)
	}
	return c, nil
}

func (s Spec) predicate() (Check, error) {
	set := s.setFields()
	switch {
	case len(set) == 0:
		return nil, cerr.WithHint(cerr.New("check has no predicate"),
			"set one of equals, matches, length, charset, numeric, range, not, any_of")
	case len(set) > 1:
		return nil, cerr.Newf("check sets more than one predicate: %s", strings.Join(set, ", "))
	}
	if s.CaseSensitive && s.Equals == nil {
		return nil, cerr.New("case_sensitive only applies to equals")
	}

	switch {
	case s.Equals != nil:
		return Equals(s.CaseSensitive, s.Equals...), nil

	case s.Matches != "":
		return CompilePattern(s.Matches)

	case s.Length != nil:
		if *s.Length < 0 {
			return nil, cerr.Newf("length must not be negative, got %d", *s.Length)
		}
		return Length(*s.Length), nil

	case s.Charset != "":
		return Charset(s.Charset), nil

	case s.Numeric != "":
		kind, err := ParseKind(s.Numeric)
		if err != nil {
			return nil, err
		}
		return NumericKind(kind)

	case s.Range != nil:
		kind, err := ParseKind(s.Range.Type)
		if err != nil {
			return nil, err
		}
		return RangeKind(kind, s.Range.Min, s.Range.Max)

	case s.Not != nil:
		inner, err := s.Not.Build()
		if err != nil {
			return nil, cerr.Wrap(err, "not")
		}
		return Not(inner), nil

	default:
		inner, err := BuildAll(s.AnyOf)
		if err != nil {
			return nil, cerr.Wrap(err, "any_of")
		}
		return AnyOf(inner...), nil
	}
}

func (s Spec) setFields() []string {
	var set []string
	if s.Equals != nil {
		set = append(set, "equals")
	}
	if s.Matches != "" {
		set = append(set, "matches")
	}
	if s.Length != nil {
		set = append(set, "length")
	}
	if s.Charset != "" {
		set = append(set, "charset")
	}
	if s.Numeric != "" {
		set = append(set, "numeric")
	}
	if s.Range != nil {
		set = append(set, "range")
	}
	if s.Not != nil {
		set = append(set, "not")
	}
	if s.AnyOf != nil {
		set = append(set, "any_of")
	}
	return set
}

// String renders s in the text form accepted by ParseSpec.
func (s Spec) String() string {
	var out string
	switch {
	case s.Equals != nil && s.CaseSensitive:
		out = "equals-cs:" + strings.Join(s.Equals, ",")
	case s.Equals != nil:
		out = "equals:" + strings.Join(s.Equals, ",")
	case s.Matches != "":
		out = "matches:" + s.Matches
	case s.Length != nil:
		out = "length:" + strconv.Itoa(*s.Length)
	case s.Charset != "":
		out = "charset:" + s.Charset
	case s.Numeric != "":
		out = "numeric:" + s.Numeric
	case s.Range != nil:
		out = fmt.Sprintf("range:%s:%s:%s", s.Range.Type, s.Range.Min, s.Range.Max)
	case s.Not != nil:
		out = "not:" + s.Not.String()
	case s.AnyOf != nil:
		parts := make([]string, len(s.AnyOf))
		for i, inner := range s.AnyOf {
			parts[i] = inner.String()
		}
		out = "any:" + strings.Join(parts, anySeparator)
	default:
		out = "<empty>"
	}
	if s.Message != "" {
		out += " (message: " + s.Message + ")"
	}
	return out
}

const anySeparator = "||"

// ParseSpec reads one check in text form:
//
//	equals:y,n            case-insensitive equality
//	equals-cs:A,b         case-sensitive equality
//	matches:^[a-z]+$      whole-string pattern
//	length:3              exact length
//	charset:abc           characters drawn from a set
//	numeric:int           numeric literal of a Go type
//	range:int:1:10        inclusive numeric range
//	not:<check>           complement
//	any:<check>||<check>  at least one
//
// The parsed Spec is validated by building it once.
func ParseSpec(text string) (Spec, error) {
	kind, arg, ok := strings.Cut(text, ":")
	if !ok {
		return Spec{}, cerr.WithHint(cerr.Newf("check %q has no argument", text),
			"write checks as kind:argument, e.g. length:3")
	}

	var s Spec
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "equals":
		s.Equals = strings.Split(arg, ",")
	case "equals-cs":
		s.Equals = strings.Split(arg, ",")
		s.CaseSensitive = true
	case "matches":
		s.Matches = arg
	case "length":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return Spec{}, cerr.Wrapf(err, "check %q", text)
		}
		s.Length = &n
	case "charset":
		s.Charset = arg
	case "numeric":
		s.Numeric = arg
	case "range":
		parts := strings.SplitN(arg, ":", 3)
		if len(parts) != 3 {
			return Spec{}, cerr.WithHint(cerr.Newf("check %q needs type, minimum and maximum", text),
				"e.g. range:int:1:10")
		}
		s.Range = &RangeSpec{Type: parts[0], Min: parts[1], Max: parts[2]}
	case "not":
		inner, err := ParseSpec(arg)
		if err != nil {
			return Spec{}, cerr.Wrapf(err, "check %q", text)
		}
		s.Not = &inner
	case "any":
		for _, part := range strings.Split(arg, anySeparator) {
			inner, err := ParseSpec(part)
			if err != nil {
				return Spec{}, cerr.Wrapf(err, "check %q", text)
			}
			s.AnyOf = append(s.AnyOf, inner)
		}
	default:
		return Spec{}, cerr.Newf("unknown check kind %q in %q", kind, text)
	}

	if _, err := s.Build(); err != nil {
		return Spec{}, cerr.Wrapf(err, "check %q", text)
	}
	return s, nil
}

// ParseSpecs parses a list of text checks. An entry "message:<text>" sets
// the rejection message of the entry before it. Every malformed entry is
// reported, not only the first.
func ParseSpecs(texts []string) ([]Spec, error) {
	var (
		specs  []Spec
		result *multierror.Error
	)
	for i, text := range texts {
		if msg, ok := strings.CutPrefix(text, "message:"); ok {
			if len(specs) == 0 {
				result = multierror.Append(result, cerr.Newf("entry %d: message %q has no check to apply to", i+1, msg))
				continue
			}
			specs[len(specs)-1].Message = msg
			continue
		}

		s, err := ParseSpec(text)
		if err != nil {
			result = multierror.Append(result, cerr.Wrapf(err, "entry %d", i+1))
			continue
		}
		specs = append(specs, s)
	}
	return specs, result.ErrorOrNil()
}

// BuildAll compiles every spec, reporting all failures together.
func BuildAll(specs []Spec) ([]Check, error) {
	var (
		checks = make([]Check, 0, len(specs))
		result *multierror.Error
	)
	for i, s := range specs {
		c, err := s.Build()
		if err != nil {
			result = multierror.Append(result, cerr.Wrapf(err, "check %d", i+1))
			continue
		}
		checks = append(checks, c)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return checks, nil
}
