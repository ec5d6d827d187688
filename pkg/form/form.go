// pkg/form/form.go

// Package form runs a sequence of questions described in a YAML file.
//
//	title: New account
//	questions:
//	  - name: user
//	    message: Username
//	    checks: ["charset:abcdefghijklmnopqrstuvwxyz", "message:lowercase letters only"]
//	  - name: password
//	    message: Password
//	    style: masked
//	  - name: admin
//	    message: Grant admin rights
//	    mode: confirm
package form

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/check"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inqerr"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/lineedit"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/prompt"
	cerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-version"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Modes
const (
	ModeGet     = "get"
	ModeAsk     = "ask"
	ModeConfirm = "confirm"
)

// Form is a parsed, validated questionnaire.
type Form struct {
	Title string `yaml:"title,omitempty"`
	// Requires is a version constraint on inq, e.g. ">= 1.2, < 2".
	Requires  string     `yaml:"requires,omitempty"`
	Questions []Question `yaml:"questions" validate:"required,min=1,dive"`

	requires version.Constraints
}

// Question is one prompt of a Form.
type Question struct {
	Name    string `yaml:"name" validate:"required"`
	Message string `yaml:"message" validate:"required"`
	// Style is basic, masked or instant. Empty means basic.
	Style string `yaml:"style,omitempty" validate:"omitempty,oneof=basic masked instant"`
	// Mode is get, ask or confirm. Empty means get.
	Mode string `yaml:"mode,omitempty" validate:"omitempty,oneof=get ask confirm"`
	// PromptOnce overrides the mode's own policy when set.
	PromptOnce *bool        `yaml:"prompt_once,omitempty"`
	Checks     []CheckEntry `yaml:"checks,omitempty"`

	style  lineedit.Style
	checks []check.Check
}

// CheckEntry is either a text check ("length:3", "message:...") or a
// mapping decoded into a check.Spec.
type CheckEntry struct {
	Text string
	Spec check.Spec
}

// UnmarshalYAML accepts a scalar or a mapping.
func (e *CheckEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Text = node.Value
		return nil
	}
	return node.Decode(&e.Spec)
}

// MarshalYAML writes the entry back in the form it was read.
func (e CheckEntry) MarshalYAML() (any, error) {
	if e.Text != "" {
		return e.Text, nil
	}
	return e.Spec, nil
}

// Load reads and parses a form file.
func Load(path string) (*Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, inqerr.NewConfigError("cannot read form "+path, err,
			"Check the path and file permissions")
	}
	f, err := Parse(data)
	if err != nil {
		return nil, cerr.Wrapf(err, "form %s", path)
	}
	return f, nil
}

// Parse decodes a form, checks its structure and compiles every check.
func Parse(data []byte) (*Form, error) {
	var f Form
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, inqerr.NewConfigError("form is not valid YAML", inqerr.WrapFormError(err))
	}
	if err := f.compile(); err != nil {
		return nil, inqerr.NewConfigError("form is invalid", inqerr.WrapFormError(err),
			"Each question needs a unique name and a message",
			"Check kinds are equals, equals-cs, matches, length, charset, numeric, range, not, any")
	}
	return &f, nil
}

func (f *Form) compile() error {
	var result *multierror.Error

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !cerr.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			result = multierror.Append(result, cerr.Newf("%s fails %q", fe.Namespace(), fe.Tag()))
		}
		return result
	}

	if f.Requires != "" {
		c, err := version.NewConstraint(f.Requires)
		if err != nil {
			result = multierror.Append(result, cerr.Wrapf(err, "requires %q", f.Requires))
		}
		f.requires = c
	}

	seen := make(map[string]int, len(f.Questions))
	for i := range f.Questions {
		q := &f.Questions[i]
		if prev, ok := seen[q.Name]; ok {
			result = multierror.Append(result, cerr.Newf("question %d reuses name %q from question %d", i+1, q.Name, prev+1))
		}
		seen[q.Name] = i

		if err := q.compile(); err != nil {
			result = multierror.Append(result, cerr.Wrapf(err, "question %q", q.Name))
		}
	}
	return result.ErrorOrNil()
}

// Supports reports whether an inq build of version current satisfies the
// form's requires constraint. Development builds, whose version is not a
// release number, satisfy every constraint.
func (f *Form) Supports(current string) error {
	if len(f.requires) == 0 {
		return nil
	}
	v, err := version.NewVersion(current)
	if err != nil {
		return nil
	}
	if !f.requires.Check(v) {
		return inqerr.NewConfigError(
			fmt.Sprintf("form requires inq %s, this is %s", f.Requires, current), nil,
			"Upgrade inq or relax the requires field of the form")
	}
	return nil
}

func (q *Question) compile() error {
	q.style = lineedit.Basic
	if q.Style != "" {
		s, err := lineedit.ParseStyle(q.Style)
		if err != nil {
			return err
		}
		q.style = s
	}
	if q.Mode == ModeConfirm && len(q.Checks) > 0 {
		return cerr.New("confirm questions take no checks")
	}

	specs, err := resolveEntries(q.Checks)
	if err != nil {
		return err
	}
	q.checks, err = check.BuildAll(specs)
	return err
}

// resolveEntries turns entries into specs, applying "message:" text entries
// to the entry before them.
func resolveEntries(entries []CheckEntry) ([]check.Spec, error) {
	var (
		specs  []check.Spec
		result *multierror.Error
	)
	for i, e := range entries {
		if e.Text == "" {
			specs = append(specs, e.Spec)
			continue
		}
		if msg, ok := strings.CutPrefix(e.Text, "message:"); ok {
			if len(specs) == 0 {
				result = multierror.Append(result, cerr.Newf("check %d: message %q has no check to apply to", i+1, msg))
				continue
			}
			specs[len(specs)-1].Message = msg
			continue
		}
		s, err := check.ParseSpec(e.Text)
		if err != nil {
			result = multierror.Append(result, cerr.Wrapf(err, "check %d", i+1))
			continue
		}
		specs = append(specs, s)
	}
	return specs, result.ErrorOrNil()
}

// Asker is the part of prompt.Prompter a form needs.
type Asker interface {
	Input(ctx context.Context, message string, opts prompt.Options, checks ...check.Check) (string, error)
	YesNo(ctx context.Context, question string) (bool, error)
}

var _ Asker = (*prompt.Prompter)(nil)

// Run asks every question in order and returns the answers in the same
// order. It stops at the first question that fails.
func (f *Form) Run(ctx context.Context, asker Asker, log *zap.Logger) (Answers, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("Form started", zap.String("title", f.Title), zap.Int("questions", len(f.Questions)))

	answers := make(Answers, 0, len(f.Questions))
	for i := range f.Questions {
		q := &f.Questions[i]

		value, err := q.ask(ctx, asker)
		if err != nil {
			log.Warn("Question not answered", zap.String("question", q.Name), zap.Error(err))
			return answers, cerr.Wrapf(err, "question %q", q.Name)
		}

		log.Debug("Question answered", q.logFields(value)...)
		answers = append(answers, Answer{Name: q.Name, Value: value})
	}

	log.Info("Form completed", zap.Int("answers", len(answers)))
	return answers, nil
}

func (q *Question) ask(ctx context.Context, asker Asker) (string, error) {
	var (
		suffix = prompt.GetSuffix
		opts   = prompt.Options{Style: q.style}
	)
	switch q.Mode {
	case ModeConfirm:
		yes, err := asker.YesNo(ctx, q.Message)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(yes), nil
	case ModeAsk:
		suffix = prompt.AskSuffix
		opts.PromptOnce = true
	}
	if q.PromptOnce != nil {
		opts.PromptOnce = *q.PromptOnce
	}
	return asker.Input(ctx, q.Message+suffix, opts, q.checks...)
}

func (q *Question) logFields(value string) []zap.Field {
	fields := []zap.Field{zap.String("question", q.Name), zap.Int("length", len(value))}
	if q.style != lineedit.Masked {
		fields = append(fields, zap.String("value", value))
	}
	return fields
}
