// pkg/form/answers.go

package form

import (
	"encoding/json"
	"io"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"mvdan.cc/sh/v3/syntax"
)

// Answer is the accepted value of one question.
type Answer struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Answers keeps the order in which questions were asked.
type Answers []Answer

// Get returns the value for name.
func (a Answers) Get(name string) (string, bool) {
	for _, ans := range a {
		if ans.Name == name {
			return ans.Value, true
		}
	}
	return "", false
}

// Map returns the answers keyed by question name.
func (a Answers) Map() map[string]string {
	m := make(map[string]string, len(a))
	for _, ans := range a {
		m[ans.Name] = ans.Value
	}
	return m
}

// Formats accepted by Encode.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatEnv   = "env"
	FormatShell = "sh"
)

// Formats lists the names Encode accepts.
var Formats = []string{FormatJSON, FormatYAML, FormatEnv, FormatShell}

// Encode writes the answers to w. json and yaml produce a single object
// whose keys follow the question order; env produces a dotenv file sorted by
// name; sh produces POSIX assignments in question order, for eval.
func (a Answers) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return a.encodeJSON(w)
	case FormatYAML, "yml":
		return a.encodeYAML(w)
	case FormatEnv, "dotenv":
		return a.encodeEnv(w)
	case FormatShell, "shell":
		return a.encodeShell(w)
	default:
		return cerr.WithHint(cerr.Newf("unknown output format %q", format),
			"use one of "+strings.Join(Formats, ", "))
	}
}

func (a Answers) encodeJSON(w io.Writer) error {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, ans := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		k, err := json.Marshal(ans.Name)
		if err != nil {
			return cerr.Wrap(err, "encode answer name")
		}
		v, err := json.Marshal(ans.Value)
		if err != nil {
			return cerr.Wrap(err, "encode answer value")
		}
		sb.Write(k)
		sb.WriteByte(':')
		sb.Write(v)
	}
	sb.WriteString("}\n")

	_, err := io.WriteString(w, sb.String())
	return cerr.Wrap(err, "write answers")
}

func (a Answers) encodeYAML(w io.Writer) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, ans := range a {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ans.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ans.Value},
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return cerr.Wrap(err, "encode answers")
	}
	return cerr.Wrap(enc.Close(), "flush answers")
}

func (a Answers) encodeEnv(w io.Writer) error {
	if len(a) == 0 {
		return nil
	}
	out, err := godotenv.Marshal(a.Map())
	if err != nil {
		return cerr.Wrap(err, "encode answers")
	}
	_, err = io.WriteString(w, out+"\n")
	return cerr.Wrap(err, "write answers")
}

func (a Answers) encodeShell(w io.Writer) error {
	var sb strings.Builder
	for _, ans := range a {
		if !syntax.ValidName(ans.Name) {
			return cerr.WithHint(cerr.Newf("question name %q is not a shell variable name", ans.Name),
				"use letters, digits and underscores, not starting with a digit")
		}
		quoted, err := syntax.Quote(ans.Value, syntax.LangPOSIX)
		if err != nil {
			return cerr.Wrapf(err, "quote answer %q", ans.Name)
		}
		sb.WriteString(ans.Name)
		sb.WriteByte('=')
		sb.WriteString(quoted)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return cerr.Wrap(err, "write answers")
}
