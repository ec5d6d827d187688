package form

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/check"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/inqerr"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/lineedit"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/prompt"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/rawkey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const accountForm = `
title: New account
questions:
  - name: user
    message: Username
    checks:
      - "charset:abcdefghijklmnopqrstuvwxyz"
      - "message:lowercase letters only"
  - name: pin
    message: PIN
    style: masked
    checks:
      - length: 4
        message: four digits
      - numeric: uint
  - name: shell
    message: Preferred shell
    mode: ask
    checks:
      - equals: [bash, zsh, fish]
  - name: admin
    message: Grant admin rights
    mode: confirm
`

var posixKeys = lineedit.Keymap{Confirm: '\n', Delete: 0x7f, CursorBack: '\b'}

func newPrompter(keys string) (*prompt.Prompter, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	p := prompt.New(
		prompt.WithKeys(rawkey.NewScript(keys)),
		prompt.WithOutput(out, errOut),
		prompt.WithKeymap(posixKeys),
	)
	return p, out, errOut
}

func TestParse(t *testing.T) {
	t.Parallel()

	f, err := Parse([]byte(accountForm))
	require.NoError(t, err)

	assert.Equal(t, "New account", f.Title)
	require.Len(t, f.Questions, 4)
	assert.Equal(t, lineedit.Masked, f.Questions[1].style)
	assert.Len(t, f.Questions[0].checks, 1)
	assert.Len(t, f.Questions[1].checks, 2)
	assert.Equal(t, "lowercase letters only", check.MessageOf(f.Questions[0].checks[0].Evaluate("Bob")))
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "not_yaml", doc: "questions: [", wantErr: "YAML"},
		{name: "no_questions", doc: "title: empty\n", wantErr: "Questions"},
		{name: "missing_message", doc: "questions:\n  - name: a\n", wantErr: "Message"},
		{name: "bad_style", doc: "questions:\n  - name: a\n    message: A\n    style: fancy\n", wantErr: "Style"},
		{name: "bad_mode", doc: "questions:\n  - name: a\n    message: A\n    mode: shout\n", wantErr: "Mode"},
		{name: "duplicate_name", doc: "questions:\n  - {name: a, message: A}\n  - {name: a, message: B}\n", wantErr: "reuses name"},
		{name: "bad_check", doc: "questions:\n  - name: a\n    message: A\n    checks: [\"length:x\"]\n", wantErr: "length:x"},
		{name: "orphan_message", doc: "questions:\n  - name: a\n    message: A\n    checks: [\"message:hi\"]\n", wantErr: "no check to apply to"},
		{name: "confirm_with_checks", doc: "questions:\n  - name: a\n    message: A\n    mode: confirm\n    checks: [\"length:1\"]\n", wantErr: "confirm"},
		{name: "bad_requires", doc: "requires: \"~~1\"\nquestions:\n  - {name: a, message: A}\n", wantErr: "requires"},
		{name: "two_predicates", doc: "questions:\n  - name: a\n    message: A\n    checks:\n      - {length: 1, charset: ab}\n", wantErr: "more than one"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, 2, inqerr.GetExitCode(err))
		})
	}
}

func TestSupports(t *testing.T) {
	t.Parallel()

	f, err := Parse([]byte("requires: \">= 1.2, < 2\"\nquestions:\n  - {name: a, message: A}\n"))
	require.NoError(t, err)

	assert.NoError(t, f.Supports("1.4.0"))
	assert.NoError(t, f.Supports("dev"), "development builds are not constrained")

	err = f.Supports("2.0.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ">= 1.2, < 2")
	assert.Equal(t, 2, inqerr.GetExitCode(err))

	unconstrained, err := Parse([]byte("questions:\n  - {name: a, message: A}\n"))
	require.NoError(t, err)
	assert.NoError(t, unconstrained.Supports("0.0.1"))
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "form.yaml")
	require.NoError(t, os.WriteFile(path, []byte(accountForm), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Questions, 4)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, 2, inqerr.GetExitCode(err))
}

func TestRun(t *testing.T) {
	t.Parallel()
	f, err := Parse([]byte(accountForm))
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	keys := "Bob\nbob\n" + "12\n1234\n" + "ksh\nzsh\n" + "y"
	p, out, errOut := newPrompter(keys)

	answers, err := f.Run(context.Background(), p, zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, Answers{
		{Name: "user", Value: "bob"},
		{Name: "pin", Value: "1234"},
		{Name: "shell", Value: "zsh"},
		{Name: "admin", Value: "true"},
	}, answers)

	assert.Equal(t, "lowercase letters only\nfour digits\n"+check.DefaultMessage+"\n", errOut.String())
	assert.Contains(t, out.String(), "Username: Bob\nUsername: bob\n")
	assert.Contains(t, out.String(), "PIN: **\nPIN: ****\n")
	assert.Contains(t, out.String(), "Preferred shell?\nksh\nzsh\n")
	assert.NotContains(t, out.String(), "1234")

	for _, entry := range logs.FilterMessage("Question answered").All() {
		if entry.ContextMap()["question"] == "pin" {
			assert.NotContains(t, entry.ContextMap(), "value")
		}
	}
}

func TestRun_PromptOnceOverride(t *testing.T) {
	t.Parallel()
	f, err := Parse([]byte("questions:\n  - name: n\n    message: Number\n    prompt_once: true\n    checks: [\"numeric:int\"]\n"))
	require.NoError(t, err)
	p, out, _ := newPrompter("x\n5\n")

	answers, err := f.Run(context.Background(), p, nil)

	require.NoError(t, err)
	assert.Equal(t, "Number: x\n5\n", out.String())
	v, ok := answers.Get("n")
	assert.True(t, ok)
	assert.Equal(t, "5", v)
}

func TestRun_StopsAtCancelledContext(t *testing.T) {
	t.Parallel()
	f, err := Parse([]byte(accountForm))
	require.NoError(t, err)
	p, _, _ := newPrompter("bob\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	answers, err := f.Run(ctx, p, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, answers)
}
