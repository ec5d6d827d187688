package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/inq_cli"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/lineedit"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/prompt"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/rawkey"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	RegisterCommands()
	os.Exit(m.Run())
}

type result struct {
	code   int
	stdout string
	ui     string
	stderr string
}

// invoke runs inq with args, feeding keys as terminal input.
func invoke(t *testing.T, keys string, args ...string) result {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	resetFlags(RootCmd)

	var stdout, ui, stderr bytes.Buffer
	savedOut, savedUI, savedOpts := inq_cli.Stdout, inq_cli.UI, inq_cli.SessionOptions
	inq_cli.Stdout, inq_cli.UI = &stdout, &ui
	inq_cli.SessionOptions = []prompt.Option{
		prompt.WithKeys(rawkey.NewScript(keys)),
		prompt.WithKeymap(lineedit.Keymap{Confirm: '\n', Delete: 0x7f, CursorBack: '\b'}),
	}
	t.Cleanup(func() {
		inq_cli.Stdout, inq_cli.UI, inq_cli.SessionOptions = savedOut, savedUI, savedOpts
	})

	code := run(args, &stderr)
	return result{code: code, stdout: stdout.String(), ui: ui.String(), stderr: stderr.String()}
}

// resetFlags returns every flag of cmd and its children to its default, as
// RootCmd is shared between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestGet_RetriesUntilAccepted(t *testing.T) {
	r := invoke(t, "x\nab\n", "get", "Code", "--check", "length:2", "--check", "message:two chars")

	assert.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "ab\n", r.stdout)
	assert.Equal(t, "Code: x\ntwo chars\nCode: ab\n", r.ui)
}

func TestGet_PromptOnceFromFlag(t *testing.T) {
	r := invoke(t, "x\nab\n", "--prompt-once", "get", "Code", "--check", "length:2", "--check", "message:two chars")

	assert.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "Code: x\ntwo chars\nab\n", r.ui)
}

func TestGet_PromptOnceFromEnvironment(t *testing.T) {
	t.Setenv("INQ_PROMPT_ONCE", "true")
	r := invoke(t, "ab\n", "get", "Code")

	assert.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "ab\n", r.stdout)
}

func TestAsk(t *testing.T) {
	r := invoke(t, "8080\n", "ask", "Which", "port", "--check", "range:uint16:1024:65535")

	assert.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "8080\n", r.stdout)
	assert.Equal(t, "Which port?\n8080\n", r.ui)
}

func TestRead_MaskedStyle(t *testing.T) {
	r := invoke(t, "pw\n", "--style", "masked", "--mask", "#", "read")

	assert.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "pw\n", r.stdout)
	assert.Equal(t, "##\n", r.ui)
}

func TestRead_AttemptsExhausted(t *testing.T) {
	r := invoke(t, "x\ny\n", "--max-attempts", "2", "read", "--check", "length:2")

	assert.Equal(t, 2, r.code)
	assert.Empty(t, r.stdout)
	assert.Contains(t, r.stderr, "Error:")
}

func TestRead_InvalidCheck(t *testing.T) {
	r := invoke(t, "", "read", "--check", "range:int:10:1")

	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "invalid --check")
	assert.Empty(t, r.ui, "nothing is read when checks do not compile")
}

func TestInvalidSettings(t *testing.T) {
	r := invoke(t, "", "--style", "fancy", "read")

	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "invalid settings")
}

func TestConfirm(t *testing.T) {
	r := invoke(t, "xY", "confirm", "Continue")

	assert.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "yes\n", r.stdout)
	assert.Contains(t, r.ui, "Continue? [y/n] ")
}

func TestConfirm_QuietNo(t *testing.T) {
	r := invoke(t, "n", "confirm", "--quiet", "Continue")

	assert.Equal(t, 1, r.code)
	assert.Empty(t, r.stdout)
	assert.Empty(t, r.stderr)
}

func TestForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "account.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`title: New account
questions:
  - name: user
    message: Username
    checks: ["charset:abcdefghijklmnopqrstuvwxyz"]
  - name: password
    message: Password
    style: masked
  - name: admin
    message: Grant admin rights
    mode: confirm
`), 0o600))

	r := invoke(t, "Bob\nbob\nsecret\ny", "form", path)

	assert.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, `{"user":"bob","password":"secret","admin":"true"}`+"\n", r.stdout)
	assert.Contains(t, r.ui, "New account\n")
	assert.NotContains(t, r.ui, "secret")
}

func TestForm_ShellFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "name.yaml")
	require.NoError(t, os.WriteFile(path, []byte("questions:\n  - {name: who, message: Name}\n"), 0o600))

	r := invoke(t, "it's me\n", "form", path, "--format", "sh")

	assert.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "who=")
	assert.NotEqual(t, "who=it's me\n", r.stdout, "the value is quoted")
}

func TestForm_UnknownFormat(t *testing.T) {
	r := invoke(t, "", "form", "unused.yaml", "--format", "toml")

	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "toml")
}

func TestForm_MissingFile(t *testing.T) {
	r := invoke(t, "", "form", filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Equal(t, 2, r.code)
}

func TestVersion(t *testing.T) {
	r := invoke(t, "", "version")

	assert.Equal(t, 0, r.code, r.stderr)
	assert.Regexp(t, `^inq dev \(go`, r.stdout)
}

func TestGet_ClosedInput(t *testing.T) {
	r := invoke(t, "ab", "get", "Code", "--check", "length:3")

	assert.Equal(t, 1, r.code)
	assert.Empty(t, r.stdout)
	assert.Contains(t, r.stderr, "input ended unexpectedly")
}
