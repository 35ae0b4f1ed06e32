package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/linevault/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runner struct {
	t    *testing.T
	base []string
}

func newRunner(t *testing.T) *runner {
	t.Helper()
	t.Setenv(config.EnvSecretKey, "")
	t.Setenv(config.EnvDatabaseDSN, "")
	return &runner{t: t, base: []string{
		"--dsn", filepath.Join(t.TempDir(), "vaults.db"),
		"--secret-key", "cli-secret",
		"--community", "10",
		"--owner", "20",
	}}
}

func (r *runner) run(stdin string, args ...string) (string, string, int) {
	r.t.Helper()
	var out, errOut bytes.Buffer
	code := Execute(context.Background(), append(args, r.base...), strings.NewReader(stdin), &out, &errOut)
	return out.String(), errOut.String(), code
}

func (r *runner) mustRun(stdin string, args ...string) string {
	r.t.Helper()
	out, errOut, code := r.run(stdin, args...)
	require.Equal(r.t, 0, code, "stderr: %s", errOut)
	return out
}

func TestCLI_VaultLifecycle(t *testing.T) {
	r := newRunner(t)

	out := r.mustRun("\n  secretA\n\n \nsecretB\nsecretC\n  ", "vault", "create", "Alpha", "--file", "-")
	assert.Equal(t, "Vault #alpha created with 3 lines.\n", out)

	_, errOut, code := r.run("x\n", "vault", "create", "alpha", "-f", "-")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "There is already a vault with that code.")

	out = r.mustRun("", "vault", "show", "ALPHA", "--reveal")
	assert.Contains(t, out, "Vault #alpha")
	assert.Contains(t, out, "Lines:   3")
	assert.Contains(t, out, "secretA\nsecretB\nsecretC")

	out = r.mustRun("secretA\r\nsecretB\n\nsecretC\n", "vault", "update", "alpha", "-f", "-")
	assert.Equal(t, "Vault #alpha: no changes made.\n", out)

	path := filepath.Join(t.TempDir(), "new.txt")
	require.NoError(t, os.WriteFile(path, []byte("n1\nn2\n"), 0o600))
	out = r.mustRun("", "vault", "update", "alpha", "--file", path)
	assert.Equal(t, "Vault #alpha updated.\n", out)

	out = r.mustRun("", "vault", "show", "alpha")
	assert.Contains(t, out, "Lines:   2")
	assert.NotContains(t, out, "n1")

	r.mustRun("", "card", "create", "alpha", "--message", "1200", "--channel", "5")

	out = r.mustRun("", "vault", "remove", "alpha")
	assert.Equal(t, "Vault #alpha removed.\n  delete card message 1200 in channel 5\n", out)

	_, errOut, code = r.run("", "vault", "show", "alpha")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "The code you entered does not match any existing vault.")
}

func TestCLI_InteractiveStorage(t *testing.T) {
	r := newRunner(t)

	out, errOut, code := r.run("one\ntwo\n\n", "vault", "create", "beta")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "Vault #beta created with 2 lines.\n", out)
	assert.Contains(t, errOut, "Enter vault lines")
}

func TestCLI_CardsAndClaims(t *testing.T) {
	r := newRunner(t)
	r.mustRun("secretA\nsecretB\nsecretC\n", "vault", "create", "alpha", "-f", "-")

	out := r.mustRun("", "card", "create", "alpha",
		"--channel", "5", "--message", "1200", "--role", "300", "-n", "2", "--cooldown", "1h 30m")
	assert.Contains(t, out, "Card created for message 1200.")
	assert.Contains(t, out, "Cooldown: 1 hours 30 minutes")

	_, errOut, code := r.run("", "card", "create", "alpha", "--message", "1201", "--cooldown", "5x")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "validation error")

	_, errOut, code = r.run("", "card", "create", "ghost", "--message", "1202")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "does not match any existing vault")

	_, errOut, code = r.run("", "card", "create", "alpha", "--message", "1200")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "A card is already published as that message.")

	out = r.mustRun("", "card", "list")
	assert.Contains(t, out, "MESSAGE")
	assert.Contains(t, out, "1200")
	assert.Contains(t, out, "1 hours 30 minutes")

	_, errOut, code = r.run("", "claim", "1200", "--member", "77", "--roles", "1,2")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "You do not have the required role.")

	out = r.mustRun("", "claim", "1200", "--member", "77", "--roles", "1,300")
	assert.Equal(t, "Claimed!\nsecretA\nsecretB\n", out)

	out = r.mustRun("", "claim", "1200", "--member", "77", "--roles", "300")
	assert.Contains(t, out, "You have reached the maximum limit.")
	assert.Contains(t, out, "Please try again in 1 hours")

	_, errOut, code = r.run("", "claim", "1200", "--member", "78", "--roles", "300")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "The vault `#alpha` is currently empty.")

	_, errOut, code = r.run("", "claim", "9999", "--member", "78", "--roles", "300")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Card not found.")

	r.mustRun("", "card", "remove", "1200")
	out = r.mustRun("", "card", "list")
	assert.Equal(t, "No cards.\n", out)

	_, errOut, code = r.run("", "card", "remove", "1200")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Card not found.")
}

func TestCLI_PromptsForSecret(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	prompts := 0
	readPassword = func(int) ([]byte, error) {
		prompts++
		return []byte("typed-secret"), nil
	}

	t.Setenv(config.EnvSecretKey, "")
	dsn := filepath.Join(t.TempDir(), "vaults.db")
	args := func(extra ...string) []string {
		return append(extra, "--dsn", dsn, "--community", "1", "--owner", "2")
	}

	var out, errOut bytes.Buffer
	code := Execute(context.Background(), args("vault", "create", "alpha", "-f", "-"), strings.NewReader("a\n"), &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Equal(t, 1, prompts)
	assert.Contains(t, errOut.String(), "Enter secret key:")

	// the same secret given as a flag opens the vault
	out.Reset()
	code = Execute(context.Background(), args("vault", "show", "alpha", "--secret-key", "typed-secret", "--reveal"), strings.NewReader(""), &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), "\n\na\n")
	assert.Equal(t, 1, prompts)
}

func TestCLI_Errors(t *testing.T) {
	r := newRunner(t)

	_, errOut, code := r.run("", "claim", "abc", "--member", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "message-ref must be a number")

	_, errOut, code = r.run("", "vault", "show", "alpha", "--driver", "oracle")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unsupported driver")

	_, _, code = r.run("", "claim", "1200")
	assert.Equal(t, 1, code, "--member is required")

	_, _, code = r.run("", "vault", "show")
	assert.Equal(t, 1, code)
}

func TestCLI_Version(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Execute(context.Background(), []string{"version"}, strings.NewReader(""), &out, &errOut)
	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Build version:")
}

func TestCLI_JSONConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cfg.json")
	cfg := fmt.Sprintf(`{"database_dsn": %q, "secret_key": "json-secret", "log_format": "zap"}`, filepath.Join(dir, "v.db"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	t.Setenv(config.EnvSecretKey, "")
	t.Setenv(config.EnvDatabaseDSN, "")

	var out, errOut bytes.Buffer
	code := Execute(context.Background(),
		[]string{"vault", "create", "alpha", "-f", "-", "--config", cfgPath, "--community", "1"},
		strings.NewReader("x\ny\n"), &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Equal(t, "Vault #alpha created with 2 lines.\n", out.String())
}
