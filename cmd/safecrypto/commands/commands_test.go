package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	root := newRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestKeygenSealOpen(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "alice")
	_, err := run(t, "keygen", "--bits", "1024", name)
	require.NoError(t, err)
	assert.FileExists(t, name+".key")
	assert.FileExists(t, name+".pub")

	plainPath := filepath.Join(dir, "plain.txt")
	sealedPath := filepath.Join(dir, "plain.sealed")
	openedPath := filepath.Join(dir, "plain.opened")
	plaintext := []byte("a file worth sealing")
	require.NoError(t, os.WriteFile(plainPath, plaintext, 0o600))

	_, err = run(t, "seal", "--pub", name+".pub", "-i", plainPath, "-o", sealedPath)
	require.NoError(t, err)
	_, err = run(t, "open", "--key", name+".key", "-i", sealedPath, "-o", openedPath)
	require.NoError(t, err)

	opened, err := os.ReadFile(openedPath)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestSealOpenPassword(t *testing.T) {
	dir := t.TempDir()
	plainPath := filepath.Join(dir, "plain.txt")
	sealedPath := filepath.Join(dir, "plain.sealed")
	plaintext := []byte("password protected")
	require.NoError(t, os.WriteFile(plainPath, plaintext, 0o600))

	_, err := run(t, "seal", "-p", "hunter2", "--kdf", "PBKDF2", "-i", plainPath, "-o", sealedPath)
	require.NoError(t, err)
	out, err := run(t, "open", "-p", "hunter2", "-i", sealedPath)
	require.NoError(t, err)
	assert.Equal(t, string(plaintext), out)

	_, err = run(t, "seal", "-p", "hunter2", "--kdf", "NOPE", "-i", plainPath)
	assert.Error(t, err)
	_, err = run(t, "seal", "-i", plainPath)
	assert.Error(t, err)
}

func TestSignVerify(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "bob")
	_, err := run(t, "keygen", "--bits", "1024", name)
	require.NoError(t, err)

	dataPath := filepath.Join(dir, "data")
	require.NoError(t, os.WriteFile(dataPath, []byte("signed contents"), 0o600))

	signature, err := run(t, "sign", "--key", name+".key", "-i", dataPath)
	require.NoError(t, err)
	signature = strings.TrimSpace(signature)

	out, err := run(t, "verify", "--pub", name+".pub", "-i", dataPath, signature)
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	require.NoError(t, os.WriteFile(dataPath, []byte("altered contents"), 0o600))
	_, err = run(t, "verify", "--pub", name+".pub", "-i", dataPath, signature)
	assert.Error(t, err)
}

func TestDeriveAndRandom(t *testing.T) {
	out, err := run(t, "derive", "-p", "password", "--salt", "salt", "--label", "label", "--pin", "1234")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Len(t, strings.TrimPrefix(lines[0], "key "), 64)
	assert.Len(t, strings.TrimPrefix(lines[1], "iv  "), 32)

	again, err := run(t, "derive", "-p", "password", "--salt", "salt", "--label", "label", "--pin", "1234")
	require.NoError(t, err)
	assert.Equal(t, out, again)

	_, err = run(t, "derive", "-p", "password", "--salt", "salt", "--label", "label")
	assert.Error(t, err)

	out, err = run(t, "random", "--size", "16")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 32)
}
