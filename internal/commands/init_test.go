package commands

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/teller/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func gitLog(t *testing.T, dir string) string {
	t.Helper()
	cmd := exec.Command("git", "log", "--format=%an <%ae>|%s")
	cmd.Dir = dir
	out, err := cmd.Output()
	require.NoError(t, err)
	return strings.TrimSpace(string(out))
}

func TestInit_CreatesStructure(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()

	out, err := execute(t, "init", dir, "--name", "Household")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized teller repository at "+dir)

	for _, d := range []string{"ledger", "logs", ".git"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	gitignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(gitignore), "logs/")
}

func TestInit_Config(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()

	_, err := execute(t, "init", dir, "--name", "Savings", "--currency", "EUR", "--locale", "ar")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "Savings", cfg.Account.Name)
	assert.Equal(t, "EUR", cfg.Account.Currency)
	assert.Equal(t, "ar", cfg.Form.Locale)
	assert.True(t, cfg.Git.AutoCommit)
}

func TestInit_InitialCommit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()

	_, err := execute(t, "init", dir, "--name", "Household")
	require.NoError(t, err)

	assert.Equal(t, "Teller <teller@localhost>|init: Initialize Household", gitLog(t, dir))
}

func TestInit_RefusesExistingRepo(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()

	_, err := execute(t, "init", dir, "--name", "Household")
	require.NoError(t, err)

	_, err = execute(t, "init", dir, "--name", "Again")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInit_RequiresName(t *testing.T) {
	_, err := execute(t, "init", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}
