package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ezrec/starjconf/config"
	"github.com/ezrec/starjconf/driver"
)

// inDir runs the test from a scratch working directory.
func inDir(t *testing.T) string {
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func testCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	return cmd
}

func TestGenerateCmd(t *testing.T) {
	assert := assert.New(t)

	logger = zap.NewNop()
	dir := inDir(t)

	var out bytes.Buffer
	err := runGenerate(testCmd(&out), nil)
	require.NoError(t, err)
	assert.Contains(out.String(), "files written to tests")

	text, err := os.ReadFile(filepath.Join(dir, "tests", "beqz.asm"))
	require.NoError(t, err)
	assert.True(strings.HasPrefix(string(text), "; Test beqz instruction\n"))

	_, err = os.Stat(filepath.Join(dir, "tests", "add_reg.asm"))
	assert.NoError(err)
}

func TestGenerateCmdConfig(t *testing.T) {
	assert := assert.New(t)

	logger = zap.NewNop()
	dir := inDir(t)

	cfg := config.Default()
	cfg.OutputDir = "fixtures"
	cfg.Extension = ".s"
	cfg.Only = []string{"shi"}
	cfg.Manifest = true
	data, err := cfg.Marshal()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DEFAULT_CONFIG), data, 0644))

	var out bytes.Buffer
	err = runGenerate(testCmd(&out), nil)
	require.NoError(t, err)
	assert.Equal("2 files written to fixtures\n", out.String())

	entries, err := os.ReadDir(filepath.Join(dir, "fixtures"))
	require.NoError(t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.Equal([]string{"manifest.yaml", "shi.s"}, names)
}

func TestListCmd(t *testing.T) {
	assert := assert.New(t)

	logger = zap.NewNop()
	inDir(t)

	var out bytes.Buffer
	require.NoError(t, runList(testCmd(&out), nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.True(strings.HasPrefix(lines[0], "FIXTURE"))
	assert.Contains(out.String(), "lw_sw.asm")
	assert.Regexp(`add\.asm\s+oracle\s+add`, out.String())
	assert.Regexp(`failnez\.asm\s+structural\s+failnez halt`, out.String())
}

func TestCheckCmd(t *testing.T) {
	assert := assert.New(t)

	logger = zap.NewNop()
	dir := inDir(t)

	var out bytes.Buffer
	require.NoError(t, runCheck(testCmd(&out), nil))
	assert.Contains(out.String(), "fixtures valid")

	_, err := os.Stat(filepath.Join(dir, "tests"))
	assert.True(os.IsNotExist(err))
}

func TestBadConfig(t *testing.T) {
	logger = zap.NewNop()
	dir := inDir(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DEFAULT_CONFIG), []byte("jobs: -3\n"), 0644))

	var out bytes.Buffer
	err := runGenerate(testCmd(&out), nil)
	assert.Equal(t, config.ErrJobs(-3), err)
}

func TestGenerateUnknownOnly(t *testing.T) {
	assert := assert.New(t)

	logger = zap.NewNop()
	dir := inDir(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DEFAULT_CONFIG), []byte("only: [nosuch]\n"), 0644))

	var out bytes.Buffer
	err := runGenerate(testCmd(&out), nil)
	assert.Equal(driver.ErrOnlyUnknown("nosuch"), err)

	_, err = os.Stat(filepath.Join(dir, "tests"))
	assert.True(os.IsNotExist(err))
}
