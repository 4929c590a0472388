package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.Equal("tests", cfg.OutputDir)
	assert.Equal(".asm", cfg.Extension)
	assert.NoError(cfg.Validate())
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	text := `
output_dir: out/starj
jobs: 4
only: [add, lw_sw]
manifest: true
`
	cfg, err := Parse(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(&Config{
		OutputDir: "out/starj",
		Extension: ".asm",
		Jobs:      4,
		Only:      []string{"add", "lw_sw"},
		Manifest:  true,
	}, cfg)

	cfg, err = Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(Default(), cfg)

	_, err = Parse(strings.NewReader("frobs: 3\n"))
	assert.ErrorIs(err, ErrConfigParse)

	_, err = Parse(strings.NewReader("jobs: many\n"))
	assert.ErrorIs(err, ErrConfigParse)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.NoError(err)
	assert.Equal(Default(), cfg)

	path := filepath.Join(dir, "starjconf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extension: .s\n"), 0644))
	cfg, err = Load(path)
	assert.NoError(err)
	assert.Equal(".s", cfg.Extension)

	t.Setenv(ENV_OUTPUT_DIR, "elsewhere")
	t.Setenv(ENV_ONLY, "beqz,bnez")
	cfg, err = Load(path)
	assert.NoError(err)
	assert.Equal("elsewhere", cfg.OutputDir)
	assert.Equal([]string{"beqz", "bnez"}, cfg.Only)

	_, err = Load(dir)
	assert.ErrorIs(err, ErrConfigRead)
}

func TestValidate(t *testing.T) {
	table := [](struct {
		name string
		edit func(cfg *Config)
		err  error
	}){
		{"empty dir", func(cfg *Config) { cfg.OutputDir = "" }, ErrOutputDirEmpty},
		{"bare extension", func(cfg *Config) { cfg.Extension = "asm" }, ErrExtension("asm")},
		{"path extension", func(cfg *Config) { cfg.Extension = "./x" }, ErrExtension("./x")},
		{"negative jobs", func(cfg *Config) { cfg.Jobs = -1 }, ErrJobs(-1)},
		{"valid", func(cfg *Config) { cfg.Jobs = 2 }, nil},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			cfg := Default()
			entry.edit(cfg)
			assert.Equal(t, entry.err, cfg.Validate())
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	cfg.Only = []string{"shi"}
	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(string(data), "output_dir: tests")

	again, err := Parse(strings.NewReader(string(data)))
	assert.NoError(err)
	assert.Equal(cfg, again)
}
