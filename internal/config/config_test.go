package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/backend"
)

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"tally.yaml", "tally.toml"} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			cfg.DataFile = "data/spend.csv"
			cfg.Backend = "sqlite"
			cfg.Currency = "$"
			cfg.AuditLog = "logs/activity.csv"
			cfg.Log.Level = "debug"

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, cfg))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, got)
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "expenses.csv", cfg.DataFile)
	assert.Equal(t, "csv", cfg.Backend)
	assert.Equal(t, "expenses.db", cfg.SQLitePath)
	assert.Equal(t, "₹", cfg.Currency)
	assert.Empty(t, cfg.AuditLog)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, os.WriteFile(path, []byte("currency: \"€\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "€", cfg.Currency)
	assert.Equal(t, "expenses.csv", cfg.DataFile)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.toml")
	content := "data_file = \"spend.csv\"\n\n[log]\nlevel = \"info\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "spend.csv", cfg.DataFile)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_file: [unclosed\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "data_file: expenses.csv")
	assert.Contains(t, contents, "backend: csv")
	assert.Contains(t, contents, "level: warn")
	assert.NotContains(t, contents, "audit_log")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TALLY_DATA_FILE", "env.csv")
	t.Setenv("TALLY_BACKEND", "sqlite")
	t.Setenv("TALLY_LOG_LEVEL", "debug")

	cfg := Default()
	cfg.ApplyEnv()
	assert.Equal(t, "env.csv", cfg.DataFile)
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "₹", cfg.Currency, "unset variables leave fields alone")
}

func TestResolve_MissingDefaultUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestResolve_MissingExplicitFile(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_file: file.csv\n"), 0o644))
	t.Setenv("TALLY_DATA_FILE", "env.csv")

	cfg, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "env.csv", cfg.DataFile)
}

func TestResolve_PathsRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tally.yaml")
	abs := filepath.Join(t.TempDir(), "elsewhere.db")
	body := "data_file: data/spend.csv\nsqlite_path: " + abs + "\naudit_log: logs/activity.csv\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "spend.csv"), cfg.DataFile)
	assert.Equal(t, abs, cfg.SQLitePath, "absolute paths are kept")
	assert.Equal(t, filepath.Join(dir, "logs", "activity.csv"), cfg.AuditLog)
}

func TestResolve_InvalidBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: sheets\n"), 0o644))

	_, err := Resolve(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid backend")
}

func TestValidate_LogFormat(t *testing.T) {
	cfg := Default()
	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TALLY_TEST_CURRENCY=CHF\n"), 0o644))
	t.Setenv("TALLY_TEST_CURRENCY", "")
	os.Unsetenv("TALLY_TEST_CURRENCY")

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "CHF", os.Getenv("TALLY_TEST_CURRENCY"))
}

func TestBackendConfig(t *testing.T) {
	cfg := Default()
	bc := cfg.BackendConfig()
	assert.Equal(t, backend.CSV, bc.Type)
	assert.Equal(t, "expenses.csv", bc.DataFile)
	assert.Equal(t, "expenses.db", bc.SQLitePath)
}

// chdir changes the working directory for the duration of the test,
// matching testing.T.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
