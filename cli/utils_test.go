package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCLIFlags(t *testing.T) {
	t.Run("Should collect only explicitly set flags", func(t *testing.T) {
		cmd := RootCmd()
		require.NoError(t, cmd.ParseFlags([]string{"--port", "9001", "--transport", "stdio", "--log-json"}))

		flags := make(map[string]any)
		extractCLIFlags(cmd, flags)

		assert.Equal(t, map[string]any{
			"port":      9001,
			"transport": "stdio",
			"log-json":  true,
		}, flags)
	})

	t.Run("Should leave the map empty when nothing was set", func(t *testing.T) {
		cmd := RootCmd()
		require.NoError(t, cmd.ParseFlags([]string{}))

		flags := make(map[string]any)
		extractCLIFlags(cmd, flags)

		assert.Empty(t, flags)
	})
}

func TestLoadEnvFile(t *testing.T) {
	chdir := func(t *testing.T, dir string) {
		t.Helper()
		originalWd, err := os.Getwd()
		require.NoError(t, err)
		t.Cleanup(func() { os.Chdir(originalWd) })
		require.NoError(t, os.Chdir(dir))
	}

	t.Run("Should load variables from a file inside the working directory", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)
		envDoc := "TASKWIRE_TEST_VAR=from-env-file\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte(envDoc), 0o600))
		t.Cleanup(func() { os.Unsetenv("TASKWIRE_TEST_VAR") })
		cmd := RootCmd()
		require.NoError(t, cmd.ParseFlags([]string{"--env-file", ".env.test"}))

		path, err := loadEnvFile(cmd)

		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(path, ".env.test"))
		assert.Equal(t, "from-env-file", os.Getenv("TASKWIRE_TEST_VAR"))
	})

	t.Run("Should tolerate a missing file", func(t *testing.T) {
		chdir(t, t.TempDir())
		cmd := RootCmd()
		require.NoError(t, cmd.ParseFlags([]string{"--env-file", "missing.env"}))

		_, err := loadEnvFile(cmd)

		require.NoError(t, err)
	})

	t.Run("Should reject a path outside the working directory", func(t *testing.T) {
		chdir(t, t.TempDir())
		cmd := RootCmd()
		require.NoError(t, cmd.ParseFlags([]string{"--env-file", "../outside.env"}))

		_, err := loadEnvFile(cmd)

		require.Error(t, err)
		assert.ErrorContains(t, err, "outside the project directory")
	})

	t.Run("Should skip loading when the flag is empty", func(t *testing.T) {
		cmd := RootCmd()
		require.NoError(t, cmd.ParseFlags([]string{"--env-file", ""}))

		path, err := loadEnvFile(cmd)

		require.NoError(t, err)
		assert.Empty(t, path)
	})
}

func TestIsPathWithinDirectory(t *testing.T) {
	t.Run("Should accept children and the directory itself", func(t *testing.T) {
		assert.True(t, isPathWithinDirectory("/srv/app/.env", "/srv/app"))
		assert.True(t, isPathWithinDirectory("/srv/app", "/srv/app"))
	})

	t.Run("Should reject siblings sharing a name prefix", func(t *testing.T) {
		assert.False(t, isPathWithinDirectory("/srv/app-data/.env", "/srv/app"))
		assert.False(t, isPathWithinDirectory("/srv/other/.env", "/srv/app"))
	})
}
