//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	// Not through a PTY since it exits immediately
	cmd := exec.Command(binPath, "--help")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	require.Contains(t, strings.ToLower(output), "usage")
	for _, flag := range []string{"-brand", "-code", "-host", "-opener-url", "-config"} {
		require.Contains(t, output, flag)
	}
}

func TestHostTriggerWithoutCodeRefusesToOpen(t *testing.T) {
	t.Parallel()

	cmd := exec.Command(binPath, "--host", "--brand", "Vallejo")
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.ExitCode())
	require.Contains(t, string(out), "Por favor, ingrese la marca y el código de color antes de buscar la imagen.")
}

func TestWriteConfigCreatesDefaultFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cmd := exec.Command(binPath, "--config", path, "--write-config")
	cmd.Dir = t.TempDir()
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	require.Contains(t, string(out), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[api]")
	require.Contains(t, string(data), "[opener]")
}
