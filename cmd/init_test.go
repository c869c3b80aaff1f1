package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand(t *testing.T) {
	workDir := t.TempDir()
	t.Chdir(workDir)

	origDir := cfg.Modules.Dir
	cfg.Modules.Dir = filepath.Join(workDir, "modules")
	t.Cleanup(func() { cfg.Modules.Dir = origDir })

	out := &bytes.Buffer{}
	initCmd.SetOut(out)
	initCmd.Run(initCmd, nil)

	modulePath := filepath.Join(cfg.Modules.Dir, exampleModuleFilename)
	src, err := os.ReadFile(modulePath)
	require.NoError(t, err)
	assert.Equal(t, exampleModuleSource, string(src))

	env, err := os.ReadFile(filepath.Join(workDir, ".env"))
	require.NoError(t, err)
	assert.Contains(t, string(env), "LOM_DISCORD_TOKEN=")

	// a second run leaves existing files alone
	require.NoError(
		t,
		os.WriteFile(modulePath, []byte("my customized module"), 0o644),
	)
	initCmd.Run(initCmd, nil)

	src, err = os.ReadFile(modulePath)
	require.NoError(t, err)
	assert.Equal(t, "my customized module", string(src))
	assert.Contains(t, out.String(), "already exists")
}
