package steps

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	"github.com/zoro11031/filelab/internal/config"
	"github.com/zoro11031/filelab/internal/ui"
)

type testEnv struct {
	mem    billy.Filesystem
	cfg    *config.Config
	ui     *ui.UI
	out    *bytes.Buffer
	script *ui.ScriptedPrompter
}

func newTestEnv(t *testing.T, script *ui.ScriptedPrompter) *testEnv {
	t.Helper()

	out := &bytes.Buffer{}
	u := ui.NewWithWriter(out)
	u.SetPrompter(script)

	cfg := config.New(filepath.Join(t.TempDir(), "filelab.conf"))
	require.NoError(t, cfg.Set(config.KeyRetryDelayMS, "0"))

	return &testEnv{
		mem:    memfs.New(),
		cfg:    cfg,
		ui:     u,
		out:    out,
		script: script,
	}
}

func (e *testEnv) writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, util.WriteFile(e.mem, path, []byte(content), 0o644))
}

// absName returns where a bare filename resolves to from the working directory
func absName(t *testing.T, name string) string {
	t.Helper()
	abs, err := filepath.Abs(name)
	require.NoError(t, err)
	return abs
}
