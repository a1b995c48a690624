package clip

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigFileJSON(t *testing.T) {
	confFile := filepath.Join(t.TempDir(), "config1.json")
	os.WriteFile(confFile, []byte(`{"mode": "copy", "count": 4}`), 0o640)

	var f ConfigFile[DisableLiveUpdate]
	assert.NoError(t, f.Load(confFile))
	assert.Equal(t, "copy", f.Get()["mode"])
	assert.Equal(t, float64(4), f.Get()["count"])
}

func TestConfigFileYAML(t *testing.T) {
	confFile := filepath.Join(t.TempDir(), "config1.yaml")
	os.WriteFile(confFile, []byte("mode: copy\nfetch:\n  timeout: 9\n"), 0o640)

	var f ConfigFile[DisableLiveUpdate]
	assert.NoError(t, f.Load(confFile))
	assert.Equal(t, "copy", f.Get()["mode"])
	nested, ok := f.Get()["fetch"].(map[string]any)
	if assert.True(t, ok, "subcommand section is a nested mapping") {
		assert.Equal(t, 9, nested["timeout"])
	}
}

func TestConfigFileTOML(t *testing.T) {
	confFile := filepath.Join(t.TempDir(), "config1.toml")
	os.WriteFile(confFile, []byte("mode = \"copy\"\n\n[fetch]\ntimeout = 9\n"), 0o640)

	var f ConfigFile[DisableLiveUpdate]
	assert.NoError(t, f.Load(confFile))
	assert.Equal(t, "copy", f.Get()["mode"])
	nested, ok := f.Get()["fetch"].(map[string]any)
	if assert.True(t, ok) {
		assert.Equal(t, int64(9), nested["timeout"])
	}
}

func TestConfigFileUnknownExtensionFallsBack(t *testing.T) {
	confFile := filepath.Join(t.TempDir(), "config1")
	os.WriteFile(confFile, []byte(`{"mode": "copy"}`), 0o640)

	var f ConfigFile[DisableLiveUpdate]
	assert.NoError(t, f.Load(confFile))
	assert.Equal(t, "copy", f.Get()["mode"])
}

func TestConfigFileInvalid(t *testing.T) {
	confFile := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(confFile, []byte(`{"mode": `), 0o640)

	var f ConfigFile[DisableLiveUpdate]
	assert.Error(t, f.Load(confFile))
}

func TestConfigFileLiveUpdate(t *testing.T) {
	confFile := filepath.Join(t.TempDir(), "config2.json")
	var f ConfigFile[EnableLiveUpdate]
	// initial content
	os.WriteFile(confFile, []byte(`{"mode": "copy"}`), 0o640)

	assert.NoError(t, f.Load(confFile))
	old := f.Get()
	assert.Equal(t, "copy", old["mode"], "test init content")

	os.WriteFile(confFile, []byte(`{"mode": "move"}`), 0o640)
	<-f.UpdateEvents() // wait update done
	// test new value
	assert.Equal(t, "move", f.Get()["mode"], "test new value")
	// verify old snapshot still valid
	assert.Equal(t, "copy", old["mode"], "test old snapshot")
}

func TestConfigFileFeedsResolver(t *testing.T) {
	confFile := filepath.Join(t.TempDir(), "tool.yaml")
	os.WriteFile(confFile, []byte("count: 4\nfetch:\n  timeout: 9\n"), 0o640)

	var f ConfigFile[DisableLiveUpdate]
	assert.NoError(t, f.Load(confFile))

	p := New("my-tool").Add(Spec{Name: "count", Default: 1})
	p.Sub("fetch").Add(Spec{Name: "timeout", Default: 30})
	out := p.Resolve([]string{"fetch"}, nil, f.Get())
	assert.True(t, out.OK(), "errors: %v", out.Errors)
	assert.Equal(t, 4, out.Values["count"].Value)
	assert.Equal(t, 9, out.Sub["timeout"].Value)
}

func TestMergeMapping(t *testing.T) {
	dst := map[string]any{
		"a":     1,
		"b":     1,
		"fetch": map[string]any{"timeout": 1, "retries": 2},
	}
	mergeMapping(dst, map[string]any{
		"b":     2,
		"fetch": map[string]any{"timeout": 9},
	})
	assert.Equal(t, 1, dst["a"])
	assert.Equal(t, 2, dst["b"])
	assert.Equal(t, map[string]any{"timeout": 9, "retries": 2}, dst["fetch"])
}

func TestSearchPathLoad(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "global.yaml")
	local := filepath.Join(dir, "local.yaml")
	os.WriteFile(global, []byte("a: 1\nb: 1\n"), 0o640)
	os.WriteFile(local, []byte("b: 2\n"), 0o640)

	sp := SearchPath{
		Global: global,
		User:   filepath.Join(dir, "does-not-exist.yaml"), // skipped
		Local:  local,
	}
	m, err := sp.Load()
	assert.NoError(t, err)
	assert.Equal(t, 1, m["a"])
	assert.Equal(t, 2, m["b"], "local overrides global")
}
