package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/curbmap/pkg/types"
)

const sampleJSON = `{"type":"FeatureCollection","features":[
 {"type":"Feature","properties":{"location":{"shstRefId":"r1","sideOfStreet":"right","shstLocationStart":0,"shstLocationEnd":20},
  "regulations":[{"priority":10,"rule":{"activity":"parking"}}]},
  "geometry":{"type":"LineString","coordinates":[[-73.56,45.51],[-73.55,45.52]]}},
 {"type":"Feature","properties":{"location":{"shstRefId":"r1","sideOfStreet":"right","shstLocationStart":0,"shstLocationEnd":10},
  "regulations":[{"priority":1,"rule":{"activity":"no parking"},
   "timeSpans":[{"daysOfWeek":{"days":["mo","tu","we","th","fr"]},"timesOfDay":[{"from":"07:00","to":"09:00"}]}]}]},
  "geometry":{"type":"LineString","coordinates":[[-73.56,45.51],[-73.555,45.515]]}}
]}`

type env struct {
	configDir string
	dataDir   string
}

func newEnv(t *testing.T) env {
	t.Helper()
	t.Setenv("CURBMAP_WORKERS", "")
	t.Setenv("CURBMAP_CACHE_BACKEND", "")
	root := t.TempDir()
	return env{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

// execute runs the CLI with the env directories and returns stdout, stderr
// and the exit code.
func (e env) execute(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	all := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	code := run(root, all, &stderr)
	return stdout.String(), stderr.String(), code
}

func (e env) writeDataset(t *testing.T, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(e.dataDir, 0o755))
	path := filepath.Join(e.dataDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type segment struct {
	Start, End float64
	Activity   string
}

func decodeSegments(t *testing.T, out string) []segment {
	t.Helper()
	c, err := types.DecodeCollection(strings.NewReader(out))
	require.NoError(t, err)
	segs := make([]segment, len(c.Features))
	for i, f := range c.Features {
		require.Len(t, f.Properties.Regulations, 1)
		segs[i] = segment{
			Start:    f.Properties.Location.ShstLocationStart,
			End:      f.Properties.Location.ShstLocationEnd,
			Activity: f.Properties.Regulations[0].Rule.Activity,
		}
	}
	return segs
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	out, _, code := e.execute(t, "", "version")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "curbmap v")
	assert.Contains(t, out, modulePath)
}

func TestInit(t *testing.T) {
	e := newEnv(t)
	out, _, code := e.execute(t, "", "init")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "curbmap initialized")
	assert.DirExists(t, e.dataDir)

	configPath := filepath.Join(e.configDir, "config.yaml")
	require.FileExists(t, configPath)

	cfg, err := loadConfig(e.configDir)
	require.NoError(t, err)
	assert.Equal(t, e.dataDir, cfg.DataDir)
	assert.Equal(t, types.DefaultDay, cfg.DefaultDay)
	assert.Equal(t, types.DefaultTime, cfg.DefaultTime)
	assert.Equal(t, types.DefaultCacheTTL, cfg.CacheTTL)

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, os.WriteFile(configPath, []byte("workers: 3\n"), 0o644))
		_, _, code := e.execute(t, "", "init")
		require.Equal(t, exitSuccess, code)
		data, err := os.ReadFile(configPath)
		require.NoError(t, err)
		assert.Equal(t, "workers: 3\n", string(data))
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without config.yaml", func(t *testing.T) {
		e := newEnv(t)
		cfg, err := loadConfig(e.configDir)
		require.NoError(t, err)
		assert.Equal(t, types.CacheMemory, cfg.CacheBackend)
		assert.Equal(t, types.DefaultServerAddr, cfg.ServerAddr)
		assert.Equal(t, 0, cfg.Workers)
	})

	t.Run("file and environment", func(t *testing.T) {
		e := newEnv(t)
		require.NoError(t, os.MkdirAll(e.configDir, 0o755))
		yaml := "cache_backend: none\ncache_ttl: 30s\nworkers: 2\ndatasets:\n  - path: village.curblr.json\n    label: Village\n"
		require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte(yaml), 0o644))
		t.Setenv("CURBMAP_WORKERS", "4")

		cfg, err := loadConfig(e.configDir)
		require.NoError(t, err)
		assert.Equal(t, types.CacheNone, cfg.CacheBackend)
		assert.Equal(t, 30*time.Second, cfg.CacheTTL)
		assert.Equal(t, 4, cfg.Workers)
		assert.Equal(t, []types.DatasetRef{{Path: "village.curblr.json", Label: "Village"}}, cfg.Datasets)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		e := newEnv(t)
		require.NoError(t, os.MkdirAll(e.configDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte("workers: [\n"), 0o644))
		_, err := loadConfig(e.configDir)
		assert.Error(t, err)
	})
}

func TestInvalidConfigIsUserError(t *testing.T) {
	e := newEnv(t)
	t.Setenv("CURBMAP_CACHE_BACKEND", "memcached")
	_, stderr, code := e.execute(t, "", "datasets")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, "unknown cache backend")
}

func TestFilter(t *testing.T) {
	e := newEnv(t)
	path := e.writeDataset(t, "village.curblr.json", sampleJSON)

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  []segment
	}{
		{
			name: "file weekday morning",
			args: []string{"filter", path, "--day", "mo", "--time", "08:00"},
			want: []segment{{0, 10, "no parking"}, {10, 20, "parking"}},
		},
		{
			name: "file weekend",
			args: []string{"filter", path, "--day", "sa", "--time", "08:00"},
			want: []segment{{0, 20, "parking"}},
		},
		{
			name:  "stdin",
			args:  []string{"filter", "--day", "tu", "--time", "07:30"},
			stdin: sampleJSON,
			want:  []segment{{0, 10, "no parking"}, {10, 20, "parking"}},
		},
		{
			name: "dataset by name with config defaults",
			args: []string{"filter", "--dataset", "village", "--indent"},
			want: []segment{{0, 10, "no parking"}, {10, 20, "parking"}},
		},
		{
			name: "unknown time token",
			args: []string{"filter", path, "--day", "mo", "--time", "8am"},
			want: []segment{{0, 20, "parking"}},
		},
		{
			name: "parallel with last-wins tie-break",
			args: []string{"filter", path, "--day", "mo", "--time", "08:00", "--workers", "4", "--tie-break", "last"},
			want: []segment{{0, 10, "no parking"}, {10, 20, "parking"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, stderr, code := e.execute(t, tt.stdin, tt.args...)
			require.Equal(t, exitSuccess, code, stderr)
			assert.Equal(t, tt.want, decodeSegments(t, out))
		})
	}
}

func TestFilterOutputFile(t *testing.T) {
	e := newEnv(t)
	path := e.writeDataset(t, "village.curblr.json", sampleJSON)
	target := filepath.Join(t.TempDir(), "out.json")

	out, stderr, code := e.execute(t, "", "filter", path, "--day", "mo", "--time", "08:00", "-o", target)
	require.Equal(t, exitSuccess, code, stderr)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Len(t, decodeSegments(t, string(data)), 2)
}

func TestFilterLines(t *testing.T) {
	e := newEnv(t)
	path := e.writeDataset(t, "village.curblr.json", sampleJSON)

	out, stderr, code := e.execute(t, "", "filter", path, "--day", "mo", "--time", "08:00", "--format", "lines")
	require.Equal(t, exitSuccess, code, stderr)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var f types.Feature
		require.NoError(t, json.Unmarshal([]byte(line), &f))
		assert.Equal(t, types.TypeFeature, f.Type)
	}
}

func TestFilterSummary(t *testing.T) {
	e := newEnv(t)
	path := e.writeDataset(t, "village.curblr.json", sampleJSON)

	out, _, code := e.execute(t, "", "--json", "filter", path, "--day", "mo", "--time", "08:00", "--summary")
	require.Equal(t, exitSuccess, code)
	var totals []struct {
		Activity string  `json:"activity"`
		Segments int     `json:"segments"`
		Length   float64 `json:"length"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &totals))
	require.Len(t, totals, 2)
	assert.Equal(t, "no parking", totals[0].Activity)
	assert.Equal(t, 10.0, totals[0].Length)

	out, _, code = e.execute(t, "", "filter", path, "--summary")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "ACTIVITY")
	assert.Contains(t, out, "no parking")
}

func TestFilterErrors(t *testing.T) {
	e := newEnv(t)
	path := e.writeDataset(t, "village.curblr.json", sampleJSON)
	missingLocation := `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"regulations":[]},"geometry":null}]}`

	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{
		{"missing file", "", []string{"filter", filepath.Join(e.dataDir, "absent.json")}, "absent.json"},
		{"unknown dataset", "", []string{"filter", "--dataset", "nowhere"}, "dataset not found"},
		{"file and dataset", "", []string{"filter", path, "--dataset", "village"}, "not both"},
		{"bad tie-break", "", []string{"filter", path, "--tie-break", "random"}, "tie-break"},
		{"bad format", "", []string{"filter", path, "--format", "csv"}, "unknown format"},
		{"not json", "not json", []string{"filter"}, "decode stdin"},
		{"missing location", missingLocation, []string{"filter", "-"}, "location"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := e.execute(t, tt.stdin, tt.args...)
			assert.Equal(t, exitUserError, code)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestDatasets(t *testing.T) {
	e := newEnv(t)

	out, _, code := e.execute(t, "", "datasets")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "no datasets")

	e.writeDataset(t, "village.curblr.json", sampleJSON)
	e.writeDataset(t, "broken.json", "{")

	out, _, code = e.execute(t, "", "--json", "datasets")
	require.Equal(t, exitSuccess, code)
	var rows []datasetRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "broken", rows[0].Name)
	assert.NotEmpty(t, rows[0].Error)
	assert.Equal(t, "village", rows[1].Name)
	assert.Equal(t, 2, rows[1].Features)
	assert.Equal(t, []float64{-73.56, 45.51, -73.55, 45.52}, rows[1].BBox)
}
