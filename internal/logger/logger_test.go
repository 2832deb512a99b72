package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

// entries decodes zerolog JSON lines.
func entries(t *testing.T, r io.Reader) []entry {
	t.Helper()
	var out []entry
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		var e entry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e), "line %q", sc.Text())
		out = append(out, e)
	}
	require.NoError(t, sc.Err())
	return out
}

func fileEntries(t *testing.T, path string) []entry {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return entries(t, bytes.NewReader(data))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"Warn", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
		{"", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		want  []string
	}{
		{LevelDebug, []string{"debug", "info", "warn", "error"}},
		{LevelInfo, []string{"info", "warn", "error"}},
		{LevelWarn, []string{"warn", "error"}},
		{LevelError, []string{"error"}},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			l := New()
			l.SetOutput(&buf)
			l.SetLevel(tt.level)

			l.Debug("draft %s", "a")
			l.Info("draft %s", "b")
			l.Warn("draft %s", "c")
			l.Error("draft %s", "d")

			var levels []string
			for _, e := range entries(t, &buf) {
				levels = append(levels, e.Level)
				assert.True(t, strings.HasPrefix(e.Message, "draft "), e.Message)
				assert.NotEmpty(t, e.Time)
			}
			assert.Equal(t, tt.want, levels)
		})
	}
}

func TestNewFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		useFile   bool
		wantLevel Level
		want      []string
	}{
		{name: "defaults discard output", wantLevel: LevelInfo},
		{name: "level only", level: "debug", wantLevel: LevelDebug},
		{name: "file at info", useFile: true, wantLevel: LevelInfo, want: []string{"info", "warn"}},
		{name: "file at warn", level: "warn", useFile: true, wantLevel: LevelWarn, want: []string{"warn"}},
		{name: "bad level ignored", level: "loud", useFile: true, wantLevel: LevelInfo, want: []string{"info", "warn"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "listwiz.log")
			t.Setenv("LISTWIZ_LOG_LEVEL", tt.level)
			if tt.useFile {
				t.Setenv("LISTWIZ_LOG_FILE", path)
			} else {
				t.Setenv("LISTWIZ_LOG_FILE", "")
			}

			l := New()
			assert.Equal(t, tt.wantLevel, l.level)

			l.Debug("debug")
			l.Info("info")
			l.Warn("warn")
			require.NoError(t, l.Close())

			if !tt.useFile {
				assert.NoFileExists(t, path)
				return
			}
			var levels []string
			for _, e := range fileEntries(t, path) {
				levels = append(levels, e.Level)
			}
			assert.Equal(t, tt.want, levels)
		})
	}
}

func TestConfigure(t *testing.T) {
	t.Setenv("LISTWIZ_LOG_LEVEL", "")
	t.Setenv("LISTWIZ_LOG_FILE", "")
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	l := New()
	t.Cleanup(func() { _ = l.Close() })

	assert.Error(t, l.Configure("bogus", ""))
	assert.Equal(t, LevelInfo, l.level, "a bad level changes nothing")

	require.NoError(t, l.Configure("warn", first))
	l.Info("quiet")
	l.Warn("loud")

	require.NoError(t, l.Configure("", second), "empty level keeps warn")
	l.Warn("moved")

	got := fileEntries(t, first)
	require.Len(t, got, 1)
	assert.Equal(t, entry{Level: "warn", Message: "loud", Time: got[0].Time}, got[0])

	got = fileEntries(t, second)
	require.Len(t, got, 1)
	assert.Equal(t, "moved", got[0].Message)

	assert.Error(t, l.Configure("", filepath.Join(dir, "missing", "x.log")))
}

func TestCloseDetachesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listwiz.log")
	l := New()
	require.NoError(t, l.Configure("info", path))

	l.Info("before")
	require.NoError(t, l.Close())
	l.Info("after")
	require.NoError(t, l.Close(), "closing twice is fine")

	got := fileEntries(t, path)
	require.Len(t, got, 1)
	assert.Equal(t, "before", got[0].Message)
}

func TestPackageLevelFunctions(t *testing.T) {
	saved := Default
	t.Cleanup(func() { Default = saved })

	var buf bytes.Buffer
	Default = New()
	Default.SetOutput(&buf)
	Default.SetLevel(LevelDebug)

	Debug("debug %d", 1)
	Info("info %d", 2)
	Warn("warn %d", 3)
	Error("error %d", 4)

	var msgs []string
	for _, e := range entries(t, &buf) {
		msgs = append(msgs, e.Level+":"+e.Message)
	}
	assert.Equal(t, []string{"debug:debug 1", "info:info 2", "warn:warn 3", "error:error 4"}, msgs)
}
