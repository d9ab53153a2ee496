package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LogAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "out.txt")
	l := New(path)
	l.Log("cmd snap corners")
	l.Log("cmd axis y")

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "["))
	assert.True(t, strings.HasSuffix(lines[1], "] cmd axis y"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, lines[0]+"\n"+lines[1]+"\n", string(data))
}

func TestLogger_Slog(t *testing.T) {
	l := New("")
	log := l.Slog(slog.LevelInfo)
	log.Debug("hidden")
	log.Info("placed object", "asset", "cube")
	log.Warn("missing reference")

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "level=INFO")
	assert.Contains(t, lines[0], `msg="placed object" asset=cube`)
	assert.Contains(t, lines[1], "level=WARN")
}

func TestLogger_WriteSplitsLines(t *testing.T) {
	l := New("")
	n, err := l.Write([]byte("a\n\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []string{"a", "b"}, l.Lines())
}

func TestLogger_Tail(t *testing.T) {
	l := New("")
	for _, s := range []string{"a", "b", "c"} {
		_, _ = l.Write([]byte(s + "\n"))
	}
	assert.Equal(t, []string{"b", "c"}, l.Tail(2))
	assert.Equal(t, []string{"a", "b", "c"}, l.Tail(10))
	assert.Empty(t, l.Tail(0))
}
