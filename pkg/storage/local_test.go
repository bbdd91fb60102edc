package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSaveOpenDelete(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save("u1/report.csv", []byte("a,b\n")))
	f, err := s.Open("u1/report.csv")
	require.NoError(t, err)
	body, err := io.ReadAll(f)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(body))

	require.NoError(t, s.Delete("u1/report.csv"))
	require.NoError(t, s.Delete("u1/report.csv"))
	_, err = s.Open("u1/report.csv")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLocalRejectsEscapes(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	assert.ErrorIs(t, s.Save("../evil", []byte("x")), ErrOutsideRoot)
	assert.ErrorIs(t, s.Save("/etc/passwd", []byte("x")), ErrOutsideRoot)
	_, err = s.Open("")
	assert.ErrorIs(t, err, ErrOutsideRoot)
}

func TestLocalSweep(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocal(root)
	require.NoError(t, err)

	require.NoError(t, s.Save("old.csv", []byte("1")))
	require.NoError(t, s.Save("new.csv", []byte("2")))
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(root, "old.csv"), past, past))

	removed, err := s.Sweep(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"old.csv"}, removed)
	_, err = os.Stat(filepath.Join(root, "new.csv"))
	assert.NoError(t, err)
}
