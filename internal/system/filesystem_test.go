package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestFileSystemReadWrite(t *testing.T) {
	fs := NewFileSystem()
	path := filepath.Join(t.TempDir(), "notes.txt")

	exists, err := fs.Exists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, fs.WriteFile(path, []byte("first\n"), 0o644))
	require.NoError(t, fs.WriteFile(path, []byte("second"), 0o644))

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	exists, err = fs.Exists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(6), info.Size())
}

func TestFileSystemReadMissing(t *testing.T) {
	fs := NewFileSystem()
	_, err := fs.ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSystemReadDirectory(t *testing.T) {
	fs := NewFileSystem()
	_, err := fs.ReadFile(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, unix.EISDIR)
}

func TestFileSystemAccessNative(t *testing.T) {
	fs := NewFileSystem()
	dir := t.TempDir()
	path := filepath.Join(dir, "readonly.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o444))

	assert.NoError(t, fs.Access(path, AccessRead))

	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission bits")
	}
	err := fs.Access(path, AccessWrite)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestFileSystemAccessMemory(t *testing.T) {
	mem := memfs.New()
	fs := NewFileSystemWith(mem)

	require.NoError(t, util.WriteFile(mem, "/data/open.txt", []byte("x"), 0o644))
	require.NoError(t, util.WriteFile(mem, "/data/writeonly.txt", []byte("x"), 0o200))

	assert.NoError(t, fs.Access("/data/open.txt", AccessRead))
	assert.NoError(t, fs.Access("/data/open.txt", AccessWrite))
	assert.NoError(t, fs.Access("/data/writeonly.txt", AccessWrite))

	err := fs.Access("/data/writeonly.txt", AccessRead)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrPermission)

	err = fs.Access("/data/missing.txt", AccessRead)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFaultyFS(t *testing.T) {
	mem := memfs.New()
	require.NoError(t, util.WriteFile(mem, "/flaky.txt", []byte("ok"), 0o644))

	faulty := NewFaultyFS(mem, unix.EIO, 2)
	fs := NewFileSystemWith(faulty)

	for i := 0; i < 2; i++ {
		_, err := fs.ReadFile("/flaky.txt")
		require.Error(t, err)
		assert.ErrorIs(t, err, unix.EIO)
	}

	data, err := fs.ReadFile("/flaky.txt")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
	assert.Equal(t, 3, faulty.Opens())
}

func TestFaultyFSAlwaysFails(t *testing.T) {
	faulty := NewFaultyFS(memfs.New(), unix.EBUSY, -1)
	fs := NewFileSystemWith(faulty)

	for i := 0; i < 5; i++ {
		_, err := fs.ReadFile("/anything.txt")
		assert.ErrorIs(t, err, unix.EBUSY)
	}
	assert.Equal(t, 5, faulty.Opens())
}

func TestAccessModeString(t *testing.T) {
	assert.Equal(t, "read", AccessRead.String())
	assert.Equal(t, "write", AccessWrite.String())
}
