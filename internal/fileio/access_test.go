package fileio

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoro11031/filelab/internal/common"
	"github.com/zoro11031/filelab/internal/system"
)

func newAccessFS(t *testing.T) *system.FileSystem {
	t.Helper()
	mem := memfs.New()
	require.NoError(t, mem.MkdirAll("/data", 0o755))
	require.NoError(t, mem.MkdirAll("/locked", 0o555))
	require.NoError(t, util.WriteFile(mem, "/data/readable.txt", []byte("x"), 0o644))
	require.NoError(t, util.WriteFile(mem, "/data/readonly.txt", []byte("x"), 0o444))
	require.NoError(t, util.WriteFile(mem, "/data/writeonly.txt", []byte("x"), 0o200))
	return system.NewFileSystemWith(mem)
}

func TestCheckAccess(t *testing.T) {
	fs := newAccessFS(t)

	tests := []struct {
		name    string
		path    string
		mode    system.AccessMode
		wantErr error
	}{
		{"read existing", "/data/readable.txt", system.AccessRead, nil},
		{"read missing", "/data/missing.txt", system.AccessRead, common.ErrNotFound},
		{"read directory", "/data", system.AccessRead, common.ErrIsDirectory},
		{"read without permission", "/data/writeonly.txt", system.AccessRead, common.ErrPermissionDenied},
		{"write existing", "/data/readable.txt", system.AccessWrite, nil},
		{"write read-only file", "/data/readonly.txt", system.AccessWrite, common.ErrPermissionDenied},
		{"write new file", "/data/new.txt", system.AccessWrite, nil},
		{"write new file in locked dir", "/locked/new.txt", system.AccessWrite, common.ErrPermissionDenied},
		{"write new file in missing dir", "/nowhere/new.txt", system.AccessWrite, common.ErrNotFound},
		{"write directory", "/data", system.AccessWrite, common.ErrIsDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAccess(fs, tt.path, tt.mode)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckAccessMessages(t *testing.T) {
	fs := newAccessFS(t)

	err := CheckAccess(fs, "/data/writeonly.txt", system.AccessRead)
	assert.Equal(t, "You don't have permission to read '/data/writeonly.txt'.", common.Message(err))

	err = CheckAccess(fs, "/data/missing.txt", system.AccessRead)
	assert.Equal(t, "The file '/data/missing.txt' was not found.", common.Message(err))
}
