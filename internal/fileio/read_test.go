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

func TestReadText(t *testing.T) {
	mem := memfs.New()
	require.NoError(t, util.WriteFile(mem, "/utf8.txt", []byte("naïve café\n"), 0o644))
	require.NoError(t, util.WriteFile(mem, "/binary.dat", []byte{0x00, 0x01, 0xff, 0xfe, 0xc3}, 0o644))
	fs := system.NewFileSystemWith(mem)

	text, err := ReadText(fs, "/utf8.txt")
	require.NoError(t, err)
	assert.Equal(t, "naïve café\n", text)

	_, err = ReadText(fs, "/binary.dat")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEncoding)
	var fe *common.FileError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Reason, "detected")

	_, err = ReadText(fs, "/missing.txt")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
