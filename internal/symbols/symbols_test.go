package symbols

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	require.Equal(t, []string{"sh601006", "sz000001"}, ParseList("sh601006,sz000001"))
	require.Equal(t, []string{"sh601006", "sz000001"}, ParseList(" sh601006 , sz000001 "))
	require.Equal(t, []string{"sh601006"}, ParseList("sh601006"))
	require.Empty(t, ParseList(""))
	require.Empty(t, ParseList(" , ,"))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codes.txt")
	content := "sh601006\n# comment\n\nsz000001\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	codes, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"sh601006", "sz000001"}, codes)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}
