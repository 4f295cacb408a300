package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUUID(t *testing.T) {
	a, err := GenerateUUID()
	require.NoError(t, err)
	b, err := GenerateUUID()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	_, err = uuid.Parse(a)
	assert.NoError(t, err)
	assert.NotEqual(t, "unknown", RequestID())
}

func TestCreateFolder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "vectorstores", "dsa")
	require.NoError(t, CreateFolder(dir))
	require.NoError(t, CreateFolder(dir), "existing folder is fine")

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
