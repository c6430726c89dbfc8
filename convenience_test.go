package fit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeFileRoundTrip(t *testing.T) {
	data := buildFitFile(t,
		definitionMessage(0, 0, fieldDefinition{number: 0, size: 1, baseType: btEnum}),
		dataMessage(0, 4),
	)

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.fit")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	records, err := DecodeFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestDecodeFileMissing(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "missing.fit"))
	require.Error(t, err)
}
