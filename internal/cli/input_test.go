package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/msgram/internal/model"
)

func TestReadInputList(t *testing.T) {
	in, err := readInput("testdata/extracted/fga-eps-mds-2022-1-MeasureSoftGram-Service-09-11-2022-16-11-42-develop.msgram")
	require.NoError(t, err)
	assert.Equal(t, "fga-eps-mds-2022-1-MeasureSoftGram-Service", in.Repository)
	assert.Equal(t, "09-11-2022-16-11", in.Version)
	assert.Len(t, in.Readings, 10)
	assert.Equal(t, model.MetricReading{Key: "tests", Value: 100}, in.Readings[0])
}

func TestReadInputObject(t *testing.T) {
	in, err := readInput("testdata/extracted/web-release.json")
	require.NoError(t, err)
	assert.Equal(t, "web", in.Repository)
	assert.Equal(t, "v2.1.0", in.Version)
	assert.Equal(t, "web-release.json", in.Name)
	assert.Len(t, in.Readings, 8)
}

func TestReadInputMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"key": "coverage", "value": "high"}]`), 0o600))

	_, err := readInput(path)
	assert.Error(t, err)
}

func TestCollectInputsDirectory(t *testing.T) {
	loaded, err := collectInputs("testdata/extracted")
	require.NoError(t, err)
	require.Len(t, loaded, 2, "README.txt must be skipped")
	assert.NoError(t, loaded[0].err)
	assert.Equal(t, "fga-eps-mds-2022-1-MeasureSoftGram-Service", loaded[0].input.Repository)
	assert.Equal(t, "web", loaded[1].input.Repository)
}

func TestCollectInputsKeepsUnparsableFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.json"), []byte(`[{"key": "coverage", "value": 50}]`), 0o600))

	loaded, err := collectInputs(dir)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "bad.json", loaded[0].input.Name)
	assert.Error(t, loaded[0].err)
	assert.Equal(t, "good.json", loaded[1].input.Name)
	assert.NoError(t, loaded[1].err)
}

func TestCollectInputsSingleFileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err := collectInputs(path)
	assert.Error(t, err)
}

func TestCollectInputsEmptyDirectory(t *testing.T) {
	_, err := collectInputs(t.TempDir())
	assert.Error(t, err)
}

func TestReadVectorList(t *testing.T) {
	v, err := readVector("testdata/planned.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"reliability", "maintainability"}, v.Keys())
}

func TestReadVectorFromResult(t *testing.T) {
	v, err := readVector("testdata/developed.json")
	require.NoError(t, err)
	val, ok := v.Value("reliability")
	require.True(t, ok)
	assert.Equal(t, 0.6, val)
	assert.Equal(t, 2, v.Len())
}

func TestReadVectorDuplicateKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"key":"a","value":1},{"key":"a","value":2}]`), 0o600))

	_, err := readVector(path)
	assert.ErrorIs(t, err, model.ErrDuplicateKey)
}

func TestReadVectorResultWithoutCharacteristics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sqc": {"key": "sqc", "value": 1}}`), 0o600))

	_, err := readVector(path)
	assert.Error(t, err)
}
