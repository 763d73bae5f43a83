package bulk

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validManifest = "apiVersion: v1\nkind: Pod\nmetadata:\n  name: test-pod\n"

// createTempDir creates a temporary directory populated with the given files
func createTempDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tmpDir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return tmpDir
}

func TestRunFlat(t *testing.T) {
	inputDir := createTempDir(t, map[string]string{
		"a.yaml":      validManifest,
		"b.yml":       validManifest,
		"broken.yaml": "foo: bar\n",
		"notes.txt":   "not yaml",
	})
	outputDir := filepath.Join(t.TempDir(), "out")

	result, err := Run(context.Background(), Job{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Pretty:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total())
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 1, result.Failed)

	assert.FileExists(t, filepath.Join(outputDir, "a.json"))
	assert.FileExists(t, filepath.Join(outputDir, "b.json"))
	assert.NoFileExists(t, filepath.Join(outputDir, "broken.json"))
	assert.NoFileExists(t, filepath.Join(outputDir, "notes.json"))
}

func TestRunRecursive(t *testing.T) {
	inputDir := createTempDir(t, map[string]string{
		"top.yaml":            validManifest,
		"nested/child.yaml":   validManifest,
		"nested/deep/ok.yml":  validManifest,
		"nested/ignored.json": "{}",
	})
	outputDir := filepath.Join(t.TempDir(), "out")

	result, err := Run(context.Background(), Job{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Recursive: true,
		Pretty:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total())
	assert.Equal(t, 3, result.Successful)
	assert.Equal(t, 0, result.Failed)

	// Output mirrors the input directory structure
	assert.FileExists(t, filepath.Join(outputDir, "top.json"))
	assert.FileExists(t, filepath.Join(outputDir, "nested", "child.json"))
	assert.FileExists(t, filepath.Join(outputDir, "nested", "deep", "ok.json"))
}

func TestRunNonRecursiveSkipsSubdirectories(t *testing.T) {
	inputDir := createTempDir(t, map[string]string{
		"top.yaml":          validManifest,
		"nested/child.yaml": validManifest,
	})
	outputDir := filepath.Join(t.TempDir(), "out")

	result, err := Run(context.Background(), Job{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Recursive: false,
		Pretty:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total())
	assert.FileExists(t, filepath.Join(outputDir, "top.json"))
	assert.NoFileExists(t, filepath.Join(outputDir, "nested", "child.json"))
}

func TestRunExtensionMatchIsCaseSensitive(t *testing.T) {
	inputDir := createTempDir(t, map[string]string{
		"lower.yaml": validManifest,
		"upper.YAML": validManifest,
		"mixed.Yml":  validManifest,
	})
	outputDir := filepath.Join(t.TempDir(), "out")

	result, err := Run(context.Background(), Job{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Pretty:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total())
	assert.FileExists(t, filepath.Join(outputDir, "lower.json"))
}

func TestRunEntriesAreSorted(t *testing.T) {
	inputDir := createTempDir(t, map[string]string{
		"zz.yaml": validManifest,
		"aa.yaml": validManifest,
		"mm.yaml": "foo: bar\n",
	})

	result, err := Run(context.Background(), Job{
		InputDir:  inputDir,
		OutputDir: filepath.Join(t.TempDir(), "out"),
		Pretty:    true,
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 3)

	assert.Equal(t, filepath.Join(inputDir, "aa.yaml"), result.Entries[0].Path)
	assert.Equal(t, filepath.Join(inputDir, "mm.yaml"), result.Entries[1].Path)
	assert.Equal(t, filepath.Join(inputDir, "zz.yaml"), result.Entries[2].Path)

	assert.NoError(t, result.Entries[0].Err)
	assert.Error(t, result.Entries[1].Err)
}

func TestRunFailureMix(t *testing.T) {
	// One of each failure class among valid files
	inputDir := createTempDir(t, map[string]string{
		"ok1.yaml":    validManifest,
		"ok2.yaml":    validManifest,
		"syntax.yaml": "key: [unclosed\n",
		"schema.yaml": "foo: bar\n",
		"binary.yaml": string([]byte{0xff, 0xfe, 0x00}),
	})

	result, err := Run(context.Background(), Job{
		InputDir:  inputDir,
		OutputDir: filepath.Join(t.TempDir(), "out"),
		Pretty:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, result.Total())
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 3, result.Failed)
}

func TestRunInputDirMissing(t *testing.T) {
	_, err := Run(context.Background(), Job{
		InputDir:  filepath.Join(t.TempDir(), "missing"),
		OutputDir: filepath.Join(t.TempDir(), "out"),
	})
	assert.Error(t, err)
}

func TestRunCancelledContext(t *testing.T) {
	inputDir := createTempDir(t, map[string]string{
		"a.yaml": validManifest,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Job{
		InputDir:  inputDir,
		OutputDir: filepath.Join(t.TempDir(), "out"),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessFile(t *testing.T) {
	inputDir := createTempDir(t, map[string]string{
		"pod.yaml": validManifest,
	})
	outputDir := t.TempDir()

	err := ProcessFile(filepath.Join(inputDir, "pod.yaml"), outputDir, false)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outputDir, "pod.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"apiVersion":"v1","kind":"Pod","metadata":{"name":"test-pod"}}`, string(data))
}

func TestProcessFileFailure(t *testing.T) {
	inputDir := createTempDir(t, map[string]string{
		"bad.yaml": "- not\n- a\n- mapping\n",
	})
	outputDir := t.TempDir()

	err := ProcessFile(filepath.Join(inputDir, "bad.yaml"), outputDir, true)
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(outputDir, "bad.json"))
}
