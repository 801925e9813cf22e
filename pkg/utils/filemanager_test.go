package utils_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/purchase-parser/pkg/utils"
)

func newManager(t *testing.T) *utils.FileManager {
	t.Helper()
	root := t.TempDir()
	fm := utils.NewFileManager(
		filepath.Join(root, "in"),
		filepath.Join(root, "out"),
		filepath.Join(root, "in_archive"),
		filepath.Join(root, "out_archive"),
	)
	require.NoError(t, fm.EnsureDirectories())
	return fm
}

func touch(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestEnsureDirectories(t *testing.T) {
	fm := newManager(t)

	for _, dir := range []string{fm.InputDir, fm.OutputDir, fm.InputArchiveDir, fm.OutputArchiveDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestDiscoverInputFiles(t *testing.T) {
	fm := newManager(t)

	touch(t, filepath.Join(fm.InputDir, "b.txt"), "")
	touch(t, filepath.Join(fm.InputDir, "a.txt"), "")
	touch(t, filepath.Join(fm.InputDir, "c.csv"), "")
	require.NoError(t, os.Mkdir(filepath.Join(fm.InputDir, "dir.txt"), 0o755))

	files, err := fm.DiscoverInputFiles("")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(fm.InputDir, "a.txt"),
		filepath.Join(fm.InputDir, "b.txt"),
	}, files)

	files, err = fm.DiscoverInputFiles("*.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(fm.InputDir, "c.csv")}, files)

	_, err = fm.DiscoverInputFiles("[")
	assert.Error(t, err)
}

func TestArchiveInputFile(t *testing.T) {
	fm := newManager(t)
	src := filepath.Join(fm.InputDir, "ivan.txt")
	touch(t, src, "Ivan | 1 \"x\".")

	archived, err := fm.ArchiveInputFile(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fm.InputArchiveDir, "ivan.txt"), archived)
	assert.NoFileExists(t, src)

	data, err := os.ReadFile(archived)
	require.NoError(t, err)
	assert.Equal(t, "Ivan | 1 \"x\".", string(data))
}

func TestArchiveOutputFile_CopiesFile(t *testing.T) {
	fm := newManager(t)
	out := filepath.Join(fm.OutputDir, "ivan.xml")
	touch(t, out, "<purchase/>")

	archived, err := fm.ArchiveOutputFile(out)
	require.NoError(t, err)
	assert.FileExists(t, out)
	assert.FileExists(t, archived)
}

func TestArchive_Disabled(t *testing.T) {
	fm := newManager(t)
	fm.ArchiveOnSuccess = false
	src := filepath.Join(fm.InputDir, "ivan.txt")
	touch(t, src, "")

	got, err := fm.ArchiveInputFile(src)
	require.NoError(t, err)
	assert.Equal(t, src, got)
	assert.FileExists(t, src)
}

func TestGenerateOutputFileName(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)

	got := utils.GenerateOutputFileName("{original}_{timestamp}_{uuid}", ".xml", now,
		map[string]string{"original": "ivan"})
	assert.Regexp(t,
		regexp.MustCompile(`^ivan_20240115_143022_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.xml$`),
		got)

	assert.Equal(t, "20240115-143022.yaml",
		utils.GenerateOutputFileName("{date}-{time}.yaml", ".yaml", now, nil))
	assert.Equal(t, "plain", utils.GenerateOutputFileName("plain", "", now, nil))

	a := utils.GenerateOutputFileName("{uuid}", ".txt", now, nil)
	b := utils.GenerateOutputFileName("{uuid}", ".txt", now, nil)
	assert.NotEqual(t, a, b)
}

func TestWriteErrorLog(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)

	path, err := utils.WriteErrorLog(nil, dir, "run-1", now)
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = utils.WriteErrorLog([]utils.ErrorLogEntry{
		{Timestamp: now, FileName: "bad.txt", ErrorType: "syntax", ErrorMessage: "malformed input", Offset: 7},
		{Timestamp: now, FileName: "gone.txt", ErrorType: "io", ErrorMessage: "no such file", Offset: -1},
	}, dir, "run-1", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "error_log_20240115_143022_run-1.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Total Errors: 2")
	assert.Contains(t, text, "bad.txt")
	assert.Contains(t, text, "Offset:         7")
	assert.NotContains(t, text, "Offset:         -1")
}

func TestWriteLogs_SameSecondRunsDoNotCollide(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)
	entries := []utils.ErrorLogEntry{{Timestamp: now, FileName: "bad.txt", Offset: -1}}

	first, err := utils.WriteErrorLog(entries, dir, "run-a", now)
	require.NoError(t, err)
	second, err := utils.WriteErrorLog(entries, dir, "run-b", now)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.FileExists(t, first)
	assert.FileExists(t, second)

	summaryA, err := utils.WriteSummaryLog(utils.ProcessingSummary{RunID: "run-a", StartTime: now, EndTime: now}, dir)
	require.NoError(t, err)
	summaryB, err := utils.WriteSummaryLog(utils.ProcessingSummary{RunID: "run-b", StartTime: now, EndTime: now}, dir)
	require.NoError(t, err)
	assert.NotEqual(t, summaryA, summaryB)

	data, err := os.ReadFile(summaryA)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Run ID:         run-a")
}

func TestWriteSummaryLog(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	path, err := utils.WriteSummaryLog(utils.ProcessingSummary{
		RunID:           "run-1",
		StartTime:       start,
		EndTime:         start.Add(2 * time.Second),
		TotalFiles:      2,
		SuccessfulFiles: 1,
		FailedFiles:     1,
		TotalProducts:   3,
		TotalCost:       449,
		ProcessedFiles: []utils.ProcessedFileInfo{
			{InputFile: "ivan.txt", OutputFile: "ivan.xml", BuyerName: "Ivan", Products: 3},
		},
		FailedFilesList: []utils.FailedFileInfo{{InputFile: "bad.txt", ErrorMessage: "malformed input"}},
	}, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "processing_summary_20240115_143002_run-1.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Run ID:         run-1")
	assert.Contains(t, text, "Duration:       2s")
	assert.Contains(t, text, "Total Cost:     449")
	assert.Contains(t, text, "Buyer:        Ivan")
	assert.Contains(t, text, "Error: malformed input")
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "ivan", utils.BaseName("/data/in/ivan.txt"))
	assert.Equal(t, "archive.tar", utils.BaseName("archive.tar.gz"))
	assert.Equal(t, "noext", utils.BaseName("noext"))
}
