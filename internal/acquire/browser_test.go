// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewestPDF(t *testing.T) {
	dir := t.TempDir()

	older := filepath.Join(dir, "older.pdf")
	newer := filepath.Join(dir, "newer.pdf")
	require.NoError(t, os.WriteFile(older, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("b"), 0o644))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	got, err := newestPDF(dir)
	require.NoError(t, err)
	assert.Equal(t, newer, got)
}

func TestNewestPDF_EmptyDir(t *testing.T) {
	_, err := newestPDF(t.TempDir())
	assert.Error(t, err)
}

func TestFinishDownload_RenamesBrowserChosenName(t *testing.T) {
	dir := t.TempDir()
	downloaded := filepath.Join(dir, "crystals-09-00586-v2.pdf")
	require.NoError(t, os.WriteFile(downloaded, []byte("%PDF-1.4"), 0o644))

	target := filepath.Join(dir, "10.3390_cryst9110586.pdf")
	got, err := finishDownload(dir, target)
	require.NoError(t, err)
	assert.Equal(t, target, got)
	assert.FileExists(t, target)
	assert.NoFileExists(t, downloaded)
}

func TestFinishDownload_AlreadyCanonical(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "10.3390_cryst9110586.pdf")
	require.NoError(t, os.WriteFile(target, []byte("%PDF-1.4"), 0o644))

	got, err := finishDownload(dir, target)
	require.NoError(t, err)
	assert.Equal(t, target, got)
	assert.FileExists(t, target)
}

func TestWaitForDownloadMarkers(t *testing.T) {
	oldInterval := downloadPollInterval
	downloadPollInterval = 5 * time.Millisecond
	defer func() { downloadPollInterval = oldInterval }()

	dir := t.TempDir()
	marker := filepath.Join(dir, "paper.pdf.crdownload")
	require.NoError(t, os.WriteFile(marker, []byte("partial"), 0o644))

	go func() {
		time.Sleep(20 * time.Millisecond)
		os.Remove(marker)
	}()

	start := time.Now()
	waitForDownloadMarkers(dir, time.Second)
	elapsed := time.Since(start)

	assert.False(t, hasDownloadMarkers(dir))
	assert.Less(t, elapsed, time.Second, "should return once markers clear, not run out the timeout")
}

func TestWaitForDownloadMarkers_TimesOut(t *testing.T) {
	oldInterval := downloadPollInterval
	downloadPollInterval = 5 * time.Millisecond
	defer func() { downloadPollInterval = oldInterval }()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stuck.tmp"), []byte("partial"), 0o644))

	done := make(chan struct{})
	go func() {
		waitForDownloadMarkers(dir, 30*time.Millisecond)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waitForDownloadMarkers did not respect its timeout")
	}
}

func TestHasDownloadMarkers(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, hasDownloadMarkers(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.crdownload"), nil, 0o644))
	assert.True(t, hasDownloadMarkers(dir))

	require.NoError(t, os.Remove(filepath.Join(dir, "x.crdownload")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "y.tmp"), nil, 0o644))
	assert.True(t, hasDownloadMarkers(dir))
}
