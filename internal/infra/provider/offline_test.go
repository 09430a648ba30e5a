package provider

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineCandidatesOrder(t *testing.T) {
	paths := offlineCandidates("guardian", "/etc/newssearch")
	assert.Equal(t, []string{
		filepath.Join("/etc/newssearch", "guardian_offline.json"),
		filepath.Join("data", "guardian_offline.json"),
		"guardian_offline.json",
	}, paths)
}

func TestOfflineCandidatesWithoutDir(t *testing.T) {
	paths := offlineCandidates("nytimes", "")
	assert.Equal(t, []string{
		filepath.Join("data", "nytimes_offline.json"),
		"nytimes_offline.json",
	}, paths)
}

func TestLoadOfflineDatasetPrefersConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guardian_offline.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"response":{}}`), 0o644))

	raw, err := loadOfflineDataset("guardian", dir)
	require.NoError(t, err)
	assert.JSONEq(t, `{"response":{}}`, string(raw))
}

func TestLoadOfflineDatasetMissingEverywhere(t *testing.T) {
	_, err := loadOfflineDataset("guardian", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOfflineDataNotFound)
}
