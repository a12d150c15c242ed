package netstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

const sampleProfiles = `version: 1
networks:
  - id: 1
    ssid: home
    security: wpa2-psk
    passphrase: correct horse
    priority: 10
  - id: 2
    ssid: cafe
    security: open
    bssid: "02:00:5e:00:00:02"
  - id: 5
    ssid: lab
    security: sae
    passphrase: labpass
    hidden: true
`

func TestFileLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "networks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleProfiles), 0600))

	f, err := OpenFile(path)
	require.NoError(t, err)

	home, ok := f.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, mode.SecurityWPA2PSK, home.Security)
	assert.Equal(t, "correct horse", home.Passphrase)
	assert.Equal(t, 10, home.Priority)

	cafe, ok := f.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, "02:00:5e:00:00:02", cafe.BSSID)

	lab, ok := f.Lookup(5)
	require.True(t, ok)
	assert.Equal(t, mode.SecurityWPA3SAE, lab.Security)
	assert.True(t, lab.Hidden)

	assert.Len(t, f.List(), 3)
}

func TestFileMissing(t *testing.T) {
	f, err := OpenFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, f.List())
}

func TestFileRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "networks: [\n"},
		{"unknown security", "networks:\n  - id: 1\n    ssid: x\n    security: wep\n"},
		{"short passphrase", "networks:\n  - id: 1\n    ssid: x\n    security: psk2\n    passphrase: abc\n"},
		{"duplicate id", "networks:\n  - id: 1\n    ssid: x\n  - id: 1\n    ssid: y\n"},
		{"future version", "version: 99\nnetworks: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "networks.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			_, err := OpenFile(path)
			assert.Error(t, err)
		})
	}
}

func TestFileSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "networks.yaml")
	f := NewFile(path)

	cfgs := []mode.NetworkConfig{
		{ID: 7, SSID: "office", Security: mode.SecurityWPA2PSK, Passphrase: "office-pass"},
		{ID: 2, SSID: "guest"},
	}
	require.NoError(t, f.Save(cfgs))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, f.List(), reopened.List())
	assert.Equal(t, 2, reopened.List()[0].ID)

	require.NoError(t, reopened.Clear())
	assert.Empty(t, reopened.List())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, reopened.Clear())
}
