package app

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectConfigPath(t *testing.T) string {
	t.Helper()

	root, err := filepath.Abs("..")
	require.NoError(t, err)

	return filepath.Join(root, "etc") + string(filepath.Separator)
}

func TestConfigCommand(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, out string)
	}{
		{
			name: "toml",
			args: []string{"config", "--config", projectConfigPath(t)},
			check: func(t *testing.T, out string) {
				t.Helper()
				assert.Contains(t, out, "Title = 'GoRBAC-Admin'")
			},
		},
		{
			name: "json",
			args: []string{"config", "--config", projectConfigPath(t), "--json"},
			check: func(t *testing.T, out string) {
				t.Helper()

				var decoded map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(out), &decoded))
				assert.Equal(t, "GoRBAC-Admin", decoded["Title"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			asJSON = false

			rootCmd.SetOut(&buf)
			rootCmd.SetArgs(tt.args)

			require.NoError(t, Execute())
			tt.check(t, buf.String())
		})
	}
}

func TestConfigCommandMissingFile(t *testing.T) {
	rootCmd.SetArgs([]string{"config", "--config", t.TempDir() + string(filepath.Separator)})
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	require.Error(t, Execute())
}
