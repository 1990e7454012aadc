package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Format
		wantErr bool
	}{
		{"ndjson", "ndjson", FormatNDJSON, false},
		{"parquet", "parquet", FormatParquet, false},
		{"csv", "csv", FormatCSV, false},
		{"mixed case", "CSV", FormatCSV, false},
		{"padded", "  parquet ", FormatParquet, false},
		{"xml is unsupported", "xml", "", true},
		{"empty is unsupported", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatExt(t *testing.T) {
	assert.Equal(t, ".ndjson", FormatNDJSON.Ext())
	assert.Equal(t, ".parquet", FormatParquet.Ext())
	assert.Equal(t, ".csv", FormatCSV.Ext())
}

func TestFormatBinary(t *testing.T) {
	assert.True(t, FormatParquet.Binary())
	assert.False(t, FormatNDJSON.Binary())
	assert.False(t, FormatCSV.Binary())
}

func TestNormalizePathArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/data/lake", "/data/lake"},
		{"single trailing slash", "/data/lake/", "/data/lake"},
		{"multiple trailing slashes", "/data/lake///", "/data/lake"},
		{"root path", "/", "/"},
		{"relative path", "out", "out"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePathArg(tt.in))
		})
	}
}

func TestValidate_Format(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputPath = "/data"
	cfg.Format = "avro"
	require.Error(t, cfg.Validate())

	cfg.Format = FormatCSV
	require.NoError(t, cfg.Validate())
}

func TestValidate_RequiresInputPath(t *testing.T) {
	cfg := DefaultConfig()
	require.Error(t, cfg.Validate())

	cfg.InputPath = "/data"
	require.NoError(t, cfg.Validate())
}

func TestValidate_CheckOnlySkipsInputPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	require.NoError(t, cfg.Validate())
}

func TestValidate_Parallelism(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputPath = "/data"

	cfg.Parallelism = -1
	require.Error(t, cfg.Validate())

	// Explicit zero falls back to the detected default.
	cfg.Parallelism = 0
	require.NoError(t, cfg.Validate())
	assert.Greater(t, cfg.Parallelism, 0)
}

func TestValidate_MergeOutputRequiresSingleFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputPath = "/data"
	cfg.MergeOutput = "combined.ndjson"
	require.Error(t, cfg.Validate())

	cfg.SingleFile = true
	require.NoError(t, cfg.Validate())
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, FormatNDJSON, cfg.Format)
	assert.Equal(t, ColorAuto, cfg.ColorMode)
	assert.True(t, cfg.ShowFileStats)
	assert.False(t, cfg.SingleFile)
	assert.False(t, cfg.DryRun)
	assert.Greater(t, cfg.Parallelism, 0)
}
