package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		input   Config
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:  "defaults report format to text",
			input: Config{ModelPaths: []string{"model.hcl"}, WorkerCount: 1},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ReportText, cfg.ReportFormat)
			},
		},
		{
			name:    "requires a model path",
			input:   Config{WorkerCount: 1},
			wantErr: "at least one model path is required",
		},
		{
			name:    "rejects zero workers",
			input:   Config{ModelPaths: []string{"m"}, WorkerCount: 0},
			wantErr: "worker count must be at least 1",
		},
		{
			name:    "rejects unknown report format",
			input:   Config{ModelPaths: []string{"m"}, WorkerCount: 2, ReportFormat: "xml"},
			wantErr: `invalid report format "xml"`,
		},
		{
			name:  "classpath follows model paths",
			input: Config{ModelPaths: []string{"a"}, Classpath: []string{"b", "c"}, WorkerCount: 1, ReportFormat: ReportYAML},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"a", "b", "c"}, cfg.searchPaths())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := NewConfig(tc.input)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}
