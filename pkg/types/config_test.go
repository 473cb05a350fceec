package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input   string
		want    ColorMode
		wantErr bool
	}{
		{input: "never", want: ColorNever},
		{input: "always", want: ColorAlways},
		{input: "auto", want: ColorAuto},
		{input: "", wantErr: true},
		{input: "ALWAYS", wantErr: true},
		{input: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColorMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorMode_Enabled(t *testing.T) {
	assert.True(t, ColorAlways.Enabled(false))
	assert.True(t, ColorAlways.Enabled(true))
	assert.False(t, ColorNever.Enabled(true))
	assert.False(t, ColorNever.Enabled(false))
	assert.True(t, ColorAuto.Enabled(true))
	assert.False(t, ColorAuto.Enabled(false))
}

func TestRunConfig_EmbedsMatchConfig(t *testing.T) {
	cfg := RunConfig{
		MatchConfig: MatchConfig{Pattern: "pipe", IgnoreCase: true},
		Files:       []string{"a.txt"},
	}

	assert.Equal(t, "pipe", cfg.Pattern)
	assert.True(t, cfg.IgnoreCase)
	assert.False(t, cfg.Invert)
	assert.False(t, cfg.ExtendedRegexp)
}
