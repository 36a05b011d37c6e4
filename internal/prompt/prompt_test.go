package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdinConfirmer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"  y  \n", true},
		{"y", true},
		{"yes\n", false},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			c := NewStdinConfirmer(strings.NewReader(tt.input), &out)

			got, err := c.Confirm("Fix 3 records?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Fix 3 records? (y/N): ", out.String())
		})
	}
}

func TestAlwaysConfirm(t *testing.T) {
	ok, err := AlwaysConfirm{}.Confirm("anything")
	require.NoError(t, err)
	assert.True(t, ok)
}
