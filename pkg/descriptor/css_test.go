package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSS(t *testing.T) {
	orange := NewRGB(255, 128, 0)
	assert.Equal(t, "#ff8000", orange.CSS())

	red := NewHSI(0, 1, 1, false)
	assert.Equal(t, "#ff0000", red.CSS())

	withWhite := NewRGBW(0, 0, 255, 200)
	assert.Equal(t, "#0000ff", withWhite.CSS())
}

func TestFromCSS(t *testing.T) {
	tests := []struct {
		in           string
		whiteEnabled bool
		want         string
	}{
		{"#ff8000", false, "cff8000"},
		{"#FF8000", false, "cff8000"},
		{"#f80", false, "cff8800"},
		{" #0000ff ", true, "c0000ff00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := FromCSS(tt.in, tt.whiteEnabled)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Encode())
			assert.Equal(t, tt.whiteEnabled, c.WhiteEnabled())
		})
	}
}

func TestFromCSS_Errors(t *testing.T) {
	for _, in := range []string{"", "ff8000", "#ff80", "#gg8000", "cff8000"} {
		t.Run(in, func(t *testing.T) {
			_, err := FromCSS(in, false)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}
