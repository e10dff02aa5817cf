package adbbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWMSizePhysical(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	w, h, err := parseWMSize("Physical size: 1080x2340\n")
	require.NoError(err)
	require.Equal(1080, w)
	require.Equal(2340, h)
}

func TestParseWMSizeOverrideWins(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	output := "Physical size: 1080x2340\nOverride size: 720x1560\n"
	w, h, err := parseWMSize(output)
	require.NoError(err)
	require.Equal(720, w)
	require.Equal(1560, h)
}

func TestParseWMSizeNoResolution(t *testing.T) {
	t.Parallel()

	_, _, err := parseWMSize("error: device offline\n")
	assert.Error(t, err)

	_, _, err = parseWMSize("")
	assert.Error(t, err)
}

func TestParseRotation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		output string
		want   int
		ok     bool
	}{
		{"  mDisplayRotation=ROTATION_0\n", 0, true},
		{"  mDisplayRotation=ROTATION_90\n", 1, true},
		{"  mDisplayRotation=ROTATION_180\n", 2, true},
		{"  mDisplayRotation=ROTATION_270\n", 3, true},
		{"no rotation here\n", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseRotation(tc.output)
		assert.Equal(t, tc.ok, ok, "output %q", tc.output)
		if tc.ok {
			assert.Equal(t, tc.want, got, "output %q", tc.output)
		}
	}
}

func TestParseRotationBuriedInDump(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	dump := `WINDOW MANAGER DISPLAY CONTENTS (dumpsys window displays)
  Display: mDisplayId=0
    mDisplayInfo=DisplayInfo{...}
    mDisplayRotation=ROTATION_90 mAltOrientation=false
`
	rotation, ok := parseRotation(dump)
	require.True(ok)
	require.Equal(1, rotation)
}
