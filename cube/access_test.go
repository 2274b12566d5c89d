package cube

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specio/hsicube/errs"
	"github.com/specio/hsicube/format"
)

// testValue gives every (line, sample, band) a distinct value so layout
// mixups show up as wrong pixels rather than coincidental matches.
func testValue(line, sample, band int) float64 {
	return float64(line*100 + sample*10 + band)
}

func fillCube(t *testing.T, c *Cube) {
	t.Helper()
	for l := range c.Lines {
		for s := range c.Samples {
			for b := range c.Bands {
				require.NoError(t, c.SetPixel(l, s, b, testValue(l, s, b)))
			}
		}
	}
}

var allInterleaves = []format.Interleave{
	format.InterleaveBIL,
	format.InterleaveBIP,
	format.InterleaveBSQ,
}

func TestLayoutEquivalence(t *testing.T) {
	// The same logical data written through all three layouts must read
	// back identically pixel for pixel.
	for _, il := range allInterleaves {
		t.Run(il.String(), func(t *testing.T) {
			c, err := Create(il, 4, 5, 3)
			require.NoError(t, err)
			fillCube(t, c)

			for l := range c.Lines {
				for s := range c.Samples {
					for b := range c.Bands {
						v, err := c.GetPixel(l, s, b)
						require.NoError(t, err)
						require.InDelta(t, testValue(l, s, b), v, 1e-9)
					}
				}
			}
		})
	}
}

func TestFlatIndexInverse(t *testing.T) {
	for _, il := range allInterleaves {
		t.Run(il.String(), func(t *testing.T) {
			c, err := Create(il, 4, 5, 3)
			require.NoError(t, err)

			for l := range c.Lines {
				for s := range c.Samples {
					for b := range c.Bands {
						pos, err := c.LocationToFlat(l, s, b)
						require.NoError(t, err)

						gl, gs, gb, err := c.FlatToLocation(pos)
						require.NoError(t, err)
						require.Equal(t, l, gl)
						require.Equal(t, s, gs)
						require.Equal(t, b, gb)
					}
				}
			}
		})
	}
}

func TestFlatIndexBounds(t *testing.T) {
	c, err := Create(format.InterleaveBIP, 2, 2, 2)
	require.NoError(t, err)

	_, _, _, err = c.FlatToLocation(-1)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	_, _, _, err = c.FlatToLocation(8)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	_, err = c.LocationToFlat(2, 0, 0)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestBandBoundary(t *testing.T) {
	tests := []struct {
		interleave format.Interleave
		want       int
	}{
		{format.InterleaveBIP, 1},
		{format.InterleaveBIL, 5},
		{format.InterleaveBSQ, 20},
	}

	for _, tt := range tests {
		c, err := Create(tt.interleave, 4, 5, 3)
		require.NoError(t, err)
		require.Equal(t, tt.want, c.BandBoundary())
	}
}

func TestAccessBounds(t *testing.T) {
	c, err := Create(format.InterleaveBIP, 2, 3, 4)
	require.NoError(t, err)

	_, err = c.GetPixel(2, 0, 0)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	_, err = c.GetPixel(0, 3, 0)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	_, err = c.GetPixel(0, 0, 4)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	_, err = c.GetPixel(-1, 0, 0)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

	_, err = c.GetBandInPlace(4)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	_, err = c.GetSpectraInPlace(2, 0)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	_, err = c.GetLineOfSpectraCopy(2)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestAccessBeforeInitialize(t *testing.T) {
	c, err := New(format.InterleaveBIP, "")
	require.NoError(t, err)

	_, err = c.GetPixel(0, 0, 0)
	require.ErrorIs(t, err, errs.ErrNotInitialized)
}

func TestGetBandInPlace(t *testing.T) {
	for _, il := range allInterleaves {
		t.Run(il.String(), func(t *testing.T) {
			c, err := Create(il, 3, 4, 2)
			require.NoError(t, err)
			fillCube(t, c)

			view, err := c.GetBandInPlace(1)
			require.NoError(t, err)
			require.Equal(t, 3, view.Lines())
			require.Equal(t, 4, view.Samples())
			require.Equal(t, 1, view.Band())

			for l := range c.Lines {
				for s := range c.Samples {
					v, err := view.At(l, s)
					require.NoError(t, err)
					require.InDelta(t, testValue(l, s, 1), v, 1e-9)
				}
			}

			_, err = view.At(3, 0)
			require.ErrorIs(t, err, errs.ErrIndexOutOfRange)

			// In-place reads never touch the extrema
			_, _, ok := c.Extrema()
			require.False(t, ok)
		})
	}
}

func TestGetBandCopiesAndTracksExtrema(t *testing.T) {
	c, err := Create(format.InterleaveBSQ, 2, 3, 2)
	require.NoError(t, err)
	fillCube(t, c)

	band, err := c.GetBand(0)
	require.NoError(t, err)
	require.Len(t, band, 2*3)

	// Row-major (line, sample) order
	i := 0
	for l := range c.Lines {
		for s := range c.Samples {
			require.InDelta(t, testValue(l, s, 0), band[i], 1e-9)
			i++
		}
	}

	mn, mx, ok := c.Extrema()
	require.True(t, ok)
	require.InDelta(t, testValue(0, 0, 0), mn, 1e-9)
	require.InDelta(t, testValue(1, 2, 0), mx, 1e-9)

	// Mutating the copy does not touch the cube
	band[0] = 9999
	v, err := c.GetPixel(0, 0, 0)
	require.NoError(t, err)
	require.InDelta(t, testValue(0, 0, 0), v, 1e-9)
}

func TestGetSpectraInPlace(t *testing.T) {
	c, err := Create(format.InterleaveBIL, 2, 2, 3)
	require.NoError(t, err)
	fillCube(t, c)
	c.BadBands = []int{1, 0, 1}

	view, err := c.GetSpectraInPlace(1, 0)
	require.NoError(t, err)
	require.Equal(t, 3, view.Bands())

	// No mask is applied in place
	for b := range c.Bands {
		v, err := view.At(b)
		require.NoError(t, err)
		require.InDelta(t, testValue(1, 0, b), v, 1e-9)
	}

	_, _, ok := c.Extrema()
	require.False(t, ok)
}

func TestGetSpectraAppliesBadBandMask(t *testing.T) {
	c, err := Create(format.InterleaveBIP, 2, 2, 3)
	require.NoError(t, err)
	fillCube(t, c)
	c.BadBands = []int{1, 0, 1}

	spectrum, err := c.GetSpectra(1, 1)
	require.NoError(t, err)
	require.Len(t, spectrum, 3)
	require.InDelta(t, testValue(1, 1, 0), spectrum[0], 1e-9)
	require.Zero(t, spectrum[1], "excluded band should be masked to zero")
	require.InDelta(t, testValue(1, 1, 2), spectrum[2], 1e-9)

	_, _, ok := c.Extrema()
	require.True(t, ok)
}

func TestGetLineOfSpectraCopy(t *testing.T) {
	// The caller contract is (samples x bands) row-major regardless of the
	// physical layout; BIL and BSQ require a transpose internally.
	for _, il := range allInterleaves {
		t.Run(il.String(), func(t *testing.T) {
			c, err := Create(il, 3, 4, 2)
			require.NoError(t, err)
			fillCube(t, c)

			line, err := c.GetLineOfSpectraCopy(2)
			require.NoError(t, err)
			require.Len(t, line, 4*2)

			for s := range c.Samples {
				for b := range c.Bands {
					require.InDelta(t, testValue(2, s, b), line[s*c.Bands+b], 1e-9)
				}
			}
		})
	}
}

func TestGetLineOfSpectraMasksAndTracks(t *testing.T) {
	c, err := Create(format.InterleaveBSQ, 2, 3, 2)
	require.NoError(t, err)
	fillCube(t, c)
	c.BadBands = []int{0, 1}

	line, err := c.GetLineOfSpectra(1)
	require.NoError(t, err)
	for s := range c.Samples {
		require.Zero(t, line[s*c.Bands], "band 0 should be masked in every spectrum")
		require.InDelta(t, testValue(1, s, 1), line[s*c.Bands+1], 1e-9)
	}

	_, mx, ok := c.Extrema()
	require.True(t, ok)
	require.InDelta(t, testValue(1, 2, 1), mx, 1e-9)
}

func TestSetPixelBounds(t *testing.T) {
	c, err := Create(format.InterleaveBIP, 2, 2, 2)
	require.NoError(t, err)

	require.ErrorIs(t, c.SetPixel(5, 0, 0, 1), errs.ErrIndexOutOfRange)
}
