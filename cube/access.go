package cube

import (
	"fmt"
	"iter"

	"github.com/specio/hsicube/errs"
)

// BandView is a non-owning 2-D (lines × samples) view of one band, aliasing
// the cube's backing storage. It performs no copy and never updates the
// cube's extrema.
//
// The view must not outlive the cube's mapping.
type BandView struct {
	cube *Cube
	band int
}

// Lines returns the number of lines in the view.
func (v BandView) Lines() int { return v.cube.Lines }

// Samples returns the number of samples per line.
func (v BandView) Samples() int { return v.cube.Samples }

// Band returns the band index the view addresses.
func (v BandView) Band() int { return v.band }

// At returns the sample at (line, sample) within the band.
func (v BandView) At(line, sample int) (float64, error) {
	if !v.cube.scheme.Contains(line, sample, v.band) {
		return 0, fmt.Errorf("%w: line=%d sample=%d", errs.ErrIndexOutOfRange, line, sample)
	}

	return v.cube.codec.At(v.cube.payload, v.cube.scheme.FlatOffset(line, sample, v.band)), nil
}

// Values returns an iterator over the band in (line, sample) row-major
// order.
func (v BandView) Values() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for l := range v.cube.Lines {
			for s := range v.cube.Samples {
				if !yield(v.cube.codec.At(v.cube.payload, v.cube.scheme.FlatOffset(l, s, v.band))) {
					return
				}
			}
		}
	}
}

// SpectrumView is a non-owning 1-D (bands) view of the spectrum at one
// spatial location, aliasing the cube's backing storage. It performs no
// copy, applies no bad-band mask and never updates the cube's extrema.
type SpectrumView struct {
	cube   *Cube
	line   int
	sample int
}

// Bands returns the number of bands in the view.
func (v SpectrumView) Bands() int { return v.cube.Bands }

// At returns the sample at the given band.
func (v SpectrumView) At(band int) (float64, error) {
	if !v.cube.scheme.Contains(v.line, v.sample, band) {
		return 0, fmt.Errorf("%w: band=%d", errs.ErrIndexOutOfRange, band)
	}

	return v.cube.codec.At(v.cube.payload, v.cube.scheme.FlatOffset(v.line, v.sample, band)), nil
}

// Values returns an iterator over the spectrum in band order.
func (v SpectrumView) Values() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for b := range v.cube.Bands {
			if !yield(v.cube.codec.At(v.cube.payload, v.cube.scheme.FlatOffset(v.line, v.sample, b))) {
				return
			}
		}
	}
}

func (c *Cube) checkAccess(line, sample, band int) error {
	if !c.initialized {
		return errs.ErrNotInitialized
	}
	if !c.scheme.Contains(line, sample, band) {
		return fmt.Errorf("%w: line=%d sample=%d band=%d in %dx%dx%d",
			errs.ErrIndexOutOfRange, line, sample, band, c.Lines, c.Samples, c.Bands)
	}

	return nil
}

// GetPixel returns the stored sample at (line, sample, band).
func (c *Cube) GetPixel(line, sample, band int) (float64, error) {
	if err := c.checkAccess(line, sample, band); err != nil {
		return 0, err
	}

	return c.codec.At(c.payload, c.scheme.FlatOffset(line, sample, band)), nil
}

// SetPixel stores a sample at (line, sample, band). Only in-memory cubes
// are writable; memory-mapped cubes return errs.ErrReadOnly.
func (c *Cube) SetPixel(line, sample, band int, val float64) error {
	if err := c.checkAccess(line, sample, band); err != nil {
		return err
	}
	if c.readonly {
		return errs.ErrReadOnly
	}

	c.codec.Put(c.payload, c.scheme.FlatOffset(line, sample, band), val)

	return nil
}

// GetBandInPlace returns a non-owning view of one band. The view aliases
// the backing storage and does not update the extrema.
func (c *Cube) GetBandInPlace(band int) (BandView, error) {
	if err := c.checkAccess(0, 0, band); err != nil {
		return BandView{}, err
	}

	return BandView{cube: c, band: band}, nil
}

// GetBand returns an independent copy of one band in (line, sample)
// row-major order and folds the copied values into the running extrema.
func (c *Cube) GetBand(band int) ([]float64, error) {
	view, err := c.GetBandInPlace(band)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, c.Lines*c.Samples)
	for v := range view.Values() {
		out = append(out, v)
	}
	c.UpdateExtrema(out)

	return out, nil
}

// GetSpectraInPlace returns a non-owning view of the spectrum at
// (line, sample). The view aliases the backing storage, applies no
// bad-band mask and does not update the extrema.
func (c *Cube) GetSpectraInPlace(line, sample int) (SpectrumView, error) {
	if err := c.checkAccess(line, sample, 0); err != nil {
		return SpectrumView{}, err
	}

	return SpectrumView{cube: c, line: line, sample: sample}, nil
}

// GetSpectra returns an independent copy of the spectrum at (line, sample),
// multiplied element-wise by the bad-band mask, and folds the masked values
// into the running extrema.
func (c *Cube) GetSpectra(line, sample int) ([]float64, error) {
	view, err := c.GetSpectraInPlace(line, sample)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, c.Bands)
	for v := range view.Values() {
		out = append(out, v)
	}
	c.maskBadBands(out, 0)
	c.UpdateExtrema(out)

	return out, nil
}

// GetLineOfSpectraCopy returns an independent copy of all spectra in one
// line as a flat (samples × bands) row-major slice, regardless of the
// physical interleave. No bad-band mask is applied and the extrema are not
// updated.
func (c *Cube) GetLineOfSpectraCopy(line int) ([]float64, error) {
	if err := c.checkAccess(line, 0, 0); err != nil {
		return nil, err
	}

	out := make([]float64, 0, c.Samples*c.Bands)
	for s := range c.Samples {
		for b := range c.Bands {
			out = append(out, c.codec.At(c.payload, c.scheme.FlatOffset(line, s, b)))
		}
	}

	return out, nil
}

// GetLineOfSpectra returns all spectra in one line as a flat
// (samples × bands) row-major slice, multiplied per-band by the bad-band
// mask, and folds the masked values into the running extrema.
func (c *Cube) GetLineOfSpectra(line int) ([]float64, error) {
	out, err := c.GetLineOfSpectraCopy(line)
	if err != nil {
		return nil, err
	}

	for s := range c.Samples {
		c.maskBadBands(out[s*c.Bands:(s+1)*c.Bands], 0)
	}
	c.UpdateExtrema(out)

	return out, nil
}

// maskBadBands zeroes the values of excluded bands in a spectrum slice
// whose first element corresponds to band firstBand.
func (c *Cube) maskBadBands(spectrum []float64, firstBand int) {
	for i := range spectrum {
		band := firstBand + i
		if band < len(c.BadBands) && c.BadBands[band] == 0 {
			spectrum[i] = 0
		}
	}
}

// FlatToLocation converts a flat element index into (line, sample, band)
// coordinates for the cube's interleave.
func (c *Cube) FlatToLocation(pos int) (line, sample, band int, err error) {
	if !c.initialized {
		return 0, 0, 0, errs.ErrNotInitialized
	}
	if pos < 0 || pos >= c.scheme.Elements() {
		return 0, 0, 0, fmt.Errorf("%w: flat index %d of %d elements",
			errs.ErrIndexOutOfRange, pos, c.scheme.Elements())
	}

	line, sample, band = c.scheme.Location(pos)

	return line, sample, band, nil
}

// LocationToFlat converts (line, sample, band) coordinates into a flat
// element index for the cube's interleave.
func (c *Cube) LocationToFlat(line, sample, band int) (int, error) {
	if err := c.checkAccess(line, sample, band); err != nil {
		return 0, err
	}

	return c.scheme.FlatOffset(line, sample, band), nil
}

// BandBoundary returns the flat-index distance between two samples at the
// same (line, sample) in adjacent bands.
func (c *Cube) BandBoundary() int {
	return c.scheme.BandBoundary()
}
