package cube

import (
	"github.com/specio/hsicube/format"
)

// Display targets for natural-color band selection, in nanometers.
const (
	displayRedNm   = 660.0
	displayGreenNm = 550.0
	displayBlueNm  = 440.0
)

// NormalizeUnits converts a wavelength value from the given unit into the
// cube's own wavelength unit. It is a no-op when either unit is unknown or
// when the units already match.
//
// Same-unit values pass through untouched and nm<->um conversion uses the
// exact power-of-ten ratio, so band-center comparisons against the query
// stay exact rather than picking up round-off through intermediate scales.
func (c *Cube) NormalizeUnits(val float64, from format.WavelengthUnit) float64 {
	to := c.WavelengthUnits
	if from == format.UnitUnknown || to == format.UnitUnknown || from == to {
		return val
	}

	if from == format.UnitNanometer {
		return val * 0.001
	}

	return val * 1000
}

// usableBands returns the indices of bands not excluded by the bad-band
// mask. A missing mask means every band is usable.
func (c *Cube) usableBands() []int {
	out := make([]int, 0, c.Bands)
	for b := range c.Bands {
		if b < len(c.BadBands) && c.BadBands[b] == 0 {
			continue
		}
		out = append(out, b)
	}

	return out
}

// GetBandListByWavelength returns the usable band indices whose wavelength
// falls in [minWavelength, maxWavelength] after converting the query from
// the given unit into the cube's unit. A negative maxWavelength turns the
// query into a single-wavelength lookup.
//
// When no usable band falls in the range the nearest usable band to the
// query center is returned: below the first wavelength the first usable
// band, above the last the last usable band, otherwise whichever of the two
// bracketing usable bands is closer (ties favor the lower index).
//
// Returns an empty list when the cube has no wavelengths or no usable
// bands.
func (c *Cube) GetBandListByWavelength(minWavelength, maxWavelength float64, units format.WavelengthUnit) []int {
	if len(c.Wavelengths) == 0 {
		return nil
	}
	if maxWavelength < 0 {
		maxWavelength = minWavelength
	}

	lo := c.NormalizeUnits(minWavelength, units)
	hi := c.NormalizeUnits(maxWavelength, units)

	// Only bands with a recorded center wavelength can be matched.
	usable := make([]int, 0, c.Bands)
	for _, b := range c.usableBands() {
		if b < len(c.Wavelengths) {
			usable = append(usable, b)
		}
	}
	if len(usable) == 0 {
		return nil
	}

	var bands []int
	for _, b := range usable {
		if c.Wavelengths[b] >= lo && c.Wavelengths[b] <= hi {
			bands = append(bands, b)
		}
	}
	if len(bands) > 0 {
		return bands
	}

	return []int{c.nearestUsableBand((lo+hi)/2, usable)}
}

// nearestUsableBand resolves a query center that no band covers to the
// closest usable band.
func (c *Cube) nearestUsableBand(center float64, usable []int) int {
	first := usable[0]
	last := usable[len(usable)-1]

	if center <= c.Wavelengths[first] {
		return first
	}
	if center >= c.Wavelengths[last] {
		return last
	}

	for i := 0; i < len(usable)-1; i++ {
		low, high := usable[i], usable[i+1]
		if c.Wavelengths[low] <= center && center <= c.Wavelengths[high] {
			if center-c.Wavelengths[low] <= c.Wavelengths[high]-center {
				return low
			}

			return high
		}
	}

	return last
}

// GuessDisplayBands selects up to three usable bands nearest the red, green
// and blue display wavelengths (660/550/440 nm) for natural-color display.
//
// If the cube does not cover the visible spectrum all three targets resolve
// to the same band and the result collapses to that single band. A cube
// without wavelengths falls back to band 0.
func (c *Cube) GuessDisplayBands() []int {
	if len(c.Wavelengths) == 0 || c.Bands <= 0 {
		return []int{0}
	}

	rgb := make([]int, 0, 3)
	for _, target := range []float64{displayRedNm, displayGreenNm, displayBlueNm} {
		found := c.GetBandListByWavelength(target, -1, format.UnitNanometer)
		if len(found) == 0 {
			return []int{0}
		}
		rgb = append(rgb, found[0])
	}

	if rgb[0] == rgb[1] && rgb[1] == rgb[2] {
		return rgb[:1]
	}

	return rgb
}

// GetBadBandList returns a copy of the cube's bad-band mask. If another
// cube is given the result is the element-wise AND of both masks, marking
// only the bands usable in both cubes.
func (c *Cube) GetBadBandList(other *Cube) []int {
	bbl := make([]int, len(c.BadBands))
	copy(bbl, c.BadBands)

	if other == nil {
		return bbl
	}

	for i := range bbl {
		if i >= len(other.BadBands) || other.BadBands[i] == 0 {
			bbl[i] = 0
		}
	}

	return bbl
}
