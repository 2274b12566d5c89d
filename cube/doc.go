// Package cube implements the hyperspectral data cube: a dense
// lines × samples × bands raster stored in one of three physical interleave
// orders (BIL, BIP, BSQ), backed either by a read-only memory-mapped file or
// by an in-memory payload.
//
// A Cube owns its metadata, the backing storage, a typed element codec and
// the address-translation scheme for its interleave. Accessors return either
// non-owning views aliasing the backing storage (the InPlace variants) or
// independent copies that apply the bad-band mask and fold the observed
// values into the cube's running extrema.
//
// Metadata is supplied out-of-band: a format-specific loader (or the caller
// directly) populates the exported fields, then Open or Initialize builds
// the typed view. The package performs no format sniffing.
package cube
