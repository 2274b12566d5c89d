package hsicube_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specio/hsicube"
	"github.com/specio/hsicube/cube"
	"github.com/specio/hsicube/format"
)

func TestCreateAndAccess(t *testing.T) {
	c, err := hsicube.Create(format.InterleaveBIP, 4, 5, 3)
	require.NoError(t, err)

	require.NoError(t, c.SetPixel(2, 3, 1, 1234))
	v, err := c.GetPixel(2, 3, 1)
	require.NoError(t, err)
	require.InDelta(t, 1234.0, v, 1e-9)
}

func TestCreateLike(t *testing.T) {
	src, err := hsicube.Create(format.InterleaveBSQ, 2, 2, 2,
		cube.WithDataType(format.Float32))
	require.NoError(t, err)

	c, err := hsicube.CreateLike(src)
	require.NoError(t, err)
	require.Equal(t, format.Float32, c.DataType)
	require.Equal(t, src.Interleave, c.Interleave)
}

// rawLoader is a minimal metadata loader for headerless int16 payloads with
// a fixed, known shape.
type rawLoader struct {
	lines, samples, bands int
}

func (l rawLoader) Identify(path string) bool {
	return strings.HasSuffix(path, ".raw")
}

func (l rawLoader) Load(path string) (*cube.Cube, error) {
	c, err := cube.New(format.InterleaveBIP, path)
	if err != nil {
		return nil, err
	}
	c.Lines, c.Samples, c.Bands = l.lines, l.samples, l.bands
	c.DataType = format.Int16

	return c, nil
}

func TestOpenWith(t *testing.T) {
	src, err := hsicube.Create(format.InterleaveBIP, 2, 3, 2)
	require.NoError(t, err)
	require.NoError(t, src.SetPixel(1, 2, 1, 77))

	path := filepath.Join(t.TempDir(), "scene.raw")
	require.NoError(t, src.Save(path))

	c, err := hsicube.OpenWith(path, rawLoader{lines: 2, samples: 3, bands: 2})
	require.NoError(t, err)
	defer c.Close()

	v, err := c.GetPixel(1, 2, 1)
	require.NoError(t, err)
	require.InDelta(t, 77.0, v, 1e-9)
}

func TestOpenWithErrors(t *testing.T) {
	t.Run("nil loader", func(t *testing.T) {
		_, err := hsicube.OpenWith("/data/scene.raw", nil)
		require.Error(t, err)
	})

	t.Run("unrecognized file", func(t *testing.T) {
		_, err := hsicube.OpenWith("/data/scene.bmp", rawLoader{})
		require.Error(t, err)
	})

	t.Run("loader failure propagates", func(t *testing.T) {
		_, err := hsicube.OpenWith("broken.raw", failingLoader{})
		require.ErrorContains(t, err, "failed to load metadata")
	})
}

type failingLoader struct{}

func (failingLoader) Identify(string) bool { return true }
func (failingLoader) Load(string) (*cube.Cube, error) {
	return nil, fmt.Errorf("corrupt header")
}
