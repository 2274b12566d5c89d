package cube

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
	log "github.com/sirupsen/logrus"

	"github.com/specio/hsicube/compress"
	"github.com/specio/hsicube/errs"
	"github.com/specio/hsicube/format"
	"github.com/specio/hsicube/internal/pool"
)

// resolveLocalPath turns a path or file:// URL into a plain filesystem
// path. Non-file URL schemes cannot be memory mapped.
func resolveLocalPath(path string) (string, error) {
	if path == "" {
		return "", errs.ErrNoPath
	}
	if !strings.Contains(path, "://") {
		return path, nil
	}

	u, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", errs.ErrNotLocalFile, path, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: scheme %q", errs.ErrNotLocalFile, u.Scheme)
	}

	return u.Path, nil
}

// Open binds the cube to a file, memory-maps it read-only and initializes
// the typed view. An empty path falls back to the cube's own Path.
//
// Metadata (shape, element type, offsets) must already be populated; a
// failed Initialize unmaps the file and leaves the cube unusable.
// Open is a no-op when the cube is already mapped.
func (c *Cube) Open(path string) error {
	if c.mapping != nil {
		return nil
	}
	if path == "" {
		path = c.Path
	}

	local, err := resolveLocalPath(path)
	if err != nil {
		return err
	}

	f, err := os.Open(local)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", local, err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to map %s: %w", local, err)
	}

	c.Path = local
	c.mapping = m

	if err := c.Initialize(); err != nil {
		_ = m.Unmap()
		c.mapping = nil
		c.payload = nil
		return err
	}

	log.Debugf("cube: mapped %s (%d payload bytes at offset %d)", local, c.DataBytes, c.DataOffset)

	return nil
}

// Save persists the cube. A live memory mapping is flushed back to its
// file; an in-memory payload is serialized as raw bytes in the cube's
// element type and byte order. An empty path falls back to the cube's own
// Path.
func (c *Cube) Save(path string) error {
	if !c.initialized {
		return errs.ErrNotInitialized
	}

	if c.mapping != nil {
		if err := c.mapping.Flush(); err != nil {
			return fmt.Errorf("failed to flush %s: %w", c.Path, err)
		}

		return nil
	}

	if path == "" {
		path = c.Path
	}
	local, err := resolveLocalPath(path)
	if err != nil {
		return err
	}

	if err := os.WriteFile(local, c.payload, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", local, err)
	}
	if c.Path == "" {
		c.Path = local
	}

	log.Debugf("cube: wrote %d payload bytes to %s", len(c.payload), local)

	return nil
}

// Export writes a compressed archive of the raw payload to the given path.
// Metadata stays out-of-band, exactly as in the uncompressed format; the
// archive holds only the compressed payload bytes.
func (c *Cube) Export(path string, compression format.CompressionType) error {
	if !c.initialized {
		return errs.ErrNotInitialized
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return err
	}

	compressed, err := codec.Compress(c.payload)
	if err != nil {
		return fmt.Errorf("failed to compress payload: %w", err)
	}

	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	stats := compress.Stats{
		Algorithm:      compression,
		OriginalSize:   int64(len(c.payload)),
		CompressedSize: int64(len(compressed)),
	}
	log.Debugf("cube: exported %s with %s, ratio %.3f (%.1f%% saved)",
		path, compression, stats.Ratio(), stats.SpaceSavings())

	return nil
}

// LoadCompressed replaces the cube's backing storage with the payload
// decompressed from an archive written by Export, then re-initializes the
// typed view. Shape and element type metadata must already be populated,
// exactly as for Open.
//
// The resulting cube is in-memory and writable.
func (c *Cube) LoadCompressed(path string, compression format.CompressionType) error {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)
	buf.ExtendOrGrow(int(info.Size()))

	if _, err := io.ReadFull(f, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	payload, err := codec.Decompress(buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	if compression == format.CompressionNone {
		// The no-op codec aliases the pooled read buffer.
		payload = append([]byte(nil), payload...)
	}

	if c.mapping != nil {
		if err := c.Close(); err != nil {
			return err
		}
	}

	c.payload = payload
	c.readonly = false
	c.DataOffset = 0
	c.FileOffset = 0
	c.HeaderOffset = 0
	c.DataBytes = 0

	if err := c.Initialize(); err != nil {
		c.payload = nil
		return err
	}

	log.Debugf("cube: loaded %d payload bytes from %s (%s)", len(payload), path, compression)

	return nil
}
