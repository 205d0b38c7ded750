// Package record reads and writes the fixed header of packed-record raster
// files. A record file interleaves pre-chunked pixel data for sequential
// consumption; only its 16-byte header is addressable, which is enough to
// answer metadata queries without decoding pixels.
//
// Header layout, little-endian:
//
//	bytes 0..3   magic "RCH1"
//	bytes 4..7   uint32 band count
//	bytes 8..11  uint32 width in pixels
//	bytes 12..15 uint32 height in pixels
package record

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/terrapixel/raster-chunker/internal/raster"
)

const magic = "RCH1"

// headerSize is the fixed byte length of a record header.
const headerSize = 16

// ReadInfo resolves the metadata of the record file at path. It matches
// raster.RecordMeta.
func ReadInfo(path string) (raster.RecordInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return raster.RecordInfo{}, fmt.Errorf("failed to open record %s: %w", path, err)
	}
	defer f.Close()

	var buf [headerSize]byte
	if _, err := io.ReadFull(f, buf[:]); err != nil {
		return raster.RecordInfo{}, fmt.Errorf("failed to read record header of %s: %w", path, err)
	}
	if string(buf[:4]) != magic {
		return raster.RecordInfo{}, fmt.Errorf("%s is not a record file (bad magic %q)", path, buf[:4])
	}

	return raster.RecordInfo{
		NumBands: int(binary.LittleEndian.Uint32(buf[4:8])),
		Width:    int(binary.LittleEndian.Uint32(buf[8:12])),
		Height:   int(binary.LittleEndian.Uint32(buf[12:16])),
	}, nil
}

// WriteHeader writes a record header for the given metadata.
func WriteHeader(w io.Writer, info raster.RecordInfo) error {
	var buf [headerSize]byte
	copy(buf[:4], magic)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(info.NumBands))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(info.Width))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(info.Height))
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("failed to write record header: %w", err)
	}
	return nil
}
