package grid

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"unsafe"

	"terrain_router/pkg/terrain"
)

const (
	magicBytes = "TERRGRID"
	version    = uint32(1)
	maxCells   = 50_000_000
)

// fileHeader is the binary header.
type fileHeader struct {
	Magic   [8]byte
	Version uint32
	Rows    uint32
	Cols    uint32
}

// WriteBinary serializes g to path: header, row-major elevations, one terrain
// byte per cell, CRC32 trailer. The file is written to a temp path and renamed.
func WriteBinary(path string, g *Grid) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath) // clean up on error
	}()

	crcWriter := crc32Writer{w: f, hash: crc32.NewIEEE()}
	w := &crcWriter

	hdr := fileHeader{
		Version: version,
		Rows:    uint32(g.Rows),
		Cols:    uint32(g.Cols),
	}
	copy(hdr.Magic[:], magicBytes)
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if err := writeFloat64Slice(w, g.Elevations()); err != nil {
		return fmt.Errorf("write elevations: %w", err)
	}
	if err := writeKindSlice(w, g.Kinds()); err != nil {
		return fmt.Errorf("write terrain: %w", err)
	}

	checksum := crcWriter.hash.Sum32()
	if err := binary.Write(f, binary.LittleEndian, checksum); err != nil {
		return fmt.Errorf("write CRC32: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}

// ReadBinary deserializes a grid written by WriteBinary.
func ReadBinary(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	crcReader := crc32Reader{r: f, hash: crc32.NewIEEE()}
	r := &crcReader

	var hdr fileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	if string(hdr.Magic[:]) != magicBytes {
		return nil, fmt.Errorf("invalid magic bytes: %q", hdr.Magic)
	}
	if hdr.Version != version {
		return nil, fmt.Errorf("unsupported version: %d", hdr.Version)
	}
	if hdr.Rows == 0 || hdr.Cols == 0 {
		return nil, ErrEmptyGrid
	}
	n := uint64(hdr.Rows) * uint64(hdr.Cols)
	if n > maxCells {
		return nil, fmt.Errorf("%dx%d grid exceeds limit of %d cells", hdr.Rows, hdr.Cols, maxCells)
	}

	elevation, err := readFloat64Slice(r, int(n))
	if err != nil {
		return nil, fmt.Errorf("read elevations: %w", err)
	}
	kinds, err := readKindSlice(r, int(n))
	if err != nil {
		return nil, fmt.Errorf("read terrain: %w", err)
	}

	expectedCRC := crcReader.hash.Sum32()
	var storedCRC uint32
	if err := binary.Read(f, binary.LittleEndian, &storedCRC); err != nil {
		return nil, fmt.Errorf("read CRC32: %w", err)
	}
	if storedCRC != expectedCRC {
		return nil, fmt.Errorf("CRC32 mismatch: stored=%08x computed=%08x", storedCRC, expectedCRC)
	}

	return New(int(hdr.Rows), int(hdr.Cols), elevation, kinds)
}

// Zero-copy I/O helpers using unsafe.Slice.

func writeFloat64Slice(w io.Writer, s []float64) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	_, err := w.Write(b)
	return err
}

func writeKindSlice(w io.Writer, s []terrain.Kind) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s))
	_, err := w.Write(b)
	return err
}

func readFloat64Slice(r io.Reader, n int) ([]float64, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]float64, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*8)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func readKindSlice(r io.Reader, n int) ([]terrain.Kind, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]terrain.Kind, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

// CRC32 wrapping writers/readers.

type crc32Writer struct {
	w    io.Writer
	hash crc32Hash
}

type crc32Hash interface {
	Write([]byte) (int, error)
	Sum32() uint32
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

type crc32Reader struct {
	r    io.Reader
	hash crc32Hash
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}
