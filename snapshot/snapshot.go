package snapshot

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/hupe1980/lloyd/model"
)

const (
	magic      = "LLYD"
	version    = 1
	headerSize = 20

	// maxPayload bounds the allocation made for a decoded payload. It fits
	// in int on 32-bit platforms.
	maxPayload = 1<<31 - 1
)

var (
	// ErrCorrupt is returned when a snapshot cannot be parsed.
	ErrCorrupt = errors.New("snapshot corrupt")

	// ErrChecksum is returned when the payload checksum does not match.
	ErrChecksum = errors.New("snapshot checksum mismatch")

	// ErrVersion is returned for snapshots written by an unknown format version.
	ErrVersion = errors.New("unsupported snapshot version")
)

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// Encode writes c to w.
func Encode(w io.Writer, c *model.Centroids, compression Compression) error {
	if err := c.Validate(c.Dims); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	payload := make([]byte, 4*len(c.Data))
	for i, x := range c.Data {
		binary.LittleEndian.PutUint32(payload[4*i:], math.Float32bits(x))
	}

	block, err := compressBlock(payload, compression)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	var header [headerSize]byte
	copy(header[0:4], magic)
	header[4] = version
	header[5] = byte(compression)
	binary.LittleEndian.PutUint32(header[8:], uint32(c.K))
	binary.LittleEndian.PutUint32(header[12:], uint32(c.Dims))
	binary.LittleEndian.PutUint32(header[16:], crc32.Checksum(payload, crc32cTable))

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}
	if _, err := bw.Write(block); err != nil {
		return err
	}
	return bw.Flush()
}

// Decode reads a centroid set written by Encode.
func Decode(r io.Reader) (*model.Centroids, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrCorrupt, err)
	}
	if string(header[0:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, header[0:4])
	}
	if header[4] != version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, header[4])
	}

	compression := Compression(header[5])
	k := int(binary.LittleEndian.Uint32(header[8:]))
	dims := int(binary.LittleEndian.Uint32(header[12:]))
	sum := binary.LittleEndian.Uint32(header[16:])

	if k <= 0 || dims <= 0 || uint64(k)*uint64(dims)*4 > maxPayload {
		return nil, fmt.Errorf("%w: invalid shape %dx%d", ErrCorrupt, k, dims)
	}

	var blockHeader [blockHeaderSize]byte
	if _, err := io.ReadFull(r, blockHeader[:]); err != nil {
		return nil, fmt.Errorf("%w: block header: %v", ErrCorrupt, err)
	}
	rawSize := binary.LittleEndian.Uint32(blockHeader[0:])
	blockSize := binary.LittleEndian.Uint32(blockHeader[4:])

	// Sizes are checked as uint32 before any conversion to int.
	if uint64(rawSize) != uint64(k)*uint64(dims)*4 {
		return nil, fmt.Errorf("%w: payload holds %d bytes, want %d", ErrCorrupt, rawSize, k*dims*4)
	}
	if blockSize > maxPayload {
		return nil, fmt.Errorf("%w: block too large", ErrCorrupt)
	}
	uncompressedSize, compressedSize := int(rawSize), int(blockSize)

	bodySize := compressedSize
	if compressedSize == 0 {
		bodySize = uncompressedSize
	}
	body := make([]byte, bodySize)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("%w: block: %v", ErrCorrupt, err)
	}

	payload := body
	if compressedSize != 0 {
		var err error
		if payload, err = decompressBlock(body, uncompressedSize, compression); err != nil {
			return nil, err
		}
	}

	if crc32.Checksum(payload, crc32cTable) != sum {
		return nil, ErrChecksum
	}

	c := model.NewCentroids(k, dims)
	for i := range c.Data {
		c.Data[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[4*i:]))
	}
	return c, nil
}
