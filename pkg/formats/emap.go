package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// EMAP format errors.
var (
	ErrInvalidEMAPMagic       = errors.New("invalid EMAP magic: expected 'EMAP'")
	ErrUnsupportedEMAPVersion = errors.New("unsupported EMAP version")
	ErrTruncatedEMAPData      = errors.New("truncated EMAP data")
)

// EMAP wrap flag bits.
const (
	emapFlagHorizontalWrap = 0x01
	emapFlagVerticalWrap   = 0x02
)

// PlaneCount is the number of logical data planes per cell: ground,
// ground decoration, overlay, overlay decoration, shadow mask.
const PlaneCount = 5

// EMAP represents a parsed map container: the flattened five-plane tile
// array plus the wrap flags.
type EMAP struct {
	Version        Version
	Width          uint32
	Height         uint32
	HorizontalWrap bool
	VerticalWrap   bool
	Tiles          []int16
}

// Tile returns the value at (x, y) on the given plane, or 0 out of
// bounds.
func (m *EMAP) Tile(x, y, plane int) int16 {
	if x < 0 || y < 0 || x >= int(m.Width) || y >= int(m.Height) {
		return 0
	}
	if plane < 0 || plane >= PlaneCount {
		return 0
	}
	return m.Tiles[(plane*int(m.Height)+y)*int(m.Width)+x]
}

// CountByPlane returns the count of non-zero cells on each plane.
func (m *EMAP) CountByPlane() [PlaneCount]int {
	var counts [PlaneCount]int
	per := int(m.Width) * int(m.Height)
	for i, v := range m.Tiles {
		if v != 0 && per > 0 {
			counts[i/per]++
		}
	}
	return counts
}

// ParseEMAP parses an EMAP container from raw bytes.
//
// Layout: "EMAP" magic, version (minor, major), wrap flag byte, reserved
// byte, uint32 width, uint32 height, then 5*width*height little-endian
// int16 tile values.
func ParseEMAP(data []byte) (*EMAP, error) {
	if len(data) < 16 {
		return nil, ErrTruncatedEMAPData
	}

	if string(data[0:4]) != "EMAP" {
		return nil, ErrInvalidEMAPMagic
	}

	version := Version{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != 1 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEMAPVersion, version)
	}

	flags := data[6]

	r := bytes.NewReader(data[8:])

	var width, height uint32
	if err := binary.Read(r, binary.LittleEndian, &width); err != nil {
		return nil, fmt.Errorf("%w: reading width", ErrTruncatedEMAPData)
	}
	if err := binary.Read(r, binary.LittleEndian, &height); err != nil {
		return nil, fmt.Errorf("%w: reading height", ErrTruncatedEMAPData)
	}

	if width == 0 || height == 0 || width > 4096 || height > 4096 {
		return nil, fmt.Errorf("invalid EMAP dimensions: %dx%d", width, height)
	}

	cellCount := PlaneCount * int(width) * int(height)
	m := &EMAP{
		Version:        version,
		Width:          width,
		Height:         height,
		HorizontalWrap: flags&emapFlagHorizontalWrap != 0,
		VerticalWrap:   flags&emapFlagVerticalWrap != 0,
		Tiles:          make([]int16, cellCount),
	}

	if err := binary.Read(r, binary.LittleEndian, m.Tiles); err != nil {
		return nil, fmt.Errorf("%w: reading %d tiles", ErrTruncatedEMAPData, cellCount)
	}

	return m, nil
}

// ParseEMAPFile parses an EMAP container from disk.
func ParseEMAPFile(path string) (*EMAP, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading EMAP file: %w", err)
	}
	return ParseEMAP(data)
}

// Encode serializes the container back to its binary layout.
func (m *EMAP) Encode() []byte {
	buf := new(bytes.Buffer)
	buf.WriteString("EMAP")
	buf.WriteByte(m.Version.Minor)
	buf.WriteByte(m.Version.Major)

	var flags byte
	if m.HorizontalWrap {
		flags |= emapFlagHorizontalWrap
	}
	if m.VerticalWrap {
		flags |= emapFlagVerticalWrap
	}
	buf.WriteByte(flags)
	buf.WriteByte(0) // reserved

	binary.Write(buf, binary.LittleEndian, m.Width)
	binary.Write(buf, binary.LittleEndian, m.Height)
	binary.Write(buf, binary.LittleEndian, m.Tiles)

	return buf.Bytes()
}
