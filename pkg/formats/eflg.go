package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// EFLG format errors.
var (
	ErrInvalidEFLGMagic       = errors.New("invalid EFLG magic: expected 'EFLG'")
	ErrUnsupportedEFLGVersion = errors.New("unsupported EFLG version")
	ErrTruncatedEFLGData      = errors.New("truncated EFLG data")
)

// EFLG represents a parsed per-tile-ID flag table, typically 8192
// entries.
type EFLG struct {
	Version Version
	Flags   []uint16
}

// ParseEFLG parses an EFLG container from raw bytes.
//
// Layout: "EFLG" magic, version (minor, major), two reserved bytes,
// uint32 entry count, then count little-endian uint16 flag words.
func ParseEFLG(data []byte) (*EFLG, error) {
	if len(data) < 12 {
		return nil, ErrTruncatedEFLGData
	}

	if string(data[0:4]) != "EFLG" {
		return nil, ErrInvalidEFLGMagic
	}

	version := Version{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != 1 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEFLGVersion, version)
	}

	r := bytes.NewReader(data[8:])

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: reading count", ErrTruncatedEFLGData)
	}
	if count > 65536 {
		return nil, fmt.Errorf("invalid EFLG entry count: %d", count)
	}

	f := &EFLG{
		Version: version,
		Flags:   make([]uint16, count),
	}
	if err := binary.Read(r, binary.LittleEndian, f.Flags); err != nil {
		return nil, fmt.Errorf("%w: reading %d entries", ErrTruncatedEFLGData, count)
	}

	return f, nil
}

// ParseEFLGFile parses an EFLG container from disk.
func ParseEFLGFile(path string) (*EFLG, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading EFLG file: %w", err)
	}
	return ParseEFLG(data)
}

// Encode serializes the flag table back to its binary layout.
func (f *EFLG) Encode() []byte {
	buf := new(bytes.Buffer)
	buf.WriteString("EFLG")
	buf.WriteByte(f.Version.Minor)
	buf.WriteByte(f.Version.Major)
	buf.WriteByte(0)
	buf.WriteByte(0)
	binary.Write(buf, binary.LittleEndian, uint32(len(f.Flags)))
	binary.Write(buf, binary.LittleEndian, f.Flags)
	return buf.Bytes()
}
