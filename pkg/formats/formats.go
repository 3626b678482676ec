// Package formats provides parsers and writers for the emaki map and
// tileset container formats.
package formats

import "fmt"

// Version is a container format version, stored on disk as two bytes in
// minor, major order.
type Version struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
