// Package preview plans and generates the named preview widths of a source
// image.
package preview

import (
	"errors"
	"fmt"
	"regexp"
)

// Full names the verbatim copy of the source. It is never resized.
const Full = "full"

// Size is a named target width in pixels. Zero means no cap.
type Size struct {
	Name  string
	Width int
}

// SizeTable is an ordered set of uniquely named sizes.
type SizeTable []Size

var ErrInvalidSizeTable = errors.New("invalid size table")

// DefaultSizes returns a fresh copy of the built-in table.
func DefaultSizes() SizeTable {
	return SizeTable{
		{Name: Full, Width: 0},
		{Name: "fourK", Width: 3840},
		{Name: "desktop", Width: 1920},
		{Name: "tablet", Width: 1024},
		{Name: "mobile", Width: 760},
		{Name: "small", Width: 320},
	}
}

// Validate rejects empty or repeated names and negative widths.
func (t SizeTable) Validate() error {
	seen := make(map[string]bool, len(t))
	for _, s := range t {
		if s.Name == "" {
			return fmt.Errorf("%w: empty name", ErrInvalidSizeTable)
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidSizeTable, s.Name)
		}
		if s.Width < 0 {
			return fmt.Errorf("%w: negative width %d for %q", ErrInvalidSizeTable, s.Width, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// Plan returns the effective width of every entry except Full, in table
// order.
func Plan(naturalWidth int, sizes SizeTable) []Size {
	plan := make([]Size, 0, len(sizes))
	for _, s := range sizes {
		if s.Name == Full {
			continue
		}
		plan = append(plan, Size{Name: s.Name, Width: EffectiveWidth(naturalWidth, s.Width)})
	}
	return plan
}

// EffectiveWidth caps target at naturalWidth. An unknown natural width
// (zero) leaves target unchanged; a zero target means the natural width.
func EffectiveWidth(naturalWidth, target int) int {
	if naturalWidth <= 0 {
		return target
	}
	if target <= 0 || target > naturalWidth {
		return naturalWidth
	}
	return target
}

var extPattern = regexp.MustCompile(`\.[a-zA-Z]{3,4}$`)

// FileExtension returns the trailing 3 or 4 letter extension of name,
// including the dot, or "".
func FileExtension(name string) string {
	return extPattern.FindString(name)
}
