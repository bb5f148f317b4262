package alphamap

import "fmt"

// InvalidRangeError indicates an attempt to add a range whose begin code
// point exceeds its end code point. The map is left unchanged.
type InvalidRangeError struct {
	Begin Char
	End   Char
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range [%X,%X]: begin exceeds end", uint32(e.Begin), uint32(e.End))
}
