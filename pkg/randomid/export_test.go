package randomid

import "io"

// SetSource replaces the random source and returns a restore function.
func SetSource(r io.Reader) func() {
	prev := source
	source = r
	return func() { source = prev }
}
