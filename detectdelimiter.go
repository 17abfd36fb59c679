package phylotools

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// SniffDelimiter returns the single most likely rune delimiting the
// values in the reader. It falls back to ',' when nothing better can be
// inferred, so any other return means the sheet is probably not a CSV.
func SniffDelimiter(r io.Reader) rune {
	d := detector.New()
	candidates := d.DetectDelimiter(r, '"')

	if len(candidates) > 0 {
		return rune(candidates[0][0])
	}

	return ','
}
