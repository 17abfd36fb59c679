package samplesheet

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
)

// Write emits the canonical samplesheet: the fixed header, then species
// blocks in lexicographic order, rows within a block in first-seen
// order, with the species column rewritten to the 1-based run id
// <species>_T<n>. Fields are comma-joined as-is; they were split on
// commas coming in, so none can contain one.
func (s *Sheet) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, strings.Join(Header[:], ","))

	for _, species := range s.Species() {
		for i, rem := range s.entries[species] {
			row := []string{
				fmt.Sprintf("%s_T%d", species, i+1),
				rem.File,
				rem.Tax1,
				rem.Tax2,
				rem.Mode,
				rem.Uniprot,
			}
			fmt.Fprintln(bw, strings.Join(row, ","))
		}
	}

	if err := bw.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
