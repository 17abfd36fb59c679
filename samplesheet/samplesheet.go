// Package samplesheet validates phylorthology samplesheets and emits
// the canonical form consumed by the rest of the pipeline. Validation
// is a single pass over the input that stops at the first bad row;
// nothing here touches the filesystem or the process exit code.
package samplesheet

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/carbocation/pfx"
)

// Header is the required leading column sequence. Extra trailing
// columns in the input header are tolerated and ignored.
var Header = [6]string{"species", "file", "tax1", "tax2", "mode", "uniprot"}

const minCols = 6

// Remainder holds everything in a validated row except the species key.
type Remainder struct {
	File    string
	Tax1    string
	Tax2    string
	Mode    string
	Uniprot string
}

// Sheet accumulates validated rows grouped by species. Within a
// species, remainders keep their first-seen order; that order fixes
// the _T run suffixes at write time.
type Sheet struct {
	entries map[string][]Remainder
}

// Read consumes a raw samplesheet and returns the grouped rows along
// with any warnings raised while normalizing species names. The error,
// when it is a *Error, is a validation verdict meant to be printed
// verbatim; any other error is an I/O failure.
func Read(r io.Reader) (*Sheet, []string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var first string
	if sc.Scan() {
		first = sc.Text()
	}
	if err := sc.Err(); err != nil {
		return nil, nil, pfx.Err(err)
	}

	// The original sheets come from spreadsheet exports that often
	// carry a UTF-8 byte-order mark.
	first = strings.TrimPrefix(first, "\ufeff")

	received := splitFields(strings.TrimSpace(first))
	if !headerMatches(received) {
		return nil, nil, headerError(received)
	}

	sheet := &Sheet{entries: map[string][]Remainder{}}
	var warnings []string

	for sc.Scan() {
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}

		species, rem, warning, verdict := parseRow(raw)
		if verdict != nil {
			return nil, warnings, verdict
		}
		if warning != "" {
			warnings = append(warnings, warning)
		}

		if verdict := sheet.add(species, rem, raw); verdict != nil {
			return nil, warnings, verdict
		}
	}
	if err := sc.Err(); err != nil {
		return nil, warnings, pfx.Err(err)
	}

	if len(sheet.entries) == 0 {
		return nil, warnings, &Error{Msg: "No entries to process!"}
	}

	return sheet, warnings, nil
}

func headerMatches(received []string) bool {
	if len(received) < len(Header) {
		return false
	}
	for i, want := range Header {
		if received[i] != want {
			return false
		}
	}
	return true
}

// parseRow turns one non-blank line into its species key and remainder,
// or a verdict naming the line. The warning, when non-empty, reports a
// species name whose internal whitespace was collapsed to underscores.
func parseRow(raw string) (species string, rem Remainder, warning string, verdict *Error) {
	fields := splitFields(raw)

	if len(fields) < minCols {
		return "", rem, "", lineError(fmt.Sprintf("Invalid number of columns (minimum = %d)!", minCols), raw)
	}

	populated := 0
	for _, f := range fields {
		if f != "" {
			populated++
		}
	}
	// Evaluated independently of the raw field count so the bound
	// survives future header growth.
	if populated < minCols {
		return "", rem, "", lineError(fmt.Sprintf("Invalid number of populated columns (minimum = %d)!", minCols), raw)
	}

	species = fields[0]
	rem = Remainder{
		File:    fields[1],
		Tax1:    fields[2],
		Tax2:    fields[3],
		Mode:    fields[4],
		Uniprot: fields[5],
	}

	if collapsed := collapseWhitespace(species); collapsed != species {
		warning = "Spaces have been replaced by underscores for sample: " + species
		species = collapsed
	}
	if species == "" {
		return "", rem, warning, lineError("Sample entry has not been specified!", raw)
	}

	if rem.File != "" {
		if strings.IndexFunc(rem.File, unicode.IsSpace) != -1 {
			return "", rem, warning, lineError("fasta file contains spaces!", raw)
		}
		if !strings.HasSuffix(rem.File, ".fasta") && !strings.HasSuffix(rem.File, ".fa") {
			return "", rem, warning, lineError("Fasta file does not have extension '.fasta' or '.fa'!", raw)
		}
	}

	return species, rem, warning, nil
}

// collapseWhitespace replaces every whitespace run with a single
// underscore. Runs at the boundaries count too: a quoted species like
// " human" keeps its leading run as "_human" rather than losing it.
func collapseWhitespace(s string) string {
	var b strings.Builder
	inRun := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inRun {
				b.WriteByte('_')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}

	return b.String()
}

// splitFields applies the sheet's field discipline: split on commas,
// then strip whitespace and any surrounding double quotes per field.
// Bare interior quotes are tolerated, which is why this is not
// encoding/csv.
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i, f := range fields {
		fields[i] = strings.Trim(strings.TrimSpace(f), `"`)
	}
	return fields
}

func (s *Sheet) add(species string, rem Remainder, raw string) *Error {
	for _, have := range s.entries[species] {
		if have == rem {
			return lineError("Samplesheet contains duplicate rows!", raw)
		}
	}
	s.entries[species] = append(s.entries[species], rem)

	return nil
}

// Species returns the validated species names in lexicographic order.
func (s *Sheet) Species() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Entries returns the remainders recorded for a species in first-seen
// order, or nil for an unknown species.
func (s *Sheet) Entries(species string) []Remainder {
	return s.entries[species]
}
