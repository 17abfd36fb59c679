// checksamplesheet reformats a phylorthology samplesheet and checks its
// contents. All diagnostics go to stdout: validation failures print the
// ERROR contract and exit 1, species-name fixups print WARNING lines
// and processing continues.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
	"github.com/phylorthology/phylotools"
	"github.com/phylorthology/phylotools/samplesheet"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Reformat phylorthology samplesheet file and check its contents.\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s <FILE_IN> <FILE_OUT>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), flag.Arg(1)); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(fileIn, fileOut string) error {
	fileIn, err := phylotools.ExpandHome(fileIn)
	if err != nil {
		return err
	}
	fileOut, err = phylotools.ExpandHome(fileOut)
	if err != nil {
		return err
	}

	in, err := os.Open(fileIn)
	if err != nil {
		return pfx.Err(err)
	}
	defer in.Close()

	sheet, warnings, err := samplesheet.Read(in)
	for _, w := range warnings {
		fmt.Println("WARNING: " + w)
	}
	if err != nil {
		hintDelimiter(fileIn, err)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fileOut), 0o755); err != nil {
		return pfx.Err(err)
	}

	out, err := os.Create(fileOut)
	if err != nil {
		return pfx.Err(err)
	}

	if err := sheet.Write(out); err != nil {
		out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// hintDelimiter adds a warning ahead of a header-mismatch error when
// the sheet does not look comma-delimited, the usual cause being a
// tab-separated export.
func hintDelimiter(fileIn string, err error) {
	var verdict *samplesheet.Error
	if !errors.As(err, &verdict) || !verdict.Header {
		return
	}

	f, ferr := os.Open(fileIn)
	if ferr != nil {
		return
	}
	defer f.Close()

	if delim := phylotools.SniffDelimiter(f); delim != ',' {
		fmt.Printf("WARNING: samplesheet does not appear to be comma-delimited (detected %q)\n", delim)
	}
}
