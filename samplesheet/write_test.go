package samplesheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
)

type canonicalRow struct {
	Species string `csv:"species"`
	File    string `csv:"file"`
	Tax1    string `csv:"tax1"`
	Tax2    string `csv:"tax2"`
	Mode    string `csv:"mode"`
	Uniprot string `csv:"uniprot"`
}

func TestWriteCanonicalOrder(t *testing.T) {
	sheet, _, err := readRows(t,
		"dog,dog.fasta,l1,l2,busco,true",
		"cat,cat1.fa,l1,l2,busco,false",
		"cat,cat2.fa,l1,l2,busco,false",
	)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := sheet.Write(&buf); err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(buf.String(), header+"\n") {
		t.Errorf("missing canonical header: %q", buf.String())
	}

	rows := []*canonicalRow{}
	if err := gocsv.UnmarshalBytes(buf.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}

	want := []canonicalRow{
		{Species: "cat_T1", File: "cat1.fa", Tax1: "l1", Tax2: "l2", Mode: "busco", Uniprot: "false"},
		{Species: "cat_T2", File: "cat2.fa", Tax1: "l1", Tax2: "l2", Mode: "busco", Uniprot: "false"},
		{Species: "dog_T1", File: "dog.fasta", Tax1: "l1", Tax2: "l2", Mode: "busco", Uniprot: "true"},
	}
	if len(rows) != len(want) {
		t.Fatalf("wrote %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if *rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, *rows[i], want[i])
		}
	}
}

func TestWriteNormalizedSpecies(t *testing.T) {
	sheet, _, err := readRows(t, `"homo sapiens",homo.fasta,l1,l2,denovo,true`)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := sheet.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "homo_sapiens_T1,homo.fasta") {
		t.Errorf("normalized run id missing: %q", buf.String())
	}
}

// Re-reading the canonical output must succeed: run ids are unique, so
// every row lands alone under its own species key.
func TestWriteRoundTrip(t *testing.T) {
	sheet, _, err := readRows(t,
		"dog,dog.fasta,l1,l2,busco,true",
		"cat,cat1.fa,l1,l2,busco,false",
		"cat,cat2.fa,l1,l2,busco,false",
	)
	if err != nil {
		t.Fatal(err)
	}

	var first bytes.Buffer
	if err := sheet.Write(&first); err != nil {
		t.Fatal(err)
	}

	again, warnings, err := Read(strings.NewReader(first.String()))
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	species := again.Species()
	if len(species) != 3 {
		t.Fatalf("species %v, want 3 unique run ids", species)
	}
	for _, sp := range species {
		if len(again.Entries(sp)) != 1 {
			t.Errorf("%s carries %d rows, want 1", sp, len(again.Entries(sp)))
		}
	}

	var second bytes.Buffer
	if err := again.Write(&second); err != nil {
		t.Fatal(err)
	}
	if want := header + "\ncat_T1_T1,cat1.fa,l1,l2,busco,false\ncat_T2_T1,cat2.fa,l1,l2,busco,false\ndog_T1_T1,dog.fasta,l1,l2,busco,true\n"; second.String() != want {
		t.Errorf("second pass = %q, want %q", second.String(), want)
	}
}
