package ingest

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadSeedPhrasesCSV(t *testing.T) {
	input := strings.Join([]string{
		"mnemonic,label",
		"alpha beta gamma,first",
		"",
		"  delta epsilon zeta  ,second",
		",missing first cell",
	}, "\n")

	got, err := ReadSeedPhrases("keys.csv", strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"alpha beta gamma", "delta epsilon zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReadSeedPhrasesCSVHeaderOnly(t *testing.T) {
	got, err := ReadSeedPhrases("keys.csv", strings.NewReader("mnemonic\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want no rows", got)
	}
}

func TestReadSeedPhrasesWorkbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := map[string]string{
		"A1": "mnemonic",
		"A2": "alpha beta gamma",
		"A4": "delta epsilon zeta",
		"B2": "unrelated column",
	}
	for cell, value := range cells {
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSeedPhrases("keys.xlsx", &buf)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"alpha beta gamma", "delta epsilon zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReadSeedPhrasesGarbageWorkbook(t *testing.T) {
	if _, err := ReadSeedPhrases("keys.xlsx", strings.NewReader("not a zip archive")); err == nil {
		t.Error("expected error for malformed workbook")
	}
}

func TestReadSeedPhrasesPreservesRowOrder(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("mnemonic\n")
	var want []string
	for i := 0; i < 20; i++ {
		phrase := fmt.Sprintf("phrase number %02d", i)
		sb.WriteString(phrase + "\n")
		want = append(want, phrase)
	}

	got, err := ReadSeedPhrases("keys.csv", strings.NewReader(sb.String()))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("row order not preserved:\ngot  %v\nwant %v", got, want)
	}
}
