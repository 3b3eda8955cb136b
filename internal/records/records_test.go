package records

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestLines(t *testing.T) {
	input := "  001 | Chocolate bar \n\n\t\n002|Gum|0.75\r\n#Candy|1.00"

	var got []Line
	for line, err := range Lines(strings.NewReader(input)) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, line)
	}

	want := []Line{
		{Number: 1, Text: "001 | Chocolate bar", Fields: []string{"001", "Chocolate bar"}},
		{Number: 4, Text: "002|Gum|0.75", Fields: []string{"002", "Gum", "0.75"}},
		{Number: 5, Text: "#Candy|1.00", Fields: []string{"#Candy", "1.00"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestLinesReadError(t *testing.T) {
	var errs []error
	for _, err := range Lines(failingReader{}) {
		errs = append(errs, err)
	}
	if len(errs) != 1 || errs[0] == nil {
		t.Fatalf("expected exactly one read error, got %v", errs)
	}
}

func TestLinesStopsEarly(t *testing.T) {
	count := 0
	for range Lines(strings.NewReader("a|b\nc|d\ne|f")) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("expected to stop after 2 lines, got %d", count)
	}
}

func TestLinesSkipsOverlongLine(t *testing.T) {
	input := "001|Chocolate bar\n" + strings.Repeat("x", MaxLineLength+10) + "\n002|Gum|0.75\n003|Tea|0.50"

	var (
		got      []int
		tooLong  int
		otherErr error
	)
	for line, err := range Lines(strings.NewReader(input)) {
		switch {
		case errors.Is(err, ErrLineTooLong):
			tooLong++
			if line.Number != 2 {
				t.Errorf("over-long line reported at %d, want 2", line.Number)
			}
		case err != nil:
			otherErr = err
		default:
			got = append(got, line.Number)
		}
	}

	if otherErr != nil {
		t.Fatalf("unexpected error: %v", otherErr)
	}
	if tooLong != 1 {
		t.Errorf("expected 1 over-long line, got %d", tooLong)
	}
	if !reflect.DeepEqual(got, []int{1, 3, 4}) {
		t.Errorf("got lines %v, want [1 3 4]", got)
	}
}
