package matrix

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestReadCSVWithHeader(t *testing.T) {
	in := "2024-01-01,2024-01-02,2024-01-03\n1,0,1\n0,0,1\n"
	m, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := Matrix{{1, 0, 1}, {0, 0, 1}}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("matrix = %v, want %v", m, want)
	}
}

func TestReadCSVWithoutHeader(t *testing.T) {
	m, err := ReadCSV(strings.NewReader("1,1,0\n0,1,0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Users() != 2 || m.Days() != 3 {
		t.Errorf("dims = %dx%d, want 2x3", m.Users(), m.Days())
	}
}

func TestReadCSVBadCell(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("day_1,day_2\n1,2\n"))
	if !errors.Is(err, ErrBadCell) {
		t.Errorf("err = %v, want ErrBadCell", err)
	}
}

func TestReadCSVRagged(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("1,0,1\n1,0\n"))
	if !errors.Is(err, ErrRagged) {
		t.Errorf("err = %v, want ErrRagged", err)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	m := Matrix{{1, 0, 1}, {0, 1, 1}}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, m, []string{"2024-01-01", "2024-01-02", "2024-01-03"}); err != nil {
		t.Fatal(err)
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Errorf("round trip = %v, want %v", got, m)
	}
}

func TestWriteCSVGeneratedLabels(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, Matrix{{0, 1}}, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "day_1,day_2\n") {
		t.Errorf("output = %q, want generated day labels", buf.String())
	}
}
