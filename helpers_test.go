package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate(" 2023-01-01 ")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !got.Equal(date(2023, 1, 1)) {
		t.Fatalf("ParseDate = %v", got)
	}

	for _, bad := range []string{"", "01/02/2023", "2023-13-01", "2023-02-30"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidValue", bad, err)
		}
	}
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("21:05")
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	if got != (Clock{Hour: 21, Minute: 5}) || got.String() != "21:05" {
		t.Fatalf("ParseClock = %+v", got)
	}

	for _, bad := range []string{"", "25:00", "12:60", "noon"} {
		if _, err := ParseClock(bad); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("ParseClock(%q) error = %v, want ErrInvalidValue", bad, err)
		}
	}
}

func TestParseOptionalValues(t *testing.T) {
	if f, err := parseOptionalFloat("  "); err != nil || f != nil {
		t.Errorf("blank float = %v, %v", f, err)
	}
	if f, err := parseOptionalFloat("7.5"); err != nil || *f != 7.5 {
		t.Errorf("float = %v, %v", f, err)
	}
	for _, bad := range []string{"heavy", "NaN", "nan", "Inf", "+Inf", "-inf", "1e400"} {
		if _, err := parseOptionalFloat(bad); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("parseOptionalFloat(%q) error = %v, want ErrInvalidValue", bad, err)
		}
	}
	if n, err := parseOptionalInt("15"); err != nil || *n != 15 {
		t.Errorf("int = %v, %v", n, err)
	}
	if _, err := parseOptionalInt("1.5"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
	if d, err := parseOptionalDate(""); err != nil || d != nil {
		t.Errorf("blank date = %v, %v", d, err)
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := map[int]string{0: "0:00", 45: "0:45", 90: "1:30", 540: "9:00"}
	for in, want := range tests {
		if got := FormatMinutes(in); got != want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf,
		[]string{"Date", "Weight"},
		[][]string{{"2023-06-01", "7.5"}, {"2023-07-01", "-"}},
		[]string{"", "2 records"},
	)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "Date      \tWeight") {
		t.Errorf("header not padded to widest cell: %q", lines[0])
	}
	if !strings.Contains(lines[3], "2 records") {
		t.Errorf("missing footer: %q", lines[3])
	}

	buf.Reset()
	PrintTable(&buf, []string{"Name"}, nil, nil)
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Errorf("expected only a header line, got %q", buf.String())
	}
}
