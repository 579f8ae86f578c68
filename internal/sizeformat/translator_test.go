package sizeformat

import (
	"math"
	"strconv"
	"testing"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
)

func TestCMToInches(t *testing.T) {
	tests := []struct {
		name string
		cm   float64
		want int
	}{
		{"typical waist", 86, 34},
		{"typical inseam", 81, 32},
		{"slim waist", 71, 28},
		{"rounds down", 77, 30},
		{"rounds up", 88, 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CMToInches(tt.cm); got != tt.want {
				t.Errorf("CMToInches(%.1f) = %d, want %d", tt.cm, got, tt.want)
			}
		})
	}
}

func TestInchesToCMRoundTrip(t *testing.T) {
	if got := InchesToCM(34); math.Abs(got-86.36) > 0.01 {
		t.Errorf("InchesToCM(34) = %.2f, want 86.36", got)
	}
	if got := CMToInches(InchesToCM(32)); got != 32 {
		t.Errorf("round trip of 32 inches = %d", got)
	}
}

func TestParseMeasurement(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  float64
		valid bool
	}{
		{"plain number", "86", 86, true},
		{"comma decimal", "86,5", 86.5, true},
		{"unit suffix", "86.5 cm", 86.5, true},
		{"padded", "  92 ", 92, true},
		{"empty", "", 0, false},
		{"words", "about right", 0, false},
		{"negative", "-5", 0, false},
		{"zero", "0", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMeasurement(tt.raw)
			if ok != tt.valid {
				t.Fatalf("ParseMeasurement(%q) ok = %v, want %v", tt.raw, ok, tt.valid)
			}
			if ok && math.Abs(got-tt.want) > 0.001 {
				t.Errorf("ParseMeasurement(%q) = %.3f, want %.3f", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLetterToNumericWaist(t *testing.T) {
	tests := []struct {
		name    string
		letter  string
		waistCM float64
		offered []string
		want    string
	}{
		{"large leans tight", "L", 82, nil, "32"},
		{"large leans roomy", "L", 86, nil, "34"},
		{"offered filter wins over distance", "M", 79, []string{"30", "28"}, "30"},
		{"tie breaks to first candidate", "S", 72.25, nil, "28"},
		{"lower case letter", "m", 76, nil, "30"},
		{"offered filter empty falls back", "L", 86, []string{"S", "M"}, "34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LetterToNumericWaist(tt.letter, tt.waistCM, tt.offered)
			if !ok {
				t.Fatalf("LetterToNumericWaist(%s) reported no translation", tt.letter)
			}
			if got != tt.want {
				t.Errorf("LetterToNumericWaist(%s, %.2f) = %s, want %s", tt.letter, tt.waistCM, got, tt.want)
			}
		})
	}

	if _, ok := LetterToNumericWaist("33", 86, nil); ok {
		t.Error("numeric input should not translate as a letter")
	}
}

func TestNumericWaistToLetter(t *testing.T) {
	tests := []struct {
		numeric int
		want    string
	}{
		{27, "XS"},
		{29, "S"},
		{31, "M"},
		{33, "L"},
		{34, "L"},
		{38, "XL"},
		{42, "XXL"},
		{46, "XXL"},
	}

	for _, tt := range tests {
		got, ok := NumericWaistToLetter(tt.numeric)
		if !ok {
			t.Fatalf("NumericWaistToLetter(%d) reported no translation", tt.numeric)
		}
		if got != tt.want {
			t.Errorf("NumericWaistToLetter(%d) = %s, want %s", tt.numeric, got, tt.want)
		}
	}

	if _, ok := NumericWaistToLetter(99); ok {
		t.Error("implausible waist size should not translate")
	}
}

func TestLetterTranslationIdempotent(t *testing.T) {
	offered := []string{"28", "30", "32", "34", "36"}
	waist := 84.0

	first, ok := LetterToNumericWaist("L", waist, offered)
	if !ok {
		t.Fatal("first translation failed")
	}
	second, ok := LetterToNumericWaist("L", waist, offered)
	if !ok || second != first {
		t.Errorf("repeated translation gave %s then %s", first, second)
	}

	back, ok := NumericWaistToLetter(mustAtoi(t, first))
	if !ok || back != "L" {
		t.Errorf("translating %s back gave %s, want L", first, back)
	}
}

func TestCleanShoeSize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"43", "43"},
		{"43,5", "43.5"},
		{"43.5", "43.5"},
		{"43 1/3", "43.33"},
		{"42 2/3", "42.67"},
		{"M", "M"},
	}

	for _, tt := range tests {
		if got := CleanShoeSize(tt.raw); got != tt.want {
			t.Errorf("CleanShoeSize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestParseShoeSize(t *testing.T) {
	got, ok := ParseShoeSize("43 1/3")
	if !ok || math.Abs(got-43.333) > 0.001 {
		t.Errorf("ParseShoeSize(43 1/3) = %.3f ok=%v", got, ok)
	}
	got, ok = ParseShoeSize("44,5")
	if !ok || got != 44.5 {
		t.Errorf("ParseShoeSize(44,5) = %.1f ok=%v", got, ok)
	}
	if _, ok := ParseShoeSize("one"); ok {
		t.Error("ParseShoeSize should reject words")
	}
}

func TestInterpolateFootLength(t *testing.T) {
	rows := []domain.SizeTableRow{
		{Label: "42", FootLengthCM: 26.8, RowIndex: 0},
		{Label: "43", FootLengthCM: 27.5, RowIndex: 1},
		{Label: "44", FootLengthCM: 28.1, RowIndex: 2},
	}

	got, ok := InterpolateFootLength(rows, 42.5)
	if !ok || math.Abs(got-27.15) > 0.001 {
		t.Errorf("midpoint of 42/43 = %.3f ok=%v, want 27.150", got, ok)
	}

	third, ok := InterpolateFootLength(rows, 43.333)
	want := 27.5 + 0.333*(28.1-27.5)
	if !ok || math.Abs(third-want) > 0.001 {
		t.Errorf("43 1/3 = %.3f ok=%v, want %.3f", third, ok, want)
	}

	exact, ok := InterpolateFootLength(rows, 43)
	if !ok || exact != 27.5 {
		t.Errorf("whole size 43 = %.2f ok=%v, want table value", exact, ok)
	}

	if _, ok := InterpolateFootLength(rows, 45.5); ok {
		t.Error("size above the table span must not interpolate")
	}
	if _, ok := InterpolateFootLength(rows, 41.5); ok {
		t.Error("size below the table span must not interpolate")
	}
}

func TestParseWxL(t *testing.T) {
	tests := []struct {
		label  string
		waist  int
		length int
		ok     bool
	}{
		{"34x32", 34, 32, true},
		{"W34 L32", 34, 32, true},
		{"34/32", 34, 32, true},
		{"W31L30", 31, 30, true},
		{"M", 0, 0, false},
		{"32", 0, 0, false},
	}

	for _, tt := range tests {
		w, l, ok := ParseWxL(tt.label)
		if ok != tt.ok || w != tt.waist || l != tt.length {
			t.Errorf("ParseWxL(%q) = (%d, %d, %v), want (%d, %d, %v)", tt.label, w, l, ok, tt.waist, tt.length, tt.ok)
		}
	}

	if got := FormatWxL(34, 32); got != "34x32" {
		t.Errorf("FormatWxL = %s, want 34x32", got)
	}
}

func TestMatchOffered(t *testing.T) {
	offered := []string{"S", "M", "L", "34x32"}
	if got, ok := MatchOffered(" m ", offered); !ok || got != "M" {
		t.Errorf("MatchOffered(m) = %q ok=%v", got, ok)
	}
	if got, ok := MatchOffered("34 x 32", offered); !ok || got != "34x32" {
		t.Errorf("MatchOffered(34 x 32) = %q ok=%v", got, ok)
	}
	if _, ok := MatchOffered("XL", offered); ok {
		t.Error("MatchOffered should miss on absent size")
	}
}

func TestTranslateToOffered(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		waistCM float64
		offered []string
		want    string
	}{
		{"already offered", "M", 78, []string{"S", "M", "L"}, "M"},
		{"letter to numeric", "M", 78.5, []string{"28", "30", "31"}, "31"},
		{"numeric to letter", "34", 86, []string{"S", "M", "L"}, "L"},
		{"closest numeric", "33", 84, []string{"30", "32", "36"}, "32"},
		{"no offered list", "M", 78, nil, "M"},
		{"untranslatable", "M", 78, []string{"34x32", "36x32"}, "M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TranslateToOffered(tt.label, tt.waistCM, tt.offered); got != tt.want {
				t.Errorf("TranslateToOffered(%s) = %s, want %s", tt.label, got, tt.want)
			}
		})
	}
}

func TestResolveDuplicate(t *testing.T) {
	offered := []string{"30", "32", "34"}

	if got, keep := ResolveDuplicate("32", "34", offered); !keep || got != "34" {
		t.Errorf("distinct labels should pass through, got %q keep=%v", got, keep)
	}

	if got, keep := ResolveDuplicate("32", "32", offered); !keep || got != "34" {
		t.Errorf("collision should bump to next offered, got %q keep=%v", got, keep)
	}

	if _, keep := ResolveDuplicate("34", "34", offered); keep {
		t.Error("collision at the end of the offered list should cancel the dual")
	}

	if _, keep := ResolveDuplicate("M", "M", nil); keep {
		t.Error("collision without offered sizes should cancel the dual")
	}
}

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	n, err := strconv.Atoi(s)
	if err != nil {
		t.Fatalf("not a number: %q", s)
	}
	return n
}
