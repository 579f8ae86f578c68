// Package sizeformat converts between the size vocabularies stores actually
// use: cm and inches, letter sizes and numeric waists, fractional shoe sizes,
// and waist-by-length pairs. Everything here is a pure function.
package sizeformat

import (
	"math"
	"strconv"
	"strings"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
	"github.com/DrugisCodes/PerFit-sub000/internal/reference"
)

const cmPerInch = 2.54

// CMToInches converts centimeters to the nearest whole inch.
func CMToInches(cm float64) int {
	return int(math.Round(cm / cmPerInch))
}

// CMToInchesExact converts centimeters to inches without rounding.
func CMToInchesExact(cm float64) float64 {
	return cm / cmPerInch
}

// InchesToCM converts inches to centimeters.
func InchesToCM(inches float64) float64 {
	return inches * cmPerInch
}

// ParseMeasurement parses a free-form measurement string such as "86",
// "86,5" or "86.5 cm". It reports false for anything that does not contain
// a positive number.
func ParseMeasurement(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.ToLower(raw))
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	for _, suffix := range []string{"cm", "in", "inch", "inches", "\""} {
		s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// NormalizeLabel canonicalizes a size label for comparison: upper case, no
// whitespace, comma decimals turned into dots.
func NormalizeLabel(label string) string {
	s := strings.ToUpper(strings.TrimSpace(label))
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.Join(strings.Fields(s), "")
	return s
}

// MatchOffered looks for label among the store's offered sizes and returns
// the offered spelling when found.
func MatchOffered(label string, offered []string) (string, bool) {
	want := NormalizeLabel(label)
	for _, o := range offered {
		if NormalizeLabel(o) == want {
			return o, true
		}
	}
	return "", false
}

// LetterToNumericWaist translates a letter size into a numeric waist size.
// Candidates come from the fixed letter table; when offered sizes are
// supplied the candidates are first narrowed to those actually offered. The
// surviving candidate whose waist in cm is closest to the shopper's waist
// wins, ties breaking toward the earlier candidate.
func LetterToNumericWaist(letter string, shopperWaistCM float64, offered []string) (string, bool) {
	candidates, ok := reference.LetterWaistCandidates[NormalizeLabel(letter)]
	if !ok {
		return "", false
	}

	pool := candidates
	if len(offered) > 0 {
		filtered := make([]int, 0, len(candidates))
		for _, c := range candidates {
			if _, found := MatchOffered(strconv.Itoa(c), offered); found {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) > 0 {
			pool = filtered
		}
	}

	best := pool[0]
	bestDist := math.Abs(reference.WaistInchToCM[best] - shopperWaistCM)
	for _, c := range pool[1:] {
		dist := math.Abs(reference.WaistInchToCM[c] - shopperWaistCM)
		if dist < bestDist {
			best = c
			bestDist = dist
		}
	}
	return strconv.Itoa(best), true
}

// NumericWaistToLetter translates a numeric waist size back into its letter
// size. Sizes outside the candidate table fall back to the waist-in-cm
// letter buckets.
func NumericWaistToLetter(numeric int) (string, bool) {
	for _, letter := range reference.LetterScale() {
		for _, c := range reference.LetterWaistCandidates[letter] {
			if c == numeric {
				return letter, true
			}
		}
	}
	cm, ok := reference.WaistInchToCM[numeric]
	if !ok {
		if numeric < 20 || numeric > 60 {
			return "", false
		}
		cm = InchesToCM(float64(numeric))
	}
	return reference.BottomsLetterForWaist(cm), true
}

// CleanShoeSize normalizes a shoe-size label to a plain decimal string:
// comma decimals become dots and "whole + fraction" notation such as
// "43 1/3" becomes "43.33". Labels that are not shoe sizes come back
// unchanged.
func CleanShoeSize(raw string) string {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	v, ok := parseFractional(s)
	if !ok {
		return s
	}
	rounded := math.Round(v*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// ParseShoeSize parses a shoe-size label, accepting whole, decimal, comma
// decimal and fractional notation.
func ParseShoeSize(raw string) (float64, bool) {
	return parseFractional(strings.TrimSpace(strings.ReplaceAll(raw, ",", ".")))
}

func parseFractional(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		if num, den, ok := splitFraction(fields[0]); ok {
			if den == 0 {
				return 0, false
			}
			return num / den, true
		}
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, false
		}
		return v, true
	case 2:
		whole, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, false
		}
		num, den, ok := splitFraction(fields[1])
		if !ok || den == 0 {
			return 0, false
		}
		return whole + num/den, true
	default:
		return 0, false
	}
}

func splitFraction(s string) (num, den float64, ok bool) {
	idx := strings.IndexByte(s, '/')
	if idx <= 0 || idx == len(s)-1 {
		return 0, 0, false
	}
	n, err := strconv.ParseFloat(s[:idx], 64)
	if err != nil {
		return 0, 0, false
	}
	d, err := strconv.ParseFloat(s[idx+1:], 64)
	if err != nil {
		return 0, 0, false
	}
	return n, d, true
}

// InterpolateFootLength derives the foot length for an intermediate shoe
// size from the two whole-size rows that bracket it. A size outside the
// table's span cannot be interpolated.
func InterpolateFootLength(rows []domain.SizeTableRow, size float64) (float64, bool) {
	lower := math.Floor(size)
	upper := lower + 1
	frac := size - lower
	if frac == 0 {
		if row, ok := rowForShoeSize(rows, size); ok {
			return row.FootLengthCM, true
		}
		return 0, false
	}

	low, okLow := rowForShoeSize(rows, lower)
	high, okHigh := rowForShoeSize(rows, upper)
	if !okLow || !okHigh || low.FootLengthCM <= 0 || high.FootLengthCM <= 0 {
		return 0, false
	}
	return low.FootLengthCM + frac*(high.FootLengthCM-low.FootLengthCM), true
}

func rowForShoeSize(rows []domain.SizeTableRow, size float64) (domain.SizeTableRow, bool) {
	for _, row := range rows {
		v, ok := ParseShoeSize(row.Label)
		if !ok {
			continue
		}
		if math.Abs(v-size) < 0.01 {
			return row, true
		}
	}
	return domain.SizeTableRow{}, false
}

// ParseWxL splits a waist-by-length label such as "34x32", "W34 L32" or
// "34/32" into its two numbers. The first digit group is the waist, the
// second the length.
func ParseWxL(label string) (waist, length int, ok bool) {
	groups := digitGroups(label)
	if len(groups) < 2 {
		return 0, 0, false
	}
	w, err := strconv.Atoi(groups[0])
	if err != nil {
		return 0, 0, false
	}
	l, err := strconv.Atoi(groups[1])
	if err != nil {
		return 0, 0, false
	}
	return w, l, true
}

// FormatWxL renders a waist and length as the conventional "WxL" label.
func FormatWxL(waist, length int) string {
	return strconv.Itoa(waist) + "x" + strconv.Itoa(length)
}

// IsWxLLabel reports whether a label carries both a waist and a length.
func IsWxLLabel(label string) bool {
	_, _, ok := ParseWxL(label)
	return ok
}

func digitGroups(s string) []string {
	var groups []string
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			groups = append(groups, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		groups = append(groups, s[start:])
	}
	return groups
}

// TranslateToOffered re-expresses a size label in the vocabulary the store's
// picker actually offers. When no offered size can express the label it is
// returned unchanged.
func TranslateToOffered(label string, shopperWaistCM float64, offered []string) string {
	if len(offered) == 0 || label == "" {
		return label
	}
	if match, ok := MatchOffered(label, offered); ok {
		return match
	}

	labelIsLetter := reference.LetterRank(NormalizeLabel(label)) >= 0
	labelNumeric, labelNumErr := strconv.Atoi(NormalizeLabel(label))

	offeredLetters := false
	offeredNumerics := false
	for _, o := range offered {
		n := NormalizeLabel(o)
		if reference.LetterRank(n) >= 0 {
			offeredLetters = true
		}
		if _, err := strconv.Atoi(n); err == nil {
			offeredNumerics = true
		}
	}

	if labelIsLetter && offeredNumerics {
		if numeric, ok := LetterToNumericWaist(label, shopperWaistCM, offered); ok {
			if match, found := MatchOffered(numeric, offered); found {
				return match
			}
		}
	}

	if labelNumErr == nil && offeredLetters {
		if letter, ok := NumericWaistToLetter(labelNumeric); ok {
			if match, found := MatchOffered(letter, offered); found {
				return match
			}
		}
	}

	if labelNumErr == nil && offeredNumerics {
		if closest, ok := closestNumericOffered(labelNumeric, offered); ok {
			return closest
		}
	}

	return label
}

func closestNumericOffered(target int, offered []string) (string, bool) {
	best := ""
	bestDist := math.MaxFloat64
	for _, o := range offered {
		n, err := strconv.Atoi(NormalizeLabel(o))
		if err != nil {
			continue
		}
		dist := math.Abs(float64(n - target))
		if dist < bestDist {
			best = o
			bestDist = dist
		}
	}
	return best, best != ""
}

// ResolveDuplicate guards a dual recommendation against the primary and
// secondary labels colliding after translation. It returns a replacement
// secondary when a distinct offered size exists, otherwise reports that the
// dual should be dropped.
func ResolveDuplicate(primary, secondary string, offered []string) (string, bool) {
	if NormalizeLabel(primary) != NormalizeLabel(secondary) {
		return secondary, true
	}
	primaryIdx := -1
	for i, o := range offered {
		if NormalizeLabel(o) == NormalizeLabel(primary) {
			primaryIdx = i
			break
		}
	}
	if primaryIdx >= 0 {
		for _, o := range offered[primaryIdx+1:] {
			if NormalizeLabel(o) != NormalizeLabel(primary) {
				return o, true
			}
		}
	}
	return "", false
}
