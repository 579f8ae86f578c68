// Package reference holds the static industry-standard measurement tables the
// engines fall back on when a store provides no table of its own.
package reference

import (
	"strconv"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
)

// WaistInchToCM maps a numeric jeans waist size to the body waist it is cut
// for, in cm. Sizes 35 and 37 are skipped because most brands don't offer
// them.
var WaistInchToCM = map[int]float64{
	26: 66.0,
	27: 68.5,
	28: 71.0,
	29: 73.5,
	30: 76.0,
	31: 78.5,
	32: 81.5,
	33: 84.0,
	34: 86.5,
	36: 91.5,
	38: 96.5,
	40: 101.5,
	42: 106.5,
	44: 112.0,
}

// LetterWaistCandidates maps a letter size to its one or two candidate
// numeric waist sizes. Candidate order matters: ties during translation break
// toward the first entry.
var LetterWaistCandidates = map[string][]int{
	"XS":  {26, 27},
	"S":   {28, 29},
	"M":   {30, 31},
	"L":   {32, 34},
	"XL":  {36, 38},
	"XXL": {40, 42},
}

// EUShoeSizeToFootCM maps an EU shoe size to the foot length it fits, in cm.
var EUShoeSizeToFootCM = map[int]float64{
	36: 22.9,
	37: 23.5,
	38: 24.2,
	39: 24.9,
	40: 25.5,
	41: 26.2,
	42: 26.8,
	43: 27.5,
	44: 28.1,
	45: 28.8,
	46: 29.5,
	47: 30.1,
}

// letterScale is the canonical ascending letter-size order.
var letterScale = []string{"XS", "S", "M", "L", "XL", "XXL"}

// LetterScale returns the ascending letter-size order.
func LetterScale() []string {
	out := make([]string, len(letterScale))
	copy(out, letterScale)
	return out
}

// LetterRank returns the position of a letter size on the scale, or -1 when
// the label is not a known letter size.
func LetterRank(label string) int {
	for i, l := range letterScale {
		if l == label {
			return i
		}
	}
	return -1
}

// NextLargerLetter returns the letter one step up the scale. The top of the
// scale returns itself.
func NextLargerLetter(label string) string {
	rank := LetterRank(label)
	if rank < 0 || rank >= len(letterScale)-1 {
		return label
	}
	return letterScale[rank+1]
}

// NextSmallerLetter returns the letter one step down the scale. The bottom of
// the scale returns itself.
func NextSmallerLetter(label string) string {
	rank := LetterRank(label)
	if rank <= 0 {
		return label
	}
	return letterScale[rank-1]
}

// TopsLetterForChest buckets a chest measurement into the fixed letter scale
// used by the tops text-only fallback.
func TopsLetterForChest(chestCM float64) string {
	switch {
	case chestCM < 90:
		return "S"
	case chestCM < 106:
		return "M"
	case chestCM < 110:
		return "L"
	default:
		return "XL"
	}
}

// BottomsLetterForWaist buckets a waist measurement into the letter scale
// used by the bottoms text-only tier. Boundaries line up with
// LetterWaistCandidates mapped through WaistInchToCM.
func BottomsLetterForWaist(waistCM float64) string {
	switch {
	case waistCM < 68:
		return "XS"
	case waistCM < 76:
		return "S"
	case waistCM < 81:
		return "M"
	case waistCM < 88:
		return "L"
	case waistCM < 97:
		return "XL"
	default:
		return "XXL"
	}
}

// GenericBottomsChart returns the industry fallback chart for bottoms. Each
// row's waist is the upper bound of the size's range, so the usual ascending
// "first row with waist >= shopper waist" scan resolves the right size.
func GenericBottomsChart() []domain.SizeTableRow {
	return []domain.SizeTableRow{
		{Label: "XS", WaistCM: 68, HipCM: 88, RowIndex: domain.SyntheticRowIndex},
		{Label: "S", WaistCM: 76, HipCM: 94, RowIndex: domain.SyntheticRowIndex},
		{Label: "M", WaistCM: 81, HipCM: 99, RowIndex: domain.SyntheticRowIndex},
		{Label: "L", WaistCM: 88, HipCM: 106, RowIndex: domain.SyntheticRowIndex},
		{Label: "XL", WaistCM: 97, HipCM: 113, RowIndex: domain.SyntheticRowIndex},
		{Label: "XXL", WaistCM: 110, HipCM: 120, RowIndex: domain.SyntheticRowIndex},
	}
}

// GenericTopsChart returns the industry fallback chart for tops, chest upper
// bounds aligned with TopsLetterForChest.
func GenericTopsChart() []domain.SizeTableRow {
	return []domain.SizeTableRow{
		{Label: "S", ChestCM: 89, RowIndex: domain.SyntheticRowIndex},
		{Label: "M", ChestCM: 105, RowIndex: domain.SyntheticRowIndex},
		{Label: "L", ChestCM: 109, RowIndex: domain.SyntheticRowIndex},
		{Label: "XL", ChestCM: 125, RowIndex: domain.SyntheticRowIndex},
	}
}

// GenericShoeChart returns EU whole sizes with their foot lengths, ascending.
func GenericShoeChart() []domain.SizeTableRow {
	rows := make([]domain.SizeTableRow, 0, len(EUShoeSizeToFootCM))
	for size := 36; size <= 47; size++ {
		length, ok := EUShoeSizeToFootCM[size]
		if !ok {
			continue
		}
		rows = append(rows, domain.SizeTableRow{
			Label:        strconv.Itoa(size),
			FootLengthCM: length,
			RowIndex:     domain.SyntheticRowIndex,
		})
	}
	return rows
}
