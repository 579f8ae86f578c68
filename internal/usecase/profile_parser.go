package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
	"github.com/DrugisCodes/PerFit-sub000/internal/reference"
	"github.com/DrugisCodes/PerFit-sub000/internal/sizeformat"
)

// measurements is a ShopperProfile with every field parsed. Zero means the
// shopper left the field empty or unparsable.
type measurements struct {
	ChestCM      float64
	WaistCM      float64
	HipCM        float64
	ArmLengthCM  float64
	InseamCM     float64
	TorsoCM      float64
	HeightCM     float64
	FootLengthCM float64
	FootWidth    string
	ShoeSize     float64
	// FitPreference is clamped to 1..10, 0 when unset.
	FitPreference int
}

// parseProfile converts the free-form profile strings into numbers. Parsing
// never fails; unusable fields simply come out as zero and the per-category
// validation decides what is required.
func parseProfile(p domain.ShopperProfile) measurements {
	m := measurements{
		ChestCM:      parseCM(p.Chest),
		WaistCM:      parseCM(p.Waist),
		HipCM:        parseCM(p.Hip),
		ArmLengthCM:  parseCM(p.ArmLength),
		InseamCM:     parseCM(p.Inseam),
		TorsoCM:      parseCM(p.TorsoLength),
		HeightCM:     parseCM(p.Height),
		FootLengthCM: parseCM(p.FootLength),
		FootWidth:    strings.ToLower(strings.TrimSpace(p.FootWidth)),
	}

	if size, ok := sizeformat.ParseShoeSize(p.ShoeSize); ok {
		m.ShoeSize = size
	}

	if pref, err := strconv.Atoi(strings.TrimSpace(p.FitPreference)); err == nil {
		if pref < 1 {
			pref = 1
		}
		if pref > 10 {
			pref = 10
		}
		m.FitPreference = pref
	}

	// A missing foot length can be recovered from a stated EU shoe size as
	// long as it is a whole size we have a table entry for.
	if m.FootLengthCM == 0 && m.ShoeSize > 0 {
		whole := int(math.Round(m.ShoeSize))
		if math.Abs(m.ShoeSize-float64(whole)) < 0.01 {
			if length, ok := reference.EUShoeSizeToFootCM[whole]; ok {
				m.FootLengthCM = length
			}
		}
	}

	return m
}

func parseCM(raw string) float64 {
	v, ok := sizeformat.ParseMeasurement(raw)
	if !ok {
		return 0
	}
	return v
}

// wideFoot reports whether the shopper self-reported a wide foot.
func (m measurements) wideFoot() bool {
	return m.FootWidth == domain.FootWidthWide
}
