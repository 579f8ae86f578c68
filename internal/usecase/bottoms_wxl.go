package usecase

import (
	"fmt"
	"math"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
	"github.com/DrugisCodes/PerFit-sub000/internal/sizeformat"
)

// wxlOption is one offered waist-by-length size, parsed.
type wxlOption struct {
	label  string
	waist  int
	length int
}

// waistLengthTier handles stores whose picker offers waist-by-length sizes
// such as "34x32". Both target numbers start from the shopper's body
// measurement plus a little wearing ease: the waist in inches, shifted by a
// brand size suggestion, and the length from the inseam measured against the
// product's stated inseam, or failing that from the inseam directly or a
// height estimate.
func (e *BottomsEngine) waistLengthTier(in *bottomsInput) *domain.SizeRecommendation {
	options := parseWxLOptions(in.req.OfferedSizes)
	if len(options) == 0 {
		return nil
	}
	m := in.m

	targetWaist := int(sizeformat.CMToInchesExact(m.WaistCM + wearEaseCM))
	brandNote := ""
	if ref := in.req.Reference; ref != nil && ref.BrandSizeSuggestion != 0 {
		targetWaist += sign(ref.BrandSizeSuggestion) * brandWaistShiftIn
		if ref.BrandSizeSuggestion > 0 {
			brandNote = "Waist sized up one inch: this brand runs small."
		} else {
			brandNote = "Waist sized down one inch: this brand runs large."
		}
	}

	targetLength, hasLength := e.targetLengthInches(in)

	chosen, confidence := pickWxLOption(options, targetWaist, targetLength, hasLength)
	if chosen == nil {
		return nil
	}

	rec := &domain.SizeRecommendation{
		Size:                 chosen.label,
		Confidence:           confidence,
		Category:             domain.CategoryBottom,
		ShopperMeasurementCM: m.WaistCM,
		TargetMeasurementCM:  sizeformat.InchesToCM(float64(targetWaist)),
		FitNote:              brandNote,
	}
	if hasLength && chosen.length != targetLength {
		rec.LengthWarning = fmt.Sprintf("No length %d on offer; %d is the closest.", targetLength, chosen.length)
	}

	if second := wxlNeighbor(options, chosen); second != nil && second.label != chosen.label {
		rec.IsDual = true
		rec.SecondarySize = second.label
		if second.waist < chosen.waist {
			rec.SecondaryNote = "Tighter at the waist."
		} else {
			rec.SecondaryNote = "Roomier at the waist."
		}
	}
	return rec
}

// targetLengthInches derives the length half of a WxL target. Inseam beats a
// height estimate when both are available. Against a product-stated inseam
// the difference converts to discrete length steps with an ease allowance,
// rounding away from zero once the step count is clearly past one.
func (e *BottomsEngine) targetLengthInches(in *bottomsInput) (int, bool) {
	m := in.m
	ref := in.req.Reference

	if ref != nil && ref.GarmentInseamCM > 0 && m.InseamCM > 0 {
		if _, baseLength, ok := sizeformat.ParseWxL(ref.MeasuredOnSize); ok {
			diff := m.InseamCM + wearEaseCM - ref.GarmentInseamCM
			steps := roundLengthSteps(diff / lengthStepCM)
			return baseLength + 2*steps, true
		}
	}
	if m.InseamCM > 0 {
		return int(sizeformat.CMToInchesExact(m.InseamCM + wearEaseCM)), true
	}
	if m.HeightCM > 0 {
		return int(sizeformat.CMToInchesExact(m.HeightCM*inseamHeightRatio + wearEaseCM)), true
	}
	return 0, false
}

// roundLengthSteps rounds a fractional step count, switching to
// round-away-from-zero once the magnitude is clearly past one step.
func roundLengthSteps(steps float64) int {
	if math.Abs(steps) > aggressiveRoundStep {
		if steps > 0 {
			return int(math.Ceil(steps))
		}
		return int(math.Floor(steps))
	}
	return int(math.Round(steps))
}

// pickWxLOption matches the target against the offered options: an exact
// waist and length pair first, then the target waist with the nearest
// length, then the nearest waist overall.
func pickWxLOption(options []wxlOption, targetWaist, targetLength int, hasLength bool) (*wxlOption, float64) {
	if hasLength {
		for i := range options {
			if options[i].waist == targetWaist && options[i].length == targetLength {
				return &options[i], wxlPairConfidence
			}
		}
	}

	// Ties break toward the larger size throughout; under-sizing is the
	// worse failure mode.
	var best *wxlOption
	bestDist := math.MaxFloat64
	for i := range options {
		if options[i].waist != targetWaist {
			continue
		}
		dist := 0.0
		if hasLength {
			dist = math.Abs(float64(options[i].length - targetLength))
		}
		if dist < bestDist || (dist == bestDist && best != nil && options[i].length > best.length) {
			best = &options[i]
			bestDist = dist
		}
	}
	if best != nil {
		return best, wxlWaistOnlyConfidence
	}

	bestDist = math.MaxFloat64
	for i := range options {
		dist := math.Abs(float64(options[i].waist - targetWaist))
		if hasLength {
			dist += math.Abs(float64(options[i].length-targetLength)) / 10
		}
		if dist < bestDist || (dist == bestDist && best != nil && options[i].waist > best.waist) {
			best = &options[i]
			bestDist = dist
		}
	}
	if best == nil {
		return nil, 0
	}
	return best, wxlClosestConfidence
}

// wxlNeighbor finds the waist neighbor for the dual recommendation: the next
// tighter waist at the same length, or failing that the next roomier one.
func wxlNeighbor(options []wxlOption, chosen *wxlOption) *wxlOption {
	var tighter, roomier *wxlOption
	for i := range options {
		o := &options[i]
		if o.length != chosen.length {
			continue
		}
		if o.waist < chosen.waist && (tighter == nil || o.waist > tighter.waist) {
			tighter = o
		}
		if o.waist > chosen.waist && (roomier == nil || o.waist < roomier.waist) {
			roomier = o
		}
	}
	if tighter != nil {
		return tighter
	}
	return roomier
}

func parseWxLOptions(offered []string) []wxlOption {
	var options []wxlOption
	for _, label := range offered {
		if w, l, ok := sizeformat.ParseWxL(label); ok {
			options = append(options, wxlOption{label: label, waist: w, length: l})
		}
	}
	return options
}
