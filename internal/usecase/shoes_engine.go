package usecase

import (
	"fmt"
	"math"
	"sort"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
	"github.com/DrugisCodes/PerFit-sub000/internal/reference"
	"github.com/DrugisCodes/PerFit-sub000/internal/sizeformat"
)

// shoeCandidate is one size the shopper could buy: a table row, a generic
// chart entry, or an offered intermediate size interpolated between rows.
type shoeCandidate struct {
	label        string
	footCM       float64
	rowIndex     int
	interpolated bool
}

// ShoesEngine sizes footwear on foot length. Construction decides the buffer
// policy: slip-ons must fit snugly, laced shoes tolerate a little more room.
type ShoesEngine struct{}

// NewShoesEngine creates a shoes engine.
func NewShoesEngine() *ShoesEngine {
	return &ShoesEngine{}
}

// Recommend picks a shoe size for the shopper.
func (e *ShoesEngine) Recommend(req domain.RecommendationRequest) (*domain.SizeRecommendation, error) {
	m := parseProfile(req.Profile)
	foot := m.FootLengthCM
	if foot <= 0 {
		return nil, domain.ErrInvalidProfile
	}

	rows := footRows(req.TableRows)
	if len(rows) == 0 {
		rows = reference.GenericShoeChart()
	}
	candidates := buildShoeCandidates(rows, req.OfferedSizes)
	if len(candidates) == 0 {
		return nil, domain.ErrNoRecommendation
	}

	slipOn := req.Reference.SlipOnConstruction()
	wide := m.wideFoot()

	target := foot
	maxBuffer := lacedMaxBufferCM
	note := ""
	snug := false
	if slipOn {
		if wide {
			maxBuffer = slipOnWideBufferCM
			note = "Slip-on construction with a wide foot: aiming for a neutral fit."
		} else {
			target = foot - slipOnSnugOffsetCM
			maxBuffer = slipOnMaxBufferCM
			note = "Slip-ons need a snug fit to hold the heel."
			snug = true
		}
	}

	hintedTarget := target
	switch req.FitHint {
	case domain.FitHintRunsLarge:
		hintedTarget -= shoeRunsLargeShift
	case domain.FitHintRunsSmall:
		hintedTarget += shoeRunsSmallShift
	}

	best, exceeded := selectShoeCandidate(candidates, hintedTarget, maxBuffer, foot, snug)

	rec := &domain.SizeRecommendation{
		Size:                 best.label,
		Confidence:           shoeMatchConfidence,
		Category:             domain.CategoryShoes,
		ShopperMeasurementCM: foot,
		TargetMeasurementCM:  hintedTarget,
		AppliedBufferCM:      best.footCM - foot,
		MatchedRow:           candidateRow(best),
		FitNote:              note,
	}
	switch {
	case exceeded:
		rec.Confidence = shoeBufferWarnConfidence
		rec.LengthWarning = fmt.Sprintf("Every size runs at least %.1f cm over your foot; this is the closest available.", best.footCM-foot)
	case best.interpolated:
		rec.Confidence = shoeInterpolatedConfidence
	}

	if override := e.storeOverride(req, rows, foot, best); override != nil {
		return override, nil
	}

	if req.FitHint == domain.FitHintRunsLarge {
		technical, _ := selectShoeCandidate(candidates, target, maxBuffer, foot, snug)
		if technical.label != best.label {
			rec.FitNote = joinNotes(rec.FitNote, "Sized down because this model runs large.")
			rec.IsDual = true
			rec.SecondarySize = technical.label
			rec.SecondaryNote = "Technical match on raw foot length."
		}
	}

	return rec, nil
}

// storeOverride adopts the store's own stated size recommendation when it is
// plausibly close to the shopper's foot, keeping the computed size as a
// disclosed technical alternative.
func (e *ShoesEngine) storeOverride(req domain.RecommendationRequest, rows []domain.SizeTableRow, foot float64, computed *shoeCandidate) *domain.SizeRecommendation {
	ref := req.Reference
	if ref == nil || ref.StoreSuggestedSize == "" {
		return nil
	}
	storeFoot, ok := footLengthForSize(ref.StoreSuggestedSize, rows)
	if !ok || math.Abs(storeFoot-foot) > storeOverrideTolCM {
		return nil
	}
	if sizeformat.NormalizeLabel(ref.StoreSuggestedSize) == sizeformat.NormalizeLabel(computed.label) {
		return nil
	}

	rec := &domain.SizeRecommendation{
		Size:                 sizeformat.CleanShoeSize(ref.StoreSuggestedSize),
		Confidence:           shoeOverrideConfidence,
		Category:             domain.CategoryShoes,
		ShopperMeasurementCM: foot,
		TargetMeasurementCM:  storeFoot,
		AppliedBufferCM:      storeFoot - foot,
		FitNote:              "The store recommends this size for your measurements.",
		IsDual:               true,
		SecondarySize:        computed.label,
		SecondaryNote:        "Technical match from the measurement table.",
	}
	if idx := findRowByLabel(rows, ref.StoreSuggestedSize); idx >= 0 {
		rec.MatchedRow = &rows[idx]
	}
	return rec
}

// selectShoeCandidate drops candidates whose buffer over the foot exceeds
// the construction's limit, ranks the rest by distance to target, then
// applies the snug preferences. When exclusion empties the pool the closest
// candidate is used anyway and reported as exceeded.
func selectShoeCandidate(candidates []shoeCandidate, target, maxBuffer, foot float64, snug bool) (*shoeCandidate, bool) {
	pool := make([]*shoeCandidate, 0, len(candidates))
	for i := range candidates {
		if candidates[i].footCM-foot <= maxBuffer {
			pool = append(pool, &candidates[i])
		}
	}
	exceeded := false
	if len(pool) == 0 {
		exceeded = true
		for i := range candidates {
			pool = append(pool, &candidates[i])
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		di := math.Abs(pool[i].footCM - target)
		dj := math.Abs(pool[j].footCM - target)
		if di != dj {
			return di < dj
		}
		return pool[i].footCM < pool[j].footCM
	})

	best := pool[0]
	if snug {
		if len(pool) > 1 {
			second := pool[1]
			if second.footCM < best.footCM && math.Abs(best.footCM-second.footCM) <= snugPairGapCM {
				best = second
			}
		}
		if neighbor := smallerNeighbor(pool, best); neighbor != nil && target-neighbor.footCM <= snugNeighborGapCM {
			best = neighbor
		}
	}
	return best, exceeded
}

// smallerNeighbor finds the candidate immediately below best in foot length.
func smallerNeighbor(pool []*shoeCandidate, best *shoeCandidate) *shoeCandidate {
	var neighbor *shoeCandidate
	for _, c := range pool {
		if c.footCM >= best.footCM {
			continue
		}
		if neighbor == nil || c.footCM > neighbor.footCM {
			neighbor = c
		}
	}
	return neighbor
}

// buildShoeCandidates combines the table rows with any offered intermediate
// sizes that can be interpolated between them.
func buildShoeCandidates(rows []domain.SizeTableRow, offered []string) []shoeCandidate {
	candidates := make([]shoeCandidate, 0, len(rows)+len(offered))
	for _, row := range rows {
		if row.FootLengthCM <= 0 {
			continue
		}
		candidates = append(candidates, shoeCandidate{
			label:    row.Label,
			footCM:   row.FootLengthCM,
			rowIndex: row.RowIndex,
		})
	}

	for _, label := range offered {
		size, ok := sizeformat.ParseShoeSize(label)
		if !ok || hasShoeSize(candidates, size) {
			continue
		}
		length, ok := sizeformat.InterpolateFootLength(rows, size)
		if !ok {
			continue
		}
		candidates = append(candidates, shoeCandidate{
			label:        label,
			footCM:       length,
			rowIndex:     domain.SyntheticRowIndex,
			interpolated: true,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].footCM < candidates[j].footCM
	})
	return candidates
}

func hasShoeSize(candidates []shoeCandidate, size float64) bool {
	for _, c := range candidates {
		if v, ok := sizeformat.ParseShoeSize(c.label); ok && math.Abs(v-size) < 0.01 {
			return true
		}
	}
	return false
}

// footLengthForSize resolves a size label to a foot length: a table row if
// one matches, interpolation between rows, or the generic EU mapping.
func footLengthForSize(label string, rows []domain.SizeTableRow) (float64, bool) {
	if idx := findRowByLabel(rows, label); idx >= 0 && rows[idx].FootLengthCM > 0 {
		return rows[idx].FootLengthCM, true
	}
	size, ok := sizeformat.ParseShoeSize(label)
	if !ok {
		return 0, false
	}
	if length, ok := sizeformat.InterpolateFootLength(rows, size); ok {
		return length, true
	}
	whole := int(math.Round(size))
	if math.Abs(size-float64(whole)) < 0.01 {
		if length, ok := reference.EUShoeSizeToFootCM[whole]; ok {
			return length, true
		}
	}
	return 0, false
}

func candidateRow(c *shoeCandidate) *domain.SizeTableRow {
	return &domain.SizeTableRow{
		Label:        c.label,
		FootLengthCM: c.footCM,
		RowIndex:     c.rowIndex,
	}
}

func footRows(rows []domain.SizeTableRow) []domain.SizeTableRow {
	out := make([]domain.SizeTableRow, 0, len(rows))
	for _, row := range rows {
		if row.FootLengthCM > 0 {
			out = append(out, row)
		}
	}
	return out
}
