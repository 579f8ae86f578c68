package usecase

import (
	"fmt"
	"math"
	"strconv"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
	"github.com/DrugisCodes/PerFit-sub000/internal/reference"
	"github.com/DrugisCodes/PerFit-sub000/internal/sizeformat"
)

// bottomsTier is one sizing strategy. A tier returns nil when it is not
// applicable to the input or cannot commit to an answer, deferring to the
// next tier in order. There is no backtracking once a tier returns a result.
type bottomsTier func(*bottomsInput) *domain.SizeRecommendation

// bottomsInput carries the request plus everything precomputed once for all
// tiers.
type bottomsInput struct {
	req      domain.RecommendationRequest
	m        measurements
	hasTable bool
}

// BottomsEngine sizes waist-measured garments: trousers, jeans, shorts,
// skirts. It routes between five strategies, from the most specific data a
// page can offer (a waist-by-length dropdown) down to an emergency numeric
// match.
type BottomsEngine struct {
	tiers []bottomsTier
}

// NewBottomsEngine creates a bottoms engine with the standard tier order.
func NewBottomsEngine() *BottomsEngine {
	e := &BottomsEngine{}
	e.tiers = []bottomsTier{
		e.waistLengthTier,
		e.tabularTier,
		e.descriptiveTier,
		e.universalTier,
		e.emergencyTier,
	}
	return e
}

// Recommend picks a bottoms size by running the tier cascade. The first tier
// to commit wins; if none commits there is no recommendation.
func (e *BottomsEngine) Recommend(req domain.RecommendationRequest) (*domain.SizeRecommendation, error) {
	m := parseProfile(req.Profile)
	if m.WaistCM <= 0 {
		return nil, domain.ErrInvalidProfile
	}

	in := &bottomsInput{
		req:      req,
		m:        m,
		hasTable: hasWaistColumn(req.TableRows),
	}

	for _, tier := range e.tiers {
		if rec := tier(in); rec != nil {
			return rec, nil
		}
	}
	return nil, domain.ErrNoRecommendation
}

// tabularTier scans the store's own measurement table for the first row that
// covers the shopper's waist and, when hip data is usable, hip. Adjustment
// layers apply in a fixed precedence: a model anchor wins over a brand size
// suggestion, which wins over a fit hint; whichever layer fires disables the
// ones below it so no input is adjusted twice.
func (e *BottomsEngine) tabularTier(in *bottomsInput) *domain.SizeRecommendation {
	if !in.hasTable {
		return nil
	}
	rows := in.req.TableRows
	m := in.m
	ref := in.req.Reference
	relaxed := ref != nil && ref.RelaxedFit

	anchorRow, anchorOK := e.modelAnchorRow(in, relaxed)
	brandShift := 0
	if !anchorOK && !relaxed && ref != nil {
		brandShift = sign(ref.BrandSizeSuggestion)
	}

	effectiveWaist := m.WaistCM
	if !anchorOK && brandShift == 0 {
		switch in.req.FitHint {
		case domain.FitHintRunsLarge:
			effectiveWaist -= bottomsHintShiftCM
		case domain.FitHintRunsSmall:
			effectiveWaist += bottomsHintShiftCM
		}
	}

	ignoreHip := m.HipCM <= 0 || m.HipCM < smallestHip(rows)
	baseIdx := -1
	for i, row := range rows {
		if row.WaistCM <= 0 {
			continue
		}
		if row.WaistCM < effectiveWaist {
			continue
		}
		if !ignoreHip && row.HipCM > 0 && row.HipCM < m.HipCM {
			continue
		}
		baseIdx = i
		break
	}

	var rec *domain.SizeRecommendation
	switch {
	case anchorOK:
		rec = e.buildTabular(in, anchorRow, tabularConfidence)
		rec.FitNote = fmt.Sprintf("The fit model wears %s and is built like you.", rows[anchorRow].Label)
		if baseIdx >= 0 && baseIdx != anchorRow {
			rec.IsDual = true
			rec.SecondarySize = rows[baseIdx].Label
			rec.SecondaryNote = "Roomier option straight from the measurement table."
		}
	case baseIdx < 0:
		return nil
	case relaxed:
		rec = e.buildTabular(in, baseIdx, tabularConfidence)
		rec.FitNote = "Relaxed cut: the smallest size that fits is the intended look."
		if next := nextLargerRow(rows, baseIdx); next >= 0 {
			rec.IsDual = true
			rec.SecondarySize = rows[next].Label
			rec.SecondaryNote = "Looser drape if you want extra room."
		}
	case brandShift != 0:
		adjIdx := shiftedRow(rows, baseIdx, brandShift)
		rec = e.buildTabular(in, adjIdx, tabularConfidence)
		if adjIdx != baseIdx {
			if brandShift > 0 {
				rec.FitNote = "Sized up one step: this brand runs small."
			} else {
				rec.FitNote = "Sized down one step: this brand runs large."
			}
			rec.IsDual = true
			rec.SecondarySize = rows[baseIdx].Label
			rec.SecondaryNote = "Standard match from the measurement table."
		}
	default:
		rec = e.buildTabular(in, baseIdx, tabularConfidence)
		if in.req.FitHint == domain.FitHintRunsLarge && effectiveWaist != m.WaistCM {
			rec.FitNote = "Table match adjusted for a garment that runs large."
		} else if in.req.FitHint == domain.FitHintRunsSmall && effectiveWaist != m.WaistCM {
			rec.FitNote = "Table match adjusted for a garment that runs small."
		}
	}

	e.applyInseamAssessment(in, rec)
	e.applyBeltLogic(in, rec)
	e.prioritizeDropdown(in, rec)
	if rec.IsDual && sizeformat.NormalizeLabel(rec.Size) == sizeformat.NormalizeLabel(rec.SecondarySize) {
		rec.CancelDual()
	}
	return rec
}

// buildTabular assembles the common result shape for a chosen table row.
func (e *BottomsEngine) buildTabular(in *bottomsInput, rowIdx int, confidence float64) *domain.SizeRecommendation {
	row := &in.req.TableRows[rowIdx]
	return &domain.SizeRecommendation{
		Size:                 row.Label,
		Confidence:           confidence,
		Category:             domain.CategoryBottom,
		ShopperMeasurementCM: in.m.WaistCM,
		TargetMeasurementCM:  row.WaistCM,
		MatchedRow:           row,
	}
}

// modelAnchorRow decides whether the fit model's worn size should be adopted
// outright. The model must be no shorter than the shopper and the waist of
// the model's size must sit within a small window around the shopper's own
// waist.
func (e *BottomsEngine) modelAnchorRow(in *bottomsInput, relaxed bool) (int, bool) {
	ref := in.req.Reference
	m := in.m
	if ref == nil || ref.ModelSize == "" || ref.ModelHeightCM <= 0 || m.HeightCM <= 0 {
		return -1, false
	}
	if ref.ModelHeightCM < m.HeightCM {
		return -1, false
	}

	idx := findRowByLabel(in.req.TableRows, ref.ModelSize)
	if idx < 0 {
		return -1, false
	}
	row := in.req.TableRows[idx]
	if row.WaistCM <= 0 {
		return -1, false
	}

	tolerance := modelAnchorRegularCM
	if relaxed {
		tolerance = modelAnchorRelaxedCM
	}
	diff := row.WaistCM - m.WaistCM
	if diff < modelAnchorFloorCM || diff > tolerance {
		return -1, false
	}
	return idx, true
}

// applyInseamAssessment compares the product's stated inseam with the
// shopper's and attaches the appropriate length note or warning. A very
// close inseam locks the result to the stated length with raised confidence.
func (e *BottomsEngine) applyInseamAssessment(in *bottomsInput, rec *domain.SizeRecommendation) {
	ref := in.req.Reference
	if ref == nil || ref.GarmentInseamCM <= 0 || in.m.InseamCM <= 0 {
		return
	}

	diff := ref.GarmentInseamCM - in.m.InseamCM
	switch {
	case math.Abs(diff) <= inseamLockToleranceCM:
		rec.Confidence = tabularLockConfidence
		rec.FitNote = joinNotes(rec.FitNote, "The stated inseam matches yours almost exactly.")
	case math.Abs(diff) <= inseamGoodToleranceCM:
		rec.FitNote = joinNotes(rec.FitNote, "The stated inseam is close to yours; length should fit well.")
	case diff > inseamGoodToleranceCM:
		rec.LengthWarning = fmt.Sprintf("These run about %.0f cm longer than your inseam and may need hemming.", diff)
	default:
		if ref.AnkleLength {
			rec.FitNote = joinNotes(rec.FitNote, "Ankle-length cut: it is meant to end above the shoe.")
		} else {
			rec.LengthWarning = fmt.Sprintf("These run about %.0f cm shorter than your inseam.", -diff)
		}
	}
}

// applyBeltLogic notes the waist/length trade-off when the chosen row's
// waist is clearly larger than the shopper's.
func (e *BottomsEngine) applyBeltLogic(in *bottomsInput, rec *domain.SizeRecommendation) {
	if rec.MatchedRow == nil {
		return
	}
	slack := rec.MatchedRow.WaistCM - in.m.WaistCM
	if slack > beltLogicThresholdCM {
		rec.FitNote = joinNotes(rec.FitNote,
			fmt.Sprintf("The waist is %.0f cm over yours; a belt keeps the better leg length.", slack))
	}
}

// prioritizeDropdown re-expresses the chosen labels in whatever vocabulary
// the store's picker offers, then guards the dual invariant: a collision
// bumps the secondary to the next offered size or drops the dual entirely.
func (e *BottomsEngine) prioritizeDropdown(in *bottomsInput, rec *domain.SizeRecommendation) {
	offered := in.req.OfferedSizes
	if len(offered) == 0 {
		return
	}

	rec.Size = sizeformat.TranslateToOffered(rec.Size, in.m.WaistCM, offered)
	if !rec.IsDual {
		return
	}

	rec.SecondarySize = sizeformat.TranslateToOffered(rec.SecondarySize, in.m.WaistCM, offered)
	replacement, keep := sizeformat.ResolveDuplicate(rec.Size, rec.SecondarySize, offered)
	if !keep {
		rec.CancelDual()
		return
	}
	rec.SecondarySize = replacement
}

// descriptiveTier estimates a size from scraped product copy when the page
// has no measurement table but does describe a fit model or garment lengths.
func (e *BottomsEngine) descriptiveTier(in *bottomsInput) *domain.SizeRecommendation {
	if in.hasTable {
		return nil
	}
	ref := in.req.Reference
	if ref == nil {
		return nil
	}
	if ref.ModelHeightCM <= 0 && ref.GarmentInseamCM <= 0 && ref.GarmentLengthCM <= 0 && ref.ModelSize == "" {
		return nil
	}
	m := in.m

	letter := reference.BottomsLetterForWaist(m.WaistCM)
	note := ""
	switch in.req.FitHint {
	case domain.FitHintRunsLarge:
		letter = reference.NextSmallerLetter(letter)
		note = "Sized down one step because this garment runs large."
	case domain.FitHintRunsSmall:
		letter = reference.NextLargerLetter(letter)
		note = "Sized up one step because this garment runs small."
	}

	rec := &domain.SizeRecommendation{
		Size:                 letter,
		Confidence:           textTierConfidence,
		Category:             domain.CategoryBottom,
		ShopperMeasurementCM: m.WaistCM,
		FitNote:              note,
	}
	e.applyInseamAssessment(in, rec)
	rec.Confidence = textTierConfidence // length data never raises a text estimate

	if ref.ModelHeightCM > 0 && m.HeightCM > 0 && ref.GarmentInseamCM > 0 && m.InseamCM > 0 {
		tallerBy := ref.ModelHeightCM - m.HeightCM
		longerBy := ref.GarmentInseamCM - m.InseamCM
		if tallerBy >= dualHeightGapCM && longerBy > dualInseamGapCM {
			smaller := reference.NextSmallerLetter(letter)
			if smaller != letter {
				rec.IsDual = true
				rec.SecondarySize = smaller
				rec.SecondaryNote = "Shorter-length alternative: the model these fit is much taller than you."
			}
		}
	}

	e.prioritizeDropdown(in, rec)
	return rec
}

// universalTier is the last resort when the page offers neither a table nor
// descriptive copy: a generic industry chart keyed on waist, biased by the
// shopper's fit preference, with a hip check on top.
func (e *BottomsEngine) universalTier(in *bottomsInput) *domain.SizeRecommendation {
	if in.hasTable {
		return nil
	}
	m := in.m

	chart := reference.GenericBottomsChart()
	idx := -1
	for i, row := range chart {
		if row.WaistCM >= m.WaistCM {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	confidence := universalConfidence
	note := ""

	if m.HipCM > 0 && m.HipCM > chart[idx].HipCM+hipToleranceCM && idx < len(chart)-1 {
		idx++
		confidence = universalConfidence - universalShiftPenalty
		note = "Sized up for your hip measurement."
	} else if m.FitPreference >= comfortPreference && idx < len(chart)-1 {
		idx++
		confidence = universalConfidence - universalShiftPenalty
		note = "Sized up for a more comfortable fit."
	} else if m.FitPreference >= 1 && m.FitPreference <= slimPreference && idx > 0 {
		idx--
		confidence = universalConfidence - universalShiftPenalty
		note = "Sized down for a slimmer fit."
	}

	row := chart[idx]
	rec := &domain.SizeRecommendation{
		Size:                 row.Label,
		Confidence:           confidence,
		Category:             domain.CategoryBottom,
		ShopperMeasurementCM: m.WaistCM,
		TargetMeasurementCM:  row.WaistCM,
		MatchedRow:           &row,
		FitNote:              note,
	}
	e.prioritizeDropdown(in, rec)
	return rec
}

// emergencyTier fires only when a table existed but no row fit: the waist is
// converted to inches and matched against any purely numeric offered size
// within a tight tolerance. Beyond that the engine reports no match rather
// than guessing.
func (e *BottomsEngine) emergencyTier(in *bottomsInput) *domain.SizeRecommendation {
	if !in.hasTable {
		return nil
	}

	waistIn := sizeformat.CMToInchesExact(in.m.WaistCM)
	best := ""
	bestSize := 0
	bestDist := math.MaxFloat64
	for _, o := range in.req.OfferedSizes {
		n, err := strconv.Atoi(sizeformat.NormalizeLabel(o))
		if err != nil {
			continue
		}
		dist := math.Abs(float64(n) - waistIn)
		if dist < bestDist {
			best = o
			bestSize = n
			bestDist = dist
		}
	}
	if best == "" || bestDist > emergencyWaistTolIn {
		return nil
	}

	return &domain.SizeRecommendation{
		Size:                 best,
		Confidence:           emergencyConfidence,
		Category:             domain.CategoryBottom,
		ShopperMeasurementCM: in.m.WaistCM,
		TargetMeasurementCM:  sizeformat.InchesToCM(float64(bestSize)),
		FitNote:              "No table row covered your measurements; this is the numeric size closest to your waist.",
	}
}

func hasWaistColumn(rows []domain.SizeTableRow) bool {
	for _, row := range rows {
		if row.WaistCM > 0 {
			return true
		}
	}
	return false
}

// smallestHip returns the smallest positive hip in the table, or +Inf when
// the table carries no hip data, which makes every shopper hip "smaller than
// the table" and disables hip filtering.
func smallestHip(rows []domain.SizeTableRow) float64 {
	smallest := math.Inf(1)
	for _, row := range rows {
		if row.HipCM > 0 && row.HipCM < smallest {
			smallest = row.HipCM
		}
	}
	return smallest
}

func findRowByLabel(rows []domain.SizeTableRow, label string) int {
	want := sizeformat.NormalizeLabel(label)
	for i, row := range rows {
		if sizeformat.NormalizeLabel(row.Label) == want {
			return i
		}
	}
	return -1
}

// nextLargerRow returns the index of the first row after idx with a larger
// waist, or -1.
func nextLargerRow(rows []domain.SizeTableRow, idx int) int {
	for i := idx + 1; i < len(rows); i++ {
		if rows[i].WaistCM > rows[idx].WaistCM {
			return i
		}
	}
	return -1
}

// shiftedRow moves a row index by one step in the given direction, skipping
// rows without waist data and clamping at the table edges.
func shiftedRow(rows []domain.SizeTableRow, idx, direction int) int {
	for i := idx + direction; i >= 0 && i < len(rows); i += direction {
		if rows[i].WaistCM > 0 {
			return i
		}
	}
	return idx
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func joinNotes(existing, added string) string {
	if existing == "" {
		return added
	}
	return existing + " " + added
}
