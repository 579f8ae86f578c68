package usecase

import (
	"fmt"
	"math"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
	"github.com/DrugisCodes/PerFit-sub000/internal/reference"
)

// TopsEngine sizes chest-measured garments: shirts, jackets, knitwear.
type TopsEngine struct{}

// NewTopsEngine creates a tops engine.
func NewTopsEngine() *TopsEngine {
	return &TopsEngine{}
}

// Recommend picks a top size for the shopper. With a measurement table the
// match is strict first-row-that-fits on chest; without one the chest is
// bucketed into letter sizes and cross-checked against the fit model.
func (e *TopsEngine) Recommend(req domain.RecommendationRequest) (*domain.SizeRecommendation, error) {
	m := parseProfile(req.Profile)
	if m.ChestCM <= 0 {
		return nil, domain.ErrInvalidProfile
	}

	if hasChestColumn(req.TableRows) {
		return e.matchTable(req, m)
	}
	return e.estimateFromText(req, m)
}

// matchTable scans the table in ascending order for the first row whose
// chest covers the shopper's effective chest. The fit hint moves the
// effective chest before the scan; a bounded leeway below a row's chest is
// allowed only when the garment runs large or the fit model's build is close
// to the shopper's.
func (e *TopsEngine) matchTable(req domain.RecommendationRequest, m measurements) (*domain.SizeRecommendation, error) {
	effective := m.ChestCM
	switch req.FitHint {
	case domain.FitHintRunsLarge:
		effective -= topsHintShiftCM
	case domain.FitHintRunsSmall:
		effective += topsHintShiftCM
	}

	for i := range req.TableRows {
		row := req.TableRows[i]
		if row.ChestCM <= 0 {
			continue
		}
		if row.ChestCM >= effective {
			return &domain.SizeRecommendation{
				Size:                 row.Label,
				Confidence:           topsExactConfidence,
				Category:             domain.CategoryTop,
				ShopperMeasurementCM: m.ChestCM,
				TargetMeasurementCM:  row.ChestCM,
				MatchedRow:           &req.TableRows[i],
			}, nil
		}
	}

	leewayCause := ""
	if req.FitHint == domain.FitHintRunsLarge {
		leewayCause = "this garment runs large"
	} else if modelSimilarBuild(req.Reference, m) {
		leewayCause = "the fit model's build is close to yours"
	}
	if leewayCause == "" {
		return nil, domain.ErrNoRecommendation
	}

	for i := range req.TableRows {
		row := req.TableRows[i]
		if row.ChestCM <= 0 {
			continue
		}
		if row.ChestCM >= effective-topsLeewayCM {
			return &domain.SizeRecommendation{
				Size:                 row.Label,
				Confidence:           topsLeewayConfidence,
				Category:             domain.CategoryTop,
				ShopperMeasurementCM: m.ChestCM,
				TargetMeasurementCM:  row.ChestCM,
				AppliedBufferCM:      topsLeewayCM,
				MatchedRow:           &req.TableRows[i],
				FitNote:              fmt.Sprintf("Allowed %.1f cm of leeway because %s.", topsLeewayCM, leewayCause),
			}, nil
		}
	}

	return nil, domain.ErrNoRecommendation
}

// estimateFromText resolves a letter size from the chest alone, then lets the
// fit hint and the fit model nudge it. Chest at or above the safeguard never
// resolves below M no matter what the adjustments said.
func (e *TopsEngine) estimateFromText(req domain.RecommendationRequest, m measurements) (*domain.SizeRecommendation, error) {
	letter := reference.TopsLetterForChest(m.ChestCM)
	confidence := topsTextChestConfidence
	note := ""

	switch req.FitHint {
	case domain.FitHintRunsLarge:
		letter = reference.NextSmallerLetter(letter)
		confidence = topsTextHintConfidence
		note = "Sized down one step because this garment runs large."
	case domain.FitHintRunsSmall:
		letter = reference.NextLargerLetter(letter)
		confidence = topsTextHintConfidence
		note = "Sized up one step because this garment runs small."
	}

	warning := ""
	if req.Reference != nil && req.Reference.ModelHeightCM > 0 && m.HeightCM > 0 {
		delta := req.Reference.ModelHeightCM - m.HeightCM
		if delta < -topsModelStrongCM {
			smaller := reference.NextSmallerLetter(letter)
			if smaller != letter {
				letter = smaller
				confidence = topsTextModelConfidence
				note = "The fit model is considerably shorter than you, so the smaller size should fit."
			}
		} else if delta > topsModelStrongCM {
			confidence = topsTextModelConfidence
			warning = "The fit model is considerably taller than you; consider one size up if you prefer a longer cut."
		}
	}

	if m.ChestCM >= topsChestFloorCM && reference.LetterRank(letter) < reference.LetterRank("M") {
		letter = "M"
		note = "Held at M: a smaller size will not close over this chest measurement."
	}

	if confidence < topsTextFloorConfidence {
		confidence = topsTextFloorConfidence
	}

	return &domain.SizeRecommendation{
		Size:                 letter,
		Confidence:           confidence,
		Category:             domain.CategoryTop,
		ShopperMeasurementCM: m.ChestCM,
		FitNote:              note,
		LengthWarning:        warning,
	}, nil
}

// modelSimilarBuild reports whether a fit model's height is close enough to
// the shopper's to treat the model's size as evidence.
func modelSimilarBuild(ref *domain.ReferenceMeasurement, m measurements) bool {
	if ref == nil || ref.ModelHeightCM <= 0 || m.HeightCM <= 0 {
		return false
	}
	return math.Abs(ref.ModelHeightCM-m.HeightCM) <= modelSimilarHeightCM
}

func hasChestColumn(rows []domain.SizeTableRow) bool {
	for _, row := range rows {
		if row.ChestCM > 0 {
			return true
		}
	}
	return false
}
