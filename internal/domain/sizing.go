package domain

// Category identifies which sizing engine handles a garment.
type Category string

const (
	CategoryTop     Category = "top"
	CategoryBottom  Category = "bottom"
	CategoryShoes   Category = "shoes"
	CategoryUnknown Category = "unknown"
)

// FitHint is a store-authored hint about how the garment sizes relative to
// its labels. It is distinct from ReferenceMeasurement.BrandSizeSuggestion,
// which is a signed size-step adjustment.
type FitHint string

const (
	FitHintNone      FitHint = ""
	FitHintRunsSmall FitHint = "runs_small"
	FitHintRunsLarge FitHint = "runs_large"
)

// SizeTableRow is one row of a store's measurement table. Measurements are in
// cm; a zero value means the column does not apply to the category. Rows of a
// table are ordered ascending by the category's primary measurement - every
// "first row that fits" scan depends on that order.
type SizeTableRow struct {
	Label        string  `json:"label"`
	ChestCM      float64 `json:"chestCm,omitempty"`
	WaistCM      float64 `json:"waistCm,omitempty"`
	HipCM        float64 `json:"hipCm,omitempty"`
	FootLengthCM float64 `json:"footLengthCm,omitempty"`
	InseamCM     float64 `json:"inseamCm,omitempty"`
	// RowIndex is the row's position in the scraped table, used by the
	// extension to highlight the matched row. -1 marks a row that does not
	// exist in the source table, e.g. an interpolated shoe half-size or a
	// generic reference chart entry.
	RowIndex int `json:"rowIndex"`
}

// SyntheticRowIndex marks table rows that were not scraped from the page.
const SyntheticRowIndex = -1

// Construction override values for ReferenceMeasurement.ConstructionOverride.
const (
	ConstructionSlipOn = "slip_on"
	ConstructionLaced  = "laced"
)

// ReferenceMeasurement bundles the optional descriptive signals scraped from
// product copy: fit-model data, garment lengths, fit style and footwear
// construction. Zero values mean "not stated".
type ReferenceMeasurement struct {
	ModelHeightCM   float64 `json:"modelHeightCm,omitempty"`   // fit model's height
	ModelSize       string  `json:"modelSize,omitempty"`       // size the model wears
	GarmentLengthCM float64 `json:"garmentLengthCm,omitempty"` // total garment length
	GarmentInseamCM float64 `json:"garmentInseamCm,omitempty"` // product-stated inseam
	MeasuredOnSize  string  `json:"measuredOnSize,omitempty"`  // size the lengths were measured on
	AnkleLength     bool    `json:"ankleLength,omitempty"`
	RelaxedFit      bool    `json:"relaxedFit,omitempty"` // store-authored relaxed/loose fit style

	// BrandSizeSuggestion is a signed size-step adjustment from store copy:
	// +1 means the brand runs small (size up), -1 runs large (size down).
	BrandSizeSuggestion int `json:"brandSizeSuggestion,omitempty"`

	SlipOn    bool `json:"slipOn,omitempty"`    // moccasin, loafer or laceless boot
	LacedBoot bool `json:"lacedBoot,omitempty"` // boot secured by laces
	HasLaces  bool `json:"hasLaces,omitempty"`
	// ConstructionOverride is a manual user correction of the scraped
	// construction flags ("slip_on" or "laced"); it wins over all flags.
	ConstructionOverride string `json:"constructionOverride,omitempty"`

	// StoreSuggestedSize is the store's own independent size recommendation,
	// used for cross-checking and the shoes expert override.
	StoreSuggestedSize string `json:"storeSuggestedSize,omitempty"`
}

// SlipOnConstruction reports whether the footwear must be fitted as a
// slip-on. The manual override wins; otherwise the slip-on flag decides, and
// any laces seen on the product force laced construction. The scraper flags
// laceless boots as slip-on, so an unflagged product defaults to laced.
func (r *ReferenceMeasurement) SlipOnConstruction() bool {
	if r == nil {
		return false
	}
	switch r.ConstructionOverride {
	case ConstructionSlipOn:
		return true
	case ConstructionLaced:
		return false
	}
	if r.HasLaces || r.LacedBoot {
		return false
	}
	return r.SlipOn
}

// SizeRecommendation is the engine's sole output type: the chosen size plus
// everything the extension needs to explain and highlight it.
type SizeRecommendation struct {
	Size       string   `json:"size"`
	Confidence float64  `json:"confidence"` // 0..1
	Category   Category `json:"category"`

	ShopperMeasurementCM float64 `json:"shopperMeasurementCm,omitempty"`
	TargetMeasurementCM  float64 `json:"targetMeasurementCm,omitempty"`
	AppliedBufferCM      float64 `json:"appliedBufferCm,omitempty"`

	MatchedRow *SizeTableRow `json:"matchedRow,omitempty"`

	FitNote       string `json:"fitNote,omitempty"`
	LengthWarning string `json:"lengthWarning,omitempty"`

	// Dual recommendation: a second size with its own note. Invariant:
	// IsDual implies Size != SecondarySize, re-checked after every label
	// translation pass.
	IsDual        bool   `json:"isDual,omitempty"`
	SecondarySize string `json:"secondarySize,omitempty"`
	SecondaryNote string `json:"secondaryNote,omitempty"`
}

// CancelDual drops the secondary recommendation, e.g. after a label
// translation collapsed both sizes onto the same label.
func (r *SizeRecommendation) CancelDual() {
	r.IsDual = false
	r.SecondarySize = ""
	r.SecondaryNote = ""
}

// RecommendationRequest is the full calculation input: the shopper profile, a
// category tag, whatever size data the page exposed, and the size labels the
// store's picker actually offers. Table rows arrive pre-sorted ascending by
// primary measurement.
type RecommendationRequest struct {
	Profile      ShopperProfile        `json:"profile"`
	Category     Category              `json:"category"`
	TableRows    []SizeTableRow        `json:"tableRows,omitempty"`
	FitHint      FitHint               `json:"fitHint,omitempty"`
	Reference    *ReferenceMeasurement `json:"reference,omitempty"`
	OfferedSizes []string              `json:"offeredSizes,omitempty"`
}
