package domain

// ShopperProfile holds the shopper's self-reported body measurements as they
// arrive from the extension popup. Every field is a free-form string ("98",
// "98,5", "43 1/3", "") and arrives unvalidated; a missing or non-numeric
// required field invalidates the calculation for that category.
type ShopperProfile struct {
	Chest       string `json:"chest,omitempty"`       // cm
	Waist       string `json:"waist,omitempty"`       // cm
	Hip         string `json:"hip,omitempty"`         // cm
	ArmLength   string `json:"armLength,omitempty"`   // cm
	Inseam      string `json:"inseam,omitempty"`      // cm
	TorsoLength string `json:"torsoLength,omitempty"` // cm
	Height      string `json:"height,omitempty"`      // cm
	FootLength  string `json:"footLength,omitempty"`  // cm
	FootWidth   string `json:"footWidth,omitempty"`   // "narrow", "medium" or "wide"
	ShoeSize    string `json:"shoeSize,omitempty"`    // EU size, may be fractional ("43 1/3")
	// FitPreference is a 1-10 scale: low values prefer a slim fit, high
	// values a comfortable one. Only the universal bottoms fallback uses it.
	FitPreference string `json:"fitPreference,omitempty"`
}

// Foot width categories recognized in ShopperProfile.FootWidth.
const (
	FootWidthNarrow = "narrow"
	FootWidthMedium = "medium"
	FootWidthWide   = "wide"
)
