package usecase

// All tunable sizing policy lives here. Engines never inline these numbers.

// Tops matching thresholds (cm unless noted).
const (
	topsHintShiftCM      = 2.5   // fit hint shifts effective chest up or down
	topsLeewayCM         = 1.5   // bounded tolerance below a row's chest
	modelSimilarHeightCM = 5.0   // model counts as "similar build" within this
	topsModelStrongCM    = 10.0  // model height gap that carries its own signal
	topsChestFloorCM     = 101.0 // chest at or above this never resolves below M
)

// Tops confidence ladder.
const (
	topsExactConfidence     = 1.0
	topsLeewayConfidence    = 0.95
	topsTextChestConfidence = 0.85 // text fallback anchored on chest alone
	topsTextHintConfidence  = 0.8  // text fallback after a fit-hint step
	topsTextModelConfidence = 0.75 // text fallback influenced by model data
	topsTextFloorConfidence = 0.7
)

// Bottoms matching thresholds.
const (
	bottomsHintShiftCM  = 2.5  // fit hint shifts the effective waist up or down
	wearEaseCM          = 2.0  // added to waist and inseam before the inch conversion
	lengthStepCM        = 5.08 // one length size = 2 inches of inseam
	aggressiveRoundStep = 1.3  // beyond this many steps, round away from zero
	brandWaistShiftIn   = 1    // signed brand suggestion moves target waist by one inch
	inseamHeightRatio   = 0.45 // inseam estimate from height when inseam is missing

	beltLogicThresholdCM  = 2.0 // chosen waist exceeding the shopper's by more suggests a belt
	inseamLockToleranceCM = 1.5 // product and shopper inseam this close locks the length
	inseamGoodToleranceCM = 3.0 // still a good fit, worth a note

	modelAnchorRelaxedCM = 3.5  // model waist tolerance in relaxed fit mode
	modelAnchorRegularCM = 1.5  // model waist tolerance otherwise
	modelAnchorFloorCM   = -2.0 // model may be at most this much smaller

	dualHeightGapCM = 6.0 // model taller by this much opens a shorter-length dual
	dualInseamGapCM = 3.0 // together with product inseam exceeding the shopper's by this

	hipToleranceCM      = 5.0 // hip over the row by more than this forces a size up
	comfortPreference   = 7   // 1-10 fit preference at or above this biases up
	slimPreference      = 4   // at or below this biases down
	emergencyWaistTolIn = 1.5 // max inch distance for the emergency numeric match
)

// Bottoms confidence ladder.
const (
	wxlPairConfidence      = 0.95 // exact waist and length both offered
	wxlWaistOnlyConfidence = 0.9  // waist matched, length loosened
	wxlClosestConfidence   = 0.8  // nothing carried the target waist, closest label
	tabularConfidence      = 0.9
	tabularLockConfidence  = 0.95 // inseam anchor locks the stated length size
	textTierConfidence     = 0.75
	universalConfidence    = 0.6 // hard ceiling for the universal fallback
	universalShiftPenalty  = 0.05
	emergencyConfidence    = 0.5
)

// Shoes matching thresholds (cm).
const (
	slipOnSnugOffsetCM = 0.3 // slip-on target sits below the foot length
	slipOnMaxBufferCM  = 0.2
	slipOnWideBufferCM = 0.3 // wide feet relax the slip-on policy
	lacedMaxBufferCM   = 0.4
	shoeRunsLargeShift = 0.3 // subtracted from target
	shoeRunsSmallShift = 0.2 // added to target
	snugPairGapCM      = 0.3 // best and runner-up this close prefer the smaller
	snugNeighborGapCM  = 0.5 // smaller neighbor this close to target wins on snug items
	storeOverrideTolCM = 1.0 // store suggestion must be this close to the foot
)

// Shoes confidence ladder.
const (
	shoeMatchConfidence        = 0.9
	shoeInterpolatedConfidence = 0.85 // matched row was derived, not scraped
	shoeOverrideConfidence     = 0.9  // store expert override
	shoeBufferWarnConfidence   = 0.6  // all candidates exceeded the buffer
)
