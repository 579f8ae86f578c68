package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/DrugisCodes/PerFit-sub000/config"
	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
	"github.com/DrugisCodes/PerFit-sub000/internal/infrastructure/cache"
	"github.com/DrugisCodes/PerFit-sub000/internal/infrastructure/chartstore"
	"github.com/DrugisCodes/PerFit-sub000/internal/logging"
	"github.com/DrugisCodes/PerFit-sub000/internal/usecase"
)

var (
	recFile     string
	recCategory string
	recRetailer string
	recHint     string
	recOffered  []string

	recChest      string
	recWaist      string
	recHip        string
	recHeight     string
	recInseam     string
	recFootLength string
	recFootWidth  string
	recShoeSize   string
	recFitPref    string

	recModelHeight float64
	recModelSize   string
	recRelaxed     bool
	recSlipOn      bool
	recHasLaces    bool
	recStoreSize   string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Compute a size recommendation from measurements",
	Long: `Compute a size recommendation directly against the local chart database.
Pass body measurements in centimeters; the category is inferred from the
measurements when not given explicitly. With --file the request is read from
a JSON file in the same shape the HTTP API accepts, and the measurement
flags are ignored.`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVarP(&recFile, "file", "f", "", "JSON request file in the HTTP API's body shape")
	recommendCmd.Flags().StringVar(&recCategory, "category", "", "product category: top, bottom or shoes")
	recommendCmd.Flags().StringVarP(&recRetailer, "retailer", "r", "", "retailer whose stored chart to match against")
	recommendCmd.Flags().StringVar(&recHint, "hint", "", "fit hint from reviews: runs_small or runs_large")
	recommendCmd.Flags().StringSliceVar(&recOffered, "offered", nil, "sizes the store's picker offers")

	recommendCmd.Flags().StringVar(&recChest, "chest", "", "chest circumference in cm")
	recommendCmd.Flags().StringVar(&recWaist, "waist", "", "waist circumference in cm")
	recommendCmd.Flags().StringVar(&recHip, "hip", "", "hip circumference in cm")
	recommendCmd.Flags().StringVar(&recHeight, "height", "", "body height in cm")
	recommendCmd.Flags().StringVar(&recInseam, "inseam", "", "inseam length in cm")
	recommendCmd.Flags().StringVar(&recFootLength, "foot-length", "", "foot length in cm")
	recommendCmd.Flags().StringVar(&recFootWidth, "foot-width", "", "foot width: narrow, medium or wide")
	recommendCmd.Flags().StringVar(&recShoeSize, "shoe-size", "", "usual EU shoe size, used when foot length is unknown")
	recommendCmd.Flags().StringVar(&recFitPref, "fit", "", "fit preference from 1 (tight) to 10 (loose)")

	recommendCmd.Flags().Float64Var(&recModelHeight, "model-height", 0, "fit model's height in cm")
	recommendCmd.Flags().StringVar(&recModelSize, "model-size", "", "size the fit model wears")
	recommendCmd.Flags().BoolVar(&recRelaxed, "relaxed", false, "product is a relaxed or loose fit style")
	recommendCmd.Flags().BoolVar(&recSlipOn, "slip-on", false, "shoe is a slip-on construction")
	recommendCmd.Flags().BoolVar(&recHasLaces, "laces", false, "shoe has laces")
	recommendCmd.Flags().StringVar(&recStoreSize, "store-size", "", "size the store itself suggests")

	rootCmd.AddCommand(recommendCmd)
}

// requestFile mirrors the JSON body of POST /api/v1/recommendation so saved
// requests can be replayed offline.
type requestFile struct {
	ClientID     string                       `json:"clientId"`
	Retailer     string                       `json:"retailer"`
	Profile      domain.ShopperProfile        `json:"profile"`
	Category     string                       `json:"category"`
	TableRows    []domain.SizeTableRow        `json:"tableRows"`
	FitHint      string                       `json:"fitHint"`
	Reference    *domain.ReferenceMeasurement `json:"reference"`
	OfferedSizes []string                     `json:"offeredSizes"`
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	logger := zerolog.Nop()
	if verbose {
		logger = logging.New("debug", "console")
	}
	service := usecase.NewRecommendationService(store, cache.NewMemoryCache(), logger, cfg.Cache.TTL)

	input := usecase.RecommendInput{
		Retailer: recRetailer,
		Request: domain.RecommendationRequest{
			Profile: domain.ShopperProfile{
				Chest:         recChest,
				Waist:         recWaist,
				Hip:           recHip,
				Height:        recHeight,
				Inseam:        recInseam,
				FootLength:    recFootLength,
				FootWidth:     recFootWidth,
				ShoeSize:      recShoeSize,
				FitPreference: recFitPref,
			},
			Category:     domain.Category(recCategory),
			FitHint:      domain.FitHint(recHint),
			Reference:    buildReference(),
			OfferedSizes: recOffered,
		},
	}
	if recFile != "" {
		input, err = loadRequestFile(recFile)
		if err != nil {
			return err
		}
	}

	rec, err := service.Recommend(ctx, input)
	if err != nil {
		return fmt.Errorf("compute recommendation: %w", err)
	}

	success("Recommended size: %s", rec.Size)
	info("Category: %s, confidence %.0f%%", rec.Category, rec.Confidence*100)
	if rec.FitNote != "" {
		info("%s", rec.FitNote)
	}
	if rec.LengthWarning != "" {
		warn("%s", rec.LengthWarning)
	}
	if rec.IsDual {
		step("Alternative: %s", rec.SecondarySize)
		if rec.SecondaryNote != "" {
			step("%s", rec.SecondaryNote)
		}
	}

	if verbose {
		step("Measurement used: %.1f cm, target %.1f cm", rec.ShopperMeasurementCM, rec.TargetMeasurementCM)
		if rec.AppliedBufferCM != 0 {
			step("Applied buffer: %.1f cm", rec.AppliedBufferCM)
		}
		if rec.MatchedRow != nil {
			step("Matched row: %s (chest %s, waist %s, hip %s, foot %s)",
				rec.MatchedRow.Label,
				cm(rec.MatchedRow.ChestCM), cm(rec.MatchedRow.WaistCM),
				cm(rec.MatchedRow.HipCM), cm(rec.MatchedRow.FootLengthCM))
		}
	}
	return nil
}

// loadRequestFile reads a saved API request body.
func loadRequestFile(path string) (usecase.RecommendInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return usecase.RecommendInput{}, fmt.Errorf("read request file: %w", err)
	}
	var f requestFile
	if err := json.Unmarshal(data, &f); err != nil {
		return usecase.RecommendInput{}, fmt.Errorf("parse request file: %w", err)
	}
	return usecase.RecommendInput{
		ClientID: f.ClientID,
		Retailer: f.Retailer,
		Request: domain.RecommendationRequest{
			Profile:      f.Profile,
			Category:     domain.Category(f.Category),
			TableRows:    f.TableRows,
			FitHint:      domain.FitHint(f.FitHint),
			Reference:    f.Reference,
			OfferedSizes: f.OfferedSizes,
		},
	}, nil
}

// buildReference collects the product-page flags into a reference block, or
// nil when none were given.
func buildReference() *domain.ReferenceMeasurement {
	if recModelHeight <= 0 && recModelSize == "" && !recRelaxed && !recSlipOn && !recHasLaces && recStoreSize == "" {
		return nil
	}
	return &domain.ReferenceMeasurement{
		ModelHeightCM:      recModelHeight,
		ModelSize:          recModelSize,
		RelaxedFit:         recRelaxed,
		SlipOn:             recSlipOn,
		HasLaces:           recHasLaces,
		StoreSuggestedSize: recStoreSize,
	}
}

// openStore opens the chart database from the --db flag or the configured
// default.
func openStore() (*chartstore.SQLiteStore, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	path := dbPath
	if path == "" {
		path = cfg.Charts.DatabasePath
	}
	store, err := chartstore.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open chart database %s: %w", path, err)
	}
	return store, cfg, nil
}
