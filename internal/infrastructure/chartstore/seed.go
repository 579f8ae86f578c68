package chartstore

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
)

//go:embed seed_charts.yaml
var seedData []byte

type seedFile struct {
	Retailers []seedRetailer `yaml:"retailers"`
}

type seedRetailer struct {
	Name   string      `yaml:"name"`
	Charts []seedChart `yaml:"charts"`
}

type seedChart struct {
	Category string    `yaml:"category"`
	Offered  []string  `yaml:"offered"`
	Rows     []seedRow `yaml:"rows"`
}

type seedRow struct {
	Label      string  `yaml:"label"`
	Chest      float64 `yaml:"chest"`
	Waist      float64 `yaml:"waist"`
	Hip        float64 `yaml:"hip"`
	FootLength float64 `yaml:"footLength"`
	Inseam     float64 `yaml:"inseam"`
}

// Seed loads the bundled starter charts into an empty store. A store that
// already holds retailers is left untouched.
func Seed(ctx context.Context, store *SQLiteStore) error {
	existing, err := store.Retailers(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	var f seedFile
	if err := yaml.Unmarshal(seedData, &f); err != nil {
		return fmt.Errorf("parsing seed charts: %w", err)
	}

	for _, retailer := range f.Retailers {
		for _, chart := range retailer.Charts {
			rows := make([]domain.SizeTableRow, 0, len(chart.Rows))
			for i, r := range chart.Rows {
				rows = append(rows, domain.SizeTableRow{
					Label:        r.Label,
					ChestCM:      r.Chest,
					WaistCM:      r.Waist,
					HipCM:        r.Hip,
					FootLengthCM: r.FootLength,
					InseamCM:     r.Inseam,
					RowIndex:     i,
				})
			}
			if err := store.SaveChart(ctx, retailer.Name, domain.Category(chart.Category), rows, chart.Offered); err != nil {
				return fmt.Errorf("seeding %s/%s: %w", retailer.Name, chart.Category, err)
			}
		}
	}
	return nil
}
