package chartfetch

import (
	"strings"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
)

// RemoteChart is the wire shape of a published chart file, identical to the
// import format the CLI reads from disk.
type RemoteChart struct {
	Category string      `yaml:"category"`
	Offered  []string    `yaml:"offered"`
	Rows     []RemoteRow `yaml:"rows"`
}

// RemoteRow is one size row of a published chart file.
type RemoteRow struct {
	Label      string  `yaml:"label"`
	Chest      float64 `yaml:"chest"`
	Waist      float64 `yaml:"waist"`
	Hip        float64 `yaml:"hip"`
	FootLength float64 `yaml:"footLength"`
	Inseam     float64 `yaml:"inseam"`
}

// MapToChart converts a fetched chart file to domain rows. Rows without a
// label are dropped; the survivors are re-indexed in file order.
func MapToChart(remote *RemoteChart) (domain.Category, []domain.SizeTableRow, []string, error) {
	category := domain.Category(remote.Category)
	switch category {
	case domain.CategoryTop, domain.CategoryBottom, domain.CategoryShoes:
	default:
		return "", nil, nil, domain.ErrUnknownCategory
	}

	rows := make([]domain.SizeTableRow, 0, len(remote.Rows))
	for _, r := range remote.Rows {
		label := strings.TrimSpace(r.Label)
		if label == "" {
			continue
		}
		rows = append(rows, domain.SizeTableRow{
			Label:        label,
			ChestCM:      positive(r.Chest),
			WaistCM:      positive(r.Waist),
			HipCM:        positive(r.Hip),
			FootLengthCM: positive(r.FootLength),
			InseamCM:     positive(r.Inseam),
			RowIndex:     len(rows),
		})
	}
	if len(rows) == 0 {
		return "", nil, nil, domain.ErrInvalidChart
	}

	return category, rows, remote.Offered, nil
}

func positive(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
