package chartfetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
)

func TestMapToChart(t *testing.T) {
	remote := &RemoteChart{
		Category: "bottom",
		Offered:  []string{"S", "M"},
		Rows: []RemoteRow{
			{Label: "  S ", Waist: 78, Hip: 92},
			{Label: "", Waist: 81},
			{Label: "M", Waist: 84, Hip: 98, Inseam: -2},
		},
	}

	category, rows, offered, err := MapToChart(remote)

	require.NoError(t, err)
	assert.Equal(t, domain.CategoryBottom, category)
	require.Len(t, rows, 2, "unlabeled rows are dropped")

	assert.Equal(t, "S", rows[0].Label, "labels are trimmed")
	assert.Equal(t, 0, rows[0].RowIndex)
	assert.Equal(t, "M", rows[1].Label)
	assert.Equal(t, 1, rows[1].RowIndex, "survivors are re-indexed")
	assert.Equal(t, 0.0, rows[1].InseamCM, "negative measurements are cleared")
	assert.Equal(t, []string{"S", "M"}, offered)
}

func TestMapToChart_UnknownCategory(t *testing.T) {
	remote := &RemoteChart{
		Category: "hats",
		Rows:     []RemoteRow{{Label: "M", Waist: 84}},
	}

	_, _, _, err := MapToChart(remote)
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestMapToChart_NoUsableRows(t *testing.T) {
	remote := &RemoteChart{
		Category: "top",
		Rows:     []RemoteRow{{Label: "   "}, {Label: ""}},
	}

	_, _, _, err := MapToChart(remote)
	assert.ErrorIs(t, err, domain.ErrInvalidChart)
}
