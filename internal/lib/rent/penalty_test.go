package rent

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/rental-ledger/internal/models"
)

func TestComputePenalty_TableTests(t *testing.T) {
	tests := []struct {
		name string
		rent string
		pct  string
		want string
	}{
		{name: "ten percent of 1000", rent: "1000", pct: "10", want: "100"},
		{name: "zero percent", rent: "1000", pct: "0", want: "0"},
		{name: "fractional percent", rent: "1250.50", pct: "2.5", want: "31.26"},
		{name: "zero rent", rent: "0", pct: "10", want: "0"},
		{name: "hundred percent", rent: "870.99", pct: "100", want: "870.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePenalty(decimal.RequireFromString(tt.rent), decimal.RequireFromString(tt.pct))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestComputePenalty_MatchesFormula(t *testing.T) {
	for rentAmount := int64(0); rentAmount <= 5000; rentAmount += 250 {
		for pct := int64(0); pct <= 20; pct += 5 {
			r := decimal.NewFromInt(rentAmount)
			p := decimal.NewFromInt(pct)
			want := r.Mul(p).Div(decimal.NewFromInt(100))
			assert.True(t, want.Equal(ComputePenalty(r, p)))
		}
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, models.StatusPaid, StatusFor(decimal.NewFromInt(1000)))
	assert.Equal(t, models.StatusNotPaid, StatusFor(decimal.Zero))
	assert.Equal(t, models.StatusNotPaid, StatusFor(decimal.Decimal{}))
}

func TestPenaltyFor(t *testing.T) {
	rentAmount := decimal.NewFromInt(1000)
	pct := decimal.NewFromInt(10)

	assert.True(t, decimal.Zero.Equal(PenaltyFor(models.StatusPaid, rentAmount, pct)))
	assert.True(t, decimal.NewFromInt(100).Equal(PenaltyFor(models.StatusNotPaid, rentAmount, pct)))
}
