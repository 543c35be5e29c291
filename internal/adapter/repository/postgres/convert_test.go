package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func TestDecimalNumericRoundTrip(t *testing.T) {
	tests := []string{"0", "1", "100", "25.50", "0.01", "-42.75", "123456789.12345678"}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			d := decimal.RequireFromString(raw)

			n := decimalToNumeric(d)
			if !n.Valid {
				t.Fatalf("expected valid numeric for %s", raw)
			}

			got := numericToDecimal(n)
			if !got.Equal(d) {
				t.Fatalf("round trip of %s produced %s", d, got)
			}
		})
	}
}

func TestNumericToDecimal_Invalid(t *testing.T) {
	if got := numericToDecimal(pgtype.Numeric{}); !got.IsZero() {
		t.Fatalf("expected zero for invalid numeric, got %s", got)
	}
}
