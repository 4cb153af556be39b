package currency

import (
	"testing"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		cents    int64
		from, to string
		want     int64
		wantErr  bool
	}{
		{"usd to eur", 10000, "USD", "EUR", 9000, false},
		{"eur to usd", 9000, "EUR", "USD", 10000, false},
		{"identity", 12345, "USD", "USD", 12345, false},
		{"identity unknown code", 12345, "XXX", "XXX", 12345, false},
		{"unknown from", 100, "XXX", "USD", 0, true},
		{"unknown to", 100, "USD", "XXX", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(core.Money{Cents: tt.cents}, tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Convert() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got.Cents != tt.want {
				t.Errorf("Convert() = %d, want %d", got.Cents, tt.want)
			}
		})
	}
}

func TestConvertRoundsToCents(t *testing.T) {
	// 100.00 USD -> GBP at 0.79 is exactly 79.00; 33.33 USD -> EUR is
	// 29.997, which rounds to 30.00.
	got, err := Convert(core.Money{Cents: 3333}, "USD", "EUR")
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if got.Cents != 3000 {
		t.Errorf("Convert() = %d, want 3000", got.Cents)
	}
}

func TestSupported(t *testing.T) {
	if !IsSupported("USD") || !IsSupported("EUR") {
		t.Error("expected USD and EUR to be supported")
	}
	if IsSupported("XYZ") {
		t.Error("XYZ should not be supported")
	}
	if len(Supported()) < 2 {
		t.Errorf("Supported() returned %d codes", len(Supported()))
	}
}
