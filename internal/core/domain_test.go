package core

import (
	"errors"
	"strings"
	"testing"
)

func validTransaction() Transaction {
	return Transaction{
		ID:          "t1",
		Description: "Groceries",
		Amount:      Money{Cents: 4250},
		Type:        Expense,
		Date:        NewDate(2024, 3, 15),
		Category:    "Food & Dining",
		Currency:    "USD",
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"valid", func(*Transaction) {}, nil},
		{"empty description", func(tx *Transaction) { tx.Description = "   " }, ErrEmptyDescription},
		{"description too long", func(tx *Transaction) { tx.Description = strings.Repeat("x", 201) }, ErrDescriptionTooLong},
		{"zero amount", func(tx *Transaction) { tx.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -100} }, ErrInvalidAmount},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, ErrInvalidDate},
		{"empty category", func(tx *Transaction) { tx.Category = "" }, ErrEmptyCategory},
		{"bad currency", func(tx *Transaction) { tx.Currency = "US" }, ErrInvalidCurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecurringTransactionValidate(t *testing.T) {
	valid := RecurringTransaction{
		ID:             "r1",
		Description:    "Rent",
		Amount:         Money{Cents: 120000},
		Type:           Expense,
		Category:       "Housing",
		Frequency:      Monthly,
		StartDate:      NewDate(2024, 1, 1),
		NextOccurrence: NewDate(2024, 2, 1),
		Currency:       "USD",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	bad := valid
	bad.Frequency = "fortnightly"
	if err := bad.Validate(); !errors.Is(err, ErrInvalidFrequency) {
		t.Errorf("Validate() = %v, want %v", err, ErrInvalidFrequency)
	}

	bad = valid
	bad.NextOccurrence = NewDate(2023, 12, 1)
	if err := bad.Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Validate() = %v, want %v for next occurrence before start", err, ErrInvalidDate)
	}

	bad = valid
	bad.StartDate = Date{}
	bad.NextOccurrence = Date{}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Validate() = %v, want %v for zero start date", err, ErrInvalidDate)
	}
}

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"usd", "USD", false},
		{" EUR ", "EUR", false},
		{"US", "", true},
		{"EURO", "", true},
		{"U5D", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeCurrency(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeCurrency(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeCurrency(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPreferencesValidate(t *testing.T) {
	p := DefaultPreferences()
	if err := p.Validate(); err != nil {
		t.Fatalf("default preferences invalid: %v", err)
	}

	p.AlertThreshold = 73
	if err := p.Validate(); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("Validate() = %v, want %v", err, ErrInvalidThreshold)
	}

	p.AlertThreshold = 5
	if err := p.Validate(); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("Validate() = %v, want %v", err, ErrInvalidThreshold)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d.ISO() != "2024-03-15" {
		t.Errorf("ISO() = %q, want 2024-03-15", d.ISO())
	}

	if _, err := ParseDate("15/03/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("ParseDate() = %v, want %v", err, ErrInvalidDate)
	}
}
