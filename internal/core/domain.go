package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

type (
	TransactionType string

	Frequency string

	// Date is a calendar day. The time component is always midnight UTC.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID          string
		Description string
		Amount      Money
		Type        TransactionType
		Date        Date
		Category    string
		Notes       string
		Currency    string
	}

	RecurringTransaction struct {
		ID             string
		Description    string
		Amount         Money
		Type           TransactionType
		Category       string
		Frequency      Frequency
		StartDate      Date
		NextOccurrence Date
		Notes          string
		Currency       string
	}

	Budget struct {
		Category string
		Amount   Money
	}

	// Preferences are the persisted viewer settings.
	Preferences struct {
		Currency       string
		AlertThreshold int // percent, 10-100 in steps of 5
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidCurrency  = errors.New("invalid currency code")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidThreshold = errors.New("invalid alert threshold")

	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
)

// DefaultCategories is the fixed set offered to the categorizer and the UI.
var DefaultCategories = []string{
	"Food & Dining",
	"Transportation",
	"Housing",
	"Utilities",
	"Entertainment",
	"Healthcare",
	"Shopping",
	"Salary",
	"Investment",
	"Other",
}

// FallbackCategory is used whenever categorization cannot produce a
// confident answer.
const FallbackCategory = "Other"

// NewDate creates a Date from year, month, day at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses an ISO calendar day (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// ISO returns the date formatted as 2006-01-02.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (f Frequency) Validate() error {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return nil
	default:
		return ErrInvalidFrequency
	}
}

// NormalizeCurrency upper-cases and validates an ISO 4217-like code.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCurrency
		}
	}
	return code, nil
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if _, err := NormalizeCurrency(t.Currency); err != nil {
		return err
	}
	return nil
}

func (r RecurringTransaction) Validate() error {
	if len(strings.TrimSpace(r.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(r.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if err := r.Frequency.Validate(); err != nil {
		return err
	}
	if err := r.StartDate.Validate(); err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	if !r.NextOccurrence.IsZero() && r.NextOccurrence.Before(r.StartDate.Time) {
		return fmt.Errorf("next occurrence before start date: %w", ErrInvalidDate)
	}
	if _, err := NormalizeCurrency(r.Currency); err != nil {
		return err
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	return nil
}

func (p Preferences) Validate() error {
	if _, err := NormalizeCurrency(p.Currency); err != nil {
		return err
	}
	if p.AlertThreshold < 10 || p.AlertThreshold > 100 || p.AlertThreshold%5 != 0 {
		return ErrInvalidThreshold
	}
	return nil
}

// DefaultPreferences returns the settings a fresh profile starts with.
func DefaultPreferences() Preferences {
	return Preferences{Currency: "USD", AlertThreshold: 80}
}
