// Package services provides business logic and orchestration services.
//
// This file implements the Strategy Pattern for recurrence date stepping.
// Each frequency type (daily, weekly, monthly, yearly) has its own stepper
// that encapsulates how an occurrence date advances by one period.

package services

import (
	"time"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
)

// FrequencyStepper is the strategy interface for advancing an occurrence
// date by one recurrence period.
type FrequencyStepper interface {
	// Next returns the occurrence date one period after d.
	Next(d time.Time) time.Time
}

// DailyStepper advances by one calendar day.
type DailyStepper struct{}

func (DailyStepper) Next(d time.Time) time.Time {
	return d.AddDate(0, 0, 1)
}

// WeeklyStepper advances by seven calendar days.
type WeeklyStepper struct{}

func (WeeklyStepper) Next(d time.Time) time.Time {
	return d.AddDate(0, 0, 7)
}

// MonthlyStepper advances by one calendar month. Day-of-month overflow
// follows time.AddDate semantics (Jan 31 + 1 month = Mar 2/3).
type MonthlyStepper struct{}

func (MonthlyStepper) Next(d time.Time) time.Time {
	return d.AddDate(0, 1, 0)
}

// YearlyStepper advances by one calendar year.
type YearlyStepper struct{}

func (YearlyStepper) Next(d time.Time) time.Time {
	return d.AddDate(1, 0, 0)
}

// frequencySteppers maps frequency types to their corresponding steppers.
var frequencySteppers = map[core.Frequency]FrequencyStepper{
	core.Daily:   DailyStepper{},
	core.Weekly:  WeeklyStepper{},
	core.Monthly: MonthlyStepper{},
	core.Yearly:  YearlyStepper{},
}

// GetFrequencyStepper returns the stepper for a frequency, plus whether the
// frequency was recognized. Unrecognized frequencies fall back to daily
// stepping; callers are expected to log the fallback so bad stored data
// stays visible.
func GetFrequencyStepper(frequency core.Frequency) (FrequencyStepper, bool) {
	stepper, ok := frequencySteppers[frequency]
	if !ok {
		return DailyStepper{}, false
	}
	return stepper, true
}

// RegisterFrequencyStepper registers a custom stepper for a new frequency
// type without touching the materializer.
func RegisterFrequencyStepper(frequency core.Frequency, stepper FrequencyStepper) {
	frequencySteppers[frequency] = stepper
}
