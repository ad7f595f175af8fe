package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/save-smarter/pkg/constants"
	"github.com/iwvelando/save-smarter/pkg/datetime"
	"go.uber.org/multierr"
)

// Field names shown to the user when a value is missing or invalid.
const (
	FieldCurrentBalance = "Current Savings Balance"
	FieldInterestRate   = "Annual Interest Rate"
	FieldTargetValue    = "Target Savings Value"
)

// MissingFieldsError lists the numeric fields that were not supplied.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("Please enter valid values for: %s to proceed.", strings.Join(e.Fields, ", "))
}

// MissingFields returns the names of unset numeric inputs in form order.
func MissingFields(currentBalance, interestRate, targetValue *float64) []string {
	var missing []string
	if currentBalance == nil {
		missing = append(missing, FieldCurrentBalance)
	}
	if interestRate == nil {
		missing = append(missing, FieldInterestRate)
	}
	if targetValue == nil {
		missing = append(missing, FieldTargetValue)
	}
	return missing
}

// RequireFields returns a *MissingFieldsError when any numeric input is unset.
func RequireFields(currentBalance, interestRate, targetValue *float64) error {
	if missing := MissingFields(currentBalance, interestRate, targetValue); len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// ValidateAmounts rejects negative balances, rates and targets. All problems
// are reported together.
func ValidateAmounts(currentBalance, interestRate, targetValue float64) error {
	var err error
	if currentBalance < 0 {
		err = multierr.Append(err, fmt.Errorf("%s must not be negative, got %.2f", FieldCurrentBalance, currentBalance))
	}
	if interestRate < 0 {
		err = multierr.Append(err, fmt.Errorf("%s must not be negative, got %.2f", FieldInterestRate, interestRate))
	}
	if targetValue < 0 {
		err = multierr.Append(err, fmt.Errorf("%s must not be negative, got %.2f", FieldTargetValue, targetValue))
	}
	return err
}

// ValidateDateWindow enforces the collection window relative to today: the
// target date is at least two days out and the first deposit falls between
// tomorrow and the day before the target, inclusive.
func ValidateDateWindow(today, startDate, targetDate time.Time) error {
	earliestTarget := datetime.AddDays(today, constants.MinTargetLeadDays)
	earliestStart := datetime.AddDays(today, constants.MinStartLeadDays)
	latestStart := datetime.AddDays(targetDate, -1)

	var err error
	if datetime.Normalize(targetDate).Before(earliestTarget) {
		err = multierr.Append(err, fmt.Errorf("target date %s must be on or after %s",
			datetime.Format(targetDate), datetime.Format(earliestTarget)))
	}
	if datetime.Normalize(startDate).Before(earliestStart) {
		err = multierr.Append(err, fmt.Errorf("first deposit date %s must be on or after %s",
			datetime.Format(startDate), datetime.Format(earliestStart)))
	}
	if datetime.Normalize(startDate).After(latestStart) {
		err = multierr.Append(err, fmt.Errorf("first deposit date %s must be on or before %s",
			datetime.Format(startDate), datetime.Format(latestStart)))
	}
	return err
}
