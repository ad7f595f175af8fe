package savings

import (
	"fmt"
	"strings"

	"github.com/iwvelando/save-smarter/pkg/constants"
)

// DepositPeriod is the cadence at which deposits are made towards a goal.
type DepositPeriod int

const (
	Daily DepositPeriod = iota + 1
	Weekly
	Monthly
)

// Schedule describes how a DepositPeriod maps onto the calendar.
type Schedule struct {
	PeriodsPerYear int
	StepDays       int
}

var schedules = map[DepositPeriod]Schedule{
	Daily:   {PeriodsPerYear: constants.DailyPeriodsPerYear, StepDays: constants.DailyStepDays},
	Weekly:  {PeriodsPerYear: constants.WeeklyPeriodsPerYear, StepDays: constants.WeeklyStepDays},
	Monthly: {PeriodsPerYear: constants.MonthlyPeriodsPerYear, StepDays: constants.MonthlyStepDays},
}

// ParseDepositPeriod accepts "daily", "weekly" or "monthly" in any case.
func ParseDepositPeriod(value string) (DepositPeriod, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "daily":
		return Daily, nil
	case "weekly":
		return Weekly, nil
	case "monthly":
		return Monthly, nil
	default:
		return 0, fmt.Errorf("expected deposit period of daily, weekly or monthly, got %q", value)
	}
}

// Valid reports whether p is one of the known periods.
func (p DepositPeriod) Valid() bool {
	_, ok := schedules[p]
	return ok
}

// Schedule returns the periods per year and step size for p. Unknown periods
// return the zero Schedule.
func (p DepositPeriod) Schedule() Schedule {
	return schedules[p]
}

// Label is the singular noun used when describing one deposit interval.
func (p DepositPeriod) Label() string {
	switch p {
	case Daily:
		return "day"
	case Weekly:
		return "week"
	case Monthly:
		return "month"
	}
	return ""
}

func (p DepositPeriod) String() string {
	switch p {
	case Daily:
		return "Daily"
	case Weekly:
		return "Weekly"
	case Monthly:
		return "Monthly"
	}
	return fmt.Sprintf("DepositPeriod(%d)", int(p))
}

// MarshalText encodes p in its lowercase config form.
func (p DepositPeriod) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid deposit period %d", int(p))
	}
	return []byte(strings.ToLower(p.String())), nil
}

// UnmarshalText decodes the lowercase config form.
func (p *DepositPeriod) UnmarshalText(text []byte) error {
	parsed, err := ParseDepositPeriod(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
