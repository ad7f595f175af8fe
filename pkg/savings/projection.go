// Package savings computes whether a savings goal is reached through
// compounding alone and, when it is not, the periodic deposit that closes the
// gap by the target date.
package savings

import (
	"math"
	"time"

	"github.com/iwvelando/save-smarter/pkg/constants"
	"github.com/iwvelando/save-smarter/pkg/datetime"
	"github.com/iwvelando/save-smarter/pkg/mathutil"
)

// Input holds one savings goal. Amounts are non-negative and TargetDate is
// strictly after StartDate; callers validate both before projecting.
type Input struct {
	CurrentBalance float64
	InterestRate   float64 // annual, percent
	TargetValue    float64
	StartDate      time.Time
	TargetDate     time.Time
	DepositPeriod  DepositPeriod
}

// Kind tags which variant a Result holds.
type Kind int

const (
	KindInsufficientInfo Kind = iota
	KindGoalMet
	KindDepositRequired
)

func (k Kind) String() string {
	switch k {
	case KindGoalMet:
		return "goal_met"
	case KindDepositRequired:
		return "deposit_required"
	default:
		return "insufficient_info"
	}
}

// MarshalText encodes the kind for JSON and CSV output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Reason explains a KindInsufficientInfo result.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonNoTarget means the target value is zero, so there is no goal.
	ReasonNoTarget
	// ReasonAlreadySufficient means no positive deposit is needed.
	ReasonAlreadySufficient
)

func (r Reason) String() string {
	switch r {
	case ReasonNoTarget:
		return "no_target"
	case ReasonAlreadySufficient:
		return "already_sufficient"
	default:
		return ""
	}
}

// MarshalText encodes the reason for JSON output.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Result is the outcome of Project. Kind selects which fields are meaningful:
// KindGoalMet carries ProjectedBalance; KindDepositRequired adds the deposit
// figures; KindInsufficientInfo carries Reason.
type Result struct {
	Kind             Kind    `json:"kind"`
	ProjectedBalance float64 `json:"projectedBalance"`
	AmountPerPeriod  float64 `json:"amountPerPeriod,omitempty"`
	PeriodCount      int     `json:"periodCount"`
	DaysRemaining    int     `json:"daysRemaining"`
	MonthsRemaining  int     `json:"monthsRemaining"`
	PeriodLabel      string  `json:"periodLabel,omitempty"`
	TotalDeposits    float64 `json:"totalDeposits,omitempty"`
	Reason           Reason  `json:"reason,omitempty"`
}

// Project runs the savings projection for input as seen on the given day.
// It is a pure function of its arguments.
func Project(input Input, today time.Time) Result {
	schedule := input.DepositPeriod.Schedule()

	periodCount := CountPeriods(input.StartDate, input.TargetDate, schedule.StepDays)
	daysRemaining := max(1, datetime.DaysBetween(input.StartDate, input.TargetDate))
	monthsRemaining := MonthsRemaining(today, input.TargetDate)
	projected := ProjectBalance(input.CurrentBalance, input.InterestRate, monthsRemaining)

	result := Result{
		ProjectedBalance: projected,
		PeriodCount:      periodCount,
		DaysRemaining:    daysRemaining,
		MonthsRemaining:  monthsRemaining,
	}

	if input.TargetValue > 0 && projected >= input.TargetValue && input.InterestRate > 0 &&
		input.StartDate.Before(input.TargetDate) {
		result.Kind = KindGoalMet
		return result
	}

	// The annuity uses the schedule's nominal rate rather than the monthly
	// compounding rate above; both conventions are kept as-is.
	rate := mathutil.PeriodicRate(input.InterestRate, schedule.PeriodsPerYear)
	amount := RequiredDeposit(input.TargetValue-projected, rate, periodCount)

	if amount > 0 && input.TargetValue > projected {
		result.Kind = KindDepositRequired
		result.AmountPerPeriod = amount
		result.PeriodLabel = input.DepositPeriod.Label()
		result.TotalDeposits = amount * float64(periodCount)
		return result
	}

	result.Kind = KindInsufficientInfo
	if input.TargetValue <= 0 {
		result.Reason = ReasonNoTarget
	} else {
		result.Reason = ReasonAlreadySufficient
	}
	return result
}

// CountPeriods counts deposit dates from start, stepping stepDays at a time,
// that fall strictly before target. The count is never below one.
func CountPeriods(start, target time.Time, stepDays int) int {
	return max(1, datetime.CountSteps(start, target, stepDays))
}

// MonthsRemaining is the calendar month delta from today to target, ignoring
// day of month and clamped at zero.
func MonthsRemaining(today, target time.Time) int {
	return max(0, datetime.MonthsBetween(today, target))
}

// ProjectBalance compounds balance monthly at the given annual percentage rate.
func ProjectBalance(balance, annualRate float64, months int) float64 {
	monthlyRate := mathutil.PeriodicRate(annualRate, constants.MonthsPerYear)
	return balance * math.Pow(1+monthlyRate, float64(months))
}

// RequiredDeposit solves the future value of an ordinary annuity for the
// periodic payment that accumulates futureValue over periods at rate per
// period. A zero rate, or one too small to change (1+rate)^periods, falls back
// to straight-line division; no periods yields zero.
func RequiredDeposit(futureValue, rate float64, periods int) float64 {
	if periods <= 0 {
		return 0
	}
	n := float64(periods)
	if rate > 0 {
		if growth := math.Pow(1+rate, n) - 1; growth > 0 {
			return futureValue * rate / growth
		}
	}
	return futureValue / n
}
