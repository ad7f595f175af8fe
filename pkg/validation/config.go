// Package validation provides input and configuration validation utilities.
package validation

import (
	"fmt"
	"time"

	"github.com/iwvelando/save-smarter/pkg/constants"
)

// ConfigValidator inspects a set of goals for suspicious but legal settings.
type ConfigValidator struct {
	ReferenceDate time.Time
	Goals         []GoalConfig
}

// GoalConfig is the subset of a goal needed for warnings. Nil amounts were not
// supplied.
type GoalConfig struct {
	Name           string
	Active         bool
	CurrentBalance *float64
	TargetValue    *float64
	TargetDate     time.Time
}

// ValidateTargetHorizon warns when a target date lies beyond the supported
// planning horizon.
func ValidateTargetHorizon(goalName string, referenceDate, targetDate time.Time) string {
	horizon := referenceDate.AddDate(constants.MaxHorizonYears, 0, 0)
	if targetDate.After(horizon) {
		return fmt.Sprintf("Goal '%s' target date %s is more than %d years out",
			goalName, targetDate.Format(constants.DateLayout), constants.MaxHorizonYears)
	}
	return ""
}

// ValidateAll validates the goals and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	if len(cv.Goals) == 0 {
		return append(warnings, "No goals are configured")
	}

	seen := make(map[string]bool)
	active := 0
	for _, goal := range cv.Goals {
		if seen[goal.Name] {
			warnings = append(warnings, fmt.Sprintf("Goal name '%s' is used more than once", goal.Name))
		}
		seen[goal.Name] = true

		if !goal.Active {
			continue
		}
		active++

		if !goal.TargetDate.IsZero() && !cv.ReferenceDate.IsZero() {
			if warning := ValidateTargetHorizon(goal.Name, cv.ReferenceDate, goal.TargetDate); warning != "" {
				warnings = append(warnings, warning)
			}
		}

		if goal.CurrentBalance != nil && goal.TargetValue != nil && *goal.TargetValue > 0 &&
			*goal.CurrentBalance >= *goal.TargetValue {
			warnings = append(warnings, fmt.Sprintf("Goal '%s' is already covered by the current balance", goal.Name))
		}
	}

	if active == 0 {
		warnings = append(warnings, "No goals are active")
	}

	return warnings
}
