package output

import (
	"fmt"

	"github.com/iwvelando/save-smarter/pkg/datetime"
	"github.com/iwvelando/save-smarter/pkg/format"
	"github.com/iwvelando/save-smarter/pkg/savings"
)

// Tone is how prominently a message should be presented.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
)

// Notice is the user-facing message for one projection.
type Notice struct {
	Tone Tone   `json:"tone"`
	Text string `json:"text"`
}

// Message turns a projection result into the message shown to the user.
func Message(input savings.Input, result savings.Result) Notice {
	switch result.Kind {
	case savings.KindGoalMet:
		return Notice{
			Tone: ToneSuccess,
			Text: fmt.Sprintf("Based on your current balance and interest rate, you will reach your target "+
				"without any additional deposits. By %s, your estimated balance will be %s.",
				datetime.Format(input.TargetDate), format.Currency(result.ProjectedBalance)),
		}
	case savings.KindDepositRequired:
		return Notice{
			Tone: ToneInfo,
			Text: fmt.Sprintf("To reach your target of %s by %s, you will need to deposit %s every %s. "+
				"This will require %d deposits over a period of %d days.",
				format.Currency(input.TargetValue), datetime.Format(input.TargetDate),
				format.Currency(result.AmountPerPeriod), result.PeriodLabel,
				result.PeriodCount, result.DaysRemaining),
		}
	}

	if result.Reason == savings.ReasonNoTarget {
		return Notice{
			Tone: ToneWarning,
			Text: "Enter a target savings value above zero to calculate a deposit plan.",
		}
	}
	return Notice{
		Tone: ToneWarning,
		Text: "Your current balance and interest rate are sufficient to reach your target without additional deposits.",
	}
}
