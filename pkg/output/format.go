// Package output provides utilities for formatting and displaying goal projections.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/iwvelando/save-smarter/internal/projection"
	"github.com/iwvelando/save-smarter/pkg/datetime"
	"github.com/iwvelando/save-smarter/pkg/format"
)

var (
	colorAccent  = lipgloss.Color("#00E0FF")
	colorGreen   = lipgloss.Color("#879A39")
	colorBlue    = lipgloss.Color("#4385BE")
	colorOrange  = lipgloss.Color("#DA702C")
	colorMuted   = lipgloss.Color("#6F6E69")
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
	infoStyle    = lipgloss.NewStyle().Foreground(colorBlue)
	warnStyle    = lipgloss.NewStyle().Foreground(colorOrange)
)

// WritePretty writes a human-readable rather than machine-readable summary to w.
func WritePretty(w io.Writer, results []projection.Projection) {
	for i, result := range results {
		input := result.Input
		notice := Message(input, result.Result)

		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("--- Goal %s ---", result.Name)))
		fmt.Fprintf(w, "%s %s by %s\n", labelStyle.Render("Target   |"),
			format.Currency(input.TargetValue), datetime.Format(input.TargetDate))
		fmt.Fprintf(w, "%s %s at %.2f%% a year\n", labelStyle.Render("Balance  |"),
			format.Currency(input.CurrentBalance), input.InterestRate)
		fmt.Fprintf(w, "%s %s from %s\n", labelStyle.Render("Deposits |"),
			input.DepositPeriod, datetime.Format(input.StartDate))
		fmt.Fprintln(w, toneStyle(notice.Tone).Render(notice.Text))
		if i < len(results)-1 {
			fmt.Fprintln(w)
		}
	}
}

func toneStyle(tone Tone) lipgloss.Style {
	switch tone {
	case ToneSuccess:
		return successStyle
	case ToneInfo:
		return infoStyle
	default:
		return warnStyle
	}
}

// CsvString renders the projections as CSV with one row per goal.
func CsvString(results []projection.Projection) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	err := writer.Write([]string{
		"goal", "result", "tone", "target date", "projected balance", "amount per period",
		"period", "period count", "days remaining", "message",
	})
	if err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		notice := Message(result.Input, result.Result)
		err := writer.Write([]string{
			result.Name,
			result.Result.Kind.String(),
			string(notice.Tone),
			datetime.Format(result.Input.TargetDate),
			strconv.FormatFloat(result.Result.ProjectedBalance, 'f', 2, 64),
			strconv.FormatFloat(result.Result.AmountPerPeriod, 'f', 2, 64),
			result.Result.PeriodLabel,
			strconv.Itoa(result.Result.PeriodCount),
			strconv.Itoa(result.Result.DaysRemaining),
			notice.Text,
		})
		if err != nil {
			return "", fmt.Errorf("failed to write CSV row for goal %s: %w", result.Name, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.String(), nil
}
