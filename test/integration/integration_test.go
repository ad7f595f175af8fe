package integration

import (
	"context"
	"encoding/csv"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/save-smarter/internal/config"
	"github.com/iwvelando/save-smarter/internal/projection"
	"github.com/iwvelando/save-smarter/pkg/output"
	"github.com/iwvelando/save-smarter/pkg/savings"
	"github.com/iwvelando/save-smarter/pkg/testutil"
	"go.uber.org/zap"
)

const exampleConfig = "../../config.yaml.example"

// referenceTime is the "today" every baseline below was computed against.
var referenceTime = time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

func loadExample(t *testing.T) *config.Configuration {
	t.Helper()
	conf, err := config.LoadConfiguration(exampleConfig)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	return conf
}

func projectExample(t *testing.T) []projection.Projection {
	t.Helper()
	results, err := projection.GetProjectionsWithFixedTime(context.Background(), zap.NewNop(), *loadExample(t), referenceTime)
	if err != nil {
		t.Fatalf("GetProjectionsWithFixedTime() error = %v", err)
	}
	return results
}

// TestExampleConfigBaseline checks the example configuration against values
// computed independently for the reference date.
func TestExampleConfigBaseline(t *testing.T) {
	results := projectExample(t)

	expectedGoals := []string{"deposit on a house", "emergency fund", "holiday", "daily savings jar"}
	if len(results) != len(expectedGoals) {
		t.Fatalf("Expected %d goals, got %d", len(expectedGoals), len(results))
	}
	for i, name := range expectedGoals {
		if results[i].Name != name {
			t.Errorf("Expected goal %s at position %d, got %s", name, i, results[i].Name)
		}
	}

	baseline := []struct {
		goal            string
		kind            savings.Kind
		projected       float64
		amountPerPeriod float64
		periodCount     int
		daysRemaining   int
		monthsRemaining int
	}{
		{"deposit on a house", savings.KindDepositRequired, 5334.93, 1094.63, 13, 365, 13},
		{"emergency fund", savings.KindGoalMet, 10511.62, 0, 13, 364, 12},
		{"holiday", savings.KindDepositRequired, 0, 350, 2, 14, 1},
		{"daily savings jar", savings.KindDepositRequired, 5334.93, 38.99, 365, 365, 13},
	}

	for _, expected := range baseline {
		t.Run(expected.goal, func(t *testing.T) {
			result := testutil.FindProjection(results, expected.goal)
			if result == nil {
				t.Fatalf("goal %s not projected", expected.goal)
			}
			got := result.Result
			if got.Kind != expected.kind {
				t.Errorf("Kind = %s, expected %s", got.Kind, expected.kind)
			}
			if math.Abs(got.ProjectedBalance-expected.projected) > 0.01 {
				t.Errorf("ProjectedBalance = %.2f, expected %.2f", got.ProjectedBalance, expected.projected)
			}
			if math.Abs(got.AmountPerPeriod-expected.amountPerPeriod) > 0.01 {
				t.Errorf("AmountPerPeriod = %.2f, expected %.2f", got.AmountPerPeriod, expected.amountPerPeriod)
			}
			if got.PeriodCount != expected.periodCount {
				t.Errorf("PeriodCount = %d, expected %d", got.PeriodCount, expected.periodCount)
			}
			if got.DaysRemaining != expected.daysRemaining {
				t.Errorf("DaysRemaining = %d, expected %d", got.DaysRemaining, expected.daysRemaining)
			}
			if got.MonthsRemaining != expected.monthsRemaining {
				t.Errorf("MonthsRemaining = %d, expected %d", got.MonthsRemaining, expected.monthsRemaining)
			}
		})
	}
}

// TestCSVOutputFormat validates the CSV rendering of the example projections.
func TestCSVOutputFormat(t *testing.T) {
	results := projectExample(t)

	csvData, err := output.CsvString(results)
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(csvData)).ReadAll()
	if err != nil {
		t.Fatalf("CSV output does not parse: %v", err)
	}
	if len(records) != len(results)+1 {
		t.Fatalf("Expected %d CSV rows, got %d", len(results)+1, len(records))
	}

	header := records[0]
	for _, row := range records[1:] {
		if len(row) != len(header) {
			t.Errorf("Row %v has %d columns, header has %d", row, len(row), len(header))
		}
	}
	if records[3][0] != "holiday" || records[3][5] != "350.00" || records[3][6] != "week" {
		t.Errorf("Unexpected holiday row %v", records[3])
	}
}

// TestPrettyOutputFormat validates the human-readable rendering.
func TestPrettyOutputFormat(t *testing.T) {
	var buf strings.Builder
	output.WritePretty(&buf, projectExample(t))
	text := buf.String()

	expected := []string{
		"--- Goal deposit on a house ---",
		"To reach your target of R20,000.00 by 2027-11-01, you will need to deposit R1,094.63 every month.",
		"This will require 13 deposits over a period of 365 days.",
		"By 2027-10-17, your estimated balance will be R10,511.62.",
		"deposit R350.00 every week",
		"deposit R38.99 every day",
	}
	for _, want := range expected {
		if !strings.Contains(text, want) {
			t.Errorf("Pretty output missing %q", want)
		}
	}
	if strings.Contains(text, "new laptop") {
		t.Error("Inactive goal should not appear in output")
	}
}

// TestConfigurationValidation checks the warnings raised for the example.
func TestConfigurationValidation(t *testing.T) {
	conf := loadExample(t)
	today, err := conf.ReferenceDate(referenceTime)
	if err != nil {
		t.Fatalf("ReferenceDate() error = %v", err)
	}

	warnings := conf.ValidateConfiguration(today)
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "emergency fund") {
		t.Errorf("Expected emergency fund warning, got %q", warnings[0])
	}
}

// TestReferenceDateMovesWindow shows that the same configuration fails once
// today passes the first deposit dates.
func TestReferenceDateMovesWindow(t *testing.T) {
	later := referenceTime.AddDate(0, 1, 0)
	_, err := projection.GetProjectionsWithFixedTime(context.Background(), zap.NewNop(), *loadExample(t), later)
	if err == nil {
		t.Fatal("Expected date window error a month later")
	}
}
