// Package projection runs the savings engine over every active goal of a
// configuration.
package projection

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/iwvelando/save-smarter/internal/config"
	"github.com/iwvelando/save-smarter/pkg/datetime"
	"github.com/iwvelando/save-smarter/pkg/savings"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Projection holds the outcome for one goal.
type Projection struct {
	Name   string
	Input  savings.Input
	Result savings.Result
}

// GetProjections projects every active goal as of the configured reference
// date, or today when none is set.
func GetProjections(ctx context.Context, logger *zap.Logger, conf config.Configuration) ([]Projection, error) {
	return GetProjectionsWithFixedTime(ctx, logger, conf, time.Now())
}

// GetProjectionsWithFixedTime projects every active goal using fixedTime as
// the current time when the configuration does not pin a reference date.
// Results keep the order of the goals in the configuration.
func GetProjectionsWithFixedTime(ctx context.Context, logger *zap.Logger, conf config.Configuration, fixedTime time.Time) ([]Projection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	today, err := conf.ReferenceDate(fixedTime)
	if err != nil {
		return nil, err
	}

	var goals []config.Goal
	for _, goal := range conf.Goals {
		if !goal.Active {
			logger.Debug(fmt.Sprintf("skipping goal %s because it is inactive", goal.Name),
				zap.String("op", "projection.GetProjections"),
			)
			continue
		}
		goals = append(goals, goal)
	}

	results := make([]Projection, len(goals))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, goal := range goals {
		i, goal := i, goal
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			input, err := conf.GoalInput(goal, today)
			if err != nil {
				return err
			}

			result := savings.Project(input, today)
			logger.Debug("goal projected",
				zap.String("op", "projection.GetProjections"),
				zap.String("goal", goal.Name),
				zap.Stringer("kind", result.Kind),
				zap.String("today", datetime.Format(today)),
				zap.Float64("projectedBalance", result.ProjectedBalance),
				zap.Float64("amountPerPeriod", result.AmountPerPeriod),
				zap.Int("periodCount", result.PeriodCount),
			)

			results[i] = Projection{Name: goal.Name, Input: input, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
