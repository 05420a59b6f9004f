package pocket

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"pocket-tracker/common"
	"pocket-tracker/database/models"
	"pocket-tracker/types"
)

// Store is the slice of the persistent layer the tracker consumes.
type Store interface {
	GetOrCreateProject(name string) (*models.Project, error)
	ResetIfFlagged(project *models.Project) (*models.Project, error)
	AdvanceCheckpoint(name string, date int64) error
	UpsertDay(projectID uint, date int64, revenue float64) error
}

// Oracle provides per-day average USD prices for a date range.
type Oracle interface {
	GetAveragePrices(from, to time.Time) (map[string]float64, error)
}

// Feed provides the total amount burned on a single day.
type Feed interface {
	GetDailyBurn(day time.Time) (float64, error)
}

// Revenue estimates a day's protocol revenue in USD from the amount
// burned and that day's average price.
func Revenue(burned, price float64) float64 {
	return burned * price
}

type Tracker struct {
	store  Store
	oracle Oracle
	feed   Feed

	now    func() time.Time
	logger *zap.SugaredLogger
}

func NewTracker(store Store, oracle Oracle, feed Feed) *Tracker {
	return &Tracker{
		store:  store,
		oracle: oracle,
		feed:   feed,

		now:    time.Now,
		logger: zap.S().Named("[tracker]"),
	}
}

// Run imports revenue for every day from the project's checkpoint up to
// now. The checkpoint day itself is recomputed so burns that landed after
// the previous run's cutoff are picked up; day writes are upserts, so
// recomputation overwrites instead of duplicating. The checkpoint
// advances after each committed day, and any failure halts the run with
// already-committed days intact.
//
// Run assumes it is the only instance operating on the project; the
// store has no concurrency control of its own.
func (t *Tracker) Run(name string) error {
	project, err := t.store.GetOrCreateProject(name)
	if err != nil {
		return err
	}
	project, err = t.store.ResetIfFlagged(project)
	if err != nil {
		return err
	}

	checkpoint, err := strconv.ParseInt(project.Checkpoint, 10, 64)
	if err != nil {
		return fmt.Errorf("project [%s] checkpoint %q: %w", name, project.Checkpoint, types.ErrCheckpointParse)
	}

	to := t.now().UTC()
	days := common.DaysBetween(time.Unix(checkpoint, 0), to)
	if len(days) == 0 {
		t.logger.Infof("Project [%s] is up to date", name)
		return nil
	}
	t.logger.Infof("Importing [%d] days for project [%s], starting at [%s]", len(days), name, common.FormatDay(days[0]))

	prices, err := t.oracle.GetAveragePrices(days[0], to)
	if err != nil {
		return err
	}

	for _, day := range days {
		key := common.FormatDay(day)

		burned, err := t.feed.GetDailyBurn(day)
		if err != nil {
			return err
		}

		price, ok := prices[key]
		if !ok {
			return fmt.Errorf("%s: %w", key, types.ErrMissingPriceForDate)
		}

		revenue := Revenue(burned, price)
		if err := t.store.UpsertDay(project.ID, day.Unix(), revenue); err != nil {
			return err
		}
		if err := t.store.AdvanceCheckpoint(name, day.Unix()); err != nil {
			return err
		}
		t.logger.Infof("Imported day [%s], burned [%.2f] at [%f] USD, revenue [%.2f] USD", key, burned, price, revenue)
	}

	t.logger.Infof("Import complete for project [%s] through [%s]", name, common.FormatDay(days[len(days)-1]))
	return nil
}
