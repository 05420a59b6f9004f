package pocket

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pocket-tracker/common"
	"pocket-tracker/database/models"
	"pocket-tracker/types"
)

type memStore struct {
	projects map[string]*models.Project
	days     map[uint]map[int64]float64
	dayCount map[uint]map[int64]int
	nextID   uint

	failUpsertAt int64
}

func newMemStore() *memStore {
	return &memStore{
		projects: make(map[string]*models.Project),
		days:     make(map[uint]map[int64]float64),
		dayCount: make(map[uint]map[int64]int),
	}
}

func (s *memStore) GetOrCreateProject(name string) (*models.Project, error) {
	if project, ok := s.projects[name]; ok {
		return project, nil
	}
	s.nextID++
	project := &models.Project{Name: name, Checkpoint: strconv.FormatInt(common.EpochStart, 10)}
	project.ID = s.nextID
	s.projects[name] = project
	return project, nil
}

func (s *memStore) ResetIfFlagged(project *models.Project) (*models.Project, error) {
	if project.PendingReset {
		project.Checkpoint = strconv.FormatInt(common.EpochStart, 10)
		project.PendingReset = false
	}
	return project, nil
}

func (s *memStore) AdvanceCheckpoint(name string, date int64) error {
	s.projects[name].Checkpoint = strconv.FormatInt(date, 10)
	return nil
}

func (s *memStore) UpsertDay(projectID uint, date int64, revenue float64) error {
	if s.failUpsertAt != 0 && date == s.failUpsertAt {
		return errors.New("store unavailable")
	}
	if s.days[projectID] == nil {
		s.days[projectID] = make(map[int64]float64)
		s.dayCount[projectID] = make(map[int64]int)
	}
	if _, ok := s.days[projectID][date]; !ok {
		s.dayCount[projectID][date]++
	}
	s.days[projectID][date] = revenue
	return nil
}

type fakeOracle struct {
	prices map[string]float64
	err    error
}

func (o *fakeOracle) GetAveragePrices(from, to time.Time) (map[string]float64, error) {
	return o.prices, o.err
}

type fakeFeed struct {
	burns map[string]float64
	err   error
	calls []string
}

func (f *fakeFeed) GetDailyBurn(day time.Time) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.calls = append(f.calls, common.FormatDay(day))
	return f.burns[common.FormatDay(day)], nil
}

func newTestTracker(store Store, oracle Oracle, feed Feed, now time.Time) *Tracker {
	tracker := NewTracker(store, oracle, feed)
	tracker.now = func() time.Time { return now }
	return tracker
}

func day(offset int) time.Time {
	return time.Unix(common.EpochStart, 0).UTC().AddDate(0, 0, offset)
}

func TestRunEndToEnd(t *testing.T) {
	store := newMemStore()
	oracle := &fakeOracle{prices: map[string]float64{
		"2021-07-01": 1.0, "2021-07-02": 1.0, "2021-07-03": 1.0,
	}}
	feed := &fakeFeed{burns: map[string]float64{
		"2021-07-01": 100, "2021-07-02": 0, "2021-07-03": 50,
	}}

	tracker := newTestTracker(store, oracle, feed, day(2).Add(6*time.Hour))
	require.NoError(t, tracker.Run("pocket"))

	project := store.projects["pocket"]
	assert.Equal(t, strconv.FormatInt(day(2).Unix(), 10), project.Checkpoint)

	assert.Equal(t, map[int64]float64{
		day(0).Unix(): 100.0,
		day(1).Unix(): 0.0,
		day(2).Unix(): 50.0,
	}, store.days[project.ID])
	assert.Equal(t, []string{"2021-07-01", "2021-07-02", "2021-07-03"}, feed.calls)
}

func TestRunIdempotent(t *testing.T) {
	store := newMemStore()
	oracle := &fakeOracle{prices: map[string]float64{
		"2021-07-01": 2.0, "2021-07-02": 2.0,
	}}
	feed := &fakeFeed{burns: map[string]float64{
		"2021-07-01": 10, "2021-07-02": 20,
	}}

	tracker := newTestTracker(store, oracle, feed, day(1))
	require.NoError(t, tracker.Run("pocket"))
	require.NoError(t, tracker.Run("pocket"))

	project := store.projects["pocket"]
	for date, count := range store.dayCount[project.ID] {
		assert.Equal(t, 1, count, "duplicate row for date %d", date)
	}
	assert.Equal(t, 40.0, store.days[project.ID][day(1).Unix()])
	// Second run resumes at the checkpoint day, not the epoch.
	assert.Equal(t, []string{"2021-07-01", "2021-07-02", "2021-07-02"}, feed.calls)
}

func TestRunReset(t *testing.T) {
	store := newMemStore()
	project, err := store.GetOrCreateProject("pocket")
	require.NoError(t, err)
	project.Checkpoint = strconv.FormatInt(day(300).Unix(), 10)
	project.PendingReset = true

	oracle := &fakeOracle{prices: map[string]float64{
		"2021-07-01": 1.0, "2021-07-02": 1.0,
	}}
	feed := &fakeFeed{burns: map[string]float64{"2021-07-01": 5, "2021-07-02": 5}}

	tracker := newTestTracker(store, oracle, feed, day(1))
	require.NoError(t, tracker.Run("pocket"))

	assert.False(t, project.PendingReset)
	// Range restarted from the epoch despite the far-later checkpoint.
	assert.Equal(t, []string{"2021-07-01", "2021-07-02"}, feed.calls)
	assert.Equal(t, strconv.FormatInt(day(1).Unix(), 10), project.Checkpoint)
}

func TestRunHaltsMidRange(t *testing.T) {
	store := newMemStore()
	store.failUpsertAt = day(2).Unix()
	oracle := &fakeOracle{prices: map[string]float64{
		"2021-07-01": 1.0, "2021-07-02": 1.0, "2021-07-03": 1.0, "2021-07-04": 1.0,
	}}
	feed := &fakeFeed{burns: map[string]float64{
		"2021-07-01": 1, "2021-07-02": 2, "2021-07-03": 3, "2021-07-04": 4,
	}}

	tracker := newTestTracker(store, oracle, feed, day(3))
	require.Error(t, tracker.Run("pocket"))

	// Days before the failure stay committed, checkpoint sits on the
	// last committed day, and the next run finishes the range.
	project := store.projects["pocket"]
	assert.Equal(t, strconv.FormatInt(day(1).Unix(), 10), project.Checkpoint)
	assert.Equal(t, 2, len(store.days[project.ID]))

	store.failUpsertAt = 0
	require.NoError(t, tracker.Run("pocket"))
	assert.Equal(t, strconv.FormatInt(day(3).Unix(), 10), project.Checkpoint)
	assert.Equal(t, 4, len(store.days[project.ID]))
}

func TestRunMissingPrice(t *testing.T) {
	store := newMemStore()
	oracle := &fakeOracle{prices: map[string]float64{"2021-07-01": 1.0}}
	feed := &fakeFeed{burns: map[string]float64{"2021-07-01": 1, "2021-07-02": 2}}

	tracker := newTestTracker(store, oracle, feed, day(1))
	err := tracker.Run("pocket")
	require.ErrorIs(t, err, types.ErrMissingPriceForDate)

	project := store.projects["pocket"]
	assert.Equal(t, strconv.FormatInt(day(0).Unix(), 10), project.Checkpoint)
}

func TestRunOracleFailureBeforeAnyDay(t *testing.T) {
	store := newMemStore()
	oracle := &fakeOracle{err: types.ErrDataUnavailable}
	feed := &fakeFeed{}

	tracker := newTestTracker(store, oracle, feed, day(1))
	require.ErrorIs(t, tracker.Run("pocket"), types.ErrDataUnavailable)

	project := store.projects["pocket"]
	assert.Empty(t, store.days[project.ID])
	assert.Equal(t, strconv.FormatInt(common.EpochStart, 10), project.Checkpoint)
}

func TestRunBadCheckpoint(t *testing.T) {
	store := newMemStore()
	project, err := store.GetOrCreateProject("pocket")
	require.NoError(t, err)
	project.Checkpoint = "not-a-timestamp"

	tracker := newTestTracker(store, &fakeOracle{}, &fakeFeed{}, day(1))
	require.ErrorIs(t, tracker.Run("pocket"), types.ErrCheckpointParse)
}

func TestRevenue(t *testing.T) {
	assert.Equal(t, 0.0, Revenue(0, 123.45))
	assert.Equal(t, 150.0, Revenue(100, 1.5))
	assert.Equal(t, 0.0, Revenue(0, 0))
}
