package database

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"pocket-tracker/common"
	"pocket-tracker/config"
	"pocket-tracker/database/models"
)

type RevenueDB struct {
	db *gorm.DB

	logger *zap.SugaredLogger
}

func New(cfg *config.DBConfig) *RevenueDB {
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local", cfg.User, cfg.Password, cfg.Host, cfg.DB)
	db, dbErr := gorm.Open(mysql.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	if dbErr != nil {
		panic(dbErr)
	}

	dbErr = db.AutoMigrate(&models.Project{})
	if dbErr != nil {
		panic(dbErr)
	}

	dbErr = db.AutoMigrate(&models.Day{})
	if dbErr != nil {
		panic(dbErr)
	}

	return &RevenueDB{
		db:     db,
		logger: zap.S().Named("[db]"),
	}
}

// GetOrCreateProject loads the project by name, creating it with an
// epoch-start checkpoint on first run.
func (db *RevenueDB) GetOrCreateProject(name string) (*models.Project, error) {
	var project models.Project
	result := db.db.Where(models.Project{Name: name}).
		Attrs(models.Project{Checkpoint: strconv.FormatInt(common.EpochStart, 10)}).
		FirstOrCreate(&project)
	if result.Error != nil {
		return nil, fmt.Errorf("load project [%s]: %w", name, result.Error)
	}
	if result.RowsAffected > 0 {
		db.logger.Infof("Created project [%s] with epoch start checkpoint", name)
	}
	return &project, nil
}

// ResetIfFlagged rewinds a pending-reset project to the epoch start and
// clears the flag. Projects without the flag pass through untouched.
func (db *RevenueDB) ResetIfFlagged(project *models.Project) (*models.Project, error) {
	if !project.PendingReset {
		return project, nil
	}

	project.Checkpoint = strconv.FormatInt(common.EpochStart, 10)
	project.PendingReset = false
	if err := db.db.Save(project).Error; err != nil {
		return nil, fmt.Errorf("reset project [%s]: %w", project.Name, err)
	}
	db.logger.Infof("Reset project [%s] checkpoint to epoch start", project.Name)
	return project, nil
}

// AdvanceCheckpoint records `date` (Unix seconds, day start) as the last
// fully imported day.
func (db *RevenueDB) AdvanceCheckpoint(name string, date int64) error {
	err := db.db.Model(&models.Project{}).
		Where("name = ?", name).
		Update("checkpoint", strconv.FormatInt(date, 10)).Error
	if err != nil {
		return fmt.Errorf("advance checkpoint of [%s]: %w", name, err)
	}
	return nil
}

// UpsertDay writes a day's revenue, overwriting any previous value for
// the same (project, date) rather than inserting a second row.
func (db *RevenueDB) UpsertDay(projectID uint, date int64, revenue float64) error {
	var day models.Day
	err := db.db.Where(models.Day{ProjectID: projectID, Date: date}).First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		day = models.Day{ProjectID: projectID, Date: date, Revenue: revenue}
		if err := db.db.Create(&day).Error; err != nil {
			return fmt.Errorf("create day [%d]: %w", date, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load day [%d]: %w", date, err)
	}
	if err := db.db.Model(&day).Update("revenue", revenue).Error; err != nil {
		return fmt.Errorf("update day [%d]: %w", date, err)
	}
	return nil
}

func (db *RevenueDB) GetProject(name string) (*models.Project, error) {
	var project models.Project
	if err := db.db.Where(models.Project{Name: name}).First(&project).Error; err != nil {
		return nil, fmt.Errorf("load project [%s]: %w", name, err)
	}
	return &project, nil
}

// GetDays returns the ledger rows for [from, to] (Unix seconds) in
// ascending date order.
func (db *RevenueDB) GetDays(projectID uint, from, to int64) ([]models.Day, error) {
	days := make([]models.Day, 0)
	err := db.db.Where("project_id = ? AND date >= ? AND date <= ?", projectID, from, to).
		Order("date asc").
		Find(&days).Error
	if err != nil {
		return nil, fmt.Errorf("load days of project [%d]: %w", projectID, err)
	}
	return days, nil
}

// GetLatestDays returns the most recent n ledger rows, ascending.
func (db *RevenueDB) GetLatestDays(projectID uint, n int) ([]models.Day, error) {
	days := make([]models.Day, 0)
	err := db.db.Where("project_id = ?", projectID).
		Order("date desc").
		Limit(n).
		Find(&days).Error
	if err != nil {
		return nil, fmt.Errorf("load latest days of project [%d]: %w", projectID, err)
	}
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
	return days, nil
}
