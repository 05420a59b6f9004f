package models

// Day is one revenue observation: estimated USD revenue for a project on
// a single UTC calendar day. Date is the day start in Unix seconds; at
// most one row exists per (project, date).
type Day struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	ProjectID uint    `gorm:"uniqueIndex:idx_project_date" json:"-"`
	Date      int64   `gorm:"uniqueIndex:idx_project_date" json:"date"`
	Revenue   float64 `json:"revenue"`
}
