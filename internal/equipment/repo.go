package equipment

import (
	"context"

	"gorm.io/gorm"

	"github.com/sparetrackhq/sparetrack-backend/pkg/db/models"
)

// Repository exposes equipment persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an equipment repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every equipment row, optionally restricted to one Line value,
// ordered by SlNo ascending. No pagination: the legacy contract returns the
// full set.
func (r *Repository) List(ctx context.Context, line string) ([]models.Equipment, error) {
	query := r.db.WithContext(ctx).Order("SlNo ASC")
	if line != "" {
		query = query.Where("Line = ?", line)
	}
	var rows []models.Equipment
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads one row by SlNo.
func (r *Repository) FindByID(ctx context.Context, id int) (*models.Equipment, error) {
	var row models.Equipment
	if err := r.db.WithContext(ctx).First(&row, "SlNo = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdateColumns applies a parameterized UPDATE of exactly the supplied
// columns. Callers are responsible for allow-listing the keys.
func (r *Repository) UpdateColumns(ctx context.Context, id int, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Equipment{}).
		Where("SlNo = ?", id).
		Updates(fields).Error
}

// EnsureChangeLogTable creates the audit table when it does not exist yet.
// Idempotent; must run before the first log insert.
func (r *Repository) EnsureChangeLogTable(ctx context.Context) error {
	migrator := r.db.WithContext(ctx).Migrator()
	if migrator.HasTable(&models.ChangeLog{}) {
		return nil
	}
	return migrator.CreateTable(&models.ChangeLog{})
}

// AppendChangeLog inserts one audit row. Audit rows are never updated.
func (r *Repository) AppendChangeLog(ctx context.Context, entry *models.ChangeLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
