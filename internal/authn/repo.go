package authn

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sparetrackhq/sparetrack-backend/pkg/db/models"
)

// Repository queries the legacy auth database (Login and EMP tables).
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an auth repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindLogin loads the account row for a username, or nil when absent.
func (r *Repository) FindLogin(ctx context.Context, username string) (*models.Login, error) {
	var row models.Login
	err := r.db.WithContext(ctx).First(&row, "Username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindActiveEmployee resolves an email to an active employee row. EMP is
// read-only from this system's perspective.
func (r *Repository) FindActiveEmployee(ctx context.Context, email string) (*models.Employee, error) {
	var row models.Employee
	err := r.db.WithContext(ctx).First(&row, "EmpEmail = ? AND ActiveFlag = ?", email, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpsertOTP writes a fresh OTP and expiry onto the account row, creating the
// row when it does not exist. Each call overwrites the previous code.
func (r *Repository) UpsertOTP(ctx context.Context, username, otp string, expiry time.Time, empID string) error {
	existing, err := r.FindLogin(ctx, username)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.WithContext(ctx).Create(&models.Login{
			Username:  username,
			OTP:       &otp,
			OTPExpiry: &expiry,
			LEmpID:    empID,
		}).Error
	}
	return r.db.WithContext(ctx).
		Model(&models.Login{}).
		Where("Username = ?", username).
		Updates(map[string]any{"OTP": otp, "OTP_Expiry": expiry}).Error
}

// FindLoginByOTP returns the account row matching username and code, or nil.
func (r *Repository) FindLoginByOTP(ctx context.Context, username, otp string) (*models.Login, error) {
	var row models.Login
	err := r.db.WithContext(ctx).First(&row, "Username = ? AND OTP = ?", username, otp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// SetPassword overwrites LPassword for the username.
func (r *Repository) SetPassword(ctx context.Context, username, password string) error {
	return r.db.WithContext(ctx).
		Model(&models.Login{}).
		Where("Username = ?", username).
		Update("LPassword", password).Error
}

// FindByCredentials returns the account row matching username and password
// exactly, or nil. Passwords are stored and compared as plain text: a known
// structural weakness of the legacy schema, preserved as-is.
func (r *Repository) FindByCredentials(ctx context.Context, username, password string) (*models.Login, error) {
	var row models.Login
	err := r.db.WithContext(ctx).First(&row, "Username = ? AND LPassword = ?", username, password).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
