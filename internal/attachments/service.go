package attachments

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/sparetrackhq/sparetrack-backend/pkg/db/models"
	"github.com/sparetrackhq/sparetrack-backend/pkg/enums"
	pkgerrors "github.com/sparetrackhq/sparetrack-backend/pkg/errors"
	"github.com/sparetrackhq/sparetrack-backend/pkg/logger"
	"github.com/sparetrackhq/sparetrack-backend/pkg/types"
)

// Incoming is one uploaded file before it reaches the store.
type Incoming struct {
	Name    string
	Content io.Reader
}

type equipmentRepository interface {
	FindByID(ctx context.Context, id int) (*models.Equipment, error)
	UpdateColumns(ctx context.Context, id int, fields map[string]any) error
}

// Service implements the attachment upload flow.
type Service interface {
	Upload(ctx context.Context, id int, typ enums.AttachmentType, mode enums.UploadMode, files []Incoming) ([]types.FileAttachment, error)
}

type service struct {
	repo  equipmentRepository
	store *Store
	logg  *logger.Logger
}

// NewService constructs the attachment service.
func NewService(repo equipmentRepository, store *Store, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("equipment repository is required")
	}
	if store == nil {
		return nil, fmt.Errorf("attachment store is required")
	}
	return &service{repo: repo, store: store, logg: logg}, nil
}

// Upload stores the submitted files and rewrites the matching JSON column.
// Replace mode deletes the previously referenced files best-effort: the
// column write is the source of truth and a stale file on disk is preferable
// to a dangling reference.
func (s *service) Upload(ctx context.Context, id int, typ enums.AttachmentType, mode enums.UploadMode, files []Incoming) ([]types.FileAttachment, error) {
	if !typ.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid or missing attachment type")
	}
	if !mode.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, `Invalid or missing mode. Should be "append" or "replace".`)
	}
	if len(files) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "No files uploaded")
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Equipment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch equipment")
	}

	column := row.UploadPhotos
	if typ == enums.AttachmentTypeDrawing {
		column = row.Drawing
	}
	existing := types.DecodeAttachments(column)

	if mode == enums.UploadModeReplace {
		var removeErr error
		for _, att := range existing {
			removeErr = multierr.Append(removeErr, s.store.Remove(att.URL))
		}
		if removeErr != nil && s.logg != nil {
			ctx := s.logg.WithEquipmentID(ctx, id)
			ctx = s.logg.WithField(ctx, "error", removeErr.Error())
			s.logg.Warn(ctx, "attachment.replace.cleanup_incomplete")
		}
		existing = nil
	}

	saved := make([]types.FileAttachment, 0, len(files))
	for _, file := range files {
		att, err := s.store.Save(typ, file.Name, file.Content)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store attachment")
		}
		saved = append(saved, att)
	}

	updated := append(existing, saved...)
	encoded, err := types.EncodeAttachments(updated)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode attachment list")
	}

	if err := s.repo.UpdateColumns(ctx, id, map[string]any{typ.Column(): encoded}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist attachment list")
	}
	return updated, nil
}
