package equipment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sparetrackhq/sparetrack-backend/pkg/db/models"
	"github.com/sparetrackhq/sparetrack-backend/pkg/enums"
	pkgerrors "github.com/sparetrackhq/sparetrack-backend/pkg/errors"
	"github.com/sparetrackhq/sparetrack-backend/pkg/types"
)

const notFoundMessage = "Equipment not found"

// updatableColumns is the allow-list for PATCH requests. The legacy service
// interpolated caller-supplied column names into SQL; here an unknown key is
// rejected before any statement is built. Attachment columns are managed by
// the upload flow only.
var updatableColumns = map[string]struct{}{
	"PlantCode":                {},
	"Plant":                    {},
	"Line":                     {},
	"EquipmentName":            {},
	"EquipmentNo":              {},
	"MachineSupplier":          {},
	"Type":                     {},
	"Category":                 {},
	"VED":                      {},
	"SpareName":                {},
	"MaterialCodeSAP":          {},
	"SAPShortText":             {},
	"FullDescription":          {},
	"PartNo":                   {},
	"Make":                     {},
	"Vendor1":                  {},
	"SpareLifecycle":           {},
	"FrequencyMonths":          {},
	"TotalQtyPerFrequency":     {},
	"RequirementPerYear":       {},
	"SafetyStock":              {},
	"TotalAnnualQtyProjection": {},
}

type repository interface {
	List(ctx context.Context, line string) ([]models.Equipment, error)
	FindByID(ctx context.Context, id int) (*models.Equipment, error)
	UpdateColumns(ctx context.Context, id int, fields map[string]any) error
	EnsureChangeLogTable(ctx context.Context) error
	AppendChangeLog(ctx context.Context, entry *models.ChangeLog) error
}

// Service exposes the equipment operations behind the HTTP API.
type Service interface {
	List(ctx context.Context, line string) ([]models.Equipment, error)
	Get(ctx context.Context, id int) (*models.Equipment, error)
	Attachments(ctx context.Context, id int, typ enums.AttachmentType) ([]types.FileAttachment, error)
	Patch(ctx context.Context, id int, fields map[string]any, updatedBy string) error
}

type service struct {
	repo repository
}

// NewService constructs the equipment service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("equipment repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, line string) ([]models.Equipment, error) {
	rows, err := s.repo.List(ctx, line)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list equipment")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id int) (*models.Equipment, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch equipment")
	}
	return row, nil
}

func (s *service) Attachments(ctx context.Context, id int, typ enums.AttachmentType) ([]types.FileAttachment, error) {
	if !typ.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid or missing attachment type")
	}
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if typ == enums.AttachmentTypeDrawing {
		return types.DecodeAttachments(row.Drawing), nil
	}
	return types.DecodeAttachments(row.UploadPhotos), nil
}

// Patch applies a partial field update and appends exactly one change-log
// row capturing the pre-image and the submitted patch.
func (s *service) Patch(ctx context.Context, id int, fields map[string]any, updatedBy string) error {
	if len(fields) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "No fields to update")
	}
	for key := range fields {
		if _, ok := updatableColumns[key]; !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("field %q is not updatable", key))
		}
	}

	before, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateColumns(ctx, id, fields); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update equipment")
	}

	if err := s.repo.EnsureChangeLogTable(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ensure change log table")
	}

	beforeState, err := json.Marshal(before)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode pre-image")
	}
	afterState, err := json.Marshal(fields)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode patch")
	}

	if updatedBy == "" {
		updatedBy = "unknown"
	}

	entry := &models.ChangeLog{
		EntrySno:    id,
		Field:       strings.Join(sortedKeys(fields), ", "),
		BeforeState: string(beforeState),
		AfterState:  string(afterState),
		UpdatedBy:   updatedBy,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.repo.AppendChangeLog(ctx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append change log")
	}
	return nil
}

func sortedKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
