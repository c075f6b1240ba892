package controllers

import (
	"net/http"

	"github.com/sparetrackhq/sparetrack-backend/api/responses"
	"github.com/sparetrackhq/sparetrack-backend/api/validators"
	"github.com/sparetrackhq/sparetrack-backend/internal/attachments"
	"github.com/sparetrackhq/sparetrack-backend/pkg/enums"
	pkgerrors "github.com/sparetrackhq/sparetrack-backend/pkg/errors"
	"github.com/sparetrackhq/sparetrack-backend/pkg/logger"
	"github.com/sparetrackhq/sparetrack-backend/pkg/types"
)

// uploadFieldName is the multipart field carrying attachment files.
const uploadFieldName = "files"

// AttachmentUpload receives multipart files and rewrites the attachment
// column for one equipment record.
func AttachmentUpload(svc attachments.Service, maxSizeBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		typ := enums.AttachmentType(r.URL.Query().Get("type"))
		mode := enums.UploadMode(r.URL.Query().Get("mode"))

		r.Body = http.MaxBytesReader(w, r.Body, maxSizeBytes)
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}
		defer func() {
			_ = r.MultipartForm.RemoveAll()
		}()

		var files []attachments.Incoming
		for _, header := range r.MultipartForm.File[uploadFieldName] {
			file, err := header.Open()
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "open uploaded file"))
				return
			}
			defer file.Close()
			files = append(files, attachments.Incoming{Name: header.Filename, Content: file})
		}

		updated, err := svc.Upload(r.Context(), id, typ, mode, files)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		verb := "added"
		if mode == enums.UploadModeReplace {
			verb = "replaced"
		}
		responses.WriteJSON(w, http.StatusOK, types.UploadPayload{
			Message:     "Attachments " + verb + " successfully",
			Attachments: updated,
		})
	}
}
