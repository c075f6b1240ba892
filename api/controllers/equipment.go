package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/sparetrackhq/sparetrack-backend/api/responses"
	"github.com/sparetrackhq/sparetrack-backend/api/validators"
	"github.com/sparetrackhq/sparetrack-backend/internal/equipment"
	"github.com/sparetrackhq/sparetrack-backend/pkg/enums"
	pkgerrors "github.com/sparetrackhq/sparetrack-backend/pkg/errors"
	"github.com/sparetrackhq/sparetrack-backend/pkg/logger"
)

const updatedByHeader = "X-Updated-By"

// EquipmentList returns every record, optionally filtered to one line type.
// The response is the bare array: clients filter and search locally.
func EquipmentList(svc equipment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context(), r.URL.Query().Get("line"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, rows)
	}
}

// EquipmentDetail returns a single record by SlNo.
func EquipmentDetail(svc equipment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, row)
	}
}

// EquipmentAttachments returns the attachment array for one type.
func EquipmentAttachments(svc equipment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		typ := enums.AttachmentType(r.URL.Query().Get("type"))
		attachments, err := svc.Attachments(r.Context(), id, typ)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, attachments)
	}
}

// EquipmentPatch applies a partial field update and records an audit row.
func EquipmentPatch(svc equipment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var fields map[string]any
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body"))
			return
		}

		if err := svc.Patch(r.Context(), id, fields, r.Header.Get(updatedByHeader)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Equipment data updated successfully")
	}
}
