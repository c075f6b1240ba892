package validators

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/sparetrackhq/sparetrack-backend/pkg/errors"
)

// ParseIDParam extracts a numeric route parameter.
func ParseIDParam(r *http.Request, key string) (int, error) {
	raw := chi.URLParam(r, key)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+key+" parameter")
	}
	return id, nil
}
