package controllers

import (
	"net/http"

	"github.com/sirawitp/siamshop-backend/api/responses"
	"github.com/sirawitp/siamshop-backend/api/validators"
	addresssvc "github.com/sirawitp/siamshop-backend/internal/address"
	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
	"github.com/sirawitp/siamshop-backend/pkg/logger"
)

// ListProvinces serves the Thai province dataset for address forms.
func ListProvinces(svc addresssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "address service unavailable"))
			return
		}

		provinces, err := svc.Provinces(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"provinces": provinces})
	}
}

// ListDistricts serves districts, optionally narrowed by province_id.
func ListDistricts(svc addresssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "address service unavailable"))
			return
		}

		provinceID, err := validators.ParseQueryInt(r, "province_id", 0, 0, 1<<20)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		districts, err := svc.Districts(r.Context(), provinceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"districts": districts})
	}
}
