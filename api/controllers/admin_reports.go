package controllers

import (
	"net/http"

	"github.com/sirawitp/siamshop-backend/api/responses"
	reportsvc "github.com/sirawitp/siamshop-backend/internal/reports"
	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
	"github.com/sirawitp/siamshop-backend/pkg/logger"
)

// AdminSalesReport aggregates revenue and order counts over an optional window.
func AdminSalesReport(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		from, err := parseTimeQuery(r, "date_from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := parseTimeQuery(r, "date_to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Sales(r.Context(), reportsvc.Filters{From: from, To: to})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}
