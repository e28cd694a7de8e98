package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/response"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/validation"
)

// ValidateTaxYearMiddleware validates that the taxYear URL parameter is a
// well-formed UK tax year label ("2024-2025"). Returns 400 Bad Request
// otherwise, so handlers behind it never see a malformed label.
func ValidateTaxYearMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		taxYear := chi.URLParam(r, "taxYear")

		if taxYear == "" {
			response.RespondError(w, http.StatusBadRequest, "tax year is required", "")
			return
		}

		if err := validation.ValidateTaxYearLabel(taxYear); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid tax year", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
