package v1handler

import (
	"net/http"
	"osintscan/pkg/domain"
	"osintscan/pkg/serrors"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// ListScansResponse is a page of an account's scan jobs.
type ListScansResponse struct {
	Items      []domain.ScanJob `json:"items"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

// CreditsResponse carries an account's balance.
type CreditsResponse struct {
	AccountID domain.AccountID `json:"accountId"`
	Balance   int64            `json:"balance"`
}

// ListScans answers with a page of the account's jobs, newest first.
func (h *Handler) ListScans(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDParam(r)
	if err != nil {
		renderError(w, r, err)

		return
	}

	query := r.URL.Query()
	var limit uint64
	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.ParseUint(raw, 10, 32)
		if err != nil {
			renderError(w, r, serrors.With(serrors.ErrBadRequest, "limit must be a positive integer"))

			return
		}
	}

	items, next, err := h.deps.ScanJobs.List(r.Context(),
		GetUserIDFromContext(r.Context()),
		accountID,
		domain.ScanJobStatus(query.Get("status")),
		query.Get("cursor"),
		uint(limit))
	if err != nil {
		renderError(w, r, err)

		return
	}
	if items == nil {
		items = []domain.ScanJob{}
	}

	render.JSON(w, r, ListScansResponse{Items: items, NextCursor: next})
}

// GetCredits answers with the account's credit balance.
func (h *Handler) GetCredits(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDParam(r)
	if err != nil {
		renderError(w, r, err)

		return
	}

	balance, err := h.deps.ScanJobs.Balance(r.Context(), GetUserIDFromContext(r.Context()), accountID)
	if err != nil {
		renderError(w, r, err)

		return
	}

	render.JSON(w, r, CreditsResponse{AccountID: accountID, Balance: balance})
}

func accountIDParam(r *http.Request) (domain.AccountID, error) {
	raw := chi.URLParam(r, "accountId")
	if raw == "" {
		return domain.AccountID{}, serrors.With(serrors.ErrBadRequest, "accountId is required")
	}

	return parseAccountID(raw)
}
