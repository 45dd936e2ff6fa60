package v1handler

import (
	"net/http"
	"osintscan/internal/scanjob"
	"osintscan/pkg/domain"
	"osintscan/pkg/serrors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

// CreateScanRequest is the body of POST /scans.
type CreateScanRequest struct {
	Target     string            `json:"target"`
	TargetType domain.TargetType `json:"targetType"`
	Modules    []string          `json:"modules"`
	AccountID  string            `json:"accountId"`
}

// CreateScanResponse is the answer to an accepted scan request.
type CreateScanResponse struct {
	JobID  domain.ScanJobID     `json:"jobId"`
	Status domain.ScanJobStatus `json:"status"`
}

// CreateScan charges the account and schedules a scan. It answers 202 with
// the pending job's ID.
func (h *Handler) CreateScan(w http.ResponseWriter, r *http.Request) {
	var req CreateScanRequest
	if err := render.DecodeJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes), &req); err != nil {
		renderError(w, r, serrors.With(serrors.ErrBadRequest, "invalid request body"))

		return
	}

	accountID, err := parseAccountID(req.AccountID)
	if err != nil {
		renderError(w, r, err)

		return
	}

	job, err := h.deps.ScanJobs.Create(r.Context(), scanjob.CreateRequest{
		AccountID:  accountID,
		UserID:     GetUserIDFromContext(r.Context()),
		Target:     req.Target,
		TargetType: req.TargetType,
		Modules:    req.Modules,
	})
	if err != nil {
		renderError(w, r, err)

		return
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, CreateScanResponse{JobID: job.ID, Status: job.Status})
}

// GetScan answers with the job record.
func (h *Handler) GetScan(w http.ResponseWriter, r *http.Request) {
	id, err := parseScanJobID(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, err)

		return
	}

	job, err := h.deps.ScanJobs.Get(r.Context(), GetUserIDFromContext(r.Context()), id)
	if err != nil {
		renderError(w, r, err)

		return
	}

	render.JSON(w, r, job)
}

func parseScanJobID(raw string) (domain.ScanJobID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return domain.ScanJobID{}, serrors.With(serrors.ErrBadRequest, "scan id must be a UUID")
	}

	return domain.ScanJobID(id), nil
}

// parseAccountID leaves an empty ID to the service, which reports it as missing.
func parseAccountID(raw string) (domain.AccountID, error) {
	if raw == "" {
		return domain.AccountID{}, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return domain.AccountID{}, serrors.With(serrors.ErrBadRequest, "accountId must be a UUID")
	}

	return domain.AccountID(id), nil
}
