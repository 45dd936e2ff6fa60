// Package v1handler implements the v1 HTTP API: scan submission, job lookup
// and listing, credit balances and live progress streams.
package v1handler

import (
	"context"
	"errors"
	"net/http"
	"osintscan/internal/config"
	"osintscan/internal/credit"
	"osintscan/internal/scanjob"
	"osintscan/pkg/controller"
	"osintscan/pkg/logger"
	"osintscan/pkg/progress"
	"osintscan/pkg/serrors"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

const (
	// DefaultHeartbeat is the interval of keep-alive comments on progress streams.
	DefaultHeartbeat = 15 * time.Second

	maxBodyBytes = 1 << 20
)

// Deps are the services the handler serves requests from.
type Deps struct {
	ScanJobs scanjob.Service
	Progress progress.Subscriber
}

// Options configure the handler.
type Options struct {
	// RequestTimeout bounds every route except progress streams.
	RequestTimeout time.Duration
	// Heartbeat is the interval of keep-alive comments on progress streams.
	Heartbeat time.Duration
	// TotalUnits is reported as the unit total of synthesized terminal events.
	TotalUnits int
}

// NewOptions constructs Options from the application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		RequestTimeout: cfg.HTTP.RequestTimeout,
		Heartbeat:      cfg.HTTP.ProgressHeartbeat,
		TotalUnits:     cfg.Orchestrator.MaxPolls,
	}
}

type Handler struct {
	deps    Deps
	options Options
}

func New(deps Deps, options Options) *Handler {
	if options.Heartbeat <= 0 {
		options.Heartbeat = DefaultHeartbeat
	}

	return &Handler{deps: deps, options: options}
}

// Routes returns the v1 router. Every route requires a bearer token.
func (h *Handler) Routes(sec *SecHandler) chi.Router {
	r := chi.NewRouter()
	r.Use(sec.Middleware)

	// streams outlive the request timeout
	r.Get("/scans/{id}/progress", h.StreamProgress)

	r.Group(func(r chi.Router) {
		r.Use(controller.WithTimeout(h.options.RequestTimeout))

		r.Post("/scans", h.CreateScan)
		r.Get("/scans/{id}", h.GetScan)
		r.Get("/accounts/{accountId}/scans", h.ListScans)
		r.Get("/accounts/{accountId}/credits", h.GetCredits)
	})

	return r
}

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Error, Required and Available are only set when credits are insufficient.
	Error     string `json:"error,omitempty"`
	Required  *int64 `json:"required,omitempty"`
	Available *int64 `json:"available,omitempty"`
}

// ErrorStatus pairs an ErrorResponse with its HTTP status.
type ErrorStatus struct {
	StatusCode int
	Response   ErrorResponse
}

var statusByKind = map[serrors.Kind]int{ //nolint: gochecknoglobals
	serrors.ErrBadRequest:      http.StatusBadRequest,
	serrors.ErrUnauthorized:    http.StatusUnauthorized,
	serrors.ErrPaymentRequired: http.StatusPaymentRequired,
	serrors.ErrForbidden:       http.StatusForbidden,
	serrors.ErrNotFound:        http.StatusNotFound,
	serrors.ErrConflict:        http.StatusConflict,
	serrors.ErrRateLimited:     http.StatusTooManyRequests,
	serrors.ErrUnavailable:     http.StatusServiceUnavailable,
	serrors.ErrTimeout:         http.StatusGatewayTimeout,
	serrors.ErrInternal:        http.StatusInternalServerError,
}

var defaultMessages = map[serrors.Kind]string{ //nolint: gochecknoglobals
	serrors.ErrBadRequest:      "bad request",
	serrors.ErrUnauthorized:    "unauthorized",
	serrors.ErrPaymentRequired: "insufficient credits",
	serrors.ErrForbidden:       "forbidden",
	serrors.ErrNotFound:        "resource not found",
	serrors.ErrConflict:        "conflict",
	serrors.ErrRateLimited:     "too many requests",
	serrors.ErrUnavailable:     "service unavailable",
	serrors.ErrTimeout:         "request timed out",
	serrors.ErrInternal:        "internal error",
}

// NewError maps err to its HTTP status and body. Internal errors are logged
// and never leak their message.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorStatus {
	return newError(ctx, err)
}

func newError(ctx context.Context, err error) *ErrorStatus {
	kind := serrors.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		kind, status = serrors.ErrInternal, http.StatusInternalServerError
	}

	res := &ErrorStatus{
		StatusCode: status,
		Response: ErrorResponse{
			Code:    kind.Error(),
			Message: defaultMessages[kind],
		},
	}

	if kind == serrors.ErrInternal {
		logger.Error(ctx, "request failed", zap.Error(err))

		return res
	}
	logger.Debug(ctx, "request rejected", zap.Error(err), zap.String("kind", kind.Error()))

	var insufficient *credit.InsufficientCreditsError
	if errors.As(err, &insufficient) {
		res.Response.Error = "insufficient_credits"
		res.Response.Required = &insufficient.Required
		if insufficient.Available >= 0 {
			res.Response.Available = &insufficient.Available
		}

		return res
	}

	var serr *serrors.Error
	if errors.As(err, &serr) && serr.Message() != "" {
		res.Response.Message = serr.Message()
	}

	return res
}

// renderError writes err as a JSON error answer.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	res := newError(r.Context(), err)
	render.Status(r, res.StatusCode)
	render.JSON(w, r, res.Response)
}
