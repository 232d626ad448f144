package http

import (
	_ "embed"
	"errors"
	"net/http"

	"github.com/Flarenzy/preghierine/internal/domain"
)

//go:embed index.html
var indexPage []byte

func (a *API) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexPage)
}

// @Summary Health check
// @Tags health
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// @Summary Readiness check
// @Tags health
// @Success 200 {string} string "ready"
// @Failure 503 {string} string "phrase source unavailable"
// @Router /readyz [get]
func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if a.Health != nil {
		if err := a.Health.Ping(ctx); err != nil {
			a.Logger.ErrorContext(ctx, "readiness check failed", "err", err.Error())
			http.Error(w, "phrase source unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// @Summary Send a random phrase to a random host
// @Description Picks a host inside subnet/cidr (clamped to the minimum prefix) and a port inside [minPort, maxPort],
// @Description then sends one UDP datagram unless the destination policy blocks the host.
// @Tags dispatch
// @Accept json
// @Produce json
// @Param payload body SendRandomRequest true "Target network and port range"
// @Success 200 {object} SendRandomResponse "sent; a blocked destination answers with BlockedResponse"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/send-random [post]
// @Router /api/v1/send-random [post]
func (a *API) handleSendRandom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := decode[SendRandomRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.DebugContext(ctx, "unreadable request body, treating as empty", "err", err.Error())
		req = SendRandomRequest{}
	}

	input, err := req.toInput()
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	outcome, err := a.Service.SendRandom(ctx, input)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	err = encode(w, r, http.StatusOK, outcomeToResponse(outcome))
	if err != nil {
		a.Logger.ErrorContext(ctx, "responding to client", "err", err.Error())
	}
}

func (a *API) respondError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	status := http.StatusInternalServerError
	resp := ErrorResponse{Error: "internal server error"}

	switch {
	case domain.IsValidation(err):
		status = http.StatusBadRequest
		resp = ErrorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrTransport):
		resp = ErrorResponse{Error: err.Error()}
	default:
		a.Logger.ErrorContext(ctx, "unexpected dispatch error", "err", err.Error())
	}

	if encErr := encode(w, r, status, resp); encErr != nil {
		a.Logger.ErrorContext(ctx, "responding to client", "err", encErr.Error())
	}
}
