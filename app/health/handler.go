package health

import (
	"context"
	"net/http"
	"time"

	"github.com/mytheresa/product-catalog/app/api"
	"github.com/sirupsen/logrus"
)

// PingFunc checks a dependency.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	ping PingFunc
	log  logrus.FieldLogger
}

func NewHealthHandler(ping PingFunc, log logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{ping: ping, log: log}
}

func (h *HealthHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		h.log.WithError(err).Warn("database ping failed")
		api.JSONResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	api.OKResponse(w, map[string]string{"status": "ok"})
}
