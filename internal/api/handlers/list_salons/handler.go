package list_salons

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons"
)

const msgInvalidStatus = "некорректный статус, ожидается pending или approved"

type Handler struct {
	service SalonService
	logger  Logger
}

func NewHandler(service SalonService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /salon
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var statusPtr *string
	if status := r.URL.Query().Get("status"); status != "" {
		statusPtr = &status
	}

	result, err := h.service.List(r.Context(), statusPtr)
	if err != nil {
		if errors.Is(err, salons.ErrInvalidInput) {
			h.logger.Warn("GET /salon - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /salon - Failed to list salons: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salon - Salons listed: count=%d", len(result.Salons))
	handlers.RespondJSON(w, http.StatusOK, result)
}
