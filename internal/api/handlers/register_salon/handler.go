package register_salon

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSalon       = "некорректные данные салона"
	msgMobileTaken        = "салон с таким номером телефона уже зарегистрирован"
)

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

// Handle POST /salon/register
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterSalonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salon/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	salon, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, salons.ErrInvalidInput):
			h.logger.Warn("POST /salon/register - Invalid salon: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSalon+": "+err.Error())

		case errors.Is(err, salons.ErrMobileTaken):
			h.logger.Warn("POST /salon/register - Mobile taken")
			handlers.RespondConflict(w, handlers.ReasonMobileTaken, msgMobileTaken)

		default:
			h.logger.Error("POST /salon/register - Failed to register salon: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salon/register - Salon registered successfully: salon_id=%d", salon.ID)
	handlers.RespondJSON(w, http.StatusCreated, salon)
}
