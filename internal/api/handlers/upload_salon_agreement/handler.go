package upload_salon_agreement

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
)

// FieldName is the multipart field carrying the signed agreement.
const FieldName = "salonAgreement"

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgInvalidForm    = "некорректная multipart форма"
	msgMissingFile    = "не передан файл salonAgreement"
	msgUnsupported    = "договор должен быть изображением или PDF"
	msgFileRejected   = "файл пустой или слишком большой"
	msgNotFound       = "салон не найден"
)

type Handler struct {
	service  SalonService
	maxBytes int64
	logger   Logger
}

func NewHandler(service SalonService, maxBytes int64, logger Logger) *Handler {
	return &Handler{
		service:  service,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Handle POST /salon/{salonId}/agreement (multipart, поле salonAgreement)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("POST /salon/{id}/agreement - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	if err := handlers.ParseMultipart(w, r, h.maxBytes); err != nil {
		h.logger.Warn("POST /salon/{id}/agreement - Invalid form: salon_id=%d, error=%v", salonID, err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := handlers.FormFiles(r, FieldName)
	if len(headers) == 0 {
		handlers.RespondBadRequest(w, msgMissingFile)
		return
	}

	fh := headers[0]
	f, err := fh.Open()
	if err != nil {
		h.logger.Error("POST /salon/{id}/agreement - Failed to open upload: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}
	defer f.Close()

	salon, err := h.service.UploadAgreement(r.Context(), salonID, &models.File{
		Name:        fh.Filename,
		ContentType: handlers.PartContentType(fh),
		Content:     f,
	})
	if err != nil {
		switch {
		case errors.Is(err, salons.ErrSalonNotFound):
			h.logger.Warn("POST /salon/{id}/agreement - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, handlers.ReasonSalon, msgNotFound)

		case errors.Is(err, salons.ErrUnsupportedFileType):
			h.logger.Warn("POST /salon/{id}/agreement - Unsupported type: %v", err)
			handlers.RespondBadRequest(w, msgUnsupported)

		case errors.Is(err, salons.ErrFileRejected), errors.Is(err, salons.ErrInvalidInput):
			h.logger.Warn("POST /salon/{id}/agreement - File rejected: %v", err)
			handlers.RespondBadRequest(w, msgFileRejected)

		default:
			h.logger.Error("POST /salon/{id}/agreement - Failed to upload agreement: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salon/{id}/agreement - Agreement uploaded: salon_id=%d", salonID)
	handlers.RespondJSON(w, http.StatusOK, salon)
}
