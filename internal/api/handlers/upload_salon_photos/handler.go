package upload_salon_photos

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
)

// FieldName is the multipart field carrying the photos.
const FieldName = "salonPhotos"

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgInvalidForm    = "некорректная multipart форма"
	msgMissingFiles   = "не переданы фотографии salonPhotos"
	msgInvalidPhotos  = "некорректные фотографии"
	msgUnsupported    = "фотографии должны быть изображениями"
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

// Handle POST /salon/{salonId}/photos (multipart, поле salonPhotos)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathID(r, "salonId")
	if err != nil {
		h.logger.Warn("POST /salon/{id}/photos - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	if err := handlers.ParseMultipart(w, r, h.maxBytes); err != nil {
		h.logger.Warn("POST /salon/{id}/photos - Invalid form: salon_id=%d, error=%v", salonID, err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := handlers.FormFiles(r, FieldName)
	if len(headers) == 0 {
		handlers.RespondBadRequest(w, msgMissingFiles)
		return
	}

	files, closeAll, err := openFiles(headers)
	if err != nil {
		h.logger.Error("POST /salon/{id}/photos - Failed to open upload: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}
	defer closeAll()

	salon, err := h.service.UploadPhotos(r.Context(), salonID, files)
	if err != nil {
		switch {
		case errors.Is(err, salons.ErrSalonNotFound):
			h.logger.Warn("POST /salon/{id}/photos - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, handlers.ReasonSalon, msgNotFound)

		case errors.Is(err, salons.ErrUnsupportedFileType):
			h.logger.Warn("POST /salon/{id}/photos - Unsupported type: %v", err)
			handlers.RespondBadRequest(w, msgUnsupported)

		case errors.Is(err, salons.ErrFileRejected):
			h.logger.Warn("POST /salon/{id}/photos - File rejected: %v", err)
			handlers.RespondBadRequest(w, msgFileRejected)

		case errors.Is(err, salons.ErrInvalidInput):
			h.logger.Warn("POST /salon/{id}/photos - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPhotos+": "+err.Error())

		default:
			h.logger.Error("POST /salon/{id}/photos - Failed to upload photos: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salon/{id}/photos - Photos uploaded: salon_id=%d, count=%d", salonID, len(files))
	handlers.RespondJSON(w, http.StatusOK, salon)
}

func openFiles(headers []*multipart.FileHeader) ([]models.File, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	files := make([]models.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		opened = append(opened, f)
		files = append(files, models.File{
			Name:        fh.Filename,
			ContentType: handlers.PartContentType(fh),
			Content:     f,
		})
	}

	return files, closeAll, nil
}
