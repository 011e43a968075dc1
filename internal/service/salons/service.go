package salons

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/mail"
	"regexp"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/uploads"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
)

var mobileRe = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,30}$`)

// Service сервис онбординга салонов
type Service struct {
	salonRepo SalonRepository
	uploads   UploadSink
	logger    Logger
}

// NewService создает новый экземпляр сервиса салонов
func NewService(salonRepo SalonRepository, uploads UploadSink, logger Logger) *Service {
	return &Service{
		salonRepo: salonRepo,
		uploads:   uploads,
		logger:    logger,
	}
}

// Register регистрирует салон в статусе pending
func (s *Service) Register(ctx context.Context, req *models.RegisterSalonRequest) (*models.SalonResponse, error) {
	s.logger.Info("Register: registering salon %q, mobile=%s", req.SalonName, req.Mobile)

	salon := &domain.Salon{
		OwnerName: strings.TrimSpace(req.OwnerName),
		SalonName: strings.TrimSpace(req.SalonName),
		Mobile:    strings.TrimSpace(req.Mobile),
		Email:     optional(req.Email),
		Address:   optional(req.Address),
		Status:    domain.SalonPending,
	}

	if err := validateSalon(salon); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, err
	}

	created, err := s.salonRepo.Create(ctx, salon)
	if err != nil {
		if errors.Is(err, salonRepo.ErrMobileTaken) {
			s.logger.Warn("Register: mobile=%s already registered", salon.Mobile)
			return nil, ErrMobileTaken
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: successfully registered salon id=%d", created.ID)
	return models.FromDomainSalon(created), nil
}

// Get получает салон по ID
func (s *Service) Get(ctx context.Context, id int64) (*models.SalonResponse, error) {
	salon, err := s.getSalon(ctx, "Get", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSalon(salon), nil
}

// List получает салоны, сначала новые. Опционально фильтрует по статусу
func (s *Service) List(ctx context.Context, status *string) (*models.SalonListResponse, error) {
	s.logger.Info("List: fetching salons, status=%v", status)

	var domainStatus *domain.SalonStatus
	if status != nil {
		parsed, err := domain.ParseSalonStatus(*status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s", *status)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		domainStatus = &parsed
	}

	salons, err := s.salonRepo.List(ctx, domainStatus)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSalonList(salons), nil
}

// UpdateDetails обновляет карточку салона.
// Координаты извлекаются из ссылки на карту; нераспознанная ссылка отклоняется.
func (s *Service) UpdateDetails(ctx context.Context, req *models.UpdateSalonRequest) (*models.SalonResponse, error) {
	s.logger.Info("UpdateDetails: updating salon id=%d", req.SalonID)

	details := salonRepo.Details{
		OwnerName: trimmed(req.OwnerName),
		SalonName: trimmed(req.SalonName),
		Email:     trimmed(req.Email),
		Address:   trimmed(req.Address),
	}

	if err := validateDetails(details); err != nil {
		s.logger.Warn("UpdateDetails: validation failed for salon id=%d: %v", req.SalonID, err)
		return nil, err
	}

	if req.LocationMapURL != nil {
		lat, lng, err := domain.ExtractCoordinates(*req.LocationMapURL)
		if err != nil {
			s.logger.Warn("UpdateDetails: cannot extract coordinates for salon id=%d from %q", req.SalonID, *req.LocationMapURL)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		details.Latitude = &lat
		details.Longitude = &lng
	}

	updated, err := s.salonRepo.UpdateDetails(ctx, req.SalonID, details)
	if err != nil {
		return nil, s.mapRepoError("UpdateDetails", req.SalonID, err)
	}

	s.logger.Info("UpdateDetails: successfully updated salon id=%d", req.SalonID)
	return models.FromDomainSalon(updated), nil
}

// UploadPhotos сохраняет фотографии салона через UploadSink и дописывает их пути
func (s *Service) UploadPhotos(ctx context.Context, id int64, files []models.File) (*models.SalonResponse, error) {
	s.logger.Info("UploadPhotos: uploading %d photos for salon id=%d", len(files), id)

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: salonPhotos are required", ErrInvalidInput)
	}

	salon, err := s.getSalon(ctx, "UploadPhotos", id)
	if err != nil {
		return nil, err
	}

	if len(salon.Photos)+len(files) > domain.MaxSalonPhotos {
		return nil, fmt.Errorf("%w: at most %d photos per salon", ErrInvalidInput, domain.MaxSalonPhotos)
	}

	contents := make([]io.Reader, len(files))
	for i, f := range files {
		detected, content, err := s.sniff("UploadPhotos", f, id)
		if err != nil {
			return nil, err
		}
		if !uploads.IsImage(detected) {
			s.logger.Warn("UploadPhotos: rejected %q, content is %s", f.Name, detected)
			return nil, fmt.Errorf("%w: %s is %s, expected an image", ErrUnsupportedFileType, f.Name, detected)
		}
		contents[i] = content
	}

	paths := make([]string, 0, len(files))
	for i, f := range files {
		path, err := s.uploads.Store(ctx, contents[i])
		if err != nil {
			return nil, s.storeError("UploadPhotos", f.Name, id, err)
		}
		paths = append(paths, path)
	}

	updated, err := s.salonRepo.AddPhotos(ctx, id, paths)
	if errors.Is(err, salonRepo.ErrPhotoLimit) {
		s.logger.Warn("UploadPhotos: salon id=%d reached the photo limit concurrently", id)
		return nil, fmt.Errorf("%w: at most %d photos per salon", ErrInvalidInput, domain.MaxSalonPhotos)
	}
	if err != nil {
		return nil, s.mapRepoError("UploadPhotos", id, err)
	}

	s.logger.Info("UploadPhotos: salon id=%d now has %d photos", id, len(updated.Photos))
	return models.FromDomainSalon(updated), nil
}

// UploadAgreement сохраняет подписанный договор (изображение или PDF)
func (s *Service) UploadAgreement(ctx context.Context, id int64, file *models.File) (*models.SalonResponse, error) {
	s.logger.Info("UploadAgreement: uploading agreement for salon id=%d", id)

	if file == nil {
		return nil, fmt.Errorf("%w: salonAgreement is required", ErrInvalidInput)
	}

	if _, err := s.getSalon(ctx, "UploadAgreement", id); err != nil {
		return nil, err
	}

	// DetectType допускает только изображения и PDF
	_, content, err := s.sniff("UploadAgreement", *file, id)
	if err != nil {
		return nil, err
	}

	path, err := s.uploads.Store(ctx, content)
	if err != nil {
		return nil, s.storeError("UploadAgreement", file.Name, id, err)
	}

	updated, err := s.salonRepo.SetAgreement(ctx, id, path)
	if err != nil {
		return nil, s.mapRepoError("UploadAgreement", id, err)
	}

	return models.FromDomainSalon(updated), nil
}

// Approve одобряет салон: pending -> approved.
// Требует хотя бы одну фотографию, договор и координаты.
func (s *Service) Approve(ctx context.Context, id int64) (*models.SalonResponse, error) {
	s.logger.Info("Approve: approving salon id=%d", id)

	salon, err := s.getSalon(ctx, "Approve", id)
	if err != nil {
		return nil, err
	}

	if salon.Status == domain.SalonApproved {
		s.logger.Warn("Approve: salon id=%d is already approved", id)
		return nil, ErrAlreadyApproved
	}

	if missing := salon.MissingForApproval(); len(missing) > 0 {
		s.logger.Warn("Approve: salon id=%d is missing %v", id, missing)
		return nil, fmt.Errorf("%w: missing %s", ErrNotReadyForApproval, strings.Join(missing, ", "))
	}

	approved, err := s.salonRepo.Approve(ctx, id)
	if err != nil {
		if errors.Is(err, salonRepo.ErrStatusMismatch) {
			s.logger.Warn("Approve: salon id=%d was approved concurrently", id)
			return nil, ErrAlreadyApproved
		}
		return nil, s.mapRepoError("Approve", id, err)
	}

	s.logger.Info("Approve: salon id=%d status %s -> %s", id, salon.Status, approved.Status)
	return models.FromDomainSalon(approved), nil
}

func (s *Service) getSalon(ctx context.Context, op string, id int64) (*domain.Salon, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: salonId must be positive", ErrInvalidInput)
	}

	salon, err := s.salonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return salon, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, salonRepo.ErrSalonNotFound) {
		s.logger.Warn("%s: salon id=%d not found", op, id)
		return ErrSalonNotFound
	}
	s.logger.Error("%s: repository error for salon id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// sniff определяет тип файла по содержимому, заявленный Content-Type только логируется
func (s *Service) sniff(op string, f models.File, id int64) (string, io.Reader, error) {
	detected, content, err := uploads.Sniff(f.Content)
	if err != nil {
		return "", nil, s.storeError(op, f.Name, id, err)
	}
	if declared := mediaType(f.ContentType); declared != "" && declared != detected {
		s.logger.Warn("%s: %q declared as %s, content is %s", op, f.Name, declared, detected)
	}
	return detected, content, nil
}

func (s *Service) storeError(op, name string, id int64, err error) error {
	if errors.Is(err, uploads.ErrUnsupportedType) {
		s.logger.Warn("%s: file %q for salon id=%d rejected: %v", op, name, id, err)
		return fmt.Errorf("%w: %s: %v", ErrUnsupportedFileType, name, err)
	}
	if errors.Is(err, uploads.ErrFileTooLarge) || errors.Is(err, uploads.ErrEmptyFile) {
		s.logger.Warn("%s: file %q for salon id=%d rejected: %v", op, name, id, err)
		return fmt.Errorf("%w: %s: %v", ErrFileRejected, name, err)
	}
	s.logger.Error("%s: failed to store %q for salon id=%d: %v", op, name, id, err)
	return fmt.Errorf("%w: %s - store file: %v", ErrInternal, op, err)
}

func validateSalon(salon *domain.Salon) error {
	if salon.OwnerName == "" || len(salon.OwnerName) > domain.MaxNameLength {
		return fmt.Errorf("%w: ownerName is required and must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if salon.SalonName == "" || len(salon.SalonName) > domain.MaxNameLength {
		return fmt.Errorf("%w: salonName is required and must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if len(salon.Mobile) > domain.MaxMobileLength || !mobileRe.MatchString(salon.Mobile) {
		return fmt.Errorf("%w: mobile is invalid", ErrInvalidInput)
	}
	return validateDetails(salonRepo.Details{Email: salon.Email, Address: salon.Address})
}

func validateDetails(d salonRepo.Details) error {
	if d.OwnerName != nil && (*d.OwnerName == "" || len(*d.OwnerName) > domain.MaxNameLength) {
		return fmt.Errorf("%w: ownerName must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if d.SalonName != nil && (*d.SalonName == "" || len(*d.SalonName) > domain.MaxNameLength) {
		return fmt.Errorf("%w: salonName must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if d.Email != nil {
		if _, err := mail.ParseAddress(*d.Email); err != nil {
			return fmt.Errorf("%w: email is invalid", ErrInvalidInput)
		}
	}
	if d.Address != nil && len(*d.Address) > domain.MaxAddressLength {
		return fmt.Errorf("%w: address must be at most %d characters", ErrInvalidInput, domain.MaxAddressLength)
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// optional как trimmed, но пустая строка означает отсутствие значения
func optional(s *string) *string {
	if v := trimmed(s); v != nil && *v != "" {
		return v
	}
	return nil
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mt
}
