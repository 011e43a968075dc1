package salons

import (
	"context"
	"io"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
)

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error)
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
	List(ctx context.Context, status *domain.SalonStatus) ([]*domain.Salon, error)
	UpdateDetails(ctx context.Context, id int64, details salonRepo.Details) (*domain.Salon, error)
	AddPhotos(ctx context.Context, id int64, paths []string) (*domain.Salon, error)
	SetAgreement(ctx context.Context, id int64, path string) (*domain.Salon, error)
	Approve(ctx context.Context, id int64) (*domain.Salon, error)
}

// UploadSink хранилище загружаемых файлов.
// Store сохраняет поток и возвращает путь или URL, по которому файл доступен.
type UploadSink interface {
	Store(ctx context.Context, r io.Reader) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
