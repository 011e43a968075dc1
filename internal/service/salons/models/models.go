package models

import (
	"io"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модели

// RegisterSalonRequest запрос на регистрацию салона
type RegisterSalonRequest struct {
	OwnerName string  `json:"ownerName"`
	SalonName string  `json:"salonName"`
	Mobile    string  `json:"mobile"`
	Email     *string `json:"email,omitempty"`
	Address   *string `json:"address,omitempty"`
}

// UpdateSalonRequest запрос на обновление карточки салона
// Все поля опциональны - обновляются только переданные значения
type UpdateSalonRequest struct {
	SalonID        int64   `json:"-"`
	OwnerName      *string `json:"ownerName,omitempty"`
	SalonName      *string `json:"salonName,omitempty"`
	Email          *string `json:"email,omitempty"`
	Address        *string `json:"address,omitempty"`
	LocationMapURL *string `json:"locationMapUrl,omitempty"` // ссылка на карту, из неё извлекаются координаты
}

// File загружаемый файл
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// Response модели

// SalonResponse ответ с данными салона
type SalonResponse struct {
	ID        int64    `json:"id"`
	OwnerName string   `json:"ownerName"`
	SalonName string   `json:"salonName"`
	Mobile    string   `json:"mobile"`
	Email     *string  `json:"email,omitempty"`
	Address   *string  `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Photos    []string `json:"salonPhotos"`
	Agreement *string  `json:"salonAgreement,omitempty"`
	Status    string   `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SalonListResponse ответ со списком салонов
type SalonListResponse struct {
	Salons []SalonResponse `json:"salons"`
}

// FromDomainSalon конвертирует domain модель в DTO
func FromDomainSalon(s *domain.Salon) *SalonResponse {
	if s == nil {
		return nil
	}

	photos := s.Photos
	if photos == nil {
		photos = []string{}
	}

	return &SalonResponse{
		ID:        s.ID,
		OwnerName: s.OwnerName,
		SalonName: s.SalonName,
		Mobile:    s.Mobile,
		Email:     s.Email,
		Address:   s.Address,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Photos:    photos,
		Agreement: s.Agreement,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainSalonList конвертирует список domain моделей в DTO
func FromDomainSalonList(salons []*domain.Salon) *SalonListResponse {
	resp := &SalonListResponse{Salons: make([]SalonResponse, 0, len(salons))}
	for _, s := range salons {
		resp.Salons = append(resp.Salons, *FromDomainSalon(s))
	}
	return resp
}
