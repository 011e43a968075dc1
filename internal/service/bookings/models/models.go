package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	Actor  domain.Actor
	UserID int64
	Status *string
}

// GetSalonBookingsRequest запрос на получение бронирований салона
type GetSalonBookingsRequest struct {
	SalonID   int64
	StartDate *time.Time // Начало периода (опционально)
	EndDate   *time.Time // Конец периода (опционально)
	Status    *string    // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSalonBookingsRequest) ToDomainFilter() (domain.SalonBookingsFilter, error) {
	filter := domain.SalonBookingsFilter{
		SalonID:   r.SalonID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	SalonID     int64   `json:"salonId"`
	BookingDate string  `json:"date"` // "2025-10-15"
	TimeSlot    string  `json:"timeSlot"`
	SeatNumber  int     `json:"seatNumber"`
	Service     *string `json:"service,omitempty"`
	Status      string  `json:"status"`

	PaymentStatus    string  `json:"paymentStatus"`
	PaymentReference *string `json:"paymentReference,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// StatusChangeResponse запись истории статусов
type StatusChangeResponse struct {
	FromStatus *string   `json:"fromStatus"`
	ToStatus   string    `json:"toStatus"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HistoryResponse история статусов бронирования
type HistoryResponse struct {
	BookingID int64                  `json:"bookingId"`
	History   []StatusChangeResponse `json:"history"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		SalonID:            b.SalonID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		TimeSlot:           b.TimeSlot,
		SeatNumber:         b.SeatNumber,
		Service:            b.Service,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		PaymentReference:   b.PaymentReference,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainHistory конвертирует историю статусов в DTO
func FromDomainHistory(bookingID int64, changes []*domain.BookingStatusChange) *HistoryResponse {
	resp := &HistoryResponse{
		BookingID: bookingID,
		History:   make([]StatusChangeResponse, 0, len(changes)),
	}

	for _, c := range changes {
		item := StatusChangeResponse{
			ToStatus:  string(c.ToStatus),
			Reason:    c.Reason,
			CreatedAt: c.CreatedAt,
		}
		if c.FromStatus != nil {
			from := string(*c.FromStatus)
			item.FromStatus = &from
		}
		resp.History = append(resp.History, item)
	}

	return resp
}
