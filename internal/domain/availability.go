package domain

// SeatStatus is the occupancy of one seat in one slot
type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
)

// SeatAvailability is one cell of the availability grid
type SeatAvailability struct {
	SeatNumber int
	Status     SeatStatus
}

// SlotAvailability lists every seat of a slot in ascending seat order
type SlotAvailability struct {
	TimeSlot string
	Seats    []SeatAvailability
}

// BuildAvailability computes the seat grid of a day.
// Slots keep the declared order. Cancelled bookings are skipped. Bookings
// whose slot or seat is not part of the day are returned as stale and do
// not affect the grid.
func BuildAvailability(day *DaySchedule, bookings []*Booking) ([]SlotAvailability, []*Booking) {
	type cell struct {
		slot string
		seat int
	}

	booked := make(map[cell]struct{}, len(bookings))
	var stale []*Booking

	for _, b := range bookings {
		if !b.OccupiesGrid() {
			continue
		}
		if !day.HasSlot(b.TimeSlot) || !day.HasSeat(b.SeatNumber) {
			stale = append(stale, b)
			continue
		}
		booked[cell{slot: b.TimeSlot, seat: b.SeatNumber}] = struct{}{}
	}

	seatsPerSlot := day.TotalSeats
	if seatsPerSlot < 0 {
		seatsPerSlot = 0
	}

	grid := make([]SlotAvailability, 0, len(day.TimeSlots))
	for _, slot := range day.TimeSlots {
		seats := make([]SeatAvailability, 0, seatsPerSlot)
		for seat := 1; seat <= seatsPerSlot; seat++ {
			status := SeatAvailable
			if _, ok := booked[cell{slot: slot, seat: seat}]; ok {
				status = SeatBooked
			}
			seats = append(seats, SeatAvailability{SeatNumber: seat, Status: status})
		}
		grid = append(grid, SlotAvailability{TimeSlot: slot, Seats: seats})
	}

	return grid, stale
}
