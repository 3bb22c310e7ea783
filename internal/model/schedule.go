package model

// Activity is a scheduled venue event shown on the activities calendar.
type Activity struct {
	ID             string `json:"id" yaml:"id"`
	Title          string `json:"title" yaml:"title"`
	Date           string `json:"date" yaml:"date"` // YYYY-MM-DD
	StartTime      string `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime        string `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
	TargetAudience string `json:"target_audience" yaml:"target_audience"` // a Tier or "All"
	Color          string `json:"color" yaml:"color"`
}

// DateKey returns the literal calendar date of the activity.
func (a Activity) DateKey() string { return a.Date }

// ReservationStatus is the lifecycle state of a table reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "Pending"
	ReservationConfirmed ReservationStatus = "Confirmed"
	ReservationCancelled ReservationStatus = "Cancelled"
	ReservationCompleted ReservationStatus = "Completed"
)

// ReservationStatuses lists every status in display order.
func ReservationStatuses() []ReservationStatus {
	return []ReservationStatus{ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted}
}

// Reservation is a table booking.
type Reservation struct {
	ID           string            `json:"id" yaml:"id"`
	CustomerName string            `json:"customer_name" yaml:"customer_name"`
	Date         string            `json:"date" yaml:"date"` // YYYY-MM-DD
	Time         string            `json:"time" yaml:"time"` // HH:MM
	PartySize    int               `json:"party_size" yaml:"party_size"`
	Status       ReservationStatus `json:"status" yaml:"status"`
	TableNumber  *int              `json:"table_number,omitempty" yaml:"table_number,omitempty"`
	Notes        string            `json:"notes,omitempty" yaml:"notes,omitempty"`
	ActivityID   string            `json:"activity_id,omitempty" yaml:"activity_id,omitempty"`
}

// DateKey returns the literal calendar date of the reservation.
func (r Reservation) DateKey() string { return r.Date }

// ActivityRequest is the DTO for POST /api/activities and PUT /api/activities/:id
type ActivityRequest struct {
	Title          string `json:"title" validate:"required,notblank,max=255"`
	Date           string `json:"date" validate:"required,isodate"`
	StartTime      string `json:"start_time" validate:"omitempty,hhmm"`
	EndTime        string `json:"end_time" validate:"omitempty,hhmm"`
	Description    string `json:"description" validate:"max=2000"`
	TargetAudience string `json:"target_audience" validate:"required,audience"`
	Color          string `json:"color" validate:"required,oneof=blue green red yellow purple"`
}

// ReservationRequest is the DTO for POST /api/reservations and PUT /api/reservations/:id.
// On update an empty Status keeps the current one.
type ReservationRequest struct {
	CustomerName string            `json:"customer_name" validate:"required,notblank,max=255"`
	Date         string            `json:"date" validate:"required,isodate"`
	Time         string            `json:"time" validate:"required,hhmm"`
	PartySize    int               `json:"party_size" validate:"required,gte=1,lte=50"`
	Status       ReservationStatus `json:"status" validate:"omitempty,oneof=Pending Confirmed Cancelled Completed"`
	TableNumber  *int              `json:"table_number" validate:"omitempty,gte=1"`
	Notes        string            `json:"notes" validate:"max=1000"`
	ActivityID   string            `json:"activity_id" validate:"max=64"`
}

// UpdateReservationStatusRequest is the DTO for PATCH /api/reservations/:id/status
type UpdateReservationStatusRequest struct {
	Status ReservationStatus `json:"status" validate:"required,oneof=Pending Confirmed Cancelled Completed"`
}
