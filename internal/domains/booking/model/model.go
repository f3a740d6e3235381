package model

import (
	"patientflow/shared/model"
	"slices"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "room_bookings"
	EntityName = "booking"

	FieldID                = "id"
	FieldTenantScope       = "tenant_scope"
	FieldRoomName          = "room_name"
	FieldRoomType          = "room_type"
	FieldBookingDate       = "booking_date"
	FieldStartTime         = "start_time"
	FieldEndTime           = "end_time"
	FieldStatus            = "status"
	FieldAppointmentID     = "appointment_id"
	FieldEquipmentRequired = "equipment_required"
)

const (
	StatusBooked    = "booked"
	StatusInUse     = "in_use"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var statusTransitions = map[string][]string{
	StatusBooked: {StatusInUse, StatusCancelled},
	StatusInUse:  {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	return slices.Contains(statusTransitions[from], to)
}

// IsTerminalStatus reports whether the status admits no further transitions.
func IsTerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// RoomBooking reserves a room for a half-open [start_time, end_time) interval
// on a single calendar day. Cancelled bookings release the interval and are
// ignored by conflict checks.
type RoomBooking struct {
	ID                string         `db:"id"`
	TenantScope       string         `db:"tenant_scope"`
	RoomName          string         `db:"room_name"`
	RoomType          string         `db:"room_type"`
	BookingDate       time.Time      `db:"booking_date"`
	StartTime         time.Time      `db:"start_time"`
	EndTime           time.Time      `db:"end_time"`
	Status            string         `db:"status"`
	AppointmentID     string         `db:"appointment_id"`
	EquipmentRequired pq.StringArray `db:"equipment_required"`
	model.Metadata
}
