package dto

import (
	"patientflow/internal/domains/booking/model"
	"patientflow/shared"
	"patientflow/shared/constant"
	gDto "patientflow/shared/dto"
	gModel "patientflow/shared/model"
	"patientflow/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateRoomBookingRequest struct {
	TenantScope       string   `json:"tenant_scope"       validate:"required,max=100"`
	RoomName          string   `json:"room_name"          validate:"required,max=100"`
	RoomType          string   `json:"room_type"          validate:"omitempty,max=50"`
	BookingDate       string   `json:"booking_date"       validate:"required"`
	StartTime         string   `json:"start_time"         validate:"required"`
	EndTime           string   `json:"end_time"           validate:"required"`
	AppointmentID     string   `json:"appointment_id"     validate:"omitempty,max=100"`
	EquipmentRequired []string `json:"equipment_required" validate:"omitempty"`
}

func (c *CreateRoomBookingRequest) ToModel(user string) (model.RoomBooking, error) {
	bookingDate, err := time.Parse(constant.BookingDateFormat, c.BookingDate)
	if err != nil {
		return model.RoomBooking{}, err
	}

	startTime, err := time.Parse(constant.ClockFormat, c.StartTime)
	if err != nil {
		return model.RoomBooking{}, err
	}

	endTime, err := time.Parse(constant.ClockFormat, c.EndTime)
	if err != nil {
		return model.RoomBooking{}, err
	}

	return model.RoomBooking{
		ID:                uuid.NewString(),
		TenantScope:       c.TenantScope,
		RoomName:          c.RoomName,
		RoomType:          c.RoomType,
		BookingDate:       bookingDate,
		StartTime:         startTime,
		EndTime:           endTime,
		Status:            model.StatusBooked,
		AppointmentID:     c.AppointmentID,
		EquipmentRequired: c.EquipmentRequired,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateRoomBookingRequest struct {
	RoomName          string   `db:"room_name"          json:"room_name"          validate:"omitempty,max=100"`
	RoomType          string   `db:"room_type"          json:"room_type"          validate:"omitempty,max=50"`
	BookingDate       string   `json:"booking_date"     validate:"omitempty"`
	StartTime         string   `json:"start_time"       validate:"omitempty"`
	EndTime           string   `json:"end_time"         validate:"omitempty"`
	Status            string   `db:"status"             json:"status"             validate:"omitempty,oneof=booked in_use completed cancelled"`
	AppointmentID     string   `db:"appointment_id"     json:"appointment_id"     validate:"omitempty,max=100"`
	EquipmentRequired []string `json:"equipment_required" validate:"omitempty"`
}

// ChangesSlot reports whether the request moves the booking to another room,
// day, or interval, which forces a fresh conflict check.
func (u *UpdateRoomBookingRequest) ChangesSlot() bool {
	return u.RoomName != "" || u.BookingDate != "" || u.StartTime != "" || u.EndTime != ""
}

type RoomBookingResponse struct {
	ID                string   `json:"id"`
	TenantScope       string   `json:"tenant_scope"`
	RoomName          string   `json:"room_name"`
	RoomType          string   `json:"room_type,omitempty"`
	BookingDate       string   `json:"booking_date"`
	StartTime         string   `json:"start_time"`
	EndTime           string   `json:"end_time"`
	Status            string   `json:"status"`
	AppointmentID     string   `json:"appointment_id,omitempty"`
	EquipmentRequired []string `json:"equipment_required,omitempty"`
	gDto.Metadata
}

func (r *RoomBookingResponse) FromModel(mod model.RoomBooking) {
	r.ID = mod.ID
	r.TenantScope = mod.TenantScope
	r.RoomName = mod.RoomName
	r.RoomType = mod.RoomType
	r.BookingDate = mod.BookingDate.Format(constant.BookingDateFormat)
	r.StartTime = mod.StartTime.Format(constant.ClockFormat)
	r.EndTime = mod.EndTime.Format(constant.ClockFormat)
	r.Status = mod.Status
	r.AppointmentID = mod.AppointmentID
	r.EquipmentRequired = mod.EquipmentRequired
	r.Metadata.FromModel(mod.Metadata)
}

type GetRoomBookingsResponse struct {
	Bookings  []RoomBookingResponse `json:"bookings"`
	TotalPage int                   `json:"total_page"`
	TotalData int                   `json:"total_data"`
}

func (r *GetRoomBookingsResponse) FromModels(models []model.RoomBooking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]RoomBookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
