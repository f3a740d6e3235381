package dto

import (
	"patientflow/internal/domains/queue/model"
	"patientflow/shared"
	"patientflow/shared/constant"
	gDto "patientflow/shared/dto"
	gModel "patientflow/shared/model"
	"patientflow/shared/timezone"

	"github.com/google/uuid"
)

type CheckInRequest struct {
	TenantScope   string `json:"tenant_scope"   validate:"required,max=100"`
	PatientID     string `json:"patient_id"     validate:"required,max=100"`
	Department    string `json:"department"     validate:"required,max=100"`
	AppointmentID string `json:"appointment_id" validate:"omitempty,max=100"`
	Priority      int    `json:"priority"       validate:"omitempty,min=1,max=9"`
	ServiceType   string `json:"service_type"   validate:"omitempty,max=100"`
	Notes         string `json:"notes"          validate:"omitempty"`
}

func (c *CheckInRequest) ToModel(user string) model.VisitQueueEntry {
	priority := c.Priority
	if priority == 0 {
		priority = constant.DefaultValuePriority
	}

	return model.VisitQueueEntry{
		ID:            uuid.NewString(),
		TenantScope:   c.TenantScope,
		PatientID:     c.PatientID,
		AppointmentID: c.AppointmentID,
		Department:    c.Department,
		ServiceType:   c.ServiceType,
		Priority:      priority,
		Stage:         model.StageRegistration,
		Status:        model.StatusWaiting,
		EnqueuedAt:    timezone.Now(),
		Notes:         c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateStatusRequest struct {
	Status     string `json:"status"      validate:"required,oneof=waiting called in_progress completed cancelled no_show"`
	RoomNumber string `json:"room_number" validate:"omitempty,max=50"`
}

type UpdateStageRequest struct {
	Stage      string `json:"stage"       validate:"required,max=100"`
	RoomNumber string `json:"room_number" validate:"omitempty,max=50"`
}

type CallNextRequest struct {
	TenantScope string `json:"tenant_scope" validate:"required,max=100"`
	Department  string `json:"department"   validate:"required,max=100"`
	RoomNumber  string `json:"room_number"  validate:"omitempty,max=50"`
}

type QueueEntryResponse struct {
	ID            string `json:"id"`
	TenantScope   string `json:"tenant_scope"`
	PatientID     string `json:"patient_id"`
	AppointmentID string `json:"appointment_id,omitempty"`
	Department    string `json:"department"`
	ServiceType   string `json:"service_type,omitempty"`
	Priority      int    `json:"priority"`
	Stage         string `json:"stage"`
	Status        string `json:"status"`
	RoomNumber    string `json:"room_number,omitempty"`
	EnqueuedAt    string `json:"enqueued_at"`
	CalledAt      string `json:"called_at,omitempty"`
	CompletedAt   string `json:"completed_at,omitempty"`
	Notes         string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *QueueEntryResponse) FromModel(mod model.VisitQueueEntry) {
	r.ID = mod.ID
	r.TenantScope = mod.TenantScope
	r.PatientID = mod.PatientID
	r.AppointmentID = mod.AppointmentID
	r.Department = mod.Department
	r.ServiceType = mod.ServiceType
	r.Priority = mod.Priority
	r.Stage = mod.Stage
	r.Status = mod.Status
	r.RoomNumber = mod.RoomNumber
	r.EnqueuedAt = timezone.Format(mod.EnqueuedAt, constant.DateFormat)

	if mod.CalledAt != nil {
		r.CalledAt = timezone.Format(*mod.CalledAt, constant.DateFormat)
	}

	if mod.CompletedAt != nil {
		r.CompletedAt = timezone.Format(*mod.CompletedAt, constant.DateFormat)
	}

	r.Notes = mod.Notes
	r.Metadata.FromModel(mod.Metadata)
}

type GetQueueEntriesResponse struct {
	Entries   []QueueEntryResponse `json:"entries"`
	TotalPage int                  `json:"total_page"`
	TotalData int                  `json:"total_data"`
}

func (r *GetQueueEntriesResponse) FromModels(models []model.VisitQueueEntry, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Entries = make([]QueueEntryResponse, len(models))
	for i, mod := range models {
		r.Entries[i].FromModel(mod)
	}
}

type SnapshotResponse struct {
	Entries []QueueEntryResponse `json:"entries"`
}

func (r *SnapshotResponse) FromModels(models []model.VisitQueueEntry) {
	r.Entries = make([]QueueEntryResponse, len(models))
	for i, mod := range models {
		r.Entries[i].FromModel(mod)
	}
}

type StatsResponse struct {
	WaitingCount   int     `json:"waiting_count"`
	CalledCount    int     `json:"called_count"`
	AvgWaitSeconds float64 `json:"avg_wait_seconds"`
}
