package model

import (
	"patientflow/shared/model"
	"slices"
	"time"
)

const (
	TableName  = "visit_queue_entries"
	EntityName = "queue_entry"

	FieldID            = "id"
	FieldTenantScope   = "tenant_scope"
	FieldPatientID     = "patient_id"
	FieldAppointmentID = "appointment_id"
	FieldDepartment    = "department"
	FieldServiceType   = "service_type"
	FieldPriority      = "priority"
	FieldStage         = "stage"
	FieldStatus        = "status"
	FieldRoomNumber    = "room_number"
	FieldEnqueuedAt    = "enqueued_at"
	FieldCalledAt      = "called_at"
	FieldCompletedAt   = "completed_at"
	FieldNotes         = "notes"
)

const (
	StatusWaiting    = "waiting"
	StatusCalled     = "called"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no_show"
)

// Typical care-path stages. Stage is free-form so clinics can insert extra
// steps (lab, imaging) without a schema change.
const (
	StageRegistration = "registration"
	StageTriage       = "triage"
	StageConsultation = "consultation"
	StageDischarge    = "discharge"
)

var statusTransitions = map[string][]string{
	StatusWaiting:    {StatusCalled, StatusCancelled},
	StatusCalled:     {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether an entry may move from one status to another.
func CanTransition(from, to string) bool {
	return slices.Contains(statusTransitions[from], to)
}

// IsTerminalStatus reports whether the status admits no further transitions.
func IsTerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusCancelled || status == StatusNoShow
}

// IsActiveStatus reports whether the entry still occupies a place in the
// queue. Stage changes are only allowed while the entry is active.
func IsActiveStatus(status string) bool {
	return status == StatusWaiting || status == StatusCalled || status == StatusInProgress
}

// ActiveStatuses lists the non-terminal statuses, for snapshot filters.
func ActiveStatuses() []string {
	return []string{StatusWaiting, StatusCalled, StatusInProgress}
}

// VisitQueueEntry is one patient's place in a department queue. Status tracks
// queue position lifecycle; stage tracks progress through the care path. The
// two are orthogonal: a patient can be in_progress while still at triage.
type VisitQueueEntry struct {
	ID            string     `db:"id"`
	TenantScope   string     `db:"tenant_scope"`
	PatientID     string     `db:"patient_id"`
	AppointmentID string     `db:"appointment_id"`
	Department    string     `db:"department"`
	ServiceType   string     `db:"service_type"`
	Priority      int        `db:"priority"`
	Stage         string     `db:"stage"`
	Status        string     `db:"status"`
	RoomNumber    string     `db:"room_number"`
	EnqueuedAt    time.Time  `db:"enqueued_at"`
	CalledAt      *time.Time `db:"called_at"`
	CompletedAt   *time.Time `db:"completed_at"`
	Notes         string     `db:"notes"`
	model.Metadata
}
