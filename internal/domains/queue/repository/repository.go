package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"patientflow/infras/otel"
	"patientflow/infras/postgres"
	"patientflow/internal/domains/queue/model"
	gDto "patientflow/shared/dto"
	gRepo "patientflow/shared/repository"
)

type VisitQueue interface {
	Insert(ctx context.Context, model model.VisitQueueEntry) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.VisitQueueEntry, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.VisitQueueEntry, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetCurrent(ctx context.Context, id string) (model.VisitQueueEntry, error)
	ActiveEntries(ctx context.Context, tenantScope, department string) ([]model.VisitQueueEntry, error)
	ActiveForPatient(ctx context.Context, tenantScope, patientID, department string) ([]model.VisitQueueEntry, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.VisitQueueEntry]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) VisitQueue {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.VisitQueueEntry](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetCurrent fetches one entry through the write connection so transition
// decisions never act on a stale replica row.
func (repo *repositoryImpl) GetCurrent(ctx context.Context, id string) (model.VisitQueueEntry, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	entries, err := repo.GetAllForUpdate(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return model.VisitQueueEntry{}, err
	}

	if len(entries) == 0 {
		return model.VisitQueueEntry{}, nil
	}

	return entries[0], nil
}

func activeFilter(tenantScope string, extra ...gDto.Filter) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldTenantScope,
			Value:    tenantScope,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldStatus,
			Value:    model.ActiveStatuses(),
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		},
	}

	for _, f := range extra {
		filters = append(filters, f)
	}

	return gDto.FilterGroup{Filters: filters}
}

// ActiveEntries lists the non-terminal entries for a department, read through
// the write connection for the call-next decision.
func (repo *repositoryImpl) ActiveEntries(ctx context.Context, tenantScope, department string) ([]model.VisitQueueEntry, error) {
	filter := activeFilter(tenantScope, gDto.Filter{
		Field:    model.FieldDepartment,
		Value:    department,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	return repo.GetAllForUpdate(ctx, gDto.QueryParams{}, filter)
}

// ActiveForPatient lists a patient's non-terminal entries in a department,
// read through the write connection for the duplicate check-in decision.
func (repo *repositoryImpl) ActiveForPatient(ctx context.Context, tenantScope, patientID, department string) ([]model.VisitQueueEntry, error) {
	filter := activeFilter(tenantScope,
		gDto.Filter{
			Field:    model.FieldPatientID,
			Value:    patientID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldDepartment,
			Value:    department,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
	)

	return repo.GetAllForUpdate(ctx, gDto.QueryParams{}, filter)
}
