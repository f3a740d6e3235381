package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"patientflow/infras/otel"
	"patientflow/infras/postgres"
	"patientflow/internal/domains/booking/model"
	gDto "patientflow/shared/dto"
	gRepo "patientflow/shared/repository"
)

type RoomBooking interface {
	Insert(ctx context.Context, model model.RoomBooking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RoomBooking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomBooking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetCurrent(ctx context.Context, id string) (model.RoomBooking, error)
	ActiveForSlot(ctx context.Context, tenantScope, roomName, bookingDate string) ([]model.RoomBooking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.RoomBooking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) RoomBooking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.RoomBooking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetCurrent fetches one booking through the write connection so slot and
// status decisions never act on a stale replica row.
func (repo *repositoryImpl) GetCurrent(ctx context.Context, id string) (model.RoomBooking, error) {
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

	bookings, err := repo.GetAllForUpdate(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return model.RoomBooking{}, err
	}

	if len(bookings) == 0 {
		return model.RoomBooking{}, nil
	}

	return bookings[0], nil
}

// ActiveForSlot lists the non-cancelled bookings competing for one
// (tenant scope, room, day) slot, read through the write connection.
func (repo *repositoryImpl) ActiveForSlot(ctx context.Context, tenantScope, roomName, bookingDate string) ([]model.RoomBooking, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTenantScope,
				Value:    tenantScope,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldRoomName,
				Value:    roomName,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldBookingDate,
				Value:    bookingDate,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusCancelled,
				Operator: gDto.FilterOperatorNotEq,
				Table:    model.TableName,
			},
		},
	}

	return repo.GetAllForUpdate(ctx, gDto.QueryParams{}, filter)
}
