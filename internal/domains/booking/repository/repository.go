package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dwell/infras/otel"
	"dwell/infras/postgres"
	"dwell/internal/domains/booking/model"
	"dwell/shared/constant"
	gDto "dwell/shared/dto"
	"dwell/shared/logger"
	gRepo "dwell/shared/repository"
)

// ErrApprovedBookingExists reports that the target room already carries an
// approved booking, observed atomically by the insert statement itself.
var ErrApprovedBookingExists = errors.New("room already has an approved booking")

type Booking interface {
	InsertPending(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// InsertPending inserts the booking and the approved-room check as one
// statement, so two concurrent requests can never both slip past the check.
// Zero affected rows means the room is taken.
func (r *repositoryImpl) InsertPending(ctx context.Context, booking model.Booking) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".InsertPending")
	defer scope.End()

	placeholders := make([]string, len(r.InsertColumns))
	for i, col := range r.InsertColumns {
		placeholders[i] = ":" + col
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT %s WHERE NOT EXISTS (SELECT 1 FROM %s WHERE %s = :%s AND %s = '%s')",
		model.TableName,
		strings.Join(r.InsertColumns, ", "),
		strings.Join(placeholders, ", "),
		model.TableName,
		model.FieldRoomID, model.FieldRoomID,
		model.FieldStatus, constant.BookingStatusApproved,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := r.db.Write.NamedExecContext(ctx, query, booking)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	if affected == 0 {
		return ErrApprovedBookingExists
	}

	return nil
}
