package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"

	"dwell/infras/otel"
	"dwell/infras/postgres"
	"dwell/internal/domains/hostel/model"
	userModel "dwell/internal/domains/user/model"
	"dwell/shared/constant"
	gDto "dwell/shared/dto"
	"dwell/shared/logger"
	gRepo "dwell/shared/repository"
)

// ErrCustodianRoleMismatch reports that the assigned custodian id does not
// resolve to a user with the custodian role, observed by the write statement
// itself.
var ErrCustodianRoleMismatch = errors.New("assigned user does not have the custodian role")

type Hostel interface {
	Insert(ctx context.Context, model model.Hostel) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Hostel, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Hostel, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateWithCustodian(ctx context.Context, req map[string]any, filter gDto.FilterGroup, custodianID string) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Hostel]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Hostel {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Hostel](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func custodianGuardClause() string {
	return fmt.Sprintf(
		"EXISTS (SELECT 1 FROM %s WHERE %s = :%s AND %s = '%s')",
		userModel.TableName,
		userModel.FieldID, model.FieldCustodianID,
		userModel.FieldRole, constant.RoleCustodian,
	)
}

// Insert writes the hostel only when its custodian reference resolves to a
// user carrying the custodian role. The service validates the same predicate
// before calling; this statement re-checks it at the store so a stale or
// bypassed check can never persist a mismatched assignment.
func (r *repositoryImpl) Insert(ctx context.Context, hostel model.Hostel) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Insert")
	defer scope.End()

	placeholders := make([]string, len(r.InsertColumns))
	for i, col := range r.InsertColumns {
		placeholders[i] = ":" + col
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT %s WHERE %s",
		model.TableName,
		strings.Join(r.InsertColumns, ", "),
		strings.Join(placeholders, ", "),
		custodianGuardClause(),
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := r.db.Write.NamedExecContext(ctx, query, hostel)
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
		return ErrCustodianRoleMismatch
	}

	return nil
}

// UpdateWithCustodian applies the update only when the new custodian id
// carries the custodian role, same guard as Insert. Callers verify the hostel
// exists beforehand, so zero affected rows means the guard rejected the
// assignment.
func (r *repositoryImpl) UpdateWithCustodian(ctx context.Context, req map[string]any, filter gDto.FilterGroup, custodianID string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".UpdateWithCustodian")
	defer scope.End()

	updateField := make([]string, 0, len(req))
	for col := range maps.Keys(req) {
		updateField = append(updateField, fmt.Sprintf("%s = :%s", col, col))
	}

	where, args := r.BuildWhereClause(ctx, filter)
	if where == "" {
		return fmt.Errorf("failed to update data (%s): filter is required", model.EntityName)
	}

	query := fmt.Sprintf(
		"UPDATE %s SET %s %s AND %s",
		model.TableName,
		strings.Join(updateField, ", "),
		where,
		custodianGuardClause(),
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	maps.Copy(args, req)
	args[model.FieldCustodianID] = custodianID

	result, err := r.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	if affected == 0 {
		return ErrCustodianRoleMismatch
	}

	return nil
}
