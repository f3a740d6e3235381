package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"patientflow/infras/otel"
	"patientflow/infras/postgres"
	"patientflow/shared/constant"
	"patientflow/shared/dto"
	"patientflow/shared/logger"
	"reflect"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	errRequiredFilter = errors.New("required filter")
)

type column struct {
	name  string
	table string
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entitas       string
	primaryColumn string
	columns       []column
	InsertColumns []string
}

func NewRepository[T any](entitasName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	reflectType := reflect.TypeOf(zero)
	columns, insertColumns := getColumns(tableName, reflectType)

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
		columns:       columns,
		InsertColumns: insertColumns,
	}
}

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation, the store-layer signal for duplicate records.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
	}

	return false
}

// IsExclusionViolation reports whether err is a postgres exclusion constraint
// violation, the store-layer signal for overlapping bookings.
func IsExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeExclusionViolation
	}

	return false
}

func (repo *Repository[T]) insert(ctx context.Context, exec execer, model T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.insert", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	placeholders := []string{}

	for _, col := range repo.InsertColumns {
		placeholders = append(placeholders, ":"+col)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := exec.NamedExecContext(ctx, query, model)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", repo.entitas, err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.insert(ctx, repo.db.Write, model) //nolint:wrapcheck
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.InsertTx", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.insert(ctx, sqltx, model) //nolint:wrapcheck
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Exist", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	exist := false

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check exist data (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &exist, args)

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check exist data (%s): %w", repo.entitas, err)
	}

	return exist, nil
}

func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	selectQuery := repo.getSelectQuery(ctx, columns...)

	query := fmt.Sprintf("SELECT %s FROM %s %s", selectQuery, repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var model T

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, fmt.Errorf("failed to prepare statement (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &model, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, fmt.Errorf("failed to get data (%s): %w", repo.entitas, err)
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.getAll(ctx, repo.db.Read, params, filter, columns...)
}

// GetAllForUpdate runs the same listing query against the write connection.
// Mutating decision points (conflict checks, call-next selection) must not
// read a stale replica.
func (repo *Repository[T]) GetAllForUpdate(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAllForUpdate", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.getAll(ctx, repo.db.Write, params, filter, columns...)
}

func (repo *Repository[T]) getAll(ctx context.Context, db *sqlx.DB, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	where, args := repo.BuildWhereClause(ctx, filter)
	selectQuery := repo.getSelectQuery(ctx, columns...)

	var ordering, pagination string

	page := params.Page
	limit := params.Limit

	if page > 0 && limit > 0 {
		args["limit"] = limit
		args["offset"] = (page - 1) * limit

		pagination = "LIMIT :limit OFFSET :offset"
	} else if limit > 0 {
		args["limit"] = limit

		pagination = "LIMIT :limit"
	}

	if params.SortBy != "" && params.SortDir != "" {
		ordering = fmt.Sprintf("ORDER BY %s %s", params.SortBy, params.SortDir)
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s", selectQuery, repo.table, where, ordering, pagination)

	var models []T

	prepare, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return models, fmt.Errorf("failed to prepare statement (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &models, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return models, fmt.Errorf("failed to get all data (%s): %w", repo.entitas, err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Count", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s", repo.table, repo.primaryColumn, repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to prepare statement (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &count, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", repo.entitas, err)
	}

	return count, nil
}

func (repo *Repository[T]) delete(ctx context.Context, exec execer, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.delete", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s %s", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := exec.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", repo.entitas, err)
	}

	return nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Delete", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.delete(ctx, repo.db.Write, filter) //nolint:wrapcheck
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.DeleteTx", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	return repo.delete(ctx, sqltx, filter) //nolint:wrapcheck
}

func (repo *Repository[T]) update(ctx context.Context, exec execer, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".update")
	defer scope.End()

	updateField := []string{}

	for col := range maps.Keys(mod) {
		updateField = append(updateField, fmt.Sprintf("%s = :%s", col, col))
	}

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	updateQuery := strings.Join(updateField, ", ")
	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, updateQuery, where)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)
	maps.Copy(args, mod)

	_, err := exec.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", repo.entitas, err)
	}

	return nil
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Update")
	defer scope.End()

	return repo.update(ctx, repo.db.Write, mod, filter) //nolint:wrapcheck
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".UpdateTx")
	defer scope.End()

	return repo.update(ctx, sqltx, mod, filter) //nolint:wrapcheck
}

func (repo *Repository[T]) getSelectQuery(ctx context.Context, columnsParam ...string) string {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.getSelectQuery", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	columns := []string{}
	for _, col := range repo.columns {
		if len(columnsParam) > 0 && !slices.Contains(columnsParam, col.name) {
			continue
		}

		if col.table == "" {
			columns = append(columns, col.name)
		} else {
			columns = append(columns, fmt.Sprintf("%s.%s", col.table, col.name))
		}
	}

	return strings.Join(columns, ", ")
}

func (repo *Repository[T]) BuildWhereClause(ctx context.Context, filter dto.FilterGroup) (string, map[string]any) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.BuildWhereClause", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	where, args := filter.GetWhereClause()

	if where == "" {
		return where, map[string]any{}
	}

	return fmt.Sprintf(" WHERE %s ", where), args
}

func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)
		dbTag := field.Tag.Get("db")

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			col, insertCol := getColumns(table, field.Type)
			columns = append(columns, col...)
			insertColumns = append(insertColumns, insertCol...)
		}

		if dbTag == "" || dbTag == "-" {
			continue
		}

		insertColumns = append(insertColumns, dbTag)
		columns = append(columns, column{name: dbTag, table: table})
	}

	return columns, insertColumns
}
