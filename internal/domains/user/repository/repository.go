package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"asteria/infras/otel"
	"asteria/infras/postgres"
	"asteria/internal/domains/user/model"
	"asteria/shared/constant"
	gDto "asteria/shared/dto"
	"asteria/shared/logger"
	gRepo "asteria/shared/repository"
	"context"
	"fmt"
	"maps"
	"strings"
)

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteGuarded(ctx context.Context, id string) (bool, error)
	UpdateGuarded(ctx context.Context, req map[string]any, id string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// DeleteGuarded removes a user unless it is the last remaining admin. The
// guard lives inside one conditional statement so no concurrent delete
// can slip between a read and the write. Returns whether a row was
// removed.
func (repo *repositoryImpl) DeleteGuarded(ctx context.Context, id string) (deleted bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.DeleteGuarded")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = :id AND (%s != :admin_role OR (SELECT COUNT(*) FROM %s WHERE %s = :admin_role AND %s != :id) > 0)",
		model.TableName, model.FieldID, model.FieldRole, model.TableName, model.FieldRole, model.FieldID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{
		"id":         id,
		"admin_role": constant.RoleAdmin,
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to delete user (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected > 0, nil
}

// UpdateGuarded applies a partial update, refusing a role change that
// would demote the last remaining admin. The check rides in the UPDATE's
// WHERE clause for the same atomicity as DeleteGuarded. Returns whether a
// row was updated.
func (repo *repositoryImpl) UpdateGuarded(ctx context.Context, req map[string]any, id string) (updated bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.UpdateGuarded")
	defer scope.End()
	defer scope.TraceIfError(err)

	updateField := []string{}
	for col := range maps.Keys(req) {
		updateField = append(updateField, fmt.Sprintf("%s = :%s", col, col))
	}

	guard := ""

	newRole, changesRole := req[model.FieldRole].(string)
	if changesRole && newRole != constant.RoleAdmin {
		guard = fmt.Sprintf(
			" AND (%s != :admin_role OR (SELECT COUNT(*) FROM %s WHERE %s = :admin_role AND %s != :id) > 0)",
			model.FieldRole, model.TableName, model.FieldRole, model.FieldID,
		)
	}

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = :id%s",
		model.TableName, strings.Join(updateField, ", "), model.FieldID, guard,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"id":         id,
		"admin_role": constant.RoleAdmin,
	}
	maps.Copy(args, req)

	result, err := repo.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to update user (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected > 0, nil
}
