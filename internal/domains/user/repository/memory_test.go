package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asteria/internal/domains/user/model"
	"asteria/internal/domains/user/repository"
	"asteria/shared/constant"
	gDto "asteria/shared/dto"
)

func seedUser(t *testing.T, repo repository.User, id, email, role string) {
	t.Helper()

	err := repo.Insert(context.Background(), model.User{
		ID:       id,
		FullName: "User " + id,
		Email:    email,
		Password: "hashed",
		Role:     role,
	})
	require.NoError(t, err)
}

func TestMemoryUserRepository_CRUD(t *testing.T) {
	repo := repository.NewMemory()
	ctx := context.Background()

	seedUser(t, repo, "u1", "one@example.com", constant.RoleAdmin)
	seedUser(t, repo, "u2", "two@example.com", constant.RoleUser)

	emailFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    "one@example.com",
				Table:    model.TableName,
			},
		},
	}

	exists, err := repo.Exist(ctx, emailFilter)
	assert.NoError(t, err)
	assert.True(t, exists)

	user, err := repo.Get(ctx, emailFilter)
	assert.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	count, err := repo.Count(ctx, gDto.FilterGroup{})
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	users, err := repo.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 1}, gDto.FilterGroup{})
	assert.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestMemoryUserRepository_DeleteGuarded(t *testing.T) {
	t.Run("refuses to delete the last admin", func(t *testing.T) {
		repo := repository.NewMemory()
		seedUser(t, repo, "u1", "one@example.com", constant.RoleAdmin)
		seedUser(t, repo, "u2", "two@example.com", constant.RoleUser)

		deleted, err := repo.DeleteGuarded(context.Background(), "u1")

		assert.NoError(t, err)
		assert.False(t, deleted)

		count, _ := repo.Count(context.Background(), gDto.FilterGroup{})
		assert.Equal(t, 2, count)
	})

	t.Run("deletes an admin when another remains", func(t *testing.T) {
		repo := repository.NewMemory()
		seedUser(t, repo, "u1", "one@example.com", constant.RoleAdmin)
		seedUser(t, repo, "u2", "two@example.com", constant.RoleAdmin)

		deleted, err := repo.DeleteGuarded(context.Background(), "u1")

		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("deletes a regular user freely", func(t *testing.T) {
		repo := repository.NewMemory()
		seedUser(t, repo, "u1", "one@example.com", constant.RoleAdmin)
		seedUser(t, repo, "u2", "two@example.com", constant.RoleUser)

		deleted, err := repo.DeleteGuarded(context.Background(), "u2")

		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("missing user reports no deletion", func(t *testing.T) {
		repo := repository.NewMemory()

		deleted, err := repo.DeleteGuarded(context.Background(), "missing")

		assert.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("concurrent deletes keep at least one admin", func(t *testing.T) {
		repo := repository.NewMemory()
		seedUser(t, repo, "u1", "one@example.com", constant.RoleAdmin)
		seedUser(t, repo, "u2", "two@example.com", constant.RoleAdmin)

		var wg sync.WaitGroup
		for _, id := range []string{"u1", "u2"} {
			wg.Add(1)

			go func(id string) {
				defer wg.Done()
				_, _ = repo.DeleteGuarded(context.Background(), id)
			}(id)
		}

		wg.Wait()

		admins, err := repo.Count(context.Background(), gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    model.FieldRole,
					Operator: gDto.FilterOperatorEq,
					Value:    constant.RoleAdmin,
					Table:    model.TableName,
				},
			},
		})

		assert.NoError(t, err)
		assert.GreaterOrEqual(t, admins, 1)
	})
}

func TestMemoryUserRepository_UpdateGuarded(t *testing.T) {
	t.Run("refuses to demote the last admin", func(t *testing.T) {
		repo := repository.NewMemory()
		seedUser(t, repo, "u1", "one@example.com", constant.RoleAdmin)

		updated, err := repo.UpdateGuarded(context.Background(), map[string]any{
			model.FieldRole: constant.RoleUser,
		}, "u1")

		assert.NoError(t, err)
		assert.False(t, updated)

		user, _ := repo.Get(context.Background(), gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: "u1", Table: model.TableName},
			},
		})
		assert.Equal(t, constant.RoleAdmin, user.Role)
	})

	t.Run("demotes an admin when another remains", func(t *testing.T) {
		repo := repository.NewMemory()
		seedUser(t, repo, "u1", "one@example.com", constant.RoleAdmin)
		seedUser(t, repo, "u2", "two@example.com", constant.RoleAdmin)

		updated, err := repo.UpdateGuarded(context.Background(), map[string]any{
			model.FieldRole: constant.RoleUser,
		}, "u1")

		assert.NoError(t, err)
		assert.True(t, updated)
	})

	t.Run("non-role updates always apply", func(t *testing.T) {
		repo := repository.NewMemory()
		seedUser(t, repo, "u1", "one@example.com", constant.RoleAdmin)

		updated, err := repo.UpdateGuarded(context.Background(), map[string]any{
			model.FieldFullName: "Renamed",
		}, "u1")

		assert.NoError(t, err)
		assert.True(t, updated)

		user, _ := repo.Get(context.Background(), gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: "u1", Table: model.TableName},
			},
		})
		assert.Equal(t, "Renamed", user.FullName)
	})
}
