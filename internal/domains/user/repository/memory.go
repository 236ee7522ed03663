package repository

import (
	"asteria/internal/domains/user/model"
	"asteria/shared/constant"
	gDto "asteria/shared/dto"
	"context"
	"sort"
	"strings"
	"sync"
)

// memoryImpl keeps users in a map behind a single mutex. Holding the lock
// across the admin count and the mutation gives the last-admin guard the
// same atomicity the conditional SQL provides on the live backend.
type memoryImpl struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemory() User {
	return &memoryImpl{
		users: make(map[string]model.User),
	}
}

func (repo *memoryImpl) Insert(_ context.Context, user model.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.users[user.ID] = user

	return nil
}

func (repo *memoryImpl) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, user := range repo.sorted() {
		if matches(user, filter) {
			return user, nil
		}
	}

	return model.User{}, nil
}

func (repo *memoryImpl) GetAll(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	matched := []model.User{}
	for _, user := range repo.sorted() {
		if matches(user, filter) {
			matched = append(matched, user)
		}
	}

	if params.Limit > 0 {
		offset := 0
		if params.Page > 0 {
			offset = (params.Page - 1) * params.Limit
		}

		if offset >= len(matched) {
			return []model.User{}, nil
		}

		end := offset + params.Limit
		if end > len(matched) {
			end = len(matched)
		}

		matched = matched[offset:end]
	}

	return matched, nil
}

func (repo *memoryImpl) Exist(_ context.Context, filter gDto.FilterGroup) (bool, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, user := range repo.users {
		if matches(user, filter) {
			return true, nil
		}
	}

	return false, nil
}

func (repo *memoryImpl) Count(_ context.Context, filter gDto.FilterGroup) (int, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	count := 0
	for _, user := range repo.users {
		if matches(user, filter) {
			count++
		}
	}

	return count, nil
}

func (repo *memoryImpl) Update(_ context.Context, req map[string]any, filter gDto.FilterGroup) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for id, user := range repo.users {
		if matches(user, filter) {
			applyColumns(&user, req)
			repo.users[id] = user
		}
	}

	return nil
}

func (repo *memoryImpl) Delete(_ context.Context, filter gDto.FilterGroup) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for id, user := range repo.users {
		if matches(user, filter) {
			delete(repo.users, id)
		}
	}

	return nil
}

func (repo *memoryImpl) DeleteGuarded(_ context.Context, id string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return false, nil
	}

	if user.Role == constant.RoleAdmin && repo.adminCountLocked(id) == 0 {
		return false, nil
	}

	delete(repo.users, id)

	return true, nil
}

func (repo *memoryImpl) UpdateGuarded(_ context.Context, req map[string]any, id string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return false, nil
	}

	newRole, changesRole := req[model.FieldRole].(string)
	if changesRole && newRole != constant.RoleAdmin &&
		user.Role == constant.RoleAdmin && repo.adminCountLocked(id) == 0 {
		return false, nil
	}

	applyColumns(&user, req)
	repo.users[id] = user

	return true, nil
}

// adminCountLocked counts admins other than the given user. Callers hold
// the mutex.
func (repo *memoryImpl) adminCountLocked(excludeID string) int {
	count := 0

	for id, user := range repo.users {
		if id != excludeID && user.Role == constant.RoleAdmin {
			count++
		}
	}

	return count
}

func (repo *memoryImpl) sorted() []model.User {
	users := make([]model.User, 0, len(repo.users))
	for _, user := range repo.users {
		users = append(users, user)
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})

	return users
}

func matches(user model.User, group gDto.FilterGroup) bool {
	if len(group.Filters) == 0 {
		return true
	}

	anyOf := group.Operator == gDto.FilterGroupOperatorOr

	for _, raw := range group.Filters {
		var ok bool

		switch filter := raw.(type) {
		case gDto.Filter:
			ok = matchFilter(user, filter)
		case gDto.FilterGroup:
			ok = matches(user, filter)
		default:
			ok = false
		}

		if anyOf && ok {
			return true
		}

		if !anyOf && !ok {
			return false
		}
	}

	return !anyOf
}

func matchFilter(user model.User, filter gDto.Filter) bool {
	value := columnValue(user, filter.Field)
	want, _ := filter.Value.(string)

	switch filter.Operator {
	case gDto.FilterOperatorEq:
		return value == want
	case gDto.FilterOperatorNotEq:
		return value != want
	case gDto.FilterOperatorLike:
		return strings.Contains(strings.ToLower(value), strings.ToLower(want))
	default:
		return false
	}
}

func columnValue(user model.User, field string) string {
	switch field {
	case model.FieldID:
		return user.ID
	case model.FieldEmail:
		return user.Email
	case model.FieldFullName:
		return user.FullName
	case model.FieldRole:
		return user.Role
	default:
		return ""
	}
}

func applyColumns(user *model.User, req map[string]any) {
	for column, raw := range req {
		switch column {
		case model.FieldFullName:
			user.FullName, _ = raw.(string)
		case model.FieldEmail:
			user.Email, _ = raw.(string)
		case model.FieldPassword:
			user.Password, _ = raw.(string)
		case model.FieldRole:
			user.Role, _ = raw.(string)
		}
	}
}
