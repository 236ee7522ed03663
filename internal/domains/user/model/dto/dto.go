package dto

import (
	"asteria/internal/domains/user/model"
	"asteria/shared"
	gDto "asteria/shared/dto"
	gModel "asteria/shared/model"
	"asteria/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Email    string `json:"email"     validate:"required,email,max=100"`
	Password string `json:"password"  validate:"required,min=8"`
	Role     string `json:"role"      validate:"required,oneof=admin user"`
}

func (c *CreateUserRequest) ToModel(hashedPassword string) model.User {
	return model.User{
		ID:       uuid.NewString(),
		FullName: c.FullName,
		Email:    c.Email,
		Password: hashedPassword,
		Role:     c.Role,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
		},
	}
}

// UpdateUserRequest carries partial edits. Password is hashed by the
// service before it reaches storage, so it carries no db tag here.
type UpdateUserRequest struct {
	FullName string `db:"full_name" json:"full_name" validate:"omitempty,max=100"`
	Email    string `db:"email"     json:"email"     validate:"omitempty,email,max=100"`
	Password string `json:"password"                 validate:"omitempty,min=8"`
	Role     string `db:"user_role" json:"role"      validate:"omitempty,oneof=admin user"`
}

type UserResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.FullName = user.FullName
	r.Email = user.Email
	r.Role = user.Role
	r.Metadata.FromModel(user.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
