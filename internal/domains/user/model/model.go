package model

import "asteria/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldFullName = "full_name"
	FieldEmail    = "email"
	FieldPassword = "pass"
	FieldRole     = "user_role"
)

type User struct {
	ID       string `db:"id"`
	FullName string `db:"full_name"`
	Email    string `db:"email"`
	Password string `db:"pass"`
	Role     string `db:"user_role"`
	model.Metadata
}
