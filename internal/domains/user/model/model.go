package model

import "dwell/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldRole      = "role"
	FieldActive    = "active"
)

type User struct {
	ID        string  `db:"id"`
	Email     string  `db:"email"`
	Username  *string `db:"username"`
	Password  string  `db:"password"`
	FirstName string  `db:"first_name"`
	LastName  string  `db:"last_name"`
	Role      string  `db:"role"`
	Active    bool    `db:"active"`
	model.Metadata
}
