package dto

import (
	"dwell/internal/domains/user/model"
	"dwell/shared"
	"dwell/shared/constant"
	gDto "dwell/shared/dto"
	gModel "dwell/shared/model"
	"dwell/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email     string  `json:"email"      validate:"required,email"`
	Username  *string `json:"username,omitempty"   validate:"omitempty,min=3,max=50"`
	Password  string  `json:"password"   validate:"required,min=8"`
	FirstName string  `json:"first_name" validate:"omitempty,max=100"`
	LastName  string  `json:"last_name"  validate:"omitempty,max=100"`
	Role      string  `json:"role"       validate:"omitempty,oneof=admin custodian student"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleStudent
	}

	return model.User{
		ID:        uuid.NewString(),
		Email:     r.Email,
		Username:  r.Username,
		Password:  hashedPassword,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      role,
		Active:    true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UpdateUserRequest struct {
	Username  *string `db:"username"   json:"username,omitempty"   validate:"omitempty,min=3,max=50"`
	FirstName *string `db:"first_name" json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  *string `db:"last_name"  json:"last_name,omitempty"  validate:"omitempty,max=100"`
	Role      *string `db:"role"       json:"role,omitempty"       validate:"omitempty,oneof=admin custodian student"`
	Active    *bool   `db:"active"     json:"active,omitempty"     validate:"omitempty"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Username  *string `json:"username,omitempty"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Role      string  `json:"role"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Username = model.Username
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Role = model.Role
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
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

// SearchFilter widens a free-text search across the identity columns.
func SearchFilter(search string) gDto.FilterGroup {
	like := func(field string) gDto.Filter {
		return gDto.Filter{
			ArgName:  "search_" + field,
			Field:    field,
			Operator: gDto.FilterOperatorLike,
			Value:    search,
			Table:    model.TableName,
		}
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			like(model.FieldFirstName),
			like(model.FieldLastName),
			like(model.FieldEmail),
			like(model.FieldUsername),
		},
	}
}
