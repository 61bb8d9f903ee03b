package dto

import (
	"dwell/internal/domains/hostel/model"
	"dwell/permissions"
	"dwell/shared"
	gDto "dwell/shared/dto"
	gModel "dwell/shared/model"
	"dwell/shared/timezone"

	"github.com/google/uuid"
)

const (
	ViewFull   = "full"
	ViewPublic = "public"
)

type CreateHostelRequest struct {
	Name        string `json:"name"         validate:"required,max=100"`
	Location    string `json:"location"     validate:"omitempty,max=100"`
	Capacity    int    `json:"capacity"     validate:"required,gt=0"`
	Description string `json:"description"  validate:"omitempty,max=500"`
	CustodianID string `json:"custodian_id" validate:"required,uuid"`
}

func (r *CreateHostelRequest) ToModel(username string) model.Hostel {
	return model.Hostel{
		ID:          uuid.NewString(),
		Name:        r.Name,
		Location:    r.Location,
		Capacity:    r.Capacity,
		Description: r.Description,
		CustodianID: r.CustodianID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UpdateHostelRequest struct {
	Name        *string `db:"name"         json:"name,omitempty"         validate:"omitempty,max=100"`
	Location    *string `db:"location"     json:"location,omitempty"     validate:"omitempty,max=100"`
	Capacity    *int    `db:"capacity"     json:"capacity,omitempty"     validate:"omitempty,gt=0"`
	Description *string `db:"description"  json:"description,omitempty"  validate:"omitempty,max=500"`
	CustodianID *string `db:"custodian_id" json:"custodian_id,omitempty" validate:"omitempty,uuid"`
}

type HostelResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
	CustodianID string `json:"custodian_id"`
	gDto.Metadata
}

func (r *HostelResponse) FromModel(model model.Hostel) {
	r.ID = model.ID
	r.Name = model.Name
	r.Location = model.Location
	r.Capacity = model.Capacity
	r.Description = model.Description
	r.CustodianID = model.CustodianID
	r.Metadata.FromModel(model.Metadata)
}

type PublicHostelResponse struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
}

func (r *PublicHostelResponse) FromModel(model model.Hostel) {
	r.Name = model.Name
	r.Location = model.Location
	r.Capacity = model.Capacity
	r.Description = model.Description
}

// Projection maps a hostel onto the view its caller is allowed to see.
type Projection func(model.Hostel) any

// ViewFor names the projection bucket for an actor. It doubles as the
// cache key segment so cached views never leak across roles.
func ViewFor(actor permissions.Identity) string {
	if permissions.IsCustodianOrAdmin(actor) {
		return ViewFull
	}

	return ViewPublic
}

func ProjectionFor(actor permissions.Identity) Projection {
	if permissions.IsCustodianOrAdmin(actor) {
		return func(m model.Hostel) any {
			var res HostelResponse
			res.FromModel(m)

			return res
		}
	}

	return func(m model.Hostel) any {
		var res PublicHostelResponse
		res.FromModel(m)

		return res
	}
}

type GetHostelsResponse struct {
	Hostels   []any `json:"hostels"`
	TotalPage int   `json:"total_page"`
	TotalData int   `json:"total_data"`
}

func (r *GetHostelsResponse) FromModels(models []model.Hostel, totalData, limit int, project Projection) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hostels = make([]any, len(models))
	for i, mod := range models {
		r.Hostels[i] = project(mod)
	}
}
