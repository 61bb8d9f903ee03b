package dto

import (
	"dwell/internal/domains/room/model"
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

type CreateRoomRequest struct {
	HostelID         string  `json:"hostel_id"          validate:"required,uuid"`
	RoomNumber       string  `json:"room_number"        validate:"required,max=20"`
	RoomType         string  `json:"room_type"          validate:"required,oneof=single double suite"`
	PricePerSemester float64 `json:"price_per_semester" validate:"required,gt=0"`
	IsAvailable      *bool   `json:"is_available"       validate:"omitempty"`
}

func (r *CreateRoomRequest) ToModel(username string) model.Room {
	isAvailable := true
	if r.IsAvailable != nil {
		isAvailable = *r.IsAvailable
	}

	return model.Room{
		ID:               uuid.NewString(),
		HostelID:         r.HostelID,
		RoomNumber:       r.RoomNumber,
		RoomType:         r.RoomType,
		PricePerSemester: r.PricePerSemester,
		IsAvailable:      isAvailable,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UpdateRoomRequest struct {
	RoomNumber       *string  `db:"room_number"        json:"room_number,omitempty"        validate:"omitempty,max=20"`
	RoomType         *string  `db:"room_type"          json:"room_type,omitempty"          validate:"omitempty,oneof=single double suite"`
	PricePerSemester *float64 `db:"price_per_semester" json:"price_per_semester,omitempty" validate:"omitempty,gt=0"`
	IsAvailable      *bool    `db:"is_available"       json:"is_available,omitempty"       validate:"omitempty"`
}

type RoomResponse struct {
	ID               string  `json:"id"`
	HostelID         string  `json:"hostel_id"`
	HostelName       string  `json:"hostel_name"`
	RoomNumber       string  `json:"room_number"`
	RoomType         string  `json:"room_type"`
	PricePerSemester float64 `json:"price_per_semester"`
	IsAvailable      bool    `json:"is_available"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.HostelID = model.HostelID
	r.HostelName = model.HostelName
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.PricePerSemester = model.PricePerSemester
	r.IsAvailable = model.IsAvailable
	r.Metadata.FromModel(model.Metadata)
}

type PublicRoomResponse struct {
	HostelName       string  `json:"hostel_name"`
	RoomNumber       string  `json:"room_number"`
	RoomType         string  `json:"room_type"`
	PricePerSemester float64 `json:"price_per_semester"`
	IsAvailable      bool    `json:"is_available"`
}

func (r *PublicRoomResponse) FromModel(model model.Room) {
	r.HostelName = model.HostelName
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.PricePerSemester = model.PricePerSemester
	r.IsAvailable = model.IsAvailable
}

// Projection maps a room onto the view its caller is allowed to see.
type Projection func(model.Room) any

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
		return func(m model.Room) any {
			var res RoomResponse
			res.FromModel(m)

			return res
		}
	}

	return func(m model.Room) any {
		var res PublicRoomResponse
		res.FromModel(m)

		return res
	}
}

type GetRoomsResponse struct {
	Rooms     []any `json:"rooms"`
	TotalPage int   `json:"total_page"`
	TotalData int   `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int, project Projection) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]any, len(models))
	for i, mod := range models {
		r.Rooms[i] = project(mod)
	}
}
