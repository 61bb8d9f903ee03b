package model

import "dwell/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID               = "id"
	FieldHostelID         = "hostel_id"
	FieldRoomNumber       = "room_number"
	FieldRoomType         = "room_type"
	FieldPricePerSemester = "price_per_semester"
	FieldIsAvailable      = "is_available"
)

type Room struct {
	ID               string  `db:"id"`
	HostelID         string  `db:"hostel_id"`
	RoomNumber       string  `db:"room_number"`
	RoomType         string  `db:"room_type"`
	PricePerSemester float64 `db:"price_per_semester"`
	IsAvailable      bool    `db:"is_available"`
	HostelName       string  `db:"hostel_name" table:"hostels" column:"name"`
	model.Metadata
}

func (Room) GetJoinQuery() string {
	return "JOIN hostels ON hostels.id = rooms.hostel_id"
}
