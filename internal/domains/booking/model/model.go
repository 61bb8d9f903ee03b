package model

import (
	"time"

	"dwell/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldStudentID    = "student_id"
	FieldRoomID       = "room_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldStatus       = "status"
)

type Booking struct {
	ID               string    `db:"id"`
	StudentID        string    `db:"student_id"`
	RoomID           string    `db:"room_id"`
	CheckInDate      time.Time `db:"check_in_date"`
	CheckOutDate     time.Time `db:"check_out_date"`
	Status           string    `db:"status"`
	HostelName       string    `db:"hostel_name" table:"hostels" column:"name"`
	RoomNumber       string    `db:"room_number" table:"rooms"`
	RoomType         string    `db:"room_type" table:"rooms"`
	PricePerSemester float64   `db:"price_per_semester" table:"rooms"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = bookings.room_id JOIN hostels ON hostels.id = rooms.hostel_id"
}
