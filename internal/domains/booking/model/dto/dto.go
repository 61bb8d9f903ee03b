package dto

import (
	"time"

	"dwell/internal/domains/booking/model"
	"dwell/permissions"
	"dwell/shared"
	"dwell/shared/constant"
	gDto "dwell/shared/dto"
	gModel "dwell/shared/model"
	"dwell/shared/timezone"

	"github.com/google/uuid"
)

const (
	ViewFull    = "full"
	ViewStudent = "student"
)

// CreateBookingRequest carries no student and no status field. The student
// is always the caller and new bookings always start out pending.
type CreateBookingRequest struct {
	RoomID       string `json:"room_id"        validate:"required,uuid"`
	CheckInDate  string `json:"check_in_date"  validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
}

func (r *CreateBookingRequest) ToModel(studentID, username string, checkIn, checkOut time.Time) model.Booking {
	return model.Booking{
		ID:           uuid.NewString(),
		StudentID:    studentID,
		RoomID:       r.RoomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       constant.BookingStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UpdateBookingRequest struct {
	Status       *string `db:"status"         json:"status,omitempty"         validate:"omitempty,oneof=pending approved rejected"`
	CheckInDate  *string `db:"check_in_date"  json:"check_in_date,omitempty"  validate:"omitempty,datetime=2006-01-02"`
	CheckOutDate *string `db:"check_out_date" json:"check_out_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type BookingResponse struct {
	ID           string `json:"id"`
	StudentID    string `json:"student_id"`
	RoomID       string `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Status       string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.StudentID = model.StudentID
	r.RoomID = model.RoomID
	r.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

// StudentBookingResponse replaces raw foreign keys with the room and hostel
// details a student actually wants to see.
type StudentBookingResponse struct {
	ID               string  `json:"id"`
	HostelName       string  `json:"hostel_name"`
	RoomNumber       string  `json:"room_number"`
	RoomType         string  `json:"room_type"`
	PricePerSemester float64 `json:"price_per_semester"`
	CheckInDate      string  `json:"check_in_date"`
	CheckOutDate     string  `json:"check_out_date"`
	Status           string  `json:"status"`
}

func (r *StudentBookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.HostelName = model.HostelName
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.PricePerSemester = model.PricePerSemester
	r.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.Status = model.Status
}

// Projection maps a booking onto the view its caller is allowed to see.
type Projection func(model.Booking) any

// ViewFor names the projection bucket for an actor. It doubles as the
// cache key segment so cached views never leak across roles.
func ViewFor(actor permissions.Identity) string {
	if permissions.IsStudent(actor) {
		return ViewStudent
	}

	return ViewFull
}

func ProjectionFor(actor permissions.Identity) Projection {
	if permissions.IsStudent(actor) {
		return func(m model.Booking) any {
			var res StudentBookingResponse
			res.FromModel(m)

			return res
		}
	}

	return func(m model.Booking) any {
		var res BookingResponse
		res.FromModel(m)

		return res
	}
}

type GetBookingsResponse struct {
	Bookings  []any `json:"bookings"`
	TotalPage int   `json:"total_page"`
	TotalData int   `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int, project Projection) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]any, len(models))
	for i, mod := range models {
		r.Bookings[i] = project(mod)
	}
}
