package validator_test

import (
	"strings"
	"testing"

	"dwell/shared/validator"
)

type createRoomPayload struct {
	HostelID   string  `validate:"required,uuid" json:"hostel_id"`
	RoomNumber string  `validate:"required,max=20" json:"room_number"`
	RoomType   string  `validate:"required,oneof=single double suite" json:"room_type"`
	Price      float64 `validate:"required,gt=0" json:"price_per_semester"`
}

type bookingDatesPayload struct {
	CheckInDate  string `validate:"required,datetime=2006-01-02" json:"check_in_date"`
	CheckOutDate string `validate:"required,datetime=2006-01-02" json:"check_out_date"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *createRoomPayload
		expectError bool
	}{
		{
			name: "valid payload",
			data: &createRoomPayload{
				HostelID:   "550e8400-e29b-41d4-a716-446655440000",
				RoomNumber: "A-101",
				RoomType:   "single",
				Price:      1200.50,
			},
			expectError: false,
		},
		{
			name: "missing hostel id",
			data: &createRoomPayload{
				RoomNumber: "A-101",
				RoomType:   "single",
				Price:      1200.50,
			},
			expectError: true,
		},
		{
			name: "malformed hostel id",
			data: &createRoomPayload{
				HostelID:   "not-a-uuid",
				RoomNumber: "A-101",
				RoomType:   "single",
				Price:      1200.50,
			},
			expectError: true,
		},
		{
			name: "unknown room type",
			data: &createRoomPayload{
				HostelID:   "550e8400-e29b-41d4-a716-446655440000",
				RoomNumber: "A-101",
				RoomType:   "penthouse",
				Price:      1200.50,
			},
			expectError: true,
		},
		{
			name: "room number too long",
			data: &createRoomPayload{
				HostelID:   "550e8400-e29b-41d4-a716-446655440000",
				RoomNumber: strings.Repeat("X", 21),
				RoomType:   "double",
				Price:      1200.50,
			},
			expectError: true,
		},
		{
			name: "non-positive price",
			data: &createRoomPayload{
				HostelID:   "550e8400-e29b-41d4-a716-446655440000",
				RoomNumber: "A-101",
				RoomType:   "suite",
				Price:      0,
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateDatetimeTags(t *testing.T) {
	tests := []struct {
		name        string
		data        *bookingDatesPayload
		expectError bool
	}{
		{
			name: "valid dates",
			data: &bookingDatesPayload{
				CheckInDate:  "2026-09-01",
				CheckOutDate: "2027-01-15",
			},
			expectError: false,
		},
		{
			name: "wrong layout",
			data: &bookingDatesPayload{
				CheckInDate:  "01/09/2026",
				CheckOutDate: "2027-01-15",
			},
			expectError: true,
		},
		{
			name: "missing check-out",
			data: &bookingDatesPayload{
				CheckInDate: "2026-09-01",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateFromReader(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{
			name:        "valid json body",
			body:        `{"hostel_id":"550e8400-e29b-41d4-a716-446655440000","room_number":"B-204","room_type":"double","price_per_semester":900}`,
			expectError: false,
		},
		{
			name:        "malformed json",
			body:        `{"hostel_id":`,
			expectError: true,
		},
		{
			name:        "json valid but struct invalid",
			body:        `{"hostel_id":"550e8400-e29b-41d4-a716-446655440000","room_number":"B-204","room_type":"igloo","price_per_semester":900}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRoomPayload{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{
			name:        "valid role",
			field:       "custodian",
			tag:         "oneof=admin custodian student",
			expectError: false,
		},
		{
			name:        "unknown role",
			field:       "janitor",
			tag:         "oneof=admin custodian student",
			expectError: true,
		},
		{
			name:        "valid email",
			field:       "student@campus.edu",
			tag:         "required,email",
			expectError: false,
		},
		{
			name:        "empty required",
			field:       "",
			tag:         "required",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}
