package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"dwell/config"
	"dwell/infras/otel/mocks"
	hostelMocks "dwell/internal/domains/hostel/mocks"
	roomMocks "dwell/internal/domains/room/mocks"
	"dwell/internal/domains/room/model"
	"dwell/internal/domains/room/model/dto"
	"dwell/internal/domains/room/service"
	"dwell/permissions"
	cacheMocks "dwell/shared/cache/mocks"
	"dwell/shared/constant"
	gDto "dwell/shared/dto"
	"dwell/shared/failure"
)

func custodianActor() permissions.Identity {
	return permissions.Identity{UserID: "custodian-id", Email: "custodian@example.com", Role: constant.RoleCustodian, Authenticated: true}
}

func studentActor() permissions.Identity {
	return permissions.Identity{UserID: "student-id", Email: "student@example.com", Role: constant.RoleStudent, Authenticated: true}
}

func TestRoomService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockHostelRepo := hostelMocks.NewMockHostel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockHostelRepo, cfg, mockCache, mockOtel)

	req := dto.CreateRoomRequest{
		HostelID:         "hostel-uuid",
		RoomNumber:       "A-101",
		RoomType:         constant.RoomTypeSingle,
		PricePerSemester: 1500,
	}

	tests := []struct {
		name      string
		actor     permissions.Identity
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name:  "custodian creates a room",
			actor: custodianActor(),
			setupMock: func() {
				mockHostelRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:      "student actor is rejected",
			actor:     studentActor(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusForbidden,
		},
		{
			name:  "hostel does not exist",
			actor: custodianActor(),
			setupMock: func() {
				mockHostelRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:  "duplicate room number in hostel",
			actor: custodianActor(),
			setupMock: func() {
				mockHostelRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Create(context.Background(), tt.actor, req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockHostelRepo := hostelMocks.NewMockHostel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockHostelRepo, cfg, mockCache, mockOtel)

	rooms := []model.Room{
		{
			ID:               "room-id",
			HostelID:         "hostel-uuid",
			HostelName:       "North Wing",
			RoomNumber:       "A-101",
			RoomType:         constant.RoomTypeSingle,
			PricePerSemester: 1500,
			IsAvailable:      true,
		},
	}

	tests := []struct {
		name     string
		actor    permissions.Identity
		wantFull bool
	}{
		{name: "custodian sees the full view", actor: custodianActor(), wantFull: true},
		{name: "student sees the public view", actor: studentActor(), wantFull: false},
		{name: "anonymous sees the public view", actor: permissions.Anonymous(), wantFull: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCache.EXPECT().
				Get(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(errors.New("cache miss")).
				Times(2)

			mockRepo.EXPECT().
				Count(gomock.Any(), gomock.Any()).
				Return(1, nil)

			mockRepo.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(rooms, nil)

			result, err := svc.GetAll(context.Background(), tt.actor, gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})
			assert.NoError(t, err)
			assert.Len(t, result.Rooms, 1)

			if tt.wantFull {
				res, ok := result.Rooms[0].(dto.RoomResponse)
				assert.True(t, ok)
				assert.Equal(t, "room-id", res.ID)
				assert.Equal(t, "hostel-uuid", res.HostelID)
			} else {
				res, ok := result.Rooms[0].(dto.PublicRoomResponse)
				assert.True(t, ok)
				assert.Equal(t, "North Wing", res.HostelName)
				assert.Equal(t, "A-101", res.RoomNumber)
				assert.InEpsilon(t, 1500.0, res.PricePerSemester, 0.0001)
			}
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockHostelRepo := hostelMocks.NewMockHostel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockHostelRepo, cfg, mockCache, mockOtel)

	room := model.Room{
		ID:          "room-id",
		HostelID:    "hostel-uuid",
		HostelName:  "North Wing",
		RoomNumber:  "A-101",
		RoomType:    constant.RoomTypeSingle,
		IsAvailable: true,
	}

	t.Run("cache miss, found in db", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		res, err := svc.Get(context.Background(), custodianActor(), "room-id")
		assert.NoError(t, err)

		full, ok := res.(dto.RoomResponse)
		assert.True(t, ok)
		assert.Equal(t, "room-id", full.ID)
	})

	t.Run("room not found", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{}, nil)

		_, err := svc.Get(context.Background(), custodianActor(), "nonexistent-id")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockHostelRepo := hostelMocks.NewMockHostel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockHostelRepo, cfg, mockCache, mockOtel)

	available := false

	tests := []struct {
		name      string
		actor     permissions.Identity
		setupMock func()
		wantErr   bool
	}{
		{
			name:  "successful update",
			actor: custodianActor(),
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:      "student actor is rejected",
			actor:     studentActor(),
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:  "room not found",
			actor: custodianActor(),
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(context.Background(), tt.actor, dto.UpdateRoomRequest{IsAvailable: &available}, "room-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockHostelRepo := hostelMocks.NewMockHostel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockHostelRepo, cfg, mockCache, mockOtel)

	t.Run("successful deletion", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), custodianActor(), "room-id"))
	})

	t.Run("student actor is rejected", func(t *testing.T) {
		err := svc.Delete(context.Background(), studentActor(), "room-id")
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}
