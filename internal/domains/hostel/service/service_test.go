package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"dwell/config"
	"dwell/infras/otel/mocks"
	hostelMocks "dwell/internal/domains/hostel/mocks"
	"dwell/internal/domains/hostel/model"
	"dwell/internal/domains/hostel/model/dto"
	"dwell/internal/domains/hostel/repository"
	"dwell/internal/domains/hostel/service"
	userMocks "dwell/internal/domains/user/mocks"
	userModel "dwell/internal/domains/user/model"
	"dwell/permissions"
	cacheMocks "dwell/shared/cache/mocks"
	"dwell/shared/constant"
	gDto "dwell/shared/dto"
	"dwell/shared/failure"
)

func adminActor() permissions.Identity {
	return permissions.Identity{UserID: "admin-id", Email: "admin@example.com", Role: constant.RoleAdmin, Authenticated: true}
}

func custodianActor() permissions.Identity {
	return permissions.Identity{UserID: "custodian-id", Email: "custodian@example.com", Role: constant.RoleCustodian, Authenticated: true}
}

func studentActor() permissions.Identity {
	return permissions.Identity{UserID: "student-id", Email: "student@example.com", Role: constant.RoleStudent, Authenticated: true}
}

func TestHostelService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := hostelMocks.NewMockHostel(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockUserRepo, cfg, mockCache, mockOtel)

	req := dto.CreateHostelRequest{
		Name:        "North Wing",
		Location:    "Campus A",
		Capacity:    120,
		CustodianID: "custodian-uuid",
	}

	tests := []struct {
		name      string
		actor     permissions.Identity
		setupMock func()
		wantErr   bool
		wantCode  int
		wantMsg   string
	}{
		{
			name:  "admin assigns a custodian",
			actor: adminActor(),
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "custodian-uuid", Role: constant.RoleCustodian}, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:      "custodian actor is rejected",
			actor:     custodianActor(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusForbidden,
		},
		{
			name:      "student actor is rejected",
			actor:     studentActor(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusForbidden,
		},
		{
			name:  "assigned user is a student",
			actor: adminActor(),
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "custodian-uuid", Role: constant.RoleStudent}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
			wantMsg:  "The assigned user must have the role of 'custodian'.",
		},
		{
			name:  "assigned user does not exist",
			actor: adminActor(),
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
			wantMsg:  "The assigned user must have the role of 'custodian'.",
		},
		{
			name:  "store guard rejects a stale custodian",
			actor: adminActor(),
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "custodian-uuid", Role: constant.RoleCustodian}, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(repository.ErrCustodianRoleMismatch)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
			wantMsg:  "The assigned user must have the role of 'custodian'.",
		},
		{
			name:  "repository error",
			actor: adminActor(),
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "custodian-uuid", Role: constant.RoleCustodian}, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
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
				if tt.wantMsg != "" {
					assert.EqualError(t, err, tt.wantMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHostelService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := hostelMocks.NewMockHostel(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockUserRepo, cfg, mockCache, mockOtel)

	hostels := []model.Hostel{
		{
			ID:          "hostel-id",
			Name:        "North Wing",
			Location:    "Campus A",
			Capacity:    120,
			Description: "Freshman block",
			CustodianID: "custodian-uuid",
		},
	}

	tests := []struct {
		name     string
		actor    permissions.Identity
		wantFull bool
	}{
		{name: "admin sees the full view", actor: adminActor(), wantFull: true},
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
				Return(hostels, nil)

			result, err := svc.GetAll(context.Background(), tt.actor, gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})
			assert.NoError(t, err)
			assert.Len(t, result.Hostels, 1)

			if tt.wantFull {
				res, ok := result.Hostels[0].(dto.HostelResponse)
				assert.True(t, ok)
				assert.Equal(t, "hostel-id", res.ID)
				assert.Equal(t, "custodian-uuid", res.CustodianID)
			} else {
				res, ok := result.Hostels[0].(dto.PublicHostelResponse)
				assert.True(t, ok)
				assert.Equal(t, "North Wing", res.Name)
				assert.Equal(t, 120, res.Capacity)
			}
		})
	}
}

func TestHostelService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := hostelMocks.NewMockHostel(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockUserRepo, cfg, mockCache, mockOtel)

	name := "South Wing"
	custodianID := "other-custodian"

	tests := []struct {
		name      string
		actor     permissions.Identity
		req       dto.UpdateHostelRequest
		setupMock func()
		wantErr   bool
		wantMsg   string
	}{
		{
			name:  "successful update",
			actor: adminActor(),
			req:   dto.UpdateHostelRequest{Name: &name},
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
			name:  "successful custodian reassignment",
			actor: adminActor(),
			req:   dto.UpdateHostelRequest{CustodianID: &custodianID},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: custodianID, Role: constant.RoleCustodian}, nil)

				mockRepo.EXPECT().
					UpdateWithCustodian(gomock.Any(), gomock.Any(), gomock.Any(), custodianID).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:  "store guard rejects the reassignment",
			actor: adminActor(),
			req:   dto.UpdateHostelRequest{CustodianID: &custodianID},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: custodianID, Role: constant.RoleCustodian}, nil)

				mockRepo.EXPECT().
					UpdateWithCustodian(gomock.Any(), gomock.Any(), gomock.Any(), custodianID).
					Return(repository.ErrCustodianRoleMismatch)
			},
			wantErr: true,
			wantMsg: "The assigned user must have the role of 'custodian'.",
		},
		{
			name:  "reassigning to a non custodian fails",
			actor: adminActor(),
			req:   dto.UpdateHostelRequest{CustodianID: &custodianID},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: custodianID, Role: constant.RoleAdmin}, nil)
			},
			wantErr: true,
			wantMsg: "The assigned user must have the role of 'custodian'.",
		},
		{
			name:      "custodian actor is rejected",
			actor:     custodianActor(),
			req:       dto.UpdateHostelRequest{Name: &name},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:  "hostel not found",
			actor: adminActor(),
			req:   dto.UpdateHostelRequest{Name: &name},
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

			err := svc.Update(context.Background(), tt.actor, tt.req, "hostel-id")

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantMsg != "" {
					assert.EqualError(t, err, tt.wantMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHostelService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := hostelMocks.NewMockHostel(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockUserRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		actor     permissions.Identity
		setupMock func()
		wantErr   bool
	}{
		{
			name:  "successful deletion",
			actor: adminActor(),
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
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
			name:  "hostel not found",
			actor: adminActor(),
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

			err := svc.Delete(context.Background(), tt.actor, "hostel-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
