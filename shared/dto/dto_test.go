package dto_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"dwell/shared/constant"
	"dwell/shared/dto"
	"dwell/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "admin@dwell.io",
		ModifiedBy: "custodian@dwell.io",
	}

	metadata := &dto.Metadata{}
	metadata.FromModel(modelMetadata)

	if metadata.CreatedAt == "" || metadata.ModifiedAt == "" {
		t.Error("expected formatted timestamps")
	}

	if metadata.CreatedBy != "admin@dwell.io" {
		t.Errorf("expected CreatedBy to be 'admin@dwell.io', got %s", metadata.CreatedBy)
	}

	if metadata.ModifiedBy != "custodian@dwell.io" {
		t.Errorf("expected ModifiedBy to be 'custodian@dwell.io', got %s", metadata.ModifiedBy)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "check_in_date",
				"sort_dir": "asc",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "check_in_date",
				SortDir: dto.SortDirAsc,
			},
		},
		{
			name:           "missing parameters with defaults",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "invalid numbers are ignored",
			queryParams: map[string]string{
				"page":  "abc",
				"limit": "-5",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "invalid sort dir is dropped",
			queryParams: map[string]string{
				"sort_dir": "sideways",
			},
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for key, value := range tt.queryParams {
				values.Set(key, value)
			}

			request := &http.Request{URL: &url.URL{RawQuery: values.Encode()}}

			params := dto.QueryParams{}
			params.FromRequest(request, tt.defaultRequest)

			if params != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, params)
			}
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name         string
		filter       dto.Filter
		wantClause   string
		wantArgName  string
		wantArgValue any
	}{
		{
			name: "eq with table",
			filter: dto.Filter{
				Field:    "student_id",
				Operator: dto.FilterOperatorEq,
				Value:    "some-student",
				Table:    "bookings",
			},
			wantClause:   "bookings.student_id = :student_id",
			wantArgName:  "student_id",
			wantArgValue: "some-student",
		},
		{
			name: "eq without table",
			filter: dto.Filter{
				Field:    "status",
				Operator: dto.FilterOperatorEq,
				Value:    "approved",
			},
			wantClause:   "status = :status",
			wantArgName:  "status",
			wantArgValue: "approved",
		},
		{
			name: "like wraps the value",
			filter: dto.Filter{
				Field:    "name",
				Operator: dto.FilterOperatorLike,
				Value:    "unity",
				Table:    "hostels",
			},
			wantClause:   "LOWER(hostels.name) LIKE LOWER(:name) ",
			wantArgName:  "name",
			wantArgValue: "%unity%",
		},
		{
			name: "custom arg name",
			filter: dto.Filter{
				ArgName:  "search_email",
				Field:    "email",
				Operator: dto.FilterOperatorLike,
				Value:    "campus",
				Table:    "users",
			},
			wantClause:   "LOWER(users.email) LIKE LOWER(:search_email) ",
			wantArgName:  "search_email",
			wantArgValue: "%campus%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := tt.filter.GetWhereClause()

			if clause != tt.wantClause {
				t.Errorf("expected clause %q, got %q", tt.wantClause, clause)
			}

			if args[tt.wantArgName] != tt.wantArgValue {
				t.Errorf("expected arg %s to be %v, got %v", tt.wantArgName, tt.wantArgValue, args[tt.wantArgName])
			}
		})
	}
}

func TestFilter_GetWhereClauseIn(t *testing.T) {
	filter := dto.Filter{
		Field:    "status",
		Operator: dto.FilterOperatorIn,
		Value:    []string{"pending", "approved"},
		Table:    "bookings",
	}

	clause, args := filter.GetWhereClause()

	if !strings.Contains(clause, "bookings.status IN (:status_0, :status_1)") {
		t.Errorf("unexpected clause %q", clause)
	}

	if args["status_0"] != "pending" || args["status_1"] != "approved" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    "student_id",
				Operator: dto.FilterOperatorEq,
				Value:    "actor-id",
				Table:    "bookings",
			},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "pending", Table: "bookings"},
					dto.Filter{ArgName: "status_approved", Field: "status", Operator: dto.FilterOperatorEq, Value: "approved", Table: "bookings"},
				},
			},
		},
	}

	clause, args := group.GetWhereClause()

	if !strings.Contains(clause, "bookings.student_id = :student_id") {
		t.Errorf("expected scoping filter in clause, got %q", clause)
	}

	if !strings.Contains(clause, " AND ") || !strings.Contains(clause, " OR ") {
		t.Errorf("expected nested group operators in clause, got %q", clause)
	}

	if args["student_id"] != "actor-id" || args["status"] != "pending" || args["status_approved"] != "approved" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestFilterGroup_GetWhereClauseEmpty(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	clause, args := group.GetWhereClause()

	if clause != "" {
		t.Errorf("expected empty clause, got %q", clause)
	}

	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}
