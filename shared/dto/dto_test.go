package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bazaar/shared/constant"
	"bazaar/shared/dto"
	"bazaar/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := createdAt.Add(24 * time.Hour)

	var metadata dto.Metadata
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "u-1",
		ModifiedBy: "u-2",
	})

	assert.Equal(t, dto.Metadata{
		CreatedAt:  "2025-07-01T12:00:00Z",
		ModifiedAt: "2025-07-02T12:00:00Z",
		CreatedBy:  "u-1",
		ModifiedBy: "u-2",
	}, metadata)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		withDefaults bool
		expected     dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=created_at&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "created_at", SortDir: dto.SortDirAsc},
		},
		{
			name:         "defaults",
			withDefaults: true,
			expected:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults leaves zero values",
			expected: dto.QueryParams{},
		},
		{
			name:         "invalid numbers fall back",
			query:        "page=-1&limit=abc&sort_dir=sideways",
			withDefaults: true,
			expected:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "limit is capped",
			query:    "limit=5000",
			expected: dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:     "descending",
			query:    "sort_dir=DESC",
			expected: dto.QueryParams{SortDir: dto.SortDirDesc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/bookings?"+tt.query, nil)

			var params dto.QueryParams
			params.FromRequest(req, tt.withDefaults)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, dto.QueryParams{}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, dto.QueryParams{Page: 3, Limit: 10}.Offset())
}

func TestNewPage(t *testing.T) {
	assert.Equal(t, dto.Page{TotalPage: 1, TotalData: 0}, dto.NewPage(0, 10))
	assert.Equal(t, dto.Page{TotalPage: 1, TotalData: 10}, dto.NewPage(10, 10))
	assert.Equal(t, dto.Page{TotalPage: 2, TotalData: 11}, dto.NewPage(11, 10))
	assert.Equal(t, dto.Page{TotalPage: 1, TotalData: 7}, dto.NewPage(7, 0))
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name   string
		filter dto.Filter
		where  string
		args   map[string]any
	}{
		{
			name:   "eq with table",
			filter: dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq, Table: "bookings"},
			where:  "bookings.status = :status",
			args:   map[string]any{"status": "pending"},
		},
		{
			name:   "not eq",
			filter: dto.Filter{Field: "id", Value: "o-1", Operator: dto.FilterOperatorNotEq, Table: "vendor_offers"},
			where:  "vendor_offers.id != :id",
			args:   map[string]any{"id": "o-1"},
		},
		{
			name:   "range with arg names",
			filter: dto.Filter{ArgName: "from", Field: "end_date", Value: "2025-07-01", Operator: dto.FilterOperatorGreaterEq},
			where:  "end_date >= :from",
			args:   map[string]any{"from": "2025-07-01"},
		},
		{
			name:   "less eq",
			filter: dto.Filter{ArgName: "to", Field: "start_date", Value: "2025-07-05", Operator: dto.FilterOperatorLessEq},
			where:  "start_date <= :to",
			args:   map[string]any{"to": "2025-07-05"},
		},
		{
			name:   "in slice",
			filter: dto.Filter{Field: "request_id", Value: []string{"r-1", "r-2"}, Operator: dto.FilterOperatorIn},
			where:  "request_id IN (:request_id_0, :request_id_1) ",
			args:   map[string]any{"request_id_0": "r-1", "request_id_1": "r-2"},
		},
		{
			name:   "in scalar is bound",
			filter: dto.Filter{Field: "request_id", Value: "r-1", Operator: dto.FilterOperatorIn},
			where:  "request_id IN (:request_id) ",
			args:   map[string]any{"request_id": "r-1"},
		},
		{
			name:   "in empty slice matches nothing",
			filter: dto.Filter{Field: "request_id", Value: []string{}, Operator: dto.FilterOperatorIn},
			where:  "FALSE",
			args:   map[string]any{},
		},
		{
			name:   "unknown operator",
			filter: dto.Filter{Field: "name", Value: "x", Operator: "like"},
			where:  "",
			args:   map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.where, where)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("nested groups", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{Field: "listing_id", Value: "l-1", Operator: dto.FilterOperatorEq},
				dto.FilterGroup{
					Operator: dto.FilterGroupOperatorOr,
					Filters: []any{
						dto.Filter{ArgName: "pending", Field: "status", Value: "pending", Operator: dto.FilterOperatorEq},
						dto.Filter{ArgName: "confirmed", Field: "status", Value: "confirmed", Operator: dto.FilterOperatorEq},
					},
				},
			},
		}

		where, args := group.GetWhereClause()

		assert.Equal(t, "(listing_id = :listing_id AND (status = :pending OR status = :confirmed))", where)
		assert.Equal(t, map[string]any{"listing_id": "l-1", "pending": "pending", "confirmed": "confirmed"}, args)
	})

	t.Run("empty parts are skipped", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.FilterGroup{},
				dto.Filter{Field: "id", Value: "b-1", Operator: dto.FilterOperatorEq},
				"not a filter",
			},
		}

		where, _ := group.GetWhereClause()

		assert.Equal(t, "(id = :id)", where)
	})

	t.Run("no filters", func(t *testing.T) {
		group := dto.FilterGroup{}

		where, args := group.GetWhereClause()

		assert.Empty(t, where)
		assert.Empty(t, args)
	})
}
