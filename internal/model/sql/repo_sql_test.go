package sql

import (
	"testing"

	"maktaba/internal/entity"
)

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name           string
		params         entity.BaseParams
		expectedPage   int
		expectedSize   int
		expectedOffset int
	}{
		{name: "Defaults", params: entity.BaseParams{}, expectedPage: 1, expectedSize: 20, expectedOffset: 0},
		{name: "SecondPage", params: entity.BaseParams{Page: 2, PageSize: 10}, expectedPage: 2, expectedSize: 10, expectedOffset: 10},
		{name: "NegativeInputsNormalised", params: entity.BaseParams{Page: -3, PageSize: -5}, expectedPage: 1, expectedSize: 20, expectedOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize, offset := pageWindow(tt.params)
			if page != tt.expectedPage || pageSize != tt.expectedSize || offset != tt.expectedOffset {
				t.Errorf("pageWindow(%+v) = (%d, %d, %d), want (%d, %d, %d)",
					tt.params, page, pageSize, offset, tt.expectedPage, tt.expectedSize, tt.expectedOffset)
			}
		})
	}
}

func TestOrderClause(t *testing.T) {
	allowed := map[string]string{
		"id":         "id",
		"created_at": "created_at",
	}

	tests := []struct {
		name     string
		params   entity.BaseParams
		expected string
	}{
		{name: "DefaultNewestFirst", params: entity.BaseParams{}, expected: "id DESC"},
		{name: "UnknownColumnFallsBack", params: entity.BaseParams{SortBy: "password_hash"}, expected: "id DESC"},
		{name: "Ascending", params: entity.BaseParams{SortBy: "created_at"}, expected: "created_at ASC"},
		{name: "DescendingCaseInsensitive", params: entity.BaseParams{SortBy: " Created_At ", SortDesc: true}, expected: "created_at DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := orderClause(tt.params, allowed); got != tt.expected {
				t.Errorf("orderClause(%+v) = %q, want %q", tt.params, got, tt.expected)
			}
		})
	}
}
