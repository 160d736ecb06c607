// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osanchez/bitacora/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	testCases := []struct {
		name     string
		query    string
		expected pagination.Params
	}{
		{name: "defaults", query: "", expected: pagination.Params{Page: 1, Limit: 10}},
		{name: "explicit values", query: "?page=3&limit=25", expected: pagination.Params{Page: 3, Limit: 25}},
		{name: "negative page clamps", query: "?page=-1", expected: pagination.Params{Page: 1, Limit: 10}},
		{name: "excessive limit clamps", query: "?limit=500", expected: pagination.Params{Page: 1, Limit: 10}},
		{name: "garbage falls back", query: "?page=abc&limit=xyz", expected: pagination.Params{Page: 1, Limit: 10}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/posts"+testCase.query, nil)
			assert.Equal(t, testCase.expected, pagination.FromRequest(request))
		})
	}
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 10, 57)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, 57, meta.Total)
	assert.Equal(t, 6, meta.TotalPages, "partial last page counts")
}
