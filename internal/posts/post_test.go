// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package posts_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osanchez/bitacora/internal/posts"
)

func TestFormat(t *testing.T) {
	longBody := strings.Repeat("palabra ", 450) // 3600 characters

	testCases := []struct {
		name            string
		post            posts.Post
		expectedExcerpt string
		expectedMinutes int
		expectedSlug    string
	}{
		{
			name: "short body keeps full text as excerpt",
			post: posts.Post{ID: 1, Title: "Hola Mundo", Body: "breve"},

			expectedExcerpt: "breve...",
			expectedMinutes: 1,
			expectedSlug:    "hola-mundo",
		},
		{
			name: "long body truncates at 150 characters",
			post: posts.Post{ID: 2, Title: "Crónica de un título", Body: longBody},

			expectedExcerpt: string([]rune(longBody)[:150]) + "...",
			expectedMinutes: 18, // ceil(3600 chars / 200)
			expectedSlug:    "cronica-de-un-titulo",
		},
		{
			name: "read time counts characters not words",
			post: posts.Post{ID: 4, Title: "Medido", Body: strings.Repeat("a", 504)},

			expectedExcerpt: strings.Repeat("a", 150) + "...",
			expectedMinutes: 3, // ceil(504 / 200)
			expectedSlug:    "medido",
		},
		{
			name: "empty body",
			post: posts.Post{ID: 3, Title: "Sin cuerpo", Body: ""},

			expectedExcerpt: "...",
			expectedMinutes: 0,
			expectedSlug:    "sin-cuerpo",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			formatted := posts.Format(testCase.post)

			assert.Equal(t, testCase.post.ID, formatted.ID)
			assert.Equal(t, testCase.expectedExcerpt, formatted.Excerpt)
			assert.Equal(t, testCase.expectedMinutes, formatted.ReadTimeMinutes)
			assert.Equal(t, testCase.expectedSlug, formatted.Slug)
		})
	}
}

func TestFormatAll(t *testing.T) {
	formatted := posts.FormatAll([]posts.Post{
		{ID: 1, Title: "Uno", Body: "a"},
		{ID: 2, Title: "Dos", Body: "b"},
	})

	assert.Len(t, formatted, 2)
	assert.Equal(t, "uno", formatted[0].Slug)
	assert.Equal(t, "dos", formatted[1].Slug)
}
