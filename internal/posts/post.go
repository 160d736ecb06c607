// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

// Package posts implements the blog feed of Bitacora, backed by an external
// JSON API consumed through an intercepted HTTP client.
//
// # Architecture
//
// The client layer decorates every outgoing request with a cache-busting
// timestamp and injects a configurable share of synthetic upstream failures,
// so the rest of the system is exercised against an unreliable feed. The
// service layer normalizes transport failures and enriches raw posts with
// presentation fields (excerpt, read time, slug).
package posts

import (
	"unicode/utf8"

	"github.com/osanchez/bitacora/pkg/slug"
)

const (
	// excerptRunes is the length of the post preview, in characters.
	excerptRunes = 150

	// readTimeChunk is how many characters of body count as one minute of
	// reading, rounded up.
	readTimeChunk = 200
)

// Post is a raw blog post as served by the upstream feed.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Comment is a reader comment attached to a post.
type Comment struct {
	ID     int    `json:"id"`
	PostID int    `json:"post_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

// Author is the upstream account that wrote a post.
type Author struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

// FormattedPost is a [Post] enriched with the presentation fields the blog
// front-end renders.
type FormattedPost struct {
	Post

	Excerpt         string `json:"excerpt"`
	ReadTimeMinutes int    `json:"read_time_minutes"`
	Slug            string `json:"slug"`
}

// Format enriches a raw post for presentation.
//
// The excerpt is the first 150 characters of the body with a trailing
// ellipsis; the read time is one minute per 200 characters, rounded up.
func Format(post Post) FormattedPost {
	return FormattedPost{
		Post:            post,
		Excerpt:         excerpt(post.Body),
		ReadTimeMinutes: readTime(post.Body),
		Slug:            slug.From(post.Title),
	}
}

// FormatAll enriches a page of raw posts.
func FormatAll(raw []Post) []FormattedPost {
	formatted := make([]FormattedPost, 0, len(raw))
	for _, post := range raw {
		formatted = append(formatted, Format(post))
	}
	return formatted
}

func excerpt(body string) string {
	runes := []rune(body)
	if len(runes) > excerptRunes {
		runes = runes[:excerptRunes]
	}
	return string(runes) + "..."
}

func readTime(body string) int {
	length := utf8.RuneCountInString(body)
	return (length + readTimeChunk - 1) / readTimeChunk
}
