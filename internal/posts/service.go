// Copyright (c) 2026 Bitacora. All rights reserved.
// Author: o.sanchez.dev@gmail.com

package posts

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/osanchez/bitacora/internal/platform/constants"
	"github.com/osanchez/bitacora/pkg/pagination"
)

// defaultTotal is assumed when the feed omits or garbles the total-count
// header, so pagination metadata never collapses to zero pages.
const defaultTotal = 100

// Upstream wire shapes. The feed uses camelCase field names; they are
// remapped onto the snake_case API entities here.

type upstreamPost struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type upstreamComment struct {
	PostID int    `json:"postId"`
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

type upstreamAuthor struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	UserName string `json:"username"`
	Email    string `json:"email"`
}

// Service serves the blog feed: paginated post pages, single posts with
// their comments, and author lookups.
type Service struct {
	client *Client
	logger *slog.Logger
}

// NewService creates the feed service.
func NewService(client *Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Posts fetches one page of formatted posts plus the feed's total count.
func (s *Service) Posts(ctx context.Context, params pagination.Params) ([]FormattedPost, int, error) {
	query := url.Values{}
	query.Set("_page", strconv.Itoa(params.Page))
	query.Set("_limit", strconv.Itoa(params.Limit))

	var raw []upstreamPost
	header, err := s.client.getJSON(ctx, "/posts", query, "Post", &raw)
	if err != nil {
		return nil, 0, err
	}

	total := defaultTotal
	if parsed, err := strconv.Atoi(header.Get(constants.HeaderXTotalCount)); err == nil && parsed > 0 {
		total = parsed
	} else {
		s.logger.DebugContext(ctx, "feed total count missing, assuming default",
			slog.Int("assumed", defaultTotal))
	}

	return FormatAll(mapPosts(raw)), total, nil
}

// PostByID fetches and formats a single post.
func (s *Service) PostByID(ctx context.Context, id int) (*FormattedPost, error) {
	var raw upstreamPost
	if _, err := s.client.getJSON(ctx, "/posts/"+strconv.Itoa(id), nil, "Post", &raw); err != nil {
		return nil, err
	}

	formatted := Format(mapPost(raw))
	return &formatted, nil
}

// PostComments fetches the comments of a post.
func (s *Service) PostComments(ctx context.Context, postID int) ([]Comment, error) {
	var raw []upstreamComment
	path := "/posts/" + strconv.Itoa(postID) + "/comments"
	if _, err := s.client.getJSON(ctx, path, nil, "Post", &raw); err != nil {
		return nil, err
	}

	comments := make([]Comment, 0, len(raw))
	for _, comment := range raw {
		comments = append(comments, Comment{
			ID:     comment.ID,
			PostID: comment.PostID,
			Name:   comment.Name,
			Email:  comment.Email,
			Body:   comment.Body,
		})
	}
	return comments, nil
}

// Author fetches the upstream account that wrote a post.
func (s *Service) Author(ctx context.Context, userID int) (*Author, error) {
	var raw upstreamAuthor
	if _, err := s.client.getJSON(ctx, "/users/"+strconv.Itoa(userID), nil, "Author", &raw); err != nil {
		return nil, err
	}

	return &Author{
		ID:       raw.ID,
		Name:     raw.Name,
		UserName: raw.UserName,
		Email:    raw.Email,
	}, nil
}

func mapPost(raw upstreamPost) Post {
	return Post{
		ID:     raw.ID,
		UserID: raw.UserID,
		Title:  raw.Title,
		Body:   raw.Body,
	}
}

func mapPosts(raw []upstreamPost) []Post {
	mapped := make([]Post, 0, len(raw))
	for _, post := range raw {
		mapped = append(mapped, mapPost(post))
	}
	return mapped
}
