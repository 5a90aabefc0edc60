package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Post and Comment validation errors
var (
	ErrEmptyPostID        = errors.New("post ID cannot be empty")
	ErrEmptyPostAuthor    = errors.New("post author ID cannot be empty")
	ErrEmptyPostTitle     = errors.New("post title cannot be empty")
	ErrPostTitleTooLong   = errors.New("post title must be at most 255 characters")
	ErrEmptyPostBody      = errors.New("post body cannot be empty")
	ErrEmptyCommentID     = errors.New("comment ID cannot be empty")
	ErrEmptyCommentPost   = errors.New("comment post ID cannot be empty")
	ErrEmptyCommenter     = errors.New("commenter ID cannot be empty")
	ErrEmptyCommentBody   = errors.New("comment body cannot be empty")
)

// Post is an entry in the social feed. Unpublished posts are invisible
// through the API; comments are embedded read-only on reads.
type Post struct {
	ID             uuid.UUID  `json:"id"`
	AuthorID       uuid.UUID  `json:"author_id"`
	AuthorUsername string     `json:"author_username,omitempty"` // derived at read time
	Title          string     `json:"title"`
	Body           string     `json:"body"`
	IsPublished    bool       `json:"is_published"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Comments       []*Comment `json:"comments,omitempty"`
}

// NewPost creates a published Post by the given author.
func NewPost(authorID uuid.UUID, title, body string) (*Post, error) {
	now := time.Now().UTC()
	p := &Post{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Title:       title,
		Body:        body,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the Post has valid data.
func (p *Post) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPostID
	}
	if p.AuthorID == uuid.Nil {
		return ErrEmptyPostAuthor
	}
	if p.Title == "" {
		return ErrEmptyPostTitle
	}
	if len(p.Title) > 255 {
		return ErrPostTitleTooLong
	}
	if p.Body == "" {
		return ErrEmptyPostBody
	}
	return nil
}

// Comment belongs to a Post and is listed in timestamp-ascending order.
type Comment struct {
	ID                uuid.UUID `json:"id"`
	PostID            uuid.UUID `json:"post_id"`
	CommenterID       uuid.UUID `json:"commenter_id"`
	CommenterUsername string    `json:"commenter_username,omitempty"` // derived at read time
	Body              string    `json:"body"`
	Timestamp         time.Time `json:"timestamp"`
}

// NewComment creates a Comment on the given post.
func NewComment(postID, commenterID uuid.UUID, body string) (*Comment, error) {
	c := &Comment{
		ID:          uuid.New(),
		PostID:      postID,
		CommenterID: commenterID,
		Body:        body,
		Timestamp:   time.Now().UTC(),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks if the Comment has valid data.
func (c *Comment) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCommentID
	}
	if c.PostID == uuid.Nil {
		return ErrEmptyCommentPost
	}
	if c.CommenterID == uuid.Nil {
		return ErrEmptyCommenter
	}
	if c.Body == "" {
		return ErrEmptyCommentBody
	}
	return nil
}
