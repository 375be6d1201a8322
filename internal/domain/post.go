// Package domain provides the entities shared by the feed and the application workflow.
package domain

import "time"

// Post is a single community post as shown in the feed.
type Post struct {
	ID        int64
	Title     string
	Content   string
	Author    string
	CreatedAt time.Time
	LikeCount int
	Liked     bool
	// NotificationEnabled is nil when the post does not support notifications.
	NotificationEnabled *bool
}

// SupportsNotification reports whether the notification toggle applies to the post.
func (p Post) SupportsNotification() bool {
	return p.NotificationEnabled != nil
}

// WithLiked returns a copy of the post with the like flag set and the counter adjusted.
// The counter never drops below zero.
func (p Post) WithLiked(liked bool) Post {
	if p.Liked == liked {
		return p
	}
	p.Liked = liked
	if liked {
		p.LikeCount++
	} else if p.LikeCount > 0 {
		p.LikeCount--
	}
	return p
}

// WithNotification returns a copy of the post with the notification flag set.
func (p Post) WithNotification(enabled bool) Post {
	v := enabled
	p.NotificationEnabled = &v
	return p
}

// Page is one fixed-size slice of the feed as returned by the backend.
type Page struct {
	Index   int
	Items   []Post
	HasNext bool
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
