package gateway

import (
	"time"

	"github.com/cristianoliveira/courtside/internal/domain"
)

// PostPayload is the JSON shape of a post.
type PostPayload struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	Content             string    `json:"content"`
	Author              string    `json:"author"`
	CreatedAt           time.Time `json:"createdAt"`
	LikeCount           int       `json:"likeCount"`
	Liked               bool      `json:"liked"`
	NotificationEnabled *bool     `json:"notificationEnabled,omitempty"`
}

// PagePayload is the JSON shape of a page of posts.
type PagePayload struct {
	Items   []PostPayload `json:"items"`
	HasNext bool          `json:"hasNext"`
}

// NotificationPayload is the confirmed notification flag of a post.
type NotificationPayload struct {
	Enabled bool `json:"enabled"`
}

// SlotPayload is the JSON shape of an activity or academy slot.
type SlotPayload struct {
	ID                  int64  `json:"id"`
	Title               string `json:"title"`
	Date                string `json:"date"`
	StartTime           string `json:"startTime"`
	EndTime             string `json:"endTime"`
	Location            string `json:"location"`
	Court               string `json:"court"`
	CurrentParticipants int    `json:"currentParticipants"`
	MaxParticipants     int    `json:"maxParticipants"`
}

// SlotsPayload is the JSON shape of a slot list.
type SlotsPayload struct {
	Items []SlotPayload `json:"items"`
}

// ToDomain converts the payload.
func (p PostPayload) ToDomain() domain.Post {
	return domain.Post{
		ID:                  p.ID,
		Title:               p.Title,
		Content:             p.Content,
		Author:              p.Author,
		CreatedAt:           p.CreatedAt,
		LikeCount:           max(p.LikeCount, 0),
		Liked:               p.Liked,
		NotificationEnabled: p.NotificationEnabled,
	}
}

// PostPayloadFrom converts a domain post.
func PostPayloadFrom(p domain.Post) PostPayload {
	return PostPayload{
		ID:                  p.ID,
		Title:               p.Title,
		Content:             p.Content,
		Author:              p.Author,
		CreatedAt:           p.CreatedAt,
		LikeCount:           p.LikeCount,
		Liked:               p.Liked,
		NotificationEnabled: p.NotificationEnabled,
	}
}

// ToDomain converts the payload, tagging it with kind.
func (s SlotPayload) ToDomain(kind domain.SlotKind) domain.Slot {
	return domain.Slot{
		ID:        s.ID,
		Kind:      kind,
		Title:     s.Title,
		Date:      s.Date,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Location:  s.Location,
		Court:     s.Court,
		Current:   s.CurrentParticipants,
		Max:       s.MaxParticipants,
	}
}

// SlotPayloadFrom converts a domain slot.
func SlotPayloadFrom(s domain.Slot) SlotPayload {
	return SlotPayload{
		ID:                  s.ID,
		Title:               s.Title,
		Date:                s.Date,
		StartTime:           s.StartTime,
		EndTime:             s.EndTime,
		Location:            s.Location,
		Court:               s.Court,
		CurrentParticipants: s.Current,
		MaxParticipants:     s.Max,
	}
}

// KindPath returns the URL segment for a slot kind.
func KindPath(kind domain.SlotKind) string {
	if kind == domain.KindAcademy {
		return "academies"
	}
	return "activities"
}
