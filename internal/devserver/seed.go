package devserver

import (
	"fmt"
	"time"

	"github.com/cristianoliveira/courtside/internal/domain"
)

// DefaultPostCount is the number of posts in the default seed: two full pages
// and a short third one.
const DefaultPostCount = 45

var (
	seedAuthors = []string{"minji", "joon", "serena", "dohyun", "alex"}
	seedTopics  = []string{
		"Looking for a doubles partner",
		"Restringing recommendations?",
		"Saturday rally recap",
		"Best indoor courts in Mapo",
		"Backhand drills that helped me",
	}
)

// SeedPosts returns n deterministic posts, newest first. Every third post
// supports notifications.
func SeedPosts(n int, now time.Time) []domain.Post {
	posts := make([]domain.Post, n)
	for i := range posts {
		post := domain.Post{
			ID:        int64(n - i),
			Title:     seedTopics[i%len(seedTopics)],
			Content:   fmt.Sprintf("Post #%d from the community board.", n-i),
			Author:    seedAuthors[i%len(seedAuthors)],
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
			LikeCount: (i * 7) % 13,
		}
		if i%3 == 0 {
			post.NotificationEnabled = domain.BoolPtr(i%2 == 0)
		}
		posts[i] = post
	}
	return posts
}

// SeedSlots returns the default activity and academy schedule. Each list has
// an open, an almost-full and a full slot.
func SeedSlots() map[domain.SlotKind][]domain.Slot {
	return map[domain.SlotKind][]domain.Slot{
		domain.KindActivity: {
			{ID: 101, Kind: domain.KindActivity, Title: "Morning rally", Date: "2026-11-07", StartTime: "07:00", EndTime: "09:00", Location: "Mangwon Park", Court: "Court 2", Current: 3, Max: 8},
			{ID: 102, Kind: domain.KindActivity, Title: "Doubles night", Date: "2026-11-08", StartTime: "19:00", EndTime: "21:00", Location: "Hangang Courts", Court: "Court 5", Current: 7, Max: 8},
			{ID: 103, Kind: domain.KindActivity, Title: "Singles ladder", Date: "2026-11-09", StartTime: "18:00", EndTime: "20:00", Location: "Olympic Park", Court: "Court 1", Current: 4, Max: 4},
		},
		domain.KindAcademy: {
			{ID: 201, Kind: domain.KindAcademy, Title: "Beginner clinic", Date: "2026-11-10", StartTime: "10:00", EndTime: "11:30", Location: "Jamsil Academy", Court: "Indoor A", Current: 2, Max: 6},
			{ID: 202, Kind: domain.KindAcademy, Title: "Serve masterclass", Date: "2026-11-12", StartTime: "20:00", EndTime: "21:30", Location: "Jamsil Academy", Court: "Indoor B", Current: 5, Max: 6},
			{ID: 203, Kind: domain.KindAcademy, Title: "Junior squad", Date: "2026-11-14", StartTime: "15:00", EndTime: "17:00", Location: "Seocho Tennis Center", Court: "Court 3", Current: 10, Max: 10},
		},
	}
}
