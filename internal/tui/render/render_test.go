package render

import (
	"testing"
	"time"

	"github.com/cristianoliveira/courtside/internal/colors"
	"github.com/cristianoliveira/courtside/internal/domain"
	"github.com/cristianoliveira/courtside/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestCalculateAge(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		at       time.Time
		expected string
	}{
		{"zero", time.Time{}, ""},
		{"seconds", now.Add(-30 * time.Second), "30s"},
		{"minutes", now.Add(-5 * time.Minute), "5m"},
		{"hours", now.Add(-3 * time.Hour), "3h"},
		{"days", now.Add(-49 * time.Hour), "2d"},
		{"future", now.Add(time.Hour), "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calculateAge(tt.at, now))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "이미 신...", truncate("이미 신청한 활동입니다", 7))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "abcdef", truncate("abcdef", 0))
}

func TestBellIcon(t *testing.T) {
	assert.Equal(t, "", bellIcon(domain.Post{}, false))
	assert.Equal(t, bellOn, bellIcon(domain.Post{NotificationEnabled: domain.BoolPtr(true)}, false))
	assert.Equal(t, bellOff, bellIcon(domain.Post{NotificationEnabled: domain.BoolPtr(false)}, false))
	assert.Equal(t, bellPending, bellIcon(domain.Post{NotificationEnabled: domain.BoolPtr(false)}, true))
}

func TestAnsiColorNumber(t *testing.T) {
	assert.Equal(t, "34", ansiColorNumber(colors.Blue))
	assert.Equal(t, "33", ansiColorNumber(colors.Yellow))
	assert.Equal(t, "", ansiColorNumber("x"))
}

func TestPostRow(t *testing.T) {
	now := time.Now()
	row := PostRow(PostRowState{
		Post:  domain.Post{Title: "Looking for a doubles partner", Author: "minji", LikeCount: 4, Liked: true, CreatedAt: now.Add(-2 * time.Hour)},
		Width: 100,
		Now:   now,
	})

	assert.Contains(t, row, "♥ 4")
	assert.Contains(t, row, "Looking for a doubles partner")
	assert.Contains(t, row, "minji")
	assert.Contains(t, row, "2h")

	unliked := PostRow(PostRowState{Post: domain.Post{Title: "x", LikeCount: 0}})
	assert.Contains(t, unliked, "♡ 0")
}

func TestSlotRow(t *testing.T) {
	row := SlotRow(SlotRowState{
		Slot:  domain.Slot{Title: "Doubles night", Date: "2026-11-08", StartTime: "19:00", EndTime: "21:00", Current: 7, Max: 8},
		Width: 100,
	})

	assert.Contains(t, row, "almost-full")
	assert.Contains(t, row, "Doubles night")
	assert.Contains(t, row, "2026-11-08 19:00-21:00")
	assert.Contains(t, row, "7/8")
}

func TestHeaderShowsTabsAndBadges(t *testing.T) {
	header := Header(HeaderState{
		Title:  "courtside",
		Tabs:   []string{"Activities", "Academies"},
		Active: 1,
		Badges: []Badge{{Name: "applications", Count: 2}, {Name: "notifications", Count: 0}},
	})

	assert.Contains(t, header, "courtside")
	assert.Contains(t, header, "Academies")
	assert.Contains(t, header, "applications 2")
	assert.NotContains(t, header, "notifications")
}

func TestFooter(t *testing.T) {
	plain := Footer(FooterState{Help: []string{"j/k: move", "q: quit"}})
	assert.Contains(t, plain, "j/k: move  |  q: quit")
	assert.NotContains(t, plain, "\n")

	withStatus := Footer(FooterState{
		Help:   []string{"q: quit"},
		Status: &errors.Message{Text: "failed to load posts", Type: errors.MessageTypeError},
	})
	assert.Contains(t, withStatus, "✗ failed to load posts")
	assert.Contains(t, withStatus, "q: quit")
}

func TestDialogs(t *testing.T) {
	slot := domain.Slot{Kind: domain.KindAcademy, Title: "Serve masterclass", Date: "2026-11-12", StartTime: "20:00", Location: "Jamsil Academy", Court: "Indoor B", Current: 6, Max: 6}

	detail := SlotDetail(slot, false, "slot is full", 80)
	assert.Contains(t, detail, "Serve masterclass")
	assert.Contains(t, detail, "Jamsil Academy / Indoor B")
	assert.Contains(t, detail, "slot is full")
	assert.NotContains(t, detail, "a/enter: apply")

	assert.Contains(t, Completion(slot, false, "", 80), "Application complete")
	assert.Contains(t, Completion(slot, true, "", 80), "Already applied")

	confirm := ConfirmDelete(domain.Post{Title: "Restringing recommendations?", Author: "joon"}, false, 80)
	assert.Contains(t, confirm, "Delete post?")
	assert.Contains(t, confirm, "y: delete")

	assert.Contains(t, ErrorScreen("failed to load posts: offline", 80), "failed to load posts: offline")
}

func TestStatusLabel(t *testing.T) {
	assert.Contains(t, StatusLabel(domain.StatusOpen), "● open")
	assert.Contains(t, StatusLabel(domain.StatusAlmostFull), "◐ almost-full")
	assert.Contains(t, StatusLabel(domain.StatusFull), "○ full")
}
