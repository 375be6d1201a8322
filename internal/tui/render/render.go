// Package render draws the courtside screens with lipgloss.
package render

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/courtside/internal/colors"
	"github.com/cristianoliveira/courtside/internal/domain"
	"github.com/cristianoliveira/courtside/internal/errors"
)

const (
	likeWidth      = 6
	bellWidth      = 2
	authorWidth    = 12
	ageWidth       = 4
	statusWidth    = 12
	whenWidth      = 22
	seatsWidth     = 5
	columnSpacing  = 2
	minFlexWidth   = 10
	defaultWidth   = 80
	dialogMinWidth = 36
	ellipsis       = "..."
	mutedColor     = "241"
	bellOn         = "🔔"
	bellOff        = "🔕"
	bellPending    = "…"
)

// Badge is a counter shown next to the screen title.
type Badge struct {
	Name  string
	Count int
}

// HeaderState defines the inputs needed to render the title bar.
type HeaderState struct {
	Title  string
	Tabs   []string
	Active int
	Badges []Badge
	Width  int
}

// PostRowState defines the inputs needed to render a feed row.
type PostRowState struct {
	Post     domain.Post
	Updating bool
	Selected bool
	Width    int
	Now      time.Time
}

// SlotRowState defines the inputs needed to render a slot row.
type SlotRowState struct {
	Slot     domain.Slot
	Selected bool
	Width    int
}

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	Help   []string
	Status *errors.Message
	Width  int
}

// Header renders the title bar with optional tabs and badges.
func Header(state HeaderState) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))

	parts := []string{titleStyle.Render(state.Title)}
	for i, tab := range state.Tabs {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor))
		if i == state.Active {
			style = lipgloss.NewStyle().Bold(true).Underline(true)
		}
		parts = append(parts, style.Render(tab))
	}

	var badges []string
	for _, b := range state.Badges {
		if b.Count <= 0 {
			continue
		}
		badges = append(badges, fmt.Sprintf("%s %d", b.Name, b.Count))
	}
	if len(badges) > 0 {
		badgeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Red)))
		parts = append(parts, badgeStyle.Render("● "+strings.Join(badges, " · ")))
	}

	return strings.Join(parts, "  ")
}

// PostRow renders a single feed row.
func PostRow(state PostRowState) string {
	rowStyle := lipgloss.NewStyle()
	if state.Selected {
		rowStyle = rowStyle.Background(lipgloss.Color(ansiColorNumber(colors.Blue))).Foreground(lipgloss.Color("0"))
	}

	post := state.Post
	like := fmt.Sprintf("♡ %d", post.LikeCount)
	if post.Liked {
		like = fmt.Sprintf("♥ %d", post.LikeCount)
	}

	titleWidth := flexWidth(state.Width, likeWidth+bellWidth+authorWidth+ageWidth, 4)
	row := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %*s",
		likeWidth, like,
		bellWidth, bellIcon(post, state.Updating),
		titleWidth, truncate(post.Title, titleWidth),
		authorWidth, truncate(post.Author, authorWidth),
		ageWidth, calculateAge(post.CreatedAt, state.Now),
	)
	return rowStyle.Render(row)
}

// SlotRow renders a single slot row.
func SlotRow(state SlotRowState) string {
	rowStyle := lipgloss.NewStyle()
	if state.Selected {
		rowStyle = rowStyle.Background(lipgloss.Color(ansiColorNumber(colors.Blue))).Foreground(lipgloss.Color("0"))
	}

	slot := state.Slot
	titleWidth := flexWidth(state.Width, statusWidth+whenWidth+seatsWidth, 3)
	when := strings.TrimSpace(slot.Date + " " + slot.TimeWindow())
	row := fmt.Sprintf("%s  %-*s  %-*s  %*s",
		StatusLabel(slot.Status()),
		titleWidth, truncate(slot.Title, titleWidth),
		whenWidth, truncate(when, whenWidth),
		seatsWidth, fmt.Sprintf("%d/%d", slot.Current, slot.Max),
	)
	return rowStyle.Render(row)
}

// StatusLabel renders a fixed-width colored capacity status.
func StatusLabel(status domain.SlotStatus) string {
	var icon, color string
	switch status {
	case domain.StatusFull:
		icon, color = "○", colors.Red
	case domain.StatusAlmostFull:
		icon, color = "◐", colors.Yellow
	default:
		icon, color = "●", colors.Green
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ansiColorNumber(color))).
		Width(statusWidth).
		Align(lipgloss.Left).
		Render(icon + " " + status.String())
}

// Footer renders the help line and the latest status message.
func Footer(state FooterState) string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor))
	help := helpStyle.Render(strings.Join(state.Help, "  |  "))
	if state.Status == nil || state.Status.Text == "" {
		return help
	}
	return StatusMessage(*state.Status) + "\n" + help
}

// StatusMessage renders a status line entry with its type prefix.
func StatusMessage(msg errors.Message) string {
	var prefix, color string
	switch msg.Type {
	case errors.MessageTypeError:
		prefix, color = "✗ ", colors.Red
	case errors.MessageTypeWarning:
		prefix, color = "⚠ ", colors.Yellow
	case errors.MessageTypeSuccess:
		prefix, color = "✓ ", colors.Green
	default:
		prefix, color = "ℹ ", colors.Cyan
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(color))).Render(prefix + msg.Text)
}

// Muted renders secondary text such as empty-list placeholders.
func Muted(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor)).Render(text)
}

// ErrorScreen renders a full-screen error with a retry hint.
func ErrorScreen(message string, width int) string {
	return Dialog(DialogState{
		Title:  "Something went wrong",
		Body:   []string{message},
		Hint:   "r: retry  |  q: quit",
		Width:  width,
		Accent: colors.Red,
	})
}

func bellIcon(post domain.Post, updating bool) string {
	switch {
	case !post.SupportsNotification():
		return ""
	case updating:
		return bellPending
	case *post.NotificationEnabled:
		return bellOn
	default:
		return bellOff
	}
}

// flexWidth returns the width left for the flexible column of a row.
func flexWidth(width, fixed, columns int) int {
	if width <= 0 {
		width = defaultWidth
	}
	w := width - fixed - columns*columnSpacing
	if w < minFlexWidth {
		return minFlexWidth
	}
	return w
}

func truncate(value string, width int) string {
	if width <= 0 || utf8.RuneCountInString(value) <= width {
		return value
	}
	if width <= len(ellipsis) {
		return string([]rune(value)[:width])
	}
	return string([]rune(value)[:width-len(ellipsis)]) + ellipsis
}

func calculateAge(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	if now.IsZero() {
		now = time.Now()
	}

	duration := now.Sub(t)
	if duration < 0 {
		duration = 0
	}

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	} else if duration < time.Hour {
		return fmt.Sprintf("%dm", int(duration.Minutes()))
	} else if duration < 24*time.Hour {
		return fmt.Sprintf("%dh", int(duration.Hours()))
	}
	return fmt.Sprintf("%dd", int(duration.Hours()/24))
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
