package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/courtside/internal/colors"
	"github.com/cristianoliveira/courtside/internal/domain"
)

// DialogState defines the inputs needed to render a bordered dialog.
type DialogState struct {
	Title  string
	Body   []string
	Error  string
	Hint   string
	Width  int
	Accent string
}

// Dialog renders a bordered box centered in width.
func Dialog(state DialogState) string {
	accent := state.Accent
	if accent == "" {
		accent = colors.Blue
	}
	color := lipgloss.Color(ansiColorNumber(accent))

	boxWidth := state.Width - 8
	if boxWidth < dialogMinWidth {
		boxWidth = dialogMinWidth
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(color).Render(state.Title), ""}
	lines = append(lines, state.Body...)
	if state.Error != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Red))).Render(state.Error))
	}
	if state.Hint != "" {
		lines = append(lines, "", Muted(state.Hint))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 2).
		Width(boxWidth).
		Render(strings.Join(lines, "\n"))

	if state.Width <= 0 {
		return box
	}
	return lipgloss.PlaceHorizontal(state.Width, lipgloss.Center, box)
}

// SlotDetail renders the application detail dialog.
func SlotDetail(slot domain.Slot, submitting bool, errMsg string, width int) string {
	hint := "a/enter: apply  |  esc: close"
	if submitting {
		hint = "submitting..."
	} else if slot.IsFull() {
		hint = "esc: close"
	}
	return Dialog(DialogState{
		Title: fmt.Sprintf("%s · %s", slot.Kind.Label(), slot.Title),
		Body: []string{
			fmt.Sprintf("Date      %s", slot.Date),
			fmt.Sprintf("Time      %s", slot.TimeWindow()),
			fmt.Sprintf("Location  %s", joinNonEmpty(" / ", slot.Location, slot.Court)),
			fmt.Sprintf("Seats     %d/%d  %s", slot.Current, slot.Max, StatusLabel(slot.Status())),
		},
		Error: errMsg,
		Hint:  hint,
		Width: width,
	})
}

// Completion renders the dialog shown after a submission settles.
func Completion(slot domain.Slot, duplicate bool, errMsg string, width int) string {
	state := DialogState{
		Title:  "Application complete",
		Body:   []string{fmt.Sprintf("You're in for %s on %s.", slot.Title, slot.Date)},
		Error:  errMsg,
		Hint:   "enter: ok",
		Width:  width,
		Accent: colors.Green,
	}
	if duplicate {
		state.Title = "Already applied"
		state.Body = []string{fmt.Sprintf("You have already applied for %s.", slot.Title)}
		state.Accent = colors.Yellow
	}
	return Dialog(state)
}

// ConfirmDelete renders the delete confirmation dialog.
func ConfirmDelete(post domain.Post, deleting bool, width int) string {
	hint := "y: delete  |  n/esc: cancel"
	if deleting {
		hint = "deleting..."
	}
	return Dialog(DialogState{
		Title:  "Delete post?",
		Body:   []string{truncate(post.Title, width-16), Muted("by " + post.Author)},
		Hint:   hint,
		Width:  width,
		Accent: colors.Red,
	})
}

func joinNonEmpty(sep string, values ...string) string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}
