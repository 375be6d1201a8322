package feed

import "github.com/cristianoliveira/courtside/internal/domain"

type loadMode int

const (
	loadInitial loadMode = iota
	loadRefresh
	loadMore
)

func (m loadMode) String() string {
	switch m {
	case loadRefresh:
		return "refresh"
	case loadMore:
		return "more"
	default:
		return "initial"
	}
}

// pageLoadedMsg carries the result of a page fetch. Results from an older
// epoch were superseded by a refresh and are dropped.
type pageLoadedMsg struct {
	epoch uint64
	mode  loadMode
	index int
	page  domain.Page
	err   error
}

type likeToggledMsg struct {
	token likeToggle
	err   error
}

type notificationToggledMsg struct {
	token     notificationToggle
	confirmed bool
	err       error
}

type postDeletedMsg struct {
	postID int64
	err    error
}
