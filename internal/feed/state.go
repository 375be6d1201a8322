package feed

import "github.com/cristianoliveira/courtside/internal/domain"

// State is the feed view state rendered by the UI. Values handed out by the
// Pager are copies; mutating them does not affect the pager.
type State struct {
	Posts []domain.Post

	InitialLoading bool
	Refreshing     bool
	LoadingMore    bool

	// Error is the last user-visible failure; empty when none.
	Error string

	// Page is the zero-based index of the last page appended.
	Page int
	// CanLoadMore is false once a page reported that nothing follows it.
	CanLoadMore bool

	// UpdatingNotification holds the ids of posts with a notification toggle in flight.
	UpdatingNotification map[int64]bool

	// PendingDelete is the id of the post awaiting delete confirmation, 0 when none.
	// Post ids are positive.
	PendingDelete int64
	Deleting      bool

	// generation increases whenever a first page replaces Posts. Optimistic
	// tokens from an older generation no longer describe the posts shown.
	generation uint64
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	c := s
	if s.Posts != nil {
		c.Posts = make([]domain.Post, len(s.Posts))
		copy(c.Posts, s.Posts)
	}
	c.UpdatingNotification = make(map[int64]bool, len(s.UpdatingNotification))
	for id := range s.UpdatingNotification {
		c.UpdatingNotification[id] = true
	}
	return c
}

// Loading reports whether any page fetch is in flight.
func (s State) Loading() bool {
	return s.InitialLoading || s.Refreshing || s.LoadingMore
}

// ShowErrorScreen reports whether the error should replace the list: there is
// nothing else to show.
func (s State) ShowErrorScreen() bool {
	return s.Error != "" && len(s.Posts) == 0 && !s.Loading()
}

// IsUpdatingNotification reports whether a notification toggle is in flight for id.
func (s State) IsUpdatingNotification(id int64) bool {
	return s.UpdatingNotification[id]
}

// Post returns the post with the given id.
func (s State) Post(id int64) (domain.Post, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Posts[i], true
	}
	return domain.Post{}, false
}

func (s State) indexOf(id int64) int {
	for i := range s.Posts {
		if s.Posts[i].ID == id {
			return i
		}
	}
	return -1
}

// withPost returns s with the post at i replaced, copying the slice so earlier
// snapshots stay untouched.
func (s State) withPost(i int, p domain.Post) State {
	posts := make([]domain.Post, len(s.Posts))
	copy(posts, s.Posts)
	posts[i] = p
	s.Posts = posts
	return s
}

func (s State) withoutPost(id int64) State {
	i := s.indexOf(id)
	if i < 0 {
		return s
	}
	posts := make([]domain.Post, 0, len(s.Posts)-1)
	posts = append(posts, s.Posts[:i]...)
	posts = append(posts, s.Posts[i+1:]...)
	s.Posts = posts
	return s
}

func (s State) withUpdating(id int64, updating bool) State {
	set := make(map[int64]bool, len(s.UpdatingNotification)+1)
	for k := range s.UpdatingNotification {
		set[k] = true
	}
	if updating {
		set[id] = true
	} else {
		delete(set, id)
	}
	s.UpdatingNotification = set
	return s
}
