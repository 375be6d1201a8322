package feed

// likeToggle is the pending-confirmation token of an optimistic like toggle.
type likeToggle struct {
	postID     int64
	generation uint64
}

// applyLikeToggle flips the like flag of postID and adjusts its counter.
// ok is false when the post is not in the feed.
func applyLikeToggle(s State, postID int64) (next State, token likeToggle, ok bool) {
	i := s.indexOf(postID)
	if i < 0 {
		return s, likeToggle{}, false
	}
	post := s.Posts[i]
	token = likeToggle{postID: postID, generation: s.generation}
	return s.withPost(i, post.WithLiked(!post.Liked)), token, true
}

// revertLikeToggle undoes the flip recorded by token. Toggles commute, so
// undoing one flip means flipping the current value once more, whatever other
// toggles landed since. Posts reloaded after the toggle already carry server
// values and are left alone, and a deleted post stays deleted.
func revertLikeToggle(s State, token likeToggle) State {
	if token.generation != s.generation {
		return s
	}
	i := s.indexOf(token.postID)
	if i < 0 {
		return s
	}
	post := s.Posts[i]
	return s.withPost(i, post.WithLiked(!post.Liked))
}

// notificationToggle is the pending-confirmation token of an optimistic
// notification toggle.
type notificationToggle struct {
	postID     int64
	prev       bool
	generation uint64
}

// applyNotificationToggle flips the notification flag of postID and marks the
// post as updating. ok is false when the post is absent, does not support
// notifications, or already has a toggle in flight.
func applyNotificationToggle(s State, postID int64) (next State, token notificationToggle, ok bool) {
	i := s.indexOf(postID)
	if i < 0 || s.UpdatingNotification[postID] {
		return s, notificationToggle{}, false
	}
	post := s.Posts[i]
	if !post.SupportsNotification() {
		return s, notificationToggle{}, false
	}
	prev := *post.NotificationEnabled
	next = s.withPost(i, post.WithNotification(!prev)).withUpdating(postID, true)
	return next, notificationToggle{postID: postID, prev: prev, generation: s.generation}, true
}

// commitNotificationToggle adopts the value confirmed by the server.
func commitNotificationToggle(s State, token notificationToggle, confirmed bool) State {
	s = s.withUpdating(token.postID, false)
	i := s.indexOf(token.postID)
	if i < 0 {
		return s
	}
	return s.withPost(i, s.Posts[i].WithNotification(confirmed))
}

// revertNotificationToggle restores the value captured in token. Posts
// reloaded after the toggle keep the server value.
func revertNotificationToggle(s State, token notificationToggle) State {
	if token.generation != s.generation {
		return s.withUpdating(token.postID, false)
	}
	return commitNotificationToggle(s, token, token.prev)
}
