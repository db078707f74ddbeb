package chat

import "errors"

var (
	ErrNotFound       = errors.New("conversation not found")
	ErrNotParticipant = errors.New("not a participant")
	ErrSelfChat       = errors.New("cannot start a conversation with yourself")
)
