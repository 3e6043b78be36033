package model

import "time"

// SyncState is the singleton record of the last successful sync and the
// credentials needed to reach the remote recipe/notes service.
type SyncState struct {
	Email               *string
	ServerToken         *string
	ExternalCredentials *string // opaque external-note-system credential blob
	LastSyncAt          *time.Time
}

// LoggedIn reports whether enough credentials are present to attempt a
// remote sync operation.
func (s SyncState) LoggedIn() bool {
	return s.ServerToken != nil && *s.ServerToken != ""
}
