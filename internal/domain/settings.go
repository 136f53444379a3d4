package domain

import "github.com/google/uuid"

// UserSettings is the small per-user configuration blob read once at
// session start. StorageDSN is the optional alternate storage connection
// descriptor; changing it requires rebuilding the storage client.
type UserSettings struct {
	UserID           uuid.UUID
	Language         string
	GenerationAPIKey string
	GenerationModel  string
	StorageDSN       string
}
