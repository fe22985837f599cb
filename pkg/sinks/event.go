package sinks

import (
	"time"

	"github.com/chainscout-hq/crypto-repo-collector/internal/domain"
)

// Event represents one collected repository record published downstream.
type Event struct {
	Repository  domain.RepositoryRecord `json:"repository"`
	CollectedAt time.Time               `json:"collected_at"`
}

// NewEvent constructs an Event for the given record.
func NewEvent(record domain.RepositoryRecord) Event {
	return Event{
		Repository:  record,
		CollectedAt: time.Now().UTC(),
	}
}
