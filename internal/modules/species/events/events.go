package events

import "github.com/nfrund/fieldnotes/internal/pubsub"

// SpeciesUpdatedPayload announces a successful edit of a species record.
type SpeciesUpdatedPayload struct {
	Key       string `json:"key"`
	UpdatedBy string `json:"updatedBy"`
}

// SpeciesUpdated is published after a species record has been merged.
var SpeciesUpdated = pubsub.NewEvent[SpeciesUpdatedPayload]("species.updated")
