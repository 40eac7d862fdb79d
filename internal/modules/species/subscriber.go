package species

import (
	"context"
	"log/slog"

	"github.com/nfrund/fieldnotes/internal/modules/species/events"
	"github.com/nfrund/fieldnotes/internal/pubsub"
)

// StateResetSubscriber closes every viewer's modal for a species once that
// species has been edited.
type StateResetSubscriber struct {
	subscriber pubsub.Subscriber
	states     *CardStates
}

// NewStateResetSubscriber creates the subscriber.
func NewStateResetSubscriber(sub pubsub.Subscriber, states *CardStates) *StateResetSubscriber {
	return &StateResetSubscriber{subscriber: sub, states: states}
}

// Start subscribes to species updates. Delivery stops when ctx is cancelled.
func (s *StateResetSubscriber) Start(ctx context.Context) error {
	slog.Info("Starting species state subscriber", "topic", events.SpeciesUpdated.Name())
	return s.subscriber.Subscribe(ctx, events.SpeciesUpdated.Name(), s.handleUpdated)
}

func (s *StateResetSubscriber) handleUpdated(ctx context.Context, msg pubsub.Message) error {
	payload, err := pubsub.Decode(events.SpeciesUpdated, msg)
	if err != nil {
		return err
	}
	s.states.Reset(payload.Key)
	slog.Debug("Reset card state after update", "key", payload.Key, "updated_by", payload.UpdatedBy)
	return nil
}
