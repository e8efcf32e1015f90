package order

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Pesokrava/autospares/internal/domain"
)

const publishTimeout = 5 * time.Second

// publishEvent publishes an order event after commit (non-blocking). A failed
// publish is logged; the order itself is already durable.
func (s *Service) publishEvent(event domain.OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal %s event for order %s", event.Type, event.OrderNumber)
		return
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := s.publisher.Publish(ctx, domain.SubjectOrderEvents, data); err != nil {
			s.logger.Errorf(err, "Failed to publish %s event for order %s", event.Type, event.OrderNumber)
		}
	}()
}
