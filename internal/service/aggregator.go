package service

import (
	"context"
	"encoding/json"
	"log"

	"bistro-backend/internal/domain"

	"github.com/segmentio/kafka-go"
)

// Aggregator consumes order lifecycle events and keeps the Redis dashboard
// counters current, so stats reads do not scan the orders table.
type Aggregator struct {
	Reader   *kafka.Reader
	Counters CounterCache
}

func NewAggregator(reader *kafka.Reader, counters CounterCache) *Aggregator {
	return &Aggregator{Reader: reader, Counters: counters}
}

func (a *Aggregator) Start(ctx context.Context) {
	log.Println("starting dashboard aggregator consumer...")
	for {
		message, err := a.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("error reading event: %v", err)
			continue
		}

		var event domain.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("error unmarshaling event: %v", err)
			continue
		}
		a.Process(ctx, event)
	}
}

func (a *Aggregator) Process(ctx context.Context, event domain.Event) {
	day := event.Timestamp.Format("2006-01-02")
	switch event.Type {
	case domain.EventOrderCreated:
		if err := a.Counters.IncrOrderCounters(ctx, day, event.Total); err != nil {
			log.Printf("error updating order counters: %v", err)
		}
	case domain.EventPaymentUpdated:
		// Failed and refunded orders drop out of the day's revenue; the
		// order count stays.
		if event.Status == domain.PaymentFailed || event.Status == domain.PaymentRefunded {
			if err := a.Counters.DecrRevenue(ctx, day, event.Total); err != nil {
				log.Printf("error adjusting revenue counter: %v", err)
			}
		}
	}
}
