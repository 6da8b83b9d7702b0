package tests

import (
	"context"
	"testing"
	"time"

	"bistro-backend/internal/domain"
	"bistro-backend/internal/mocks"
	"bistro-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func validSurvey() *domain.Survey {
	return &domain.Survey{
		Name:             "Bob",
		FoodRating:       5,
		ServiceRating:    4,
		AtmosphereRating: 4,
		ValueRating:      3,
		RecommendScore:   9,
		Liked:            "the pizza",
		MarketingOptIn:   true,
	}
}

func TestSurveyService_Submit(t *testing.T) {
	repo := mocks.NewSurveyRepository(t)
	repo.On("InsertSurvey", mock.AnythingOfType("*domain.Survey")).Return(nil).Once()

	publisher := mocks.NewEventPublisher(t)
	publisher.On("PublishEvent", mock.Anything, mock.MatchedBy(func(event domain.Event) bool {
		return event.Type == domain.EventSurveySubmitted
	})).Return(nil).Once()

	svc := service.NewSurveyService(repo, publisher)

	assert.NoError(t, svc.Submit(context.Background(), validSurvey()))
}

func TestSurveyService_Submit_Validation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(s *domain.Survey)
		expectedErr error
	}{
		{
			name:        "missing name",
			mutate:      func(s *domain.Survey) { s.Name = "" },
			expectedErr: service.ErrMissingRespondent,
		},
		{
			name:        "rating below range",
			mutate:      func(s *domain.Survey) { s.FoodRating = 0 },
			expectedErr: service.ErrRatingRange,
		},
		{
			name:        "rating above range",
			mutate:      func(s *domain.Survey) { s.AtmosphereRating = 6 },
			expectedErr: service.ErrRatingRange,
		},
		{
			name:        "recommend score above range",
			mutate:      func(s *domain.Survey) { s.RecommendScore = 11 },
			expectedErr: service.ErrRecommendRange,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc := service.NewSurveyService(mocks.NewSurveyRepository(t), nil)

			survey := validSurvey()
			testCase.mutate(survey)

			assert.ErrorIs(t, svc.Submit(context.Background(), survey), testCase.expectedErr)
		})
	}
}

func TestAggregator_Process(t *testing.T) {
	day := time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)

	t.Run("order created increments counters", func(t *testing.T) {
		counters := mocks.NewCounterCache(t)
		counters.On("IncrOrderCounters", mock.Anything, "2025-06-15", 29.48).Return(nil).Once()

		agg := service.NewAggregator(nil, counters)
		agg.Process(context.Background(), domain.Event{
			Type:      domain.EventOrderCreated,
			Total:     29.48,
			Status:    domain.PaymentPending,
			Timestamp: day,
		})
	})

	t.Run("failed payment removes revenue", func(t *testing.T) {
		counters := mocks.NewCounterCache(t)
		counters.On("DecrRevenue", mock.Anything, "2025-06-15", 29.48).Return(nil).Once()

		agg := service.NewAggregator(nil, counters)
		agg.Process(context.Background(), domain.Event{
			Type:      domain.EventPaymentUpdated,
			Total:     29.48,
			Status:    domain.PaymentFailed,
			Timestamp: day,
		})
	})

	t.Run("successful payment leaves counters alone", func(t *testing.T) {
		counters := mocks.NewCounterCache(t)

		agg := service.NewAggregator(nil, counters)
		agg.Process(context.Background(), domain.Event{
			Type:      domain.EventPaymentUpdated,
			Total:     29.48,
			Status:    domain.PaymentPaid,
			Timestamp: day,
		})
	})
}
