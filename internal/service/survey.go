package service

import (
	"context"
	"errors"
	"log"
	"time"

	"bistro-backend/internal/domain"
)

var (
	ErrMissingRespondent = errors.New("respondent name is required")
	ErrRatingRange       = errors.New("ratings must be between 1 and 5")
	ErrRecommendRange    = errors.New("recommendation score must be between 1 and 10")
)

type SurveyService struct {
	repo      SurveyRepository
	publisher EventPublisher
}

func NewSurveyService(repo SurveyRepository, publisher EventPublisher) *SurveyService {
	return &SurveyService{repo: repo, publisher: publisher}
}

// Submit validates and stores a survey. Surveys are immutable; there is no
// update path.
func (s *SurveyService) Submit(ctx context.Context, survey *domain.Survey) error {
	if survey.Name == "" {
		return ErrMissingRespondent
	}
	for _, rating := range []int{survey.FoodRating, survey.ServiceRating, survey.AtmosphereRating, survey.ValueRating} {
		if rating < 1 || rating > 5 {
			return ErrRatingRange
		}
	}
	if survey.RecommendScore < 1 || survey.RecommendScore > 10 {
		return ErrRecommendRange
	}

	if err := s.repo.InsertSurvey(survey); err != nil {
		return err
	}

	if s.publisher != nil {
		err := s.publisher.PublishEvent(ctx, domain.Event{
			Type:      domain.EventSurveySubmitted,
			SurveyID:  survey.ID,
			Timestamp: time.Now(),
		})
		if err != nil {
			log.Printf("failed to publish survey event: %v", err)
		}
	}
	return nil
}

func (s *SurveyService) List() ([]domain.Survey, error) {
	return s.repo.ListSurveys()
}

var _ SurveyServiceInterface = (*SurveyService)(nil)
