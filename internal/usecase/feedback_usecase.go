package usecase

import (
	"context"

	"ai-calling-agent/internal/agent/tools"
	"ai-calling-agent/internal/converter"
	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
	"ai-calling-agent/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type FeedbackUsecase interface {
	Create(ctx context.Context, req *dto.CreateFeedbackRequest) (*entity.Feedback, error)
	List(ctx context.Context, query dto.FeedbackQuery) ([]entity.Feedback, error)
	Delete(ctx context.Context, id string) error
}

type feedbackUsecase struct {
	log          *logrus.Logger
	feedbackRepo repository.FeedbackRepository
	guard        GuardedWriter
}

func NewFeedbackUsecase(log *logrus.Logger, feedbackRepo repository.FeedbackRepository, guard GuardedWriter) FeedbackUsecase {
	return &feedbackUsecase{
		log:          log,
		feedbackRepo: feedbackRepo,
		guard:        guard,
	}
}

func (u *feedbackUsecase) Create(ctx context.Context, req *dto.CreateFeedbackRequest) (*entity.Feedback, error) {
	feedback := converter.FeedbackFromRequest(req)
	feedback.ApplyDefaults()
	if err := feedback.Validate(); err != nil {
		return nil, err
	}

	created, err := guardedCreate(ctx, u.guard, u.log, tools.FeedbackKey(feedback), "feedback", feedback,
		func() (string, error) {
			if err := u.feedbackRepo.Create(ctx, feedback); err != nil {
				return "", err
			}
			return feedback.ID.String(), nil
		},
		func(id string) { feedback.ID = entity.FeedbackID(id) },
		func(id string) (*entity.Feedback, error) { return u.feedbackRepo.FindByID(ctx, entity.FeedbackID(id)) },
	)
	if err != nil {
		u.log.Warnf("Failed to create feedback: %+v", err)
		return nil, err
	}
	return created, nil
}

func (u *feedbackUsecase) List(ctx context.Context, query dto.FeedbackQuery) ([]entity.Feedback, error) {
	feedback, err := u.feedbackRepo.List(ctx, entity.FeedbackFilter{
		EntityID:  entity.CompanyID(query.EntityID),
		UserEmail: entity.NormalizeEmail(query.UserEmail),
	})
	if err != nil {
		u.log.Warnf("Failed to list feedback: %+v", err)
		return nil, err
	}
	return feedback, nil
}

func (u *feedbackUsecase) Delete(ctx context.Context, id string) error {
	deleted, err := u.feedbackRepo.Delete(ctx, entity.FeedbackID(id))
	if err != nil {
		u.log.Warnf("Failed to delete feedback %s: %+v", id, err)
		return err
	}
	if !deleted {
		return apperr.NotFound("feedback", id)
	}
	return nil
}
