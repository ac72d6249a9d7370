package service

import (
	"context"
	"time"

	"tenang/internal/domain"
	"tenang/internal/dto"
	"tenang/internal/logger"
	"tenang/internal/repository"
	"tenang/internal/util"
	"tenang/internal/validation"

	"go.uber.org/zap"
)

// JournalService defines the interface for journaling operations.
type JournalService interface {
	SaveToday(ctx context.Context, userID string, req *dto.SaveJournalRequest) (*dto.SaveJournalResponse, error)
	GetToday(ctx context.Context, userID string) (*dto.JournalResponse, error)
	GetHistory(ctx context.Context, userID string, limit int) (*dto.JournalHistoryResponse, error)
}

type journalServiceImpl struct {
	journalRepo repository.JournalRepository
	validator   *validation.Validator
	now         func() time.Time
}

// NewJournalService creates a new instance of JournalService.
func NewJournalService(journalRepo repository.JournalRepository) JournalService {
	return &journalServiceImpl{
		journalRepo: journalRepo,
		validator:   validation.NewValidator(),
		now:         time.Now,
	}
}

// SaveToday creates today's journal entry, or updates it when one already
// exists. Journals keep one row per user per calendar day.
func (s *journalServiceImpl) SaveToday(ctx context.Context, userID string, req *dto.SaveJournalRequest) (*dto.SaveJournalResponse, error) {
	if userID == "" {
		return nil, domain.NewUnauthorizedError("journaling requires an authenticated user")
	}
	if errs := s.validator.ValidateJournalEntry(req.Content, req.Mood); len(errs) > 0 {
		return nil, errs
	}

	now := s.now()
	today := now.Format("2006-01-02")

	existing, err := s.journalRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Title = req.Title
		existing.Content = req.Content
		existing.Mood = req.Mood
		existing.UpdatedAt = now
		if err := s.journalRepo.Update(ctx, existing); err != nil {
			logger.Get().Error("Failed to update journal", zap.String("userID", userID), zap.Error(err))
			return nil, domain.NewSaveFailedError(err)
		}
		return &dto.SaveJournalResponse{Journal: toJournalResponse(existing), Updated: true}, nil
	}

	journal := &domain.Journal{
		ID:        util.NewULID(),
		UserID:    userID,
		Date:      today,
		Title:     req.Title,
		Content:   req.Content,
		Mood:      req.Mood,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.journalRepo.Create(ctx, journal); err != nil {
		logger.Get().Error("Failed to create journal", zap.String("userID", userID), zap.Error(err))
		return nil, domain.NewSaveFailedError(err)
	}
	return &dto.SaveJournalResponse{Journal: toJournalResponse(journal), Updated: false}, nil
}

// GetToday returns today's entry, or a JournalNotFound error when the user
// has not written one yet.
func (s *journalServiceImpl) GetToday(ctx context.Context, userID string) (*dto.JournalResponse, error) {
	today := s.now().Format("2006-01-02")
	journal, err := s.journalRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	if journal == nil {
		return nil, domain.NewJournalNotFoundError()
	}
	resp := toJournalResponse(journal)
	return &resp, nil
}

// GetHistory returns the user's journal entries, newest first.
func (s *journalServiceImpl) GetHistory(ctx context.Context, userID string, limit int) (*dto.JournalHistoryResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	journals, err := s.journalRepo.GetHistory(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.JournalHistoryResponse{Journals: make([]dto.JournalResponse, 0, len(journals))}
	for _, j := range journals {
		resp.Journals = append(resp.Journals, toJournalResponse(j))
	}
	return resp, nil
}

func toJournalResponse(j *domain.Journal) dto.JournalResponse {
	return dto.JournalResponse{
		ID:        j.ID,
		Date:      j.Date,
		Title:     j.Title,
		Content:   j.Content,
		Mood:      j.Mood,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}
