package app

import (
	"context"
	"strings"

	"defect-inspector/internal/domain/entity"
	"defect-inspector/internal/domain/port"
)

const defaultRoom = "Без названия"

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SetState(state)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// BeginCheck начинает осмотр помещения и ждёт фотографии
func (s *UserService) BeginCheck(ctx context.Context, userID, chatID int64, room string) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	room = strings.TrimSpace(room)
	if room == "" {
		room = defaultRoom
	}
	user.StartSession(room)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// RecordFinding добавляет находку в осмотр и снова ждёт фото
func (s *UserService) RecordFinding(ctx context.Context, userID, chatID int64, f entity.Finding) (*entity.User, error) {
	return s.repo.AppendFinding(ctx, userID, chatID, f)
}
