package port

import (
	"context"

	"defect-inspector/internal/domain/entity"
)

// UserRepository интерфейс хранилища пользователей
type UserRepository interface {
	// Get возвращает копию пользователя, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет состояние пользователя
	Save(ctx context.Context, user *entity.User) error

	// UpdateState обновляет состояние пользователя
	UpdateState(ctx context.Context, userID int64, state entity.UserState) error

	// AppendFinding атомарно добавляет находку в текущий осмотр и возвращает копию пользователя
	AppendFinding(ctx context.Context, userID, chatID int64, f entity.Finding) (*entity.User, error)
}
