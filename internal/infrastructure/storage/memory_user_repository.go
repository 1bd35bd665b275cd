package storage

import (
	"context"
	"sync"

	"defect-inspector/internal/domain/entity"
	"defect-inspector/internal/domain/port"
)

// MemoryUserRepository in-memory хранилище пользователей и их осмотров.
// Наружу отдаются только копии, изменения проходят под мьютексом.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[int64]*entity.User
}

// NewMemoryUserRepository создаёт новое in-memory хранилище
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int64]*entity.User),
	}
}

// lookup возвращает пользователя, создавая его при первом обращении. Вызывать под mu.
func (r *MemoryUserRepository) lookup(userID, chatID int64) *entity.User {
	user, ok := r.users[userID]
	if !ok {
		user = entity.NewUser(userID, chatID)
		r.users[userID] = user
	}
	return user
}

// Get возвращает копию пользователя, создаёт нового если не найден
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.lookup(userID, chatID).Clone(), nil
}

// Save заменяет сохранённого пользователя копией переданного
func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	r.users[user.ID] = user.Clone()
	r.mu.Unlock()

	return nil
}

// UpdateState обновляет состояние пользователя
func (r *MemoryUserRepository) UpdateState(ctx context.Context, userID int64, state entity.UserState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, exists := r.users[userID]; exists {
		user.SetState(state)
	}

	return nil
}

// AppendFinding добавляет находку в осмотр и снова ждёт фото
func (r *MemoryUserRepository) AppendFinding(ctx context.Context, userID, chatID int64, f entity.Finding) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.lookup(userID, chatID)
	user.AddFinding(f)
	user.SetState(entity.StateAwaitingPhoto)
	return user.Clone(), nil
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*MemoryUserRepository)(nil)
