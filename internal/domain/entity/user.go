package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingPhoto UserState = "awaiting_photo" // Ожидание фото помещения
	StateProcessing    UserState = "processing"     // Обработка изображения
)

// User представляет пользователя бота
type User struct {
	ID       int64     // Telegram User ID
	ChatID   int64     // Telegram Chat ID
	State    UserState // Текущее состояние пользователя
	Room     string    // Помещение текущего осмотра
	Findings []Finding // Находки текущего осмотра
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// StartSession начинает новый осмотр помещения и сбрасывает прежние находки
func (u *User) StartSession(room string) {
	u.Room = room
	u.Findings = nil
	u.State = StateAwaitingPhoto
}

// AddFinding добавляет находку в текущий осмотр
func (u *User) AddFinding(f Finding) {
	u.Findings = append(u.Findings, f)
}

// Clone возвращает независимую копию пользователя вместе с находками
func (u *User) Clone() *User {
	c := *u
	if u.Findings != nil {
		c.Findings = make([]Finding, len(u.Findings))
		copy(c.Findings, u.Findings)
	}
	return &c
}
