package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "defect-inspector/internal/application"
	"defect-inspector/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я бот для осмотра помещений.

📸 Отправьте фото стены, потолка или щитка, и я определю дефект: трещину, протечку, сырость, плесень или открытую проводку.

📋 Команды:
/check <помещение> — начать осмотр помещения
/report — сводка по текущему осмотру
/help — справка
/cancel — отменить осмотр`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте /check Кухня
2️⃣ Пришлите одно или несколько фото
3️⃣ На каждое фото придёт метка и балл серьёзности
4️⃣ /report покажет уровень риска по осмотру

💡 Рекомендации:
• Снимайте при хорошем освещении
• Держите камеру ровно, без бликов

📋 Команды:
/check <помещение> — начать осмотр
/report — сводка
/cancel — отменить осмотр`

	msgAwaitingPhoto   = "📸 Осмотр помещения «%s». Отправьте фото."
	msgCancelled       = "❌ Осмотр отменён. Отправьте /check для нового осмотра."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото помещения."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgBusy            = "⏳ Предыдущее фото ещё обрабатывается."
	msgNoFindings      = "📭 В текущем осмотре пока нет фото."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
)

const downloadTimeout = 30 * time.Second

var labelNames = map[entity.Label]string{
	entity.LabelCrack:         "трещина",
	entity.LabelLeak:          "протечка",
	entity.LabelDamp:          "сырость",
	entity.LabelMold:          "плесень",
	entity.LabelExposedWiring: "открытая проводка",
	entity.LabelOK:            "дефектов не видно",
}

var tierNames = map[entity.RiskTier]string{
	entity.RiskHigh:   "🔴 высокий",
	entity.RiskMedium: "🟠 средний",
	entity.RiskLow:    "🟢 низкий",
}

// Bot представляет Telegram-бота
type Bot struct {
	api         *tgbotapi.BotAPI
	users       *app.UserService
	inspections *app.InspectionService
	http        *http.Client
	logger      *slog.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, users *app.UserService, inspections *app.InspectionService, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("authorized on account", "username", api.Self.UserName)

	return &Bot{
		api:         api,
		users:       users,
		inspections: inspections,
		http:        &http.Client{Timeout: downloadTimeout},
		logger:      logger,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.logger.Error("get user", "error", err, "user_id", msg.From.ID)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg, user)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	switch msg.Command() {
	case "start":
		if _, err := b.users.Cancel(ctx, userID, chatID); err != nil {
			b.logger.Error("reset user", "error", err, "user_id", userID)
		}
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "check":
		user, err := b.users.BeginCheck(ctx, userID, chatID, msg.CommandArguments())
		if err != nil {
			b.logger.Error("begin check", "error", err, "user_id", userID)
			b.sendMessage(chatID, msgProcessingError)
			return
		}
		b.sendMessage(chatID, fmt.Sprintf(msgAwaitingPhoto, user.Room))

	case "report":
		report, err := b.inspections.SessionReport(ctx, userID, chatID)
		if errors.Is(err, app.ErrNotFound) {
			b.sendMessage(chatID, msgNoFindings)
			return
		}
		if err != nil {
			b.logger.Error("session report", "error", err, "user_id", userID)
			b.sendMessage(chatID, msgProcessingError)
			return
		}
		b.sendMessage(chatID, FormatReport(report))

	case "cancel":
		if _, err := b.users.Cancel(ctx, userID, chatID); err != nil {
			b.logger.Error("cancel", "error", err, "user_id", userID)
		}
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handlePhoto обрабатывает входящее фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	switch user.State {
	case entity.StateProcessing:
		b.sendMessage(chatID, msgBusy)
		return
	case entity.StateMainMenu:
		// Фото без /check открывает осмотр безымянного помещения.
		if _, err := b.users.BeginCheck(ctx, userID, chatID, ""); err != nil {
			b.logger.Error("begin check", "error", err, "user_id", userID)
			b.sendMessage(chatID, msgProcessingError)
			return
		}
	}

	b.sendMessage(chatID, msgProcessing)

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(ctx, photo.FileID)
	if err != nil {
		b.logger.Error("download photo", "error", err, "user_id", userID)
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	_, res, err := b.inspections.InspectPhoto(ctx, userID, chatID, imageData)
	if err != nil {
		b.logger.Error("inspect photo", "error", err, "user_id", userID)
		b.sendMessage(chatID, msgProcessingError)
		if _, err := b.users.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto); err != nil {
			b.logger.Error("restore state", "error", err, "user_id", userID)
		}
		return
	}

	b.sendMessage(chatID, FormatResult(res))
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send message", "error", err, "chat_id", chatID)
	}
}

// LabelName название метки для ответа пользователю
func LabelName(l entity.Label) string {
	if name, ok := labelNames[l]; ok {
		return name
	}
	return string(l)
}

// FormatResult текст ответа на одно фото
func FormatResult(res entity.ClassificationResult) string {
	if !res.Decoded {
		return msgProcessingError
	}
	if res.Label == entity.LabelOK {
		return "✅ Дефектов не видно."
	}

	icon := "⚠️"
	if res.Label.IsMajor() {
		icon = "🚨"
	}
	return fmt.Sprintf("%s Найдено: %s\nСерьёзность: %.1f", icon, LabelName(res.Label), res.Severity)
}

// FormatReport текст сводки по осмотру
func FormatReport(r app.PropertyReport) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📋 Осмотр «%s»\n", r.PropertyName)
	fmt.Fprintf(&sb, "Фото: %d, средний балл: %.2f\n", r.TotalFindings, r.AvgScore)

	tier, ok := tierNames[r.Tier]
	if !ok {
		tier = string(r.Tier)
	}
	fmt.Fprintf(&sb, "Риск: %s (%.1f)\n", tier, r.RiskScore)

	for _, lc := range r.Labels {
		fmt.Fprintf(&sb, "• %s: %d\n", LabelName(lc.Label), lc.Count)
	}
	sb.WriteString(r.Summary)

	return sb.String()
}
