package telegram

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"techquizbot/internal/quiz"
	"techquizbot/internal/storage"
)

// apiClient — часть tgbotapi.BotAPI, нужная обработчикам. Выделена в
// интерфейс, чтобы подменять клиента в тестах.
type apiClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot struct {
	api    *tgbotapi.BotAPI
	client apiClient
	store  storage.SessionStore
	bank   []quiz.Question
}

func NewBot(token string, store storage.SessionStore, bank []quiz.Question) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:    api,
		client: api,
		store:  store,
		bank:   bank,
	}, nil
}

func (b *Bot) Start() {
	log.Printf("Authorised on account: %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message != nil && update.Message.From != nil {
			switch update.Message.Command() {
			case "start":
				b.handleStart(update.Message.From.ID, update.Message.Chat.ID)
			default:
				b.sendMessage(update.Message.Chat.ID, "Неизвестная команда. Отправьте /start, чтобы начать квиз.")
			}
		}
		if update.CallbackQuery != nil {
			b.handleCallback(update.CallbackQuery)
		}
	}
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	callbackConfig := tgbotapi.NewCallback(callback.ID, "")
	if _, err := b.client.Request(callbackConfig); err != nil {
		log.Printf("Error answering callback: %v", err)
	}

	chatID := callback.Message.Chat.ID
	userID := callback.From.ID
	data := callback.Data

	switch {
	case data == "restart":
		b.handleStart(userID, chatID)
	case strings.HasPrefix(data, "quiz_"):
		b.handleAnswer(userID, chatID, callback.Message.MessageID, data)
	default:
		log.Printf("User %d: unknown callback payload %q", userID, data)
	}
}

// handleStart сбрасывает прогресс и начинает квиз с первого вопроса.
// Команда /start и кнопка "Начать заново" приходят сюда же, поэтому
// рестарт идемпотентен.
func (b *Bot) handleStart(userID, chatID int64) {
	state, err := b.store.Load(userID)
	if err != nil {
		b.reportStoreFailure(userID, chatID, err)
		return
	}

	// Убираем предыдущий вопрос, если он остался висеть в чате
	b.deleteMessage(userID, chatID, state.LastMessageID)

	if err := b.store.Reset(userID); err != nil {
		b.reportStoreFailure(userID, chatID, err)
		return
	}

	b.sendMessage(chatID, "Да начнётся игра!")
	b.sendQuestion(userID, chatID, quiz.StartQuiz())
}

// handleAnswer обрабатывает нажатие кнопки с вариантом ответа.
// Payload имеет вид quiz_<индекс вопроса>_<индекс варианта>.
func (b *Bot) handleAnswer(userID, chatID int64, messageID int, data string) {
	questionIndex, optionIndex, err := parseAnswerPayload(data)
	if err != nil {
		log.Printf("User %d: malformed callback payload: %v", userID, err)
		return
	}

	state, err := b.store.Load(userID)
	if err != nil {
		b.reportStoreFailure(userID, chatID, err)
		return
	}

	// Повторная или запоздавшая доставка колбэка: вопрос уже не текущий
	if state.QuestionIndex != questionIndex {
		log.Printf("User %d: stale answer for question %d, current is %d, ignoring",
			userID, questionIndex, state.QuestionIndex)
		return
	}

	newState, feedback, err := quiz.SubmitAnswer(state, b.bank, optionIndex)
	if err != nil {
		if errors.Is(err, quiz.ErrInvalidState) {
			b.recoverInvalidState(userID, chatID)
			return
		}
		log.Printf("User %d: error submitting answer: %v", userID, err)
		return
	}

	// Убираем кнопки с отвеченного вопроса
	b.removeKeyboard(userID, chatID, messageID)

	if err := b.store.Save(userID, newState); err != nil {
		b.reportStoreFailure(userID, chatID, err)
		return
	}

	if feedback.Correct {
		b.sendMessage(chatID, "✅ Правильно!")
	} else {
		b.sendMessage(chatID, fmt.Sprintf("❌ Неправильно!\nПравильный ответ: %s", feedback.CorrectOption))
	}

	b.sendQuestion(userID, chatID, newState)
}

// sendQuestion отправляет текущий вопрос с кнопками вариантов, либо
// итог квиза, если вопросы кончились. Id отправленного сообщения
// сохраняется, чтобы при рестарте убрать его из чата.
func (b *Bot) sendQuestion(userID, chatID int64, state quiz.State) {
	question, complete, err := quiz.CurrentQuestion(state, b.bank)
	if err != nil {
		b.recoverInvalidState(userID, chatID)
		return
	}
	if complete {
		b.sendResult(userID, chatID, state)
		return
	}

	text := fmt.Sprintf("❓ Вопрос %d/%d\n\n%s", state.QuestionIndex+1, len(b.bank), question.Text)
	msg := tgbotapi.NewMessage(chatID, text)

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range question.Options {
		callbackData := fmt.Sprintf("quiz_%d_%d", state.QuestionIndex, i)
		button := tgbotapi.NewInlineKeyboardButtonData(option, callbackData)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	sent, err := b.client.Send(msg)
	if err != nil {
		log.Printf("User %d: error sending question: %v", userID, err)
		return
	}

	if err := b.store.SetLastMessageRef(userID, sent.MessageID); err != nil {
		log.Printf("User %d: error saving last message id: %v", userID, err)
	}
}

// sendResult отправляет итог квиза и сразу сбрасывает состояние,
// чтобы следующий /start начал с чистого листа.
func (b *Bot) sendResult(userID, chatID int64, state quiz.State) {
	text := fmt.Sprintf("🏁 Квиз завершён!\n\nВы ответили правильно на %d из %d вопросов.",
		state.Score, len(b.bank))

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Начать заново", "restart"),
		),
	)

	if _, err := b.client.Send(msg); err != nil {
		log.Printf("User %d: error sending result: %v", userID, err)
	}

	if err := b.store.Reset(userID); err != nil {
		log.Printf("User %d: error resetting state after result: %v", userID, err)
	}
}

// recoverInvalidState лечит повреждённое состояние: сбрасывает его,
// один раз извиняется перед пользователем и начинает квиз заново.
func (b *Bot) recoverInvalidState(userID, chatID int64) {
	log.Printf("User %d: invalid stored quiz state, resetting", userID)

	if err := b.store.Reset(userID); err != nil {
		b.reportStoreFailure(userID, chatID, err)
		return
	}

	b.sendMessage(chatID, "Произошла ошибка с прогрессом квиза, состояние сброшено. Начнём заново.")
	b.sendQuestion(userID, chatID, quiz.StartQuiz())
}

func (b *Bot) reportStoreFailure(userID, chatID int64, err error) {
	log.Printf("User %d: storage error: %v", userID, err)
	b.sendMessage(chatID, "Произошла ошибка, попробуйте позже :(")
}

// deleteMessage удаляет сообщение из чата. Best-effort: сообщение
// могли удалить руками, поэтому ошибка только логируется.
func (b *Bot) deleteMessage(userID, chatID int64, messageID int) {
	if messageID == 0 {
		return
	}
	if _, err := b.client.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		log.Printf("User %d: error deleting message %d: %v", userID, messageID, err)
	}
}

// removeKeyboard убирает кнопки с отвеченного вопроса. Тоже best-effort.
func (b *Bot) removeKeyboard(userID, chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := b.client.Request(edit); err != nil {
		log.Printf("User %d: error removing keyboard from message %d: %v", userID, messageID, err)
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.client.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

func parseAnswerPayload(data string) (questionIndex, optionIndex int, err error) {
	parts := strings.Split(data, "_")
	if len(parts) != 3 {
		return 0, 0, fmt.Errorf("unexpected payload format: %q", data)
	}
	questionIndex, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad question index in payload %q: %w", data, err)
	}
	optionIndex, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, fmt.Errorf("bad option index in payload %q: %w", data, err)
	}
	return questionIndex, optionIndex, nil
}
