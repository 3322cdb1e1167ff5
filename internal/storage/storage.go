package storage

import (
	"gorm.io/gorm"

	"techquizbot/internal/quiz"
)

// SessionStore — долговременное хранилище прогресса квиза, ключ —
// идентификатор пользователя Telegram. Отсутствие записи эквивалентно
// чистому состоянию. Ошибки бэкенда пробрасываются наружу как есть:
// ретраи — забота драйвера базы, не этого слоя.
type SessionStore interface {
	// Load возвращает сохранённое состояние. Для нового пользователя
	// возвращает нулевое состояние и сразу материализует нулевую
	// строку, чтобы повторные чтения были стабильны.
	Load(userID int64) (quiz.State, error)

	// Save записывает состояние целиком одним upsert-ом. Частично
	// обновлённая строка не видна конкурентному читателю.
	Save(userID int64, state quiz.State) error

	// Reset — то же, что Save с нулевым состоянием.
	Reset(userID int64) error

	// SetLastMessageRef обновляет только ссылку на последнее
	// сообщение с вопросом (0 — ссылки нет).
	SetLastMessageRef(userID int64, messageID int) error
}

// NewSessionStore выбирает бэкенд: PostgreSQL, если база настроена,
// иначе — in-memory (данные теряются при рестарте).
func NewSessionStore(db *gorm.DB) SessionStore {
	if db != nil {
		return NewPostgresStore(db)
	}
	return NewMemoryStore()
}
