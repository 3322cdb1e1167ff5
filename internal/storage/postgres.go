package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"techquizbot/internal/quiz"
)

// QuizState — строка таблицы quiz_state, одна на пользователя
type QuizState struct {
	UserID                uint64 `gorm:"primaryKey"`
	QuestionIndex         uint64 `gorm:"not null"`
	Score                 uint64 `gorm:"not null"`
	LastQuestionMessageID uint64 `gorm:"not null"`
}

// TableName определяет имя таблицы для GORM
func (QuizState) TableName() string {
	return "quiz_state"
}

// PostgresStore реализует SessionStore поверх PostgreSQL
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore создает новое хранилище состояний квиза
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Load читает состояние пользователя. ErrRecordNotFound означает
// нового пользователя, любая другая ошибка — недоступность базы.
func (s *PostgresStore) Load(userID int64) (quiz.State, error) {
	var row QuizState
	err := s.db.First(&row, "user_id = ?", uint64(userID)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.Reset(userID); err != nil {
			return quiz.State{}, err
		}
		return quiz.State{}, nil
	}
	if err != nil {
		return quiz.State{}, fmt.Errorf("failed to load quiz state: %w", err)
	}

	return quiz.State{
		QuestionIndex: int(row.QuestionIndex),
		Score:         int(row.Score),
		LastMessageID: int(row.LastQuestionMessageID),
	}, nil
}

// Save записывает строку целиком одним UPSERT-ом
func (s *PostgresStore) Save(userID int64, state quiz.State) error {
	row := QuizState{
		UserID:                uint64(userID),
		QuestionIndex:         uint64(state.QuestionIndex),
		Score:                 uint64(state.Score),
		LastQuestionMessageID: uint64(state.LastMessageID),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save quiz state: %w", err)
	}
	return nil
}

// Reset перезаписывает состояние нулевым. Строка не удаляется,
// поэтому повторный сброс идемпотентен.
func (s *PostgresStore) Reset(userID int64) error {
	return s.Save(userID, quiz.State{})
}

// SetLastMessageRef обновляет только last_question_message_id
func (s *PostgresStore) SetLastMessageRef(userID int64, messageID int) error {
	err := s.db.Model(&QuizState{}).
		Where("user_id = ?", uint64(userID)).
		Update("last_question_message_id", uint64(messageID)).Error
	if err != nil {
		return fmt.Errorf("failed to update last message id: %w", err)
	}
	return nil
}
