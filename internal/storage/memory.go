package storage

import (
	"sync"

	"techquizbot/internal/quiz"
)

// MemoryStore хранит состояния в памяти процесса. Используется как
// fallback без настроенной базы и как дублёр в тестах.
type MemoryStore struct {
	mu     sync.Mutex
	states map[int64]quiz.State
}

// NewMemoryStore создает пустое in-memory хранилище
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[int64]quiz.State)}
}

func (s *MemoryStore) Load(userID int64) (quiz.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, exists := s.states[userID]
	if !exists {
		// Материализуем нулевую строку, как это делает Postgres-бэкенд
		s.states[userID] = quiz.State{}
		return quiz.State{}, nil
	}
	return state, nil
}

func (s *MemoryStore) Save(userID int64, state quiz.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[userID] = state
	return nil
}

func (s *MemoryStore) Reset(userID int64) error {
	return s.Save(userID, quiz.State{})
}

func (s *MemoryStore) SetLastMessageRef(userID int64, messageID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.states[userID]
	state.LastMessageID = messageID
	s.states[userID] = state
	return nil
}
