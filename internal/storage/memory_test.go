package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techquizbot/internal/quiz"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	saved := quiz.State{QuestionIndex: 4, Score: 3, LastMessageID: 1001}

	require.NoError(t, store.Save(7, saved))

	loaded, err := store.Load(7)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded, "Load должен вернуть ровно то, что сохранил Save")
}

func TestMemoryStore_AbsentUser(t *testing.T) {
	store := NewMemoryStore()

	state, err := store.Load(1)
	require.NoError(t, err)
	assert.Equal(t, quiz.State{}, state, "для нового пользователя должно вернуться нулевое состояние")

	// Материализация стабильна: повторное чтение даёт то же самое
	again, err := store.Load(1)
	require.NoError(t, err)
	assert.Equal(t, state, again)
}

func TestMemoryStore_Reset(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(5, quiz.State{QuestionIndex: 9, Score: 6, LastMessageID: 33}))

	require.NoError(t, store.Reset(5))

	state, err := store.Load(5)
	require.NoError(t, err)
	assert.Equal(t, quiz.State{}, state, "Reset должен перезаписать состояние нулевым")

	// Повторный сброс идемпотентен
	require.NoError(t, store.Reset(5))
}

func TestMemoryStore_SetLastMessageRef(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(2, quiz.State{QuestionIndex: 3, Score: 2}))

	require.NoError(t, store.SetLastMessageRef(2, 555))

	state, err := store.Load(2)
	require.NoError(t, err)
	assert.Equal(t, quiz.State{QuestionIndex: 3, Score: 2, LastMessageID: 555}, state,
		"SetLastMessageRef должен обновить только ссылку на сообщение")
}

func TestMemoryStore_UsersAreIsolated(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(1, quiz.State{QuestionIndex: 5, Score: 5}))
	require.NoError(t, store.Save(2, quiz.State{QuestionIndex: 1}))

	first, err := store.Load(1)
	require.NoError(t, err)
	second, err := store.Load(2)
	require.NoError(t, err)

	assert.Equal(t, 5, first.QuestionIndex)
	assert.Equal(t, 1, second.QuestionIndex)
}

func TestNewSessionStore_FallsBackToMemory(t *testing.T) {
	store := NewSessionStore(nil)

	assert.IsType(t, &MemoryStore{}, store, "без базы должен выбираться in-memory бэкенд")
}
