package quiz

import "errors"

// ErrInvalidState возвращается, когда сохранённый индекс вопроса не
// укладывается в границы банка: банк поменялся между запусками или
// строка в базе повреждена. Вызывающий код обязан сбросить состояние
// через StartQuiz и начать квиз заново.
var ErrInvalidState = errors.New("question index is out of range for the quiz bank")

// StartQuiz возвращает чистое состояние. Сброс безусловный,
// повторные вызовы дают тот же результат.
func StartQuiz() State {
	return State{}
}

// CurrentQuestion возвращает вопрос, который нужно показать
// пользователю. complete == true означает, что квиз пройден и
// показывать больше нечего.
func CurrentQuestion(s State, bank []Question) (q Question, complete bool, err error) {
	if s.QuestionIndex < 0 || s.QuestionIndex > len(bank) {
		return Question{}, false, ErrInvalidState
	}
	if s.QuestionIndex == len(bank) {
		return Question{}, true, nil
	}
	return bank[s.QuestionIndex], false, nil
}

// SubmitAnswer проверяет выбранный вариант для текущего вопроса и
// возвращает новое состояние: индекс увеличивается на единицу, счёт —
// на единицу при верном ответе. Правильность определяется сравнением
// индексов, а не текстов вариантов, поэтому одинаковые тексты не
// ломают проверку. Индекс вне диапазона вариантов — просто неверный
// ответ. Ответ после завершения квиза — ErrInvalidState.
func SubmitAnswer(s State, bank []Question, chosen int) (State, Feedback, error) {
	if s.QuestionIndex < 0 || s.QuestionIndex >= len(bank) {
		return s, Feedback{}, ErrInvalidState
	}

	question := bank[s.QuestionIndex]
	feedback := Feedback{Correct: chosen == question.Correct}
	if !feedback.Correct {
		feedback.CorrectOption = question.Options[question.Correct]
	}

	// Ответ обработан — ссылка на сообщение с вопросом очищается.
	next := State{QuestionIndex: s.QuestionIndex + 1, Score: s.Score}
	if feedback.Correct {
		next.Score++
	}
	return next, feedback, nil
}

// IsComplete сообщает, пройден ли квиз до конца.
func IsComplete(s State, bank []Question) bool {
	return s.QuestionIndex >= len(bank)
}
