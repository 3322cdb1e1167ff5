package quiz

// Question — один вопрос викторины. Банк вопросов фиксирован,
// общий для всех пользователей и только для чтения.
type Question struct {
	Text    string
	Options []string
	Correct int
}

// State — прогресс одного пользователя. QuestionIndex указывает на
// следующий вопрос к показу; значение len(bank) означает, что квиз
// пройден. LastMessageID — id последнего отправленного сообщения с
// вопросом, 0 — если такого сообщения нет.
type State struct {
	QuestionIndex int
	Score         int
	LastMessageID int
}

// Feedback — результат проверки ответа. CorrectOption заполняется
// текстом правильного варианта только для неверного ответа.
type Feedback struct {
	Correct       bool
	CorrectOption string
}
