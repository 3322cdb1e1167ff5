package quiz

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
)

// ParseQuestions парсит вопросы из TXT файла. Формат: блоки,
// разделённые пустыми строками; первая строка блока — текст вопроса,
// дальше варианты ответа, по одному на строку, с префиксом "-" для
// неверного и "*" для верного. Строки, начинающиеся с "#", — комментарии.
func ParseQuestions(filename string) ([]Question, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var questions []Question
	var block []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		if line == "" {
			if len(block) > 0 {
				question, err := parseQuestionBlock(block)
				if err != nil {
					return nil, fmt.Errorf("error parsing question %q: %w", block[0], err)
				}
				questions = append(questions, question)
				block = nil
			}
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	// Последний блок может не заканчиваться пустой строкой
	if len(block) > 0 {
		question, err := parseQuestionBlock(block)
		if err != nil {
			return nil, fmt.Errorf("error parsing question %q: %w", block[0], err)
		}
		questions = append(questions, question)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("no valid questions found in file")
	}

	return questions, nil
}

// parseQuestionBlock парсит один блок: вопрос и его варианты ответа
func parseQuestionBlock(lines []string) (Question, error) {
	question := Question{Text: lines[0], Correct: -1}
	if question.Text == "" {
		return Question{}, fmt.Errorf("question cannot be empty")
	}

	for _, line := range lines[1:] {
		marker := line[0]
		option := strings.TrimSpace(line[1:])
		if option == "" {
			return Question{}, fmt.Errorf("option cannot be empty")
		}

		switch marker {
		case '*':
			if question.Correct != -1 {
				return Question{}, fmt.Errorf("more than one option is marked as correct")
			}
			question.Correct = len(question.Options)
			question.Options = append(question.Options, option)
		case '-':
			question.Options = append(question.Options, option)
		default:
			return Question{}, fmt.Errorf("option must start with '-' or '*', got %q", line)
		}
	}

	if len(question.Options) < 2 {
		return Question{}, fmt.Errorf("question must have at least 2 options, got %d", len(question.Options))
	}
	if question.Correct == -1 {
		return Question{}, fmt.Errorf("no option is marked as correct")
	}

	return question, nil
}

// LoadQuestions загружает вопросы из файла или возвращает дефолтные при ошибке
func LoadQuestions(filename string) []Question {
	questions, err := ParseQuestions(filename)
	if err != nil {
		log.Printf("Warning: Failed to load questions from %s: %v", filename, err)
		log.Println("Using default questions...")
		return DefaultQuestions()
	}

	log.Printf("Successfully loaded %d questions from %s", len(questions), filename)
	return questions
}

// DefaultQuestions возвращает вопросы по умолчанию
func DefaultQuestions() []Question {
	return []Question{
		{
			Text:    "В каком году был запущен проект SpaceX по коммерческой доставке грузов на МКС?",
			Options: []string{"2015", "2010", "2012", "2008"},
			Correct: 2,
		},
		{
			Text:    "Какая социальная сеть впервые внедрила функцию \"Stories\"?",
			Options: []string{"Instagram", "Facebook", "Snapchat", "TikTok"},
			Correct: 2,
		},
		{
			Text:    "В каком году был представлен первый коммерческий электромобиль Tesla Model S?",
			Options: []string{"2018", "2020", "2015", "2012"},
			Correct: 3,
		},
		{
			Text:    "Какая страна первой легализовала использование криптовалюты в национальной экономике?",
			Options: []string{"Эль-Сальвадор", "Япония", "США", "Мали"},
			Correct: 0,
		},
		{
			Text:    "Какой вирус стал причиной глобальной пандемии в 2020 году?",
			Options: []string{"Троянский конь", "COVID-19", "Вирус ГРИППа", "H1N1"},
			Correct: 1,
		},
		{
			Text:    "Какая технология стала основной для развития \"умных городов\"?",
			Options: []string{"Блокчейн", "Интернет вещей (IoT)", "Искусственный интеллект", "Дополненная реальность"},
			Correct: 1,
		},
		{
			Text:    "Кто стал первым миллиардером, заработавшим состояние на криптовалюте?",
			Options: []string{"Питер Паркер", "Сатоши Накамото", "Чарли Шин", "Илон Маск"},
			Correct: 1,
		},
		{
			Text:    "В каком году состоялась первая успешная миссия по посадке робота на Марс?",
			Options: []string{"2016", "2018", "2024", "2021"},
			Correct: 3,
		},
		{
			Text:    "Какое изобретение 21 века кардинально изменило подход к хранению и обмену информацией?",
			Options: []string{"Облачное хранилище", "USB-накопитель", "Блокчейн", "SSD-диск"},
			Correct: 0,
		},
		{
			Text:    "Какая технология обеспечивает безопасность данных с помощью шифрования и аутентификации?",
			Options: []string{"Блокчейн", "Криптография", "Искусственный интеллект", "Облачное хранение"},
			Correct: 1,
		},
	}
}
