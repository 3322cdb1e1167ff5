package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Telegram TelegramConfig
	Database DatabaseConfig
	Quiz     QuizConfig
}

// TelegramConfig содержит настройки Telegram бота
type TelegramConfig struct {
	Token string `mapstructure:"token"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL.
// Пустой Host означает, что база не настроена и прогресс квиза
// хранится в памяти процесса.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// QuizConfig содержит настройки банка вопросов
type QuizConfig struct {
	QuestionsFile string `mapstructure:"questions_file"`
}

// Enabled сообщает, настроено ли подключение к базе
func (d *DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("quiz.questions_file", "questions.txt")

	// Привязываем переменные окружения явно
	vip.BindEnv("telegram.token", "TELEGRAM_BOT_TOKEN")
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("quiz.questions_file", "QUIZ_QUESTIONS_FILE")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		// Не страшно, если файла нет: есть BindEnv и умолчания
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram bot token is required (check TELEGRAM_BOT_TOKEN env var)")
	}
	if cfg.Database.Enabled() && (cfg.Database.User == "" || cfg.Database.DBName == "") {
		return nil, fmt.Errorf("database configuration (user, dbname) is incomplete (check DATABASE_USER, DATABASE_DBNAME env vars)")
	}

	return &cfg, nil
}
