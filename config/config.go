package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурации приложения
type Config struct {
	DatabaseDSN       string
	JwtSecret         string
	ServerPort        string
	ScheduleGenURL    string // адрес внешнего сервиса генерации расписаний
	SheetsCredsFile   string
	SheetsSpreadsheet string
}

// NewConfig создает и возвращает новый экземпляр Config
func NewConfig() *Config {
	// .env опционален: в проде переменные приходят из окружения
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Не удалось загрузить .env: %v", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET не задан")
	}

	return &Config{
		DatabaseDSN:       getEnv("DATABASE_DSN", "postgres://localhost:5432/sop?sslmode=disable"),
		JwtSecret:         jwtSecret,
		ServerPort:        getEnv("SERVER_PORT", "6067"),
		ScheduleGenURL:    getEnv("SCHEDULE_GEN_URL", "http://localhost:8090"),
		SheetsCredsFile:   getEnv("SHEETS_CREDENTIALS_FILE", "credentials.json"),
		SheetsSpreadsheet: getEnv("SHEETS_SPREADSHEET_ID", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
