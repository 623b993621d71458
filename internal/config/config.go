package config

import (
	"log"
	"os"
	"strings"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	TelegramToken string
	DatabaseURL   string
	AppEnv        string
	BotUsername   string
	AdminCode     string   // кодовое слово для входа администратора
	AdminPhones   []string // начальный белый список телефонов администраторов
	APIListenAddr string
	APIAdminToken string
	Debug         bool
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_APITOKEN"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AppEnv:        os.Getenv("ENV"),
		BotUsername:   os.Getenv("BOT_USERNAME"),
		AdminCode:     os.Getenv("ADMIN_CODE"),
		APIListenAddr: os.Getenv("API_LISTEN_ADDR"),
		APIAdminToken: os.Getenv("API_ADMIN_TOKEN"),
		Debug:         os.Getenv("DEBUG") == "true",
	}

	if phones := os.Getenv("ADMIN_PHONES"); phones != "" {
		for _, phone := range strings.Split(phones, ",") {
			phone = strings.TrimSpace(phone)
			if phone != "" {
				cfg.AdminPhones = append(cfg.AdminPhones, phone)
			}
		}
	}

	if cfg.APIListenAddr == "" {
		cfg.APIListenAddr = ":8080"
	}

	if cfg.TelegramToken == "" {
		log.Println("Критическая ошибка: TELEGRAM_APITOKEN не установлен.")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Критическая ошибка: DATABASE_URL не установлен.")
	}
	if cfg.AdminCode == "" {
		log.Println("Предупреждение: ADMIN_CODE не установлен, вход администраторов по коду отключен.")
	}
	if cfg.APIAdminToken == "" {
		log.Println("Предупреждение: API_ADMIN_TOKEN не установлен, административный HTTP API будет отклонять запросы.")
	}

	log.Println("Конфигурация загружена.")
	return cfg, nil
}
