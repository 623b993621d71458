package main

import (
	"log"
	"net/http"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"Proektbot/internal/api"
	"Proektbot/internal/config"
	"Proektbot/internal/db"
	"Proektbot/internal/engine"
	"Proektbot/internal/handlers"
	"Proektbot/internal/notify"
	"Proektbot/internal/session"
	"Proektbot/internal/telegram_api"
)

func main() {
	// --- Блок инициализации ---
	err := godotenv.Load()
	if err != nil {
		log.Println("Предупреждение: не удалось загрузить файл .env. Переменные окружения должны быть установлены иным способом.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось загрузить конфигурацию: %v", err)
	}

	if err := db.InitDB(); err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать базу данных: %v", err)
	}
	defer db.CloseDB()

	store := db.NewStore()

	// Телефоны администраторов из окружения попадают в белый список.
	for _, phone := range cfg.AdminPhones {
		if err := store.AddAdminPhone(phone); err != nil {
			log.Printf("main: не удалось добавить администратора %s: %v", phone, err)
		}
	}

	err = telegram_api.InitBot(cfg.TelegramToken, cfg.Debug)
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать Telegram бота: %v", err)
	}

	if telegram_api.Client == nil || telegram_api.Client.GetAPI() == nil {
		log.Fatalf("Критическая ошибка: Telegram API клиент не был корректно инициализирован.")
	}
	botAPI := telegram_api.Client.GetAPI()

	sessionManager := session.NewManager()
	notifier := notify.NewTelegram(telegram_api.Client)
	matchEngine := engine.New(store, notifier)

	botHandler := handlers.NewBotHandler(handlers.HandlerDependencies{
		Config:         cfg,
		BotClient:      telegram_api.Client,
		SessionManager: sessionManager,
		Store:          store,
		Engine:         matchEngine,
	})

	// --- Настройка роутера и Middleware ---
	apiRouter := chi.NewRouter()

	apiRouter.Use(middleware.Logger)
	apiRouter.Use(middleware.Recoverer)
	apiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Admin-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api.SetupRoutes(apiRouter, api.ApiDependencies{
		Config: cfg,
		Store:  store,
	})

	// Запускаем HTTP-сервер в отдельной горутине
	go func() {
		log.Printf("Запуск административного HTTP API на %s", cfg.APIListenAddr)
		if err := http.ListenAndServe(cfg.APIListenAddr, apiRouter); err != nil {
			log.Fatalf("КРИТИЧЕСКАЯ ОШИБКА: не удалось запустить HTTP-сервер: %v", err)
		}
	}()

	// Запуск самого бота
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	log.Println("Бот и API-сервер запущены и готовы к работе...")

	for update := range updates {
		if update.Message != nil {
			log.Printf("[%s] %s", update.Message.From.UserName, update.Message.Text)
			go botHandler.HandleMessage(update)
		} else if update.CallbackQuery != nil {
			log.Printf("Callback от %s: %s", update.CallbackQuery.From.UserName, update.CallbackQuery.Data)
			go botHandler.HandleCallbackQuery(update)
		}
	}
}
