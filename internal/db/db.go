package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/lib/pq" // PostgreSQL driver

	"Proektbot/internal/engine"
)

var DB *sql.DB // Глобальное подключение к базе данных

// InitDB инициализирует соединение с базой данных, создает таблицы,
// применяет миграции и индексы.
func InitDB() error {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL не установлена")
	}

	var err error
	DB, err = sql.Open("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("ошибка подключения к базе данных: %v", err)
	}

	DB.SetMaxOpenConns(50)
	DB.SetMaxIdleConns(20)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("ошибка проверки соединения с базой данных: %v", err)
	}
	log.Println("Успешное подключение к базе данных.")

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции для создания таблиц: %v", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			log.Printf("Откат транзакции из-за ошибки: %v", err)
			tx.Rollback()
		}
	}()

	createTablesSQL := `
        CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            tg_id BIGINT UNIQUE,
            phone TEXT UNIQUE NOT NULL,
            first_name TEXT,
            last_name TEXT,
            org_name TEXT,
            is_customer BOOLEAN NOT NULL DEFAULT FALSE,
            is_executor BOOLEAN NOT NULL DEFAULT FALSE,
            is_admin BOOLEAN NOT NULL DEFAULT FALSE,
            last_role TEXT,
            blocked BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMP NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMP NOT NULL DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS executor_profiles (
            user_id INTEGER PRIMARY KEY REFERENCES users(id),
            experience TEXT,
            resume_link TEXT,
            resume_text TEXT,
            doc_types TEXT,
            construction_types TEXT,
            sections_capital TEXT,
            sections_linear TEXT,
            updated_at TIMESTAMP NOT NULL DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            customer_id INTEGER NOT NULL REFERENCES users(id),
            name TEXT NOT NULL,
            doc_types TEXT NOT NULL,
            construction_types TEXT NOT NULL,
            sections_capital TEXT,
            sections_linear TEXT,
            description TEXT,
            deadline TEXT,
            price TEXT,
            expertise_required BOOLEAN,
            files_link TEXT,
            status TEXT NOT NULL,
            assigned_executor_id INTEGER REFERENCES users(id),
            created_at TIMESTAMP NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMP NOT NULL DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS matches (
            id SERIAL PRIMARY KEY,
            order_id INTEGER NOT NULL REFERENCES orders(id),
            executor_id INTEGER NOT NULL REFERENCES users(id),
            customer_decision TEXT,
            executor_decision TEXT,
            created_at TIMESTAMP NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
            UNIQUE (order_id, executor_id)
        );
        CREATE TABLE IF NOT EXISTS ratings (
            id SERIAL PRIMARY KEY,
            order_id INTEGER NOT NULL REFERENCES orders(id),
            from_user_id INTEGER NOT NULL REFERENCES users(id),
            to_user_id INTEGER NOT NULL REFERENCES users(id),
            stars INTEGER NOT NULL,
            review TEXT,
            created_at TIMESTAMP NOT NULL DEFAULT NOW(),
            UNIQUE (order_id, from_user_id, to_user_id)
        );
        CREATE TABLE IF NOT EXISTS help_messages (
            id SERIAL PRIMARY KEY,
            from_user_id INTEGER NOT NULL REFERENCES users(id),
            role TEXT NOT NULL,
            text TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'new',
            created_at TIMESTAMP NOT NULL DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS admin_whitelist (
            phone TEXT PRIMARY KEY,
            added_at TIMESTAMP NOT NULL DEFAULT NOW()
        );
    `
	_, err = tx.Exec(createTablesSQL)
	if err != nil {
		return fmt.Errorf("ошибка создания таблиц: %v", err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("ошибка фиксации транзакции создания таблиц: %v", err)
	}
	log.Println("Создание таблиц (если не существуют) завершено.")

	err = migrateDBSchema()
	if err != nil {
		return fmt.Errorf("ошибка выполнения миграции схемы: %v", err)
	}

	createIndexesSQL := `
        CREATE INDEX IF NOT EXISTS idx_users_tg_id ON users(tg_id);
        CREATE INDEX IF NOT EXISTS idx_orders_customer_id_status ON orders(customer_id, status);
        CREATE INDEX IF NOT EXISTS idx_orders_status_created_at ON orders(status, created_at);
        CREATE INDEX IF NOT EXISTS idx_orders_assigned_executor_id ON orders(assigned_executor_id);
        CREATE INDEX IF NOT EXISTS idx_matches_order_id ON matches(order_id);
        CREATE INDEX IF NOT EXISTS idx_matches_executor_id ON matches(executor_id);
        CREATE INDEX IF NOT EXISTS idx_ratings_to_user_id ON ratings(to_user_id);
        CREATE INDEX IF NOT EXISTS idx_help_messages_status ON help_messages(status);
    `
	for _, stmt := range strings.Split(strings.TrimSpace(createIndexesSQL), ";") {
		trimmedStmt := strings.TrimSpace(stmt)
		if trimmedStmt == "" {
			continue
		}
		if _, errIdx := DB.Exec(trimmedStmt); errIdx != nil {
			log.Printf("Предупреждение: ошибка при создании индекса ('%s'): %v.", trimmedStmt, errIdx)
		}
	}
	log.Println("Инициализация базы данных успешно завершена.")
	return nil
}

// migrateDBSchema применяет идемпотентные миграции схемы.
func migrateDBSchema() error {
	migrations := []struct {
		name string
		sql  string
	}{
		{
			name: "users.last_role",
			sql:  `ALTER TABLE users ADD COLUMN IF NOT EXISTS last_role TEXT;`,
		},
		{
			name: "orders.files_link",
			sql:  `ALTER TABLE orders ADD COLUMN IF NOT EXISTS files_link TEXT;`,
		},
		{
			name: "help_messages.status",
			sql:  `ALTER TABLE help_messages ADD COLUMN IF NOT EXISTS status TEXT NOT NULL DEFAULT 'new';`,
		},
		{
			name: "matches.unique_constraint",
			sql: `DO $$
                  BEGIN
                      IF NOT EXISTS (
                          SELECT 1 FROM pg_constraint
                          WHERE conrelid = 'matches'::regclass
                          AND conname = 'matches_order_id_executor_id_key'
                      ) THEN
                          ALTER TABLE matches ADD CONSTRAINT matches_order_id_executor_id_key UNIQUE (order_id, executor_id);
                      END IF;
                  END$$;`,
		},
	}

	for _, migration := range migrations {
		if _, err := DB.Exec(migration.sql); err != nil {
			if strings.Contains(err.Error(), "already exists") {
				log.Printf("INFO: Миграция '%s' пропущена (объект уже существует).", migration.name)
				continue
			}
			return fmt.Errorf("ошибка миграции схемы ('%s'): %v", migration.name, err)
		}
	}
	log.Println("Миграция схемы базы данных успешно выполнена (или не требовалась).")
	return nil
}

// CloseDB закрывает соединение с базой данных.
func CloseDB() {
	if DB != nil {
		DB.Close()
		log.Println("Соединение с базой данных закрыто.")
	}
}

// Store — реализация engine.Store поверх PostgreSQL.
type Store struct {
	db *sql.DB
}

// NewStore возвращает хранилище поверх инициализированного подключения.
func NewStore() *Store {
	return &Store{db: DB}
}

// mapConstraintErr переводит нарушение уникального ключа в типизированную
// ошибку ядра; по контракту upsert-ов оно означает сбой инвариантов схемы.
func mapConstraintErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %v", engine.ErrDuplicate, err)
	}
	return err
}
