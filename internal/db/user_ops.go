package db

import (
	"database/sql"
	"fmt"
	"log"

	"Proektbot/internal/models"
)

const userColumns = `id, tg_id, phone, first_name, last_name, org_name,
       is_customer, is_executor, is_admin, last_role, blocked, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.TgID, &u.Phone, &u.FirstName, &u.LastName, &u.OrgName,
		&u.IsCustomer, &u.IsExecutor, &u.IsAdmin, &u.LastRole, &u.Blocked,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByID возвращает пользователя по внутреннему ID или nil, если не найден.
func (s *Store) GetUserByID(userID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(s.db.QueryRow(query, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Printf("GetUserByID: ошибка поиска пользователя ID %d: %v", userID, err)
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	return user, nil
}

// GetUserByTgID возвращает пользователя по Telegram ID или nil, если не найден.
func (s *Store) GetUserByTgID(tgID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE tg_id = $1`
	user, err := scanUser(s.db.QueryRow(query, tgID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Printf("GetUserByTgID: ошибка поиска пользователя tg_id %d: %v", tgID, err)
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	return user, nil
}

// GetUserByPhone возвращает пользователя по номеру телефона или nil, если не найден.
func (s *Store) GetUserByPhone(phone string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone = $1`
	user, err := scanUser(s.db.QueryRow(query, phone))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Printf("GetUserByPhone: ошибка поиска пользователя по телефону %s: %v", phone, err)
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	return user, nil
}

// CreateUser регистрирует нового пользователя по телефону и Telegram ID.
func (s *Store) CreateUser(tgID int64, phone string, isAdmin bool) (*models.User, error) {
	query := `
        INSERT INTO users (tg_id, phone, is_admin, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        RETURNING ` + userColumns
	user, err := scanUser(s.db.QueryRow(query, tgID, phone, isAdmin))
	if err != nil {
		log.Printf("CreateUser: ошибка создания пользователя tg_id %d: %v", tgID, err)
		return nil, mapConstraintErr(err)
	}
	log.Printf("CreateUser: создан пользователь ID %d (телефон %s).", user.ID, phone)
	return user, nil
}

// UpdateUserTgID привязывает Telegram ID к существующей учётной записи.
func (s *Store) UpdateUserTgID(userID int64, tgID int64) error {
	query := `UPDATE users SET tg_id = $1, updated_at = NOW() WHERE id = $2`
	_, err := s.db.Exec(query, tgID, userID)
	if err != nil {
		log.Printf("UpdateUserTgID: ошибка обновления tg_id пользователя ID %d: %v", userID, err)
		return mapConstraintErr(err)
	}
	return nil
}

// UpdateUserName сохраняет имя, фамилию и организацию пользователя.
func (s *Store) UpdateUserName(userID int64, firstName, lastName, orgName string) error {
	query := `
        UPDATE users SET first_name = $1, last_name = $2, org_name = NULLIF($3, ''), updated_at = NOW()
        WHERE id = $4`
	_, err := s.db.Exec(query, firstName, lastName, orgName, userID)
	if err != nil {
		log.Printf("UpdateUserName: ошибка обновления профиля пользователя ID %d: %v", userID, err)
		return fmt.Errorf("ошибка обновления профиля: %w", err)
	}
	return nil
}

// SetUserRole включает пользователю роль заказчика или исполнителя.
func (s *Store) SetUserRole(userID int64, role string, enabled bool) error {
	var column string
	switch role {
	case "customer":
		column = "is_customer"
	case "executor":
		column = "is_executor"
	case "admin":
		column = "is_admin"
	default:
		return fmt.Errorf("неизвестная роль: %s", role)
	}
	query := fmt.Sprintf(`UPDATE users SET %s = $1, updated_at = NOW() WHERE id = $2`, column)
	_, err := s.db.Exec(query, enabled, userID)
	if err != nil {
		log.Printf("SetUserRole: ошибка установки роли %s пользователю ID %d: %v", role, userID, err)
		return fmt.Errorf("ошибка установки роли: %w", err)
	}
	return nil
}

// SetLastRole запоминает последнюю активную роль пользователя.
func (s *Store) SetLastRole(userID int64, role string) error {
	query := `UPDATE users SET last_role = $1, updated_at = NOW() WHERE id = $2`
	_, err := s.db.Exec(query, role, userID)
	if err != nil {
		log.Printf("SetLastRole: ошибка сохранения роли пользователя ID %d: %v", userID, err)
		return fmt.Errorf("ошибка сохранения роли: %w", err)
	}
	return nil
}

// SetUserBlocked блокирует или разблокирует пользователя.
func (s *Store) SetUserBlocked(userID int64, blocked bool) (bool, error) {
	query := `UPDATE users SET blocked = $1, updated_at = NOW() WHERE id = $2`
	result, err := s.db.Exec(query, blocked, userID)
	if err != nil {
		log.Printf("SetUserBlocked: ошибка изменения блокировки пользователя ID %d: %v", userID, err)
		return false, fmt.Errorf("ошибка изменения блокировки: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// ListUsers возвращает всех пользователей, упорядоченных по ID.
func (s *Store) ListUsers() ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		log.Printf("ListUsers: ошибка запроса пользователей: %v", err)
		return nil, fmt.Errorf("ошибка получения списка пользователей: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Printf("ListUsers: ошибка сканирования строки: %v", err)
			return nil, fmt.Errorf("ошибка чтения пользователя: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// ListAdmins возвращает администраторов с привязанным Telegram аккаунтом.
func (s *Store) ListAdmins() ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE is_admin = TRUE AND tg_id IS NOT NULL ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		log.Printf("ListAdmins: ошибка запроса администраторов: %v", err)
		return nil, fmt.Errorf("ошибка получения списка администраторов: %w", err)
	}
	defer rows.Close()

	var admins []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Printf("ListAdmins: ошибка сканирования строки: %v", err)
			return nil, fmt.Errorf("ошибка чтения пользователя: %w", err)
		}
		admins = append(admins, *user)
	}
	return admins, rows.Err()
}

// IsAdminPhone проверяет, входит ли телефон в белый список администраторов.
func (s *Store) IsAdminPhone(phone string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM admin_whitelist WHERE phone = $1)`, phone).Scan(&exists)
	if err != nil {
		log.Printf("IsAdminPhone: ошибка проверки телефона %s: %v", phone, err)
		return false, fmt.Errorf("ошибка проверки белого списка: %w", err)
	}
	return exists, nil
}

// AddAdminPhone добавляет телефон в белый список администраторов.
func (s *Store) AddAdminPhone(phone string) error {
	query := `INSERT INTO admin_whitelist (phone, added_at) VALUES ($1, NOW()) ON CONFLICT (phone) DO NOTHING`
	_, err := s.db.Exec(query, phone)
	if err != nil {
		log.Printf("AddAdminPhone: ошибка добавления телефона %s: %v", phone, err)
		return fmt.Errorf("ошибка добавления в белый список: %w", err)
	}
	return nil
}

// RemoveAdminPhone удаляет телефон из белого списка администраторов.
func (s *Store) RemoveAdminPhone(phone string) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM admin_whitelist WHERE phone = $1`, phone)
	if err != nil {
		log.Printf("RemoveAdminPhone: ошибка удаления телефона %s: %v", phone, err)
		return false, fmt.Errorf("ошибка удаления из белого списка: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}
