package db

import (
	"database/sql"
	"fmt"
	"log"

	"Proektbot/internal/models"
)

const profileColumns = `p.user_id, p.experience, p.resume_link, p.resume_text,
       p.doc_types, p.construction_types, p.sections_capital, p.sections_linear, p.updated_at,
       u.first_name, u.last_name, u.org_name, u.phone, u.tg_id, u.blocked`

func scanProfile(row interface{ Scan(...interface{}) error }) (*models.ExecutorProfile, error) {
	var p models.ExecutorProfile
	var experience sql.NullString
	err := row.Scan(
		&p.UserID, &experience, &p.ResumeLink, &p.ResumeText,
		&p.DocTypes, &p.ConstructionTypes, &p.SectionsCapital, &p.SectionsLinear, &p.UpdatedAt,
		&p.FirstName, &p.LastName, &p.OrgName, &p.Phone, &p.TgID, &p.Blocked,
	)
	if err != nil {
		return nil, err
	}
	p.Experience = experience.String
	return &p, nil
}

// UpsertExecutorProfile сохраняет анкету исполнителя целиком. Повторная
// регистрация замещает прежнюю анкету.
func (s *Store) UpsertExecutorProfile(p *models.ExecutorProfile) error {
	query := `
        INSERT INTO executor_profiles
            (user_id, experience, resume_link, resume_text, doc_types, construction_types, sections_capital, sections_linear, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
        ON CONFLICT (user_id) DO UPDATE SET
            experience = EXCLUDED.experience,
            resume_link = EXCLUDED.resume_link,
            resume_text = EXCLUDED.resume_text,
            doc_types = EXCLUDED.doc_types,
            construction_types = EXCLUDED.construction_types,
            sections_capital = EXCLUDED.sections_capital,
            sections_linear = EXCLUDED.sections_linear,
            updated_at = NOW()`
	_, err := s.db.Exec(query,
		p.UserID, p.Experience, p.ResumeLink, p.ResumeText,
		p.DocTypes, p.ConstructionTypes, p.SectionsCapital, p.SectionsLinear,
	)
	if err != nil {
		log.Printf("UpsertExecutorProfile: ошибка сохранения анкеты пользователя ID %d: %v", p.UserID, err)
		return fmt.Errorf("ошибка сохранения анкеты: %w", err)
	}
	log.Printf("UpsertExecutorProfile: анкета пользователя ID %d сохранена.", p.UserID)
	return nil
}

// GetExecutorProfile возвращает анкету исполнителя или nil, если не найдена.
func (s *Store) GetExecutorProfile(userID int64) (*models.ExecutorProfile, error) {
	query := `
        SELECT ` + profileColumns + `
        FROM executor_profiles p
        JOIN users u ON u.id = p.user_id
        WHERE p.user_id = $1`
	profile, err := scanProfile(s.db.QueryRow(query, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Printf("GetExecutorProfile: ошибка получения анкеты пользователя ID %d: %v", userID, err)
		return nil, fmt.Errorf("ошибка получения анкеты: %w", err)
	}
	return profile, nil
}

// ListExecutorProfiles возвращает все анкеты исполнителей, упорядоченные по user_id.
func (s *Store) ListExecutorProfiles() ([]models.ExecutorProfile, error) {
	query := `
        SELECT ` + profileColumns + `
        FROM executor_profiles p
        JOIN users u ON u.id = p.user_id
        WHERE u.is_executor = TRUE
        ORDER BY p.user_id`
	rows, err := s.db.Query(query)
	if err != nil {
		log.Printf("ListExecutorProfiles: ошибка запроса анкет: %v", err)
		return nil, fmt.Errorf("ошибка получения анкет: %w", err)
	}
	defer rows.Close()

	var profiles []models.ExecutorProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			log.Printf("ListExecutorProfiles: ошибка сканирования строки: %v", err)
			return nil, fmt.Errorf("ошибка чтения анкеты: %w", err)
		}
		profiles = append(profiles, *profile)
	}
	return profiles, rows.Err()
}
