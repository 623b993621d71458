package db

import (
	"database/sql"
	"fmt"
	"log"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
)

const orderColumns = `id, customer_id, name, doc_types, construction_types, sections_capital, sections_linear,
       description, deadline, price, expertise_required, files_link, status, assigned_executor_id,
       created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.Name, &o.DocTypes, &o.ConstructionTypes, &o.SectionsCapital, &o.SectionsLinear,
		&o.Description, &o.Deadline, &o.Price, &o.ExpertiseRequired, &o.FilesLink, &o.Status, &o.AssignedExecutorID,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) queryOrders(query string, args ...interface{}) ([]models.Order, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

// CreateOrder создает заказ в статусе "открыт" и возвращает его.
func (s *Store) CreateOrder(customerID int64, draft models.OrderDraft) (*models.Order, error) {
	query := `
        INSERT INTO orders
            (customer_id, name, doc_types, construction_types, sections_capital, sections_linear,
             description, deadline, price, expertise_required, files_link, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, NULLIF($11, ''), $12, NOW(), NOW())
        RETURNING ` + orderColumns
	order, err := scanOrder(s.db.QueryRow(query,
		customerID, draft.Name, draft.DocTypes, draft.ConstructionTypes, draft.SectionsCapital, draft.SectionsLinear,
		draft.Description, draft.Deadline, draft.Price, draft.ExpertiseRequired, draft.FilesLink,
		constants.STATUS_OPEN,
	))
	if err != nil {
		log.Printf("CreateOrder: ошибка создания заказа заказчика ID %d: %v", customerID, err)
		return nil, fmt.Errorf("ошибка создания заказа: %w", err)
	}
	log.Printf("CreateOrder: создан заказ ID %d (заказчик ID %d).", order.ID, customerID)
	return order, nil
}

// UpdateOrderContent замещает содержимое заказа, не трогая статус и назначение.
func (s *Store) UpdateOrderContent(orderID int64, draft models.OrderDraft) error {
	query := `
        UPDATE orders SET
            name = $1, doc_types = $2, construction_types = $3, sections_capital = $4, sections_linear = $5,
            description = NULLIF($6, ''), deadline = NULLIF($7, ''), price = NULLIF($8, ''),
            expertise_required = $9, files_link = NULLIF($10, ''), updated_at = NOW()
        WHERE id = $11`
	_, err := s.db.Exec(query,
		draft.Name, draft.DocTypes, draft.ConstructionTypes, draft.SectionsCapital, draft.SectionsLinear,
		draft.Description, draft.Deadline, draft.Price, draft.ExpertiseRequired, draft.FilesLink,
		orderID,
	)
	if err != nil {
		log.Printf("UpdateOrderContent: ошибка обновления заказа ID %d: %v", orderID, err)
		return fmt.Errorf("ошибка обновления заказа: %w", err)
	}
	return nil
}

// GetOrder возвращает заказ по ID или nil, если не найден.
func (s *Store) GetOrder(orderID int64) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(s.db.QueryRow(query, orderID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Printf("GetOrder: ошибка получения заказа ID %d: %v", orderID, err)
		return nil, fmt.Errorf("ошибка получения заказа: %w", err)
	}
	return order, nil
}

// SetOrderStatusIf атомарно переводит заказ из expectStatus в newStatus.
// Возвращает false, если смена не произошла (статус уже изменен конкурентно).
func (s *Store) SetOrderStatusIf(orderID int64, expectStatus, newStatus string) (bool, error) {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`
	result, err := s.db.Exec(query, newStatus, orderID, expectStatus)
	if err != nil {
		log.Printf("SetOrderStatusIf: ошибка смены статуса заказа ID %d (%s -> %s): %v", orderID, expectStatus, newStatus, err)
		return false, fmt.Errorf("ошибка смены статуса заказа: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// SetOrderStatusIfUnassigned — то же, но только для заказа без назначенного исполнителя.
func (s *Store) SetOrderStatusIfUnassigned(orderID int64, expectStatus, newStatus string) (bool, error) {
	query := `
        UPDATE orders SET status = $1, updated_at = NOW()
        WHERE id = $2 AND status = $3 AND assigned_executor_id IS NULL`
	result, err := s.db.Exec(query, newStatus, orderID, expectStatus)
	if err != nil {
		log.Printf("SetOrderStatusIfUnassigned: ошибка смены статуса заказа ID %d: %v", orderID, err)
		return false, fmt.Errorf("ошибка смены статуса заказа: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// AssignExecutorIf закрепляет исполнителя за заказом, если статус равен
// expectStatus и исполнитель еще не назначен.
func (s *Store) AssignExecutorIf(orderID, executorID int64, expectStatus string) (bool, error) {
	query := `
        UPDATE orders SET assigned_executor_id = $1, updated_at = NOW()
        WHERE id = $2 AND status = $3 AND assigned_executor_id IS NULL`
	result, err := s.db.Exec(query, executorID, orderID, expectStatus)
	if err != nil {
		log.Printf("AssignExecutorIf: ошибка назначения исполнителя ID %d на заказ ID %d: %v", executorID, orderID, err)
		return false, fmt.Errorf("ошибка назначения исполнителя: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected > 0 {
		log.Printf("AssignExecutorIf: исполнитель ID %d назначен на заказ ID %d.", executorID, orderID)
	}
	return rowsAffected > 0, nil
}

// ListOpenOrders возвращает все незакрытые заказы в стабильном порядке.
func (s *Store) ListOpenOrders() ([]models.Order, error) {
	query := `
        SELECT ` + orderColumns + ` FROM orders
        WHERE status != $1
        ORDER BY created_at, id`
	orders, err := s.queryOrders(query, constants.STATUS_CLOSED)
	if err != nil {
		log.Printf("ListOpenOrders: ошибка запроса заказов: %v", err)
		return nil, fmt.Errorf("ошибка получения открытых заказов: %w", err)
	}
	return orders, nil
}

// ListOrdersByCustomer возвращает заказы заказчика, сначала новые.
func (s *Store) ListOrdersByCustomer(customerID int64) ([]models.Order, error) {
	query := `
        SELECT ` + orderColumns + ` FROM orders
        WHERE customer_id = $1
        ORDER BY created_at DESC, id DESC`
	orders, err := s.queryOrders(query, customerID)
	if err != nil {
		log.Printf("ListOrdersByCustomer: ошибка запроса заказов заказчика ID %d: %v", customerID, err)
		return nil, fmt.Errorf("ошибка получения заказов заказчика: %w", err)
	}
	return orders, nil
}

// ListOrdersAssignedTo возвращает заказы, закрепленные за исполнителем.
func (s *Store) ListOrdersAssignedTo(executorID int64) ([]models.Order, error) {
	query := `
        SELECT ` + orderColumns + ` FROM orders
        WHERE assigned_executor_id = $1
        ORDER BY created_at DESC, id DESC`
	orders, err := s.queryOrders(query, executorID)
	if err != nil {
		log.Printf("ListOrdersAssignedTo: ошибка запроса заказов исполнителя ID %d: %v", executorID, err)
		return nil, fmt.Errorf("ошибка получения заказов исполнителя: %w", err)
	}
	return orders, nil
}
