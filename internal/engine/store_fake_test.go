package engine

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
)

// fakeStore — хранилище в памяти, повторяющее контракт Store: отсутствующая
// запись это (nil, nil), условные переходы атомарны в пределах вызова.
type fakeStore struct {
	users    map[int64]*models.User
	orders   map[int64]*models.Order
	profiles map[int64]*models.ExecutorProfile
	matches  []*models.Match
	ratings  []*fakeRating

	nextOrderID int64
	nextMatchID int64
}

type fakeRating struct {
	orderID    int64
	fromUserID int64
	toUserID   int64
	stars      int
	review     string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[int64]*models.User),
		orders:   make(map[int64]*models.Order),
		profiles: make(map[int64]*models.ExecutorProfile),
	}
}

func (s *fakeStore) addUser(id int64, isCustomer, isExecutor, blocked bool) *models.User {
	user := &models.User{
		ID:         id,
		Phone:      fmt.Sprintf("+7900000%04d", id),
		TgID:       sql.NullInt64{Int64: 100000 + id, Valid: true},
		IsCustomer: isCustomer,
		IsExecutor: isExecutor,
		Blocked:    blocked,
	}
	s.users[id] = user
	return user
}

func (s *fakeStore) addProfile(userID int64, types, capital, linear []string) *models.ExecutorProfile {
	user := s.users[userID]
	profile := &models.ExecutorProfile{
		UserID:            userID,
		Experience:        constants.EXPERIENCE_3_TO_10,
		ConstructionTypes: models.StringList(types),
		SectionsCapital:   models.StringList(capital),
		SectionsLinear:    models.StringList(linear),
		Phone:             user.Phone,
		TgID:              user.TgID,
		Blocked:           user.Blocked,
	}
	s.profiles[userID] = profile
	return profile
}

func (s *fakeStore) GetUserByID(id int64) (*models.User, error) {
	return s.users[id], nil
}

func (s *fakeStore) GetOrder(orderID int64) (*models.Order, error) {
	return s.orders[orderID], nil
}

func (s *fakeStore) CreateOrder(customerID int64, draft models.OrderDraft) (*models.Order, error) {
	s.nextOrderID++
	order := &models.Order{
		ID:                s.nextOrderID,
		CustomerID:        customerID,
		Name:              draft.Name,
		DocTypes:          draft.DocTypes,
		ConstructionTypes: draft.ConstructionTypes,
		SectionsCapital:   draft.SectionsCapital,
		SectionsLinear:    draft.SectionsLinear,
		Description:       sql.NullString{String: draft.Description, Valid: draft.Description != ""},
		Deadline:          sql.NullString{String: draft.Deadline, Valid: draft.Deadline != ""},
		Price:             sql.NullString{String: draft.Price, Valid: draft.Price != ""},
		ExpertiseRequired: sql.NullBool{Bool: draft.ExpertiseRequired, Valid: true},
		FilesLink:         sql.NullString{String: draft.FilesLink, Valid: draft.FilesLink != ""},
		Status:            constants.STATUS_OPEN,
		CreatedAt:         time.Now(),
	}
	s.orders[order.ID] = order
	return order, nil
}

func (s *fakeStore) UpdateOrderContent(orderID int64, draft models.OrderDraft) error {
	order, ok := s.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	order.Name = draft.Name
	order.DocTypes = draft.DocTypes
	order.ConstructionTypes = draft.ConstructionTypes
	order.SectionsCapital = draft.SectionsCapital
	order.SectionsLinear = draft.SectionsLinear
	order.Description = sql.NullString{String: draft.Description, Valid: draft.Description != ""}
	order.Deadline = sql.NullString{String: draft.Deadline, Valid: draft.Deadline != ""}
	order.Price = sql.NullString{String: draft.Price, Valid: draft.Price != ""}
	order.ExpertiseRequired = sql.NullBool{Bool: draft.ExpertiseRequired, Valid: true}
	order.FilesLink = sql.NullString{String: draft.FilesLink, Valid: draft.FilesLink != ""}
	return nil
}

func (s *fakeStore) SetOrderStatusIf(orderID int64, expectStatus, newStatus string) (bool, error) {
	order, ok := s.orders[orderID]
	if !ok || order.Status != expectStatus {
		return false, nil
	}
	order.Status = newStatus
	return true, nil
}

func (s *fakeStore) SetOrderStatusIfUnassigned(orderID int64, expectStatus, newStatus string) (bool, error) {
	order, ok := s.orders[orderID]
	if !ok || order.Status != expectStatus || order.AssignedExecutorID.Valid {
		return false, nil
	}
	order.Status = newStatus
	return true, nil
}

func (s *fakeStore) AssignExecutorIf(orderID, executorID int64, expectStatus string) (bool, error) {
	order, ok := s.orders[orderID]
	if !ok || order.Status != expectStatus || order.AssignedExecutorID.Valid {
		return false, nil
	}
	order.AssignedExecutorID = sql.NullInt64{Int64: executorID, Valid: true}
	return true, nil
}

func (s *fakeStore) ListOpenOrders() ([]models.Order, error) {
	var result []models.Order
	for _, order := range s.orders {
		if order.Status != constants.STATUS_CLOSED {
			result = append(result, *order)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *fakeStore) GetExecutorProfile(userID int64) (*models.ExecutorProfile, error) {
	return s.profiles[userID], nil
}

func (s *fakeStore) ListExecutorProfiles() ([]models.ExecutorProfile, error) {
	var result []models.ExecutorProfile
	for _, profile := range s.profiles {
		result = append(result, *profile)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (s *fakeStore) findMatch(orderID, executorID int64) *models.Match {
	for _, m := range s.matches {
		if m.OrderID == orderID && m.ExecutorID == executorID {
			return m
		}
	}
	return nil
}

func (s *fakeStore) UpsertDecision(orderID, executorID int64, side, decision string) error {
	match := s.findMatch(orderID, executorID)
	if match == nil {
		s.nextMatchID++
		match = &models.Match{ID: s.nextMatchID, OrderID: orderID, ExecutorID: executorID}
		s.matches = append(s.matches, match)
	}
	switch side {
	case constants.ROLE_CUSTOMER:
		match.CustomerDecision = sql.NullString{String: decision, Valid: true}
	case constants.ROLE_EXECUTOR:
		match.ExecutorDecision = sql.NullString{String: decision, Valid: true}
	default:
		return fmt.Errorf("неизвестная сторона решения: %s", side)
	}
	return nil
}

func (s *fakeStore) GetMatch(orderID, executorID int64) (*models.Match, error) {
	return s.findMatch(orderID, executorID), nil
}

func (s *fakeStore) ListMatchesForOrder(orderID int64) ([]models.Match, error) {
	var result []models.Match
	for _, m := range s.matches {
		if m.OrderID == orderID {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (s *fakeStore) ListMatchesForExecutor(executorID int64) ([]models.Match, error) {
	var result []models.Match
	for _, m := range s.matches {
		if m.ExecutorID == executorID {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (s *fakeStore) UpsertRating(orderID, fromUserID, toUserID int64, stars int, review string) error {
	for _, r := range s.ratings {
		if r.orderID == orderID && r.fromUserID == fromUserID && r.toUserID == toUserID {
			r.stars = stars
			r.review = review
			return nil
		}
	}
	s.ratings = append(s.ratings, &fakeRating{
		orderID:    orderID,
		fromUserID: fromUserID,
		toUserID:   toUserID,
		stars:      stars,
		review:     review,
	})
	return nil
}

func (s *fakeStore) RatingSummary(userID int64) (float64, int, error) {
	sum, count := 0, 0
	for _, r := range s.ratings {
		if r.toUserID == userID {
			sum += r.stars
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}
