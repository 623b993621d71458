// Пакет matching содержит чистый предикат совместимости заказа и анкеты
// исполнителя. Никаких побочных эффектов и обращений к хранилищу.
package matching

import (
	"Proektbot/internal/constants"
	"Proektbot/internal/models"
)

// Compatible возвращает true, если виды строительства заказа и анкеты
// пересекаются и хотя бы для одного общего вида пересекаются соответствующие
// наборы разделов (капитальное — с капитальными, линейные — с линейными).
// Достаточно совпадения по одному из общих видов.
func Compatible(order *models.Order, profile *models.ExecutorProfile) bool {
	if order == nil || profile == nil {
		return false
	}
	for _, ctype := range order.ConstructionTypes {
		if !profile.ConstructionTypes.Contains(ctype) {
			continue
		}
		switch ctype {
		case constants.CONSTRUCTION_CAPITAL:
			if order.SectionsCapital.Intersects(profile.SectionsCapital) {
				return true
			}
		case constants.CONSTRUCTION_LINEAR:
			if order.SectionsLinear.Intersects(profile.SectionsLinear) {
				return true
			}
		}
	}
	return false
}
