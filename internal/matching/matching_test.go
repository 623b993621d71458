package matching

import (
	"testing"

	"Proektbot/internal/constants"
	"Proektbot/internal/models"
)

func makeOrder(types, capital, linear []string) *models.Order {
	return &models.Order{
		ID:                1,
		CustomerID:        10,
		Name:              "Проект школы",
		ConstructionTypes: models.StringList(types),
		SectionsCapital:   models.StringList(capital),
		SectionsLinear:    models.StringList(linear),
	}
}

func makeProfile(types, capital, linear []string) *models.ExecutorProfile {
	return &models.ExecutorProfile{
		UserID:            20,
		ConstructionTypes: models.StringList(types),
		SectionsCapital:   models.StringList(capital),
		SectionsLinear:    models.StringList(linear),
	}
}

func TestCompatible(t *testing.T) {
	capital := constants.CONSTRUCTION_CAPITAL
	linear := constants.CONSTRUCTION_LINEAR

	tests := []struct {
		name    string
		order   *models.Order
		profile *models.ExecutorProfile
		want    bool
	}{
		{
			name:    "общий вид и пересечение разделов",
			order:   makeOrder([]string{capital}, []string{"АР", "КР"}, nil),
			profile: makeProfile([]string{capital}, []string{"КР", "ЭОМ"}, nil),
			want:    true,
		},
		{
			name:    "общий вид, но разделы не пересекаются",
			order:   makeOrder([]string{capital}, []string{"АР"}, nil),
			profile: makeProfile([]string{capital}, []string{"ЭОМ", "ВК"}, nil),
			want:    false,
		},
		{
			name:    "виды строительства не пересекаются",
			order:   makeOrder([]string{capital}, []string{"АР"}, nil),
			profile: makeProfile([]string{linear}, nil, []string{"АД"}),
			want:    false,
		},
		{
			name:    "достаточно совпадения по одному из общих видов",
			order:   makeOrder([]string{capital, linear}, []string{"АР"}, []string{"АД"}),
			profile: makeProfile([]string{capital, linear}, []string{"ЭОМ"}, []string{"АД"}),
			want:    true,
		},
		{
			name:    "разделы сравниваются только внутри своего вида",
			order:   makeOrder([]string{capital}, []string{"АР"}, nil),
			profile: makeProfile([]string{capital}, nil, []string{"АР"}),
			want:    false,
		},
		{
			name:    "пустые разделы по общему виду",
			order:   makeOrder([]string{linear}, nil, nil),
			profile: makeProfile([]string{linear}, nil, []string{"АД"}),
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compatible(tt.order, tt.profile); got != tt.want {
				t.Errorf("Compatible() = %v, ожидалось %v", got, tt.want)
			}
		})
	}
}

func TestCompatibleNil(t *testing.T) {
	profile := makeProfile([]string{constants.CONSTRUCTION_CAPITAL}, []string{"АР"}, nil)
	if Compatible(nil, profile) {
		t.Error("Compatible(nil, profile) должен вернуть false")
	}
	order := makeOrder([]string{constants.CONSTRUCTION_CAPITAL}, []string{"АР"}, nil)
	if Compatible(order, nil) {
		t.Error("Compatible(order, nil) должен вернуть false")
	}
}
