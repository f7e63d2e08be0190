package prediction

import (
	"testing"

	"github.com/packdash/backend-go/internal/config"
	"github.com/packdash/backend-go/internal/domain"
)

func TestParamsFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.PredictionConfig
		want Params
	}{
		{
			name: "configured defaults",
			cfg:  config.PredictionConfig{DefaultCycleWeeks: 26, SafetyBufferWeeks: 12, WeeksPerMonth: 4.33, DueSoonWeeks: 2},
			want: DefaultParams(),
		},
		{
			name: "zero buffer and due soon window",
			cfg:  config.PredictionConfig{DefaultCycleWeeks: 26, SafetyBufferWeeks: 0, WeeksPerMonth: 4.33, DueSoonWeeks: 0},
			want: Params{DefaultCycleWeeks: 26, SafetyBufferWeeks: 0, WeeksPerMonth: 4.33, DueSoonWeeks: 0},
		},
		{
			name: "invalid values keep defaults",
			cfg:  config.PredictionConfig{DefaultCycleWeeks: 0, SafetyBufferWeeks: -1, WeeksPerMonth: -4, DueSoonWeeks: -2},
			want: DefaultParams(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParamsFromConfig(tt.cfg); got != tt.want {
				t.Errorf("ParamsFromConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClientStats_WithoutSafetyBuffer(t *testing.T) {
	calc := NewCalculator(Params{DefaultCycleWeeks: 26, SafetyBufferWeeks: 0, WeeksPerMonth: 4.33, DueSoonWeeks: 0})
	orders := []domain.Order{
		order("o2", 11, 2024, 130),
		order("o1", 1, 2024, 100),
	}

	stats := calc.ClientStats(orders)

	if !approxEqual(stats.WeeksUntilNextOrder, 13) {
		t.Errorf("expected 13 weeks until next order, got %v", stats.WeeksUntilNextOrder)
	}
	if stats.NextOrderPrediction == nil || *stats.NextOrderPrediction != (domain.WeekYear{Week: 24, Year: 2024}) {
		t.Errorf("expected prediction 24/2024, got %+v", stats.NextOrderPrediction)
	}
}
