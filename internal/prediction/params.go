package prediction

import "github.com/packdash/backend-go/internal/config"

// Params are the reorder heuristics shared by every calculation.
type Params struct {
	// DefaultCycleWeeks is the reorder cycle assumed when a client has a
	// single order (six months).
	DefaultCycleWeeks int
	// SafetyBufferWeeks is the lead subtracted from the weeks of stock an
	// order covers.
	SafetyBufferWeeks int
	// WeeksPerMonth converts weekly to monthly consumption.
	WeeksPerMonth float64
	// DueSoonWeeks is the widest gap still classified as due soon.
	DueSoonWeeks int
}

func DefaultParams() Params {
	return Params{
		DefaultCycleWeeks: 26,
		SafetyBufferWeeks: 12,
		WeeksPerMonth:     4.33,
		DueSoonWeeks:      2,
	}
}

// ParamsFromConfig builds Params from configuration, which already carries
// the defaults. A zero buffer or due-soon window is honoured; values that
// would break the arithmetic (non-positive cycle or month length, negative
// weeks) keep the default.
func ParamsFromConfig(cfg config.PredictionConfig) Params {
	p := DefaultParams()
	if cfg.DefaultCycleWeeks > 0 {
		p.DefaultCycleWeeks = cfg.DefaultCycleWeeks
	}
	if cfg.SafetyBufferWeeks >= 0 {
		p.SafetyBufferWeeks = cfg.SafetyBufferWeeks
	}
	if cfg.WeeksPerMonth > 0 {
		p.WeeksPerMonth = cfg.WeeksPerMonth
	}
	if cfg.DueSoonWeeks >= 0 {
		p.DueSoonWeeks = cfg.DueSoonWeeks
	}
	return p
}
