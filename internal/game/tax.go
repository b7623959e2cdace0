package game

import "time"

// TaxParams describes the time-increasing wager tax. BaseTax applies while
// more than LateWindow remains; the rate then climbs linearly to MaxTax at
// zero. Every agent computes pool contributions locally, so this function
// must be identical and deterministic everywhere.
type TaxParams struct {
	LateWindow time.Duration
	BaseTax    float64
	MaxTax     float64
}

func (p TaxParams) Rate(timeLeft time.Duration) float64 {
	if timeLeft > p.LateWindow {
		return p.BaseTax
	}
	if p.LateWindow <= 0 {
		return p.MaxTax
	}

	progress := float64(p.LateWindow-timeLeft) / float64(p.LateWindow)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	return p.BaseTax + progress*(p.MaxTax-p.BaseTax)
}
