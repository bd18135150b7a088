package wave

import (
	"math"

	"go-hex-lanes/internal/config"
	"go-hex-lanes/pkg/utils"
)

// PerformanceFunc returns the difficulty adjustment for a wave. The result is
// clamped to [1/PBAClamp, PBAClamp] before use. Hosts that track hub health
// or the player's economy can fold HubHealthModifier and
// CoinBalanceModifier from s into it.
type PerformanceFunc func(wave int, s config.WaveSettings) float64

// NeutralPerformance always returns 1.
func NeutralPerformance(int, config.WaveSettings) float64 { return 1 }

// ThreatBudget returns BaseThreat * wave^ThreatExponent * adjustment, with
// the adjustment clamped by PBAClamp. Waves below 1 have no budget.
func ThreatBudget(s config.WaveSettings, wave int, adjustment float64) float64 {
	if wave < 1 {
		return 0
	}
	pba := s.PBAClamp
	if pba < 1 {
		pba = 1
	}
	adj := utils.ClampFloat(adjustment, 1/pba, pba)
	return s.BaseThreat * math.Pow(float64(wave), s.ThreatExponent) * adj
}
