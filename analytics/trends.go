package analytics

// TrendDelta captures the period-over-period movement between two metric
// snapshots. Ephemeral: computed on demand for comparison responses, never
// persisted.
type TrendDelta struct {
	RevenueChange float64 `json:"revenueChange"`
	ProfitChange  float64 `json:"profitChange"`
	MarginChange  float64 `json:"marginChange"`
}

// ComputeTrends returns the plain difference (current minus previous) of
// revenue, net profit and net margin. Returns nil when there is no previous
// snapshot to compare against.
func ComputeTrends(prev, curr *Metrics) *TrendDelta {
	if prev == nil || curr == nil {
		return nil
	}

	return &TrendDelta{
		RevenueChange: curr.TotalRevenue - prev.TotalRevenue,
		ProfitChange:  curr.NetProfit - prev.NetProfit,
		MarginChange:  curr.NetMargin - prev.NetMargin,
	}
}
