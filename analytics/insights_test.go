package analytics

import (
	"reflect"
	"strings"
	"testing"
)

func hasInsight(insights []Insight, substr string) bool {
	for _, in := range insights {
		if strings.Contains(in.Text, substr) {
			return true
		}
	}
	return false
}

func TestPQITierExclusivity(t *testing.T) {
	tests := []struct {
		name      string
		netMargin float64
		wantPQI   string
	}{
		{"above 20", 25, PQIHigh},
		{"boundary 20 falls to good", 20, PQIGood},
		{"above 15", 18, PQIGood},
		{"above 10", 12, PQIMedium},
		{"above 5", 7, PQILow},
		{"above 0", 3, PQIVeryLow},
		{"exactly 0", 0, PQINegative},
		{"negative", -5, PQINegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Metrics{
				TotalRevenue: 100,
				NetProfit:    tt.netMargin,
				NetMargin:    tt.netMargin,
			}
			Generate(&m, Inputs{})
			if m.PQI != tt.wantPQI {
				t.Errorf("netMargin %v: expected PQI %q, got %q", tt.netMargin, tt.wantPQI, m.PQI)
			}
		})
	}
}

func TestExpenseHealthScore(t *testing.T) {
	tests := []struct {
		name          string
		totalExpenses float64
		wantScore     int
	}{
		{"ratio 0.40", 40, 90},
		{"ratio 0.50 boundary", 50, 90},
		{"ratio 0.55", 55, 80},
		{"ratio 0.65", 65, 70},
		{"ratio 0.75", 75, 60},
		{"ratio 0.85", 85, 50},
		{"ratio 0.95", 95, 30},
		{"ratio above 1", 120, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Metrics{
				TotalRevenue:  100,
				TotalExpenses: tt.totalExpenses,
			}
			Generate(&m, Inputs{})
			if m.ExpenseScore != tt.wantScore {
				t.Errorf("expenses %v: expected score %d, got %d", tt.totalExpenses, tt.wantScore, m.ExpenseScore)
			}
		})
	}
}

func TestZeroRevenueClampsExpenseRatio(t *testing.T) {
	// A zero-revenue business is maximally expense-burdened: ratio 1,
	// score 30, and the PQI lands on the loss tier via the 0 margin.
	in := Inputs{Rent: 5000, Salaries: 20000}
	m := Compute(in)
	Generate(&m, in)

	if m.NetMargin != 0 {
		t.Errorf("expected netMargin 0, got %v", m.NetMargin)
	}
	if m.PQI != PQINegative {
		t.Errorf("expected PQI %q, got %q", PQINegative, m.PQI)
	}
	if m.ExpenseScore != 30 {
		t.Errorf("expected expenseScore 30, got %d", m.ExpenseScore)
	}
}

func TestHealthyScenarioAnnotations(t *testing.T) {
	in := Inputs{
		BusinessName: "Chai Corner",
		PeriodLabel:  "Q1 2025",
		TotalRevenue: 100000,
		Purchases:    50000,
	}
	m := Compute(in)
	insights := Generate(&m, in)

	if m.PQI != PQIHigh {
		t.Errorf("expected PQI %q, got %q", PQIHigh, m.PQI)
	}
	if m.ExpenseScore != 90 {
		t.Errorf("expected expenseScore 90, got %d", m.ExpenseScore)
	}
	if !hasInsight(insights, "profit margin exceeds 20%") {
		t.Error("expected the high-margin insight")
	}
	if !hasInsight(insights, "scaling operations") {
		t.Error("expected the scaling encouragement for netProfit>0 and margin>15")
	}
}

func TestLossTriageInsight(t *testing.T) {
	in := Inputs{
		TotalRevenue: 50000,
		Purchases:    40000,
		Salaries:     30000,
	}
	m := Compute(in)
	insights := Generate(&m, in)

	if m.NetProfit >= 0 {
		t.Fatalf("test setup: expected a loss, got netProfit %v", m.NetProfit)
	}
	if m.PQI != PQINegative {
		t.Errorf("expected PQI %q, got %q", PQINegative, m.PQI)
	}
	if !hasInsight(insights, "1) Increase revenue through marketing/sales") {
		t.Error("expected the numbered triage insight for a loss")
	}
}

func TestGrossMarginDeadBand(t *testing.T) {
	// Gross margin between 20% and 30% emits no gross-margin commentary.
	m := Metrics{
		TotalRevenue: 100000,
		COGS:         75000,
		GrossProfit:  25000,
		NetProfit:    25000,
		NetMargin:    25,
	}
	insights := Generate(&m, Inputs{})

	for _, substr := range []string{
		"Excellent gross margin",
		"Good gross margin",
		"Low gross margin",
	} {
		if hasInsight(insights, substr) {
			t.Errorf("gross margin 25%%: did not expect %q commentary", substr)
		}
	}
}

func TestCategoryRatioChecks(t *testing.T) {
	tests := []struct {
		name       string
		inputs     Inputs
		wantSubstr string
	}{
		{
			name:       "marketing overspend",
			inputs:     Inputs{TotalRevenue: 100000, Marketing: 25000},
			wantSubstr: "Marketing spend exceeds 20%",
		},
		{
			name:       "marketing underspend",
			inputs:     Inputs{TotalRevenue: 100000, Marketing: 2000},
			wantSubstr: "Consider increasing marketing investment",
		},
		{
			name:       "salary burden",
			inputs:     Inputs{TotalRevenue: 100000, Salaries: 60000},
			wantSubstr: "Salary costs exceed 50%",
		},
		{
			name:       "rent burden",
			inputs:     Inputs{TotalRevenue: 100000, Rent: 20000},
			wantSubstr: "Rent/lease costs are high",
		},
		{
			name:       "utilities burden",
			inputs:     Inputs{TotalRevenue: 100000, Utilities: 15000},
			wantSubstr: "Utility expenses are elevated",
		},
		{
			name:       "interest burden",
			inputs:     Inputs{TotalRevenue: 100000, Interest: 12000},
			wantSubstr: "High interest expenses detected",
		},
		{
			name:       "other income concentration",
			inputs:     Inputs{TotalRevenue: 60000, OtherIncome: 40000},
			wantSubstr: "other income sources",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compute(tt.inputs)
			insights := Generate(&m, tt.inputs)
			if !hasInsight(insights, tt.wantSubstr) {
				t.Errorf("expected an insight containing %q", tt.wantSubstr)
			}
		})
	}
}

func TestNoMarketingSuggestionWithoutRevenue(t *testing.T) {
	in := Inputs{Rent: 1000}
	m := Compute(in)
	insights := Generate(&m, in)

	if hasInsight(insights, "Consider increasing marketing investment") {
		t.Error("marketing underspend suggestion must not fire with zero revenue")
	}
}

func TestStrategicRecommendationsStack(t *testing.T) {
	// High gross margin, low net margin and a heavy expense ratio fire all
	// three strategic recommendations at once.
	in := Inputs{
		TotalRevenue: 100000,
		Purchases:    40000, // gross margin 60%
		Salaries:     55000,
		Rent:         20000, // expense ratio 0.75
	}
	m := Compute(in)
	insights := Generate(&m, in)

	if m.NetMargin >= 10 {
		t.Fatalf("test setup: expected net margin < 10, got %v", m.NetMargin)
	}
	for _, substr := range []string{
		"increasing prices (if market allows)",
		"detailed expense audit",
		"High gross margin but low net margin",
	} {
		if !hasInsight(insights, substr) {
			t.Errorf("expected stacked recommendation containing %q", substr)
		}
	}
}

func TestBestPracticesAppendedLast(t *testing.T) {
	in := Inputs{TotalRevenue: 100000, Purchases: 50000}
	m := Compute(in)
	insights := Generate(&m, in)

	if len(insights) < 2 {
		t.Fatalf("expected at least two insights, got %d", len(insights))
	}
	last := insights[len(insights)-1]
	secondLast := insights[len(insights)-2]
	if !strings.Contains(secondLast.Text, "Regularly review and compare monthly performance") {
		t.Errorf("expected the review best practice second to last, got %q", secondLast.Text)
	}
	if !strings.Contains(last.Text, "emergency fund") {
		t.Errorf("expected the emergency-fund best practice last, got %q", last.Text)
	}
	if last.Category != CategorySuggestion || secondLast.Category != CategorySuggestion {
		t.Error("best practices are suggestions")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	in := Inputs{
		TotalRevenue: 87000,
		OtherIncome:  30000,
		Purchases:    42000,
		Salaries:     33000,
		Marketing:    1000,
		Interest:     15000,
	}

	m1 := Compute(in)
	first := Generate(&m1, in)
	m2 := Compute(in)
	second := Generate(&m2, in)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must yield identical insights in identical order")
	}
	if !reflect.DeepEqual(m1, m2) {
		t.Error("identical inputs must yield identical annotated metrics")
	}
}

func TestInsightCategories(t *testing.T) {
	in := Inputs{TotalRevenue: 100000, Purchases: 50000}
	m := Compute(in)
	insights := Generate(&m, in)

	if insights[0].Category != CategoryPositive {
		t.Errorf("high PQI tier insight should be positive, got %q", insights[0].Category)
	}

	for _, insight := range insights {
		switch insight.Category {
		case CategoryPositive, CategoryWarning, CategorySuggestion:
		default:
			t.Errorf("unexpected category %q for insight %q", insight.Category, insight.Text)
		}
	}
}
