package analytics

// Insight categories. The generator assigns the category at the rule that
// emits the insight, so renderers never have to infer it from the wording.
const (
	CategoryPositive   = "positive"
	CategoryWarning    = "warning"
	CategorySuggestion = "suggestion"
)

// PQI tier labels, ordered from best to worst.
const (
	PQIHigh     = "High (Very Healthy)"
	PQIGood     = "Good (Healthy)"
	PQIMedium   = "Medium (Stable)"
	PQILow      = "Low (Needs Attention)"
	PQIVeryLow  = "Very Low (Critical)"
	PQINegative = "Negative (Loss)"
)

// Insight is one human-readable observation about a period.
type Insight struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Generate evaluates the insight rules against the computed metrics and raw
// inputs. It annotates the metrics with the Profit Quality Index tier and
// the Expense Health Score, and returns the insights in a fixed emission
// order. Deterministic: the same metrics and inputs always yield the same
// insight list.
//
// Rules fire independently of each other; only the tier chains (PQI, expense
// score) are mutually exclusive, first match wins.
func Generate(m *Metrics, in Inputs) []Insight {
	insights := make([]Insight, 0, 12)
	add := func(category, text string) {
		insights = append(insights, Insight{Text: text, Category: category})
	}

	totalRevenue := m.TotalRevenue
	netMargin := m.NetMargin

	// Profit Quality Index: exactly one tier on net margin, descending.
	switch {
	case netMargin > 20:
		m.PQI = PQIHigh
		add(CategoryPositive, "Excellent! Your profit margin exceeds 20%, indicating very healthy profitability. This is well above industry averages for most small businesses.")
	case netMargin > 15:
		m.PQI = PQIGood
		add(CategoryPositive, "Great performance! Your profit margin is above 15%, showing strong financial health. Consider strategies to maintain or improve this level.")
	case netMargin > 10:
		m.PQI = PQIMedium
		add(CategorySuggestion, "Your profitability is stable with a margin above 10%. There's room for improvement through cost optimization and revenue growth strategies.")
	case netMargin > 5:
		m.PQI = PQILow
		add(CategoryWarning, "Your net profit margin is below 10%, which requires attention. Focus on reducing costs or increasing revenue to improve profitability.")
	case netMargin > 0:
		m.PQI = PQIVeryLow
		add(CategoryWarning, "Warning: Your profit margin is very low. Immediate action is needed to reduce expenses or increase revenue to ensure business sustainability.")
	default:
		m.PQI = PQINegative
		add(CategoryWarning, "Critical: Your business is operating at a loss. Urgent review of expenses and revenue streams is necessary to return to profitability.")
	}

	// Expense Health Score. A zero-revenue business is treated as maximally
	// expense-burdened (ratio clamped to 1).
	expenseRatio := 1.0
	if totalRevenue > 0 {
		expenseRatio = m.TotalExpenses / totalRevenue
	}

	switch {
	case expenseRatio <= 0.50:
		m.ExpenseScore = 90
		add(CategoryPositive, "Outstanding expense management! Your expenses are less than 50% of revenue, indicating excellent cost control.")
	case expenseRatio <= 0.60:
		m.ExpenseScore = 80
		add(CategoryPositive, "Good expense control. Your expenses are well-managed relative to revenue.")
	case expenseRatio <= 0.70:
		m.ExpenseScore = 70
		add(CategorySuggestion, "Moderate expense levels. Consider reviewing and optimizing operational costs to improve margins.")
	case expenseRatio <= 0.80:
		m.ExpenseScore = 60
		add(CategoryWarning, "Expenses are high relative to revenue. Focus on cost reduction strategies to improve profitability.")
	case expenseRatio <= 0.90:
		m.ExpenseScore = 50
		add(CategoryWarning, "Warning: Expenses exceed 80% of revenue. Significant cost reduction is needed to maintain profitability.")
	default:
		m.ExpenseScore = 30
		add(CategoryWarning, "Critical: Expenses are consuming most of your revenue. Immediate cost-cutting measures are essential.")
	}

	// Gross margin commentary. The 20-30% band intentionally emits nothing.
	grossMargin := 0.0
	if totalRevenue > 0 {
		grossMargin = ((totalRevenue - m.COGS) / totalRevenue) * 100
	}

	switch {
	case grossMargin > 50:
		add(CategoryPositive, "Excellent gross margin! Your cost of goods sold is well-controlled, leaving significant room for operating expenses.")
	case grossMargin > 30:
		add(CategoryPositive, "Good gross margin indicates effective pricing and cost management for your products/services.")
	case grossMargin < 20:
		add(CategoryWarning, "Low gross margin detected. Consider reviewing pricing strategies or negotiating better supplier terms to improve COGS.")
	}

	// Per-category expense ratios, each evaluated independently. Ratios are
	// 0 when revenue is not positive.
	ratio := func(v float64) float64 {
		if totalRevenue > 0 {
			return v / totalRevenue
		}
		return 0
	}

	if marketingRatio := ratio(m.Expenses.Marketing); marketingRatio > 0.20 {
		add(CategoryWarning, "Marketing spend exceeds 20% of revenue. Evaluate ROI on marketing campaigns to ensure they're generating sufficient returns.")
	} else if marketingRatio < 0.05 && totalRevenue > 0 {
		add(CategorySuggestion, "Consider increasing marketing investment if you're looking to grow. Current spend is below 5% of revenue.")
	}

	if ratio(m.Expenses.Salaries) > 0.50 {
		add(CategoryWarning, "Salary costs exceed 50% of revenue. Review staffing levels and consider productivity improvements or automation.")
	}

	if ratio(m.Expenses.Rent) > 0.15 {
		add(CategoryWarning, "Rent/lease costs are high relative to revenue. Consider renegotiating lease terms or exploring more cost-effective locations.")
	}

	if ratio(m.Expenses.Utilities) > 0.10 {
		add(CategoryWarning, "Utility expenses are elevated. Audit for energy efficiency opportunities or consider switching providers.")
	}

	if m.Expenses.Interest > 0 && ratio(m.Expenses.Interest) > 0.10 {
		add(CategoryWarning, "High interest expenses detected. Consider refinancing options or debt consolidation to reduce financial charges.")
	}

	// Other-income concentration.
	if ratio(in.OtherIncome) > 0.30 {
		add(CategoryWarning, "Significant portion of revenue comes from other income sources. Ensure these are sustainable and recurring.")
	}

	// Profitability commentary.
	if m.NetProfit > 0 && netMargin > 15 {
		add(CategoryPositive, "Strong profitability position! Focus on scaling operations while maintaining current efficiency levels.")
	}

	if m.NetProfit < 0 {
		add(CategoryWarning, "Operating at a loss. Prioritize: 1) Increase revenue through marketing/sales, 2) Reduce non-essential expenses, 3) Review pricing strategy.")
	}

	// Strategic recommendations, can stack.
	if netMargin < 10 {
		add(CategorySuggestion, "Strategic recommendation: Focus on improving net margin by either increasing prices (if market allows) or reducing variable costs.")
	}

	if expenseRatio > 0.70 {
		add(CategorySuggestion, "Strategic recommendation: Conduct a detailed expense audit. Identify and eliminate non-essential costs to improve bottom line.")
	}

	if grossMargin > 40 && netMargin < 10 {
		add(CategorySuggestion, "High gross margin but low net margin suggests operating expenses are too high. Focus on operational efficiency improvements.")
	}

	// Best practices, always appended last.
	add(CategorySuggestion, "Best practice: Regularly review and compare monthly performance to identify trends and make timely adjustments.")
	add(CategorySuggestion, "Best practice: Maintain an emergency fund equivalent to 3-6 months of operating expenses for financial stability.")

	return insights
}
