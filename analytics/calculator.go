package analytics

// Inputs represents the raw financial figures a user submits for one
// reporting period. Every numeric field defaults to zero when absent from
// the request body, so the calculator never has to deal with missing data.
// Negative figures are accepted and simply propagate through the arithmetic.
type Inputs struct {
	BusinessName string `json:"businessName"`
	PeriodLabel  string `json:"periodLabel"`

	TotalRevenue float64 `json:"totalRevenue"`
	OtherIncome  float64 `json:"otherIncome"`

	// COGS components
	OpeningStock float64 `json:"openingStock"`
	Purchases    float64 `json:"purchases"`
	ClosingStock float64 `json:"closingStock"`
	DirectLabor  float64 `json:"directLabor"`

	// Operating expenses
	Rent             float64 `json:"rent"`
	Salaries         float64 `json:"salaries"`
	Utilities        float64 `json:"utilities"`
	Marketing        float64 `json:"marketing"`
	AdminExpenses    float64 `json:"adminExpenses"`
	Depreciation     float64 `json:"depreciation"`
	Insurance        float64 `json:"insurance"`
	ProfessionalFees float64 `json:"professionalFees"`
	Interest         float64 `json:"interest"`

	TaxRate float64 `json:"taxRate"`
}

// ExpenseBreakdown retains each individual expense category so downstream
// ratio analysis (and the expense pie chart) can work per category.
type ExpenseBreakdown struct {
	Rent             float64 `json:"rent"`
	Salaries         float64 `json:"salaries"`
	Utilities        float64 `json:"utilities"`
	Marketing        float64 `json:"marketing"`
	AdminExpenses    float64 `json:"adminExpenses"`
	Depreciation     float64 `json:"depreciation"`
	Insurance        float64 `json:"insurance"`
	ProfessionalFees float64 `json:"professionalFees"`
	Interest         float64 `json:"interest"`
}

// Metrics is the canonical derived record for one period. It is immutable
// once computed, except for the PQI and ExpenseScore annotations which the
// insight generator assigns.
type Metrics struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	COGS          float64 `json:"cogs"`
	GrossProfit   float64 `json:"grossProfit"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetProfit     float64 `json:"netProfit"`
	NetMargin     float64 `json:"netMargin"`

	// Assigned by the insight generator, not the calculator.
	PQI          string `json:"pqi,omitempty"`
	ExpenseScore int    `json:"expenseScore,omitempty"`

	Expenses ExpenseBreakdown `json:"expenses"`
}

// Compute derives the canonical metrics from raw inputs. Pure and total:
// there is no error condition, and the net margin division is guarded so a
// zero-revenue period yields a margin of 0 rather than dividing by zero.
func Compute(in Inputs) Metrics {
	totalRevenue := in.TotalRevenue + in.OtherIncome

	cogs := in.OpeningStock + in.Purchases + in.DirectLabor - in.ClosingStock

	totalExpenses := in.Rent + in.Salaries + in.Utilities + in.Marketing +
		in.AdminExpenses + in.Depreciation + in.Insurance +
		in.ProfessionalFees + in.Interest

	grossProfit := totalRevenue - cogs
	netProfit := grossProfit - totalExpenses

	netMargin := 0.0
	if totalRevenue > 0 {
		netMargin = (netProfit / totalRevenue) * 100
	}

	return Metrics{
		TotalRevenue:  totalRevenue,
		COGS:          cogs,
		GrossProfit:   grossProfit,
		TotalExpenses: totalExpenses,
		NetProfit:     netProfit,
		NetMargin:     netMargin,
		Expenses: ExpenseBreakdown{
			Rent:             in.Rent,
			Salaries:         in.Salaries,
			Utilities:        in.Utilities,
			Marketing:        in.Marketing,
			AdminExpenses:    in.AdminExpenses,
			Depreciation:     in.Depreciation,
			Insurance:        in.Insurance,
			ProfessionalFees: in.ProfessionalFees,
			Interest:         in.Interest,
		},
	}
}
