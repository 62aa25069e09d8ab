package chatbot

import "strings"

// Answer is a structured explanation of one financial term.
type Answer struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Formula    string `json:"formula,omitempty"`
	Example    string `json:"example"`
}

// entry pairs a lookup key with its answer. Entries are ordered; lookup
// scans in order and the first match wins, so aliases for the same term sit
// next to each other.
type entry struct {
	key    string
	answer Answer
}

// Dictionary holds the financial-terms knowledge base. Component-owned and
// read-only after construction, so it is safe for concurrent lookups.
type Dictionary struct {
	entries []entry
}

// NewDictionary builds the built-in financial terms dictionary
func NewDictionary() *Dictionary {
	cogs := Answer{
		Term:       "COGS (Cost of Goods Sold)",
		Definition: "The direct costs attributable to the production of goods sold by a company. This includes material costs, direct labor, and manufacturing overhead.",
		Formula:    "COGS = Opening Stock + Purchases + Direct Labor - Closing Stock",
		Example:    "If you start with ₹10,000 in stock, buy ₹50,000 worth of goods, pay ₹5,000 in labor, and end with ₹8,000 in stock, your COGS is ₹57,000.",
	}
	roi := Answer{
		Term:       "ROI (Return on Investment)",
		Definition: "A performance measure used to evaluate the efficiency of an investment. It shows the return relative to the investment cost.",
		Formula:    "ROI = (Net Profit / Investment Cost) × 100",
		Example:    "If you invest ₹10,000 and earn ₹2,000 profit, your ROI is 20%.",
	}

	return &Dictionary{entries: []entry{
		{"cogs", cogs},
		{"cost of goods sold", cogs},
		{"gross profit", Answer{
			Term:       "Gross Profit",
			Definition: "The profit a company makes after deducting the costs associated with making and selling its products, or the costs associated with providing its services.",
			Formula:    "Gross Profit = Total Revenue - COGS",
			Example:    "If your revenue is ₹100,000 and COGS is ₹60,000, your gross profit is ₹40,000.",
		}},
		{"net profit", Answer{
			Term:       "Net Profit",
			Definition: "The amount of money left after all expenses, including operating expenses, interest, and taxes, have been deducted from total revenue.",
			Formula:    "Net Profit = Total Revenue - COGS - Operating Expenses - Interest - Taxes",
			Example:    "If your revenue is ₹100,000, COGS is ₹50,000, expenses are ₹30,000, and taxes are ₹5,000, your net profit is ₹15,000.",
		}},
		{"net margin", Answer{
			Term:       "Net Margin",
			Definition: "A profitability ratio that shows what percentage of revenue is converted into net profit. It indicates how efficiently a company is managing its costs.",
			Formula:    "Net Margin = (Net Profit / Total Revenue) × 100",
			Example:    "If your net profit is ₹20,000 and revenue is ₹100,000, your net margin is 20%.",
		}},
		{"profit margin", Answer{
			Term:       "Profit Margin",
			Definition: "A measure of profitability calculated as net income divided by revenue. It shows how much profit is generated per rupee of revenue.",
			Formula:    "Profit Margin = (Net Profit / Revenue) × 100",
			Example:    "A 15% profit margin means you earn ₹15 profit for every ₹100 in revenue.",
		}},
		{"revenue", Answer{
			Term:       "Revenue",
			Definition: "The total amount of money generated from the sale of goods or services before any expenses are deducted. Also called 'sales' or 'income'.",
			Formula:    "Revenue = Price × Quantity Sold",
			Example:    "If you sell 100 products at ₹1,000 each, your revenue is ₹100,000.",
		}},
		{"expenses", Answer{
			Term:       "Operating Expenses",
			Definition: "Costs incurred in the normal course of business operations, such as rent, salaries, utilities, marketing, and administrative costs.",
			Formula:    "Total Expenses = Sum of all operating expenses",
			Example:    "Rent (₹10,000) + Salaries (₹30,000) + Utilities (₹5,000) = ₹45,000 in total expenses.",
		}},
		{"depreciation", Answer{
			Term:       "Depreciation",
			Definition: "The allocation of the cost of a tangible asset over its useful life. It represents how much of an asset's value has been used up.",
			Formula:    "Annual Depreciation = (Asset Cost - Salvage Value) / Useful Life",
			Example:    "A ₹100,000 machine with a 10-year life depreciates ₹10,000 per year.",
		}},
		{"amortization", Answer{
			Term:       "Amortization",
			Definition: "The process of spreading out a loan or intangible asset cost over a period of time. Similar to depreciation but for intangible assets.",
			Example:    "A ₹50,000 patent over 5 years amortizes ₹10,000 per year.",
		}},
		{"ebitda", Answer{
			Term:       "EBITDA",
			Definition: "Earnings Before Interest, Taxes, Depreciation, and Amortization. A measure of a company's operating performance.",
			Formula:    "EBITDA = Net Profit + Interest + Taxes + Depreciation + Amortization",
			Example:    "Used to compare profitability between companies without the effects of financing and accounting decisions.",
		}},
		{"working capital", Answer{
			Term:       "Working Capital",
			Definition: "The difference between a company's current assets and current liabilities. It indicates the company's short-term financial health.",
			Formula:    "Working Capital = Current Assets - Current Liabilities",
			Example:    "If you have ₹100,000 in assets and ₹60,000 in liabilities, your working capital is ₹40,000.",
		}},
		{"cash flow", Answer{
			Term:       "Cash Flow",
			Definition: "The net amount of cash and cash equivalents moving in and out of a business. Positive cash flow indicates more money coming in than going out.",
			Example:    "If you receive ₹50,000 and pay out ₹30,000, your cash flow is ₹20,000 positive.",
		}},
		{"break even", Answer{
			Term:       "Break-Even Point",
			Definition: "The point at which total revenue equals total costs. At this point, the business is neither making a profit nor a loss.",
			Formula:    "Break-Even Point = Fixed Costs / (Price - Variable Cost per Unit)",
			Example:    "If fixed costs are ₹20,000 and profit per unit is ₹100, you need to sell 200 units to break even.",
		}},
		{"roi", roi},
		{"return on investment", roi},
	}}
}

// Lookup finds the answer for a query. First pass matches whole keys as
// substrings of the query; second pass matches any single word of a key.
// Returns nil when nothing matches.
func (d *Dictionary) Lookup(query string) *Answer {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	for _, e := range d.entries {
		if strings.Contains(query, e.key) {
			answer := e.answer
			return &answer
		}
	}

	for _, e := range d.entries {
		for _, kw := range strings.Fields(e.key) {
			if strings.Contains(query, kw) {
				answer := e.answer
				return &answer
			}
		}
	}

	return nil
}
