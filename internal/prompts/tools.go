package prompts

import "github.com/ledger-sage/ledger-sage/internal/tools"

// toolPrompt carries the per-tool sections spliced into the specialist
// system prompt.
type toolPrompt struct {
	FunctionDefinition string
	Examples           string
}

var toolPrompts = map[tools.Kind]toolPrompt{
	tools.KindTimeSeries: {
		FunctionDefinition: `### plot_time_series(df, category=None, year=None, start_year=None, end_year=None, months=None)
Use when: user asks about trends, spending over time, or date ranges.

- ` + "`months=N`" + `: last N months from today
- ` + "`year=YYYY`" + `: full calendar year
- ` + "`start_year=YYYY, end_year=YYYY`" + `: year range
- ` + "`year=YYYY, month=M`" + `: single month (note: not a standalone param here, pass both)`,
		Examples: `Today is 2025-06-15.

Q: "How much did I spend on futsal for the past 6 months?"
fig, result = plot_time_series(df, category='futsal game', months=6)

Q: "Show me food spending from 2023 to 2025"
fig, result = plot_time_series(df, category='Food', start_year=2023, end_year=2025)

Q: "Gym expenses in 2024?"
fig, result = plot_time_series(df, category='gym', year=2024)`,
	},

	tools.KindDistribution: {
		FunctionDefinition: `### plot_distribution(df, category=None, year=None, month=None)
Use when: user asks for breakdown, distribution, or pie chart.

- ` + "`year=YYYY, month=M`" + `: specific month
- ` + "`year=YYYY`" + `: full year
- No time filter: all time`,
		Examples: `Q: "Show me a breakdown of my food expenses in 2024"
fig, result = plot_distribution(df, category='Food', year=2024)

Q: "Pie chart of all expenses in Jan 2025"
fig, result = plot_distribution(df, year=2025, month=1)`,
	},

	tools.KindComparison: {
		FunctionDefinition: `### plot_comparison_bars(df, category=None, y1=None, m1=None, d1=None, y2=None, m2=None, d2=None)
Use when: comparing two specific periods.

- Two years: ` + "`y1=2024, y2=2025`" + `
- Two months: ` + "`y1=2024, m1=12, y2=2025, m2=12`" + `
- Two dates: ` + "`y1=2024, m1=7, d1=21, y2=2025, m2=7, d2=21`",
		Examples: `Q: "Compare food spending in 2024 vs 2025"
fig, result = plot_comparison_bars(df, category='Food', y1=2024, y2=2025)

Q: "Compare dining Jan 2024 vs Jan 2025"
fig, result = plot_comparison_bars(df, category='dining', y1=2024, m1=1, y2=2025, m2=1)`,
	},

	tools.KindTotal: {
		FunctionDefinition: `### calculate_total(df, category=None, remarks=None, year=None, month=None, day=None, start_year=None, end_year=None)
Use when: asking for total sums.

- ` + "`year, month, day`" + `: specific date
- ` + "`year, month`" + `: specific month
- ` + "`year`" + `: full year
- ` + "`start_year, end_year`" + `: year range`,
		Examples: `Q: "How much did I spend on groceries in Dec 2024?"
fig, result = calculate_total(df, category='groceries', year=2024, month=12)

Q: "Total spending 2023 to 2025?"
fig, result = calculate_total(df, start_year=2023, end_year=2025)`,
	},

	tools.KindStatistics: {
		FunctionDefinition: `### calculate_statistics(df, category=None, y1=None, m1=None, y2=None, m2=None, compare=False)
Use when: asking for averages, mean, median, or comparing statistically.

- Single period: ` + "`y1=YYYY`" + ` (and optionally ` + "`m1=M`" + `)
- Comparison: ` + "`y1=YYYY, y2=YYYY, compare=True`",
		Examples: `Q: "Average dining expense in 2024?"
fig, result = calculate_statistics(df, category='dining', y1=2024)

Q: "Did I spend more on food in 2025 than 2024?"
fig, result = calculate_statistics(df, category='Food', y1=2024, y2=2025, compare=True)`,
	},

	tools.KindTopExpenses: {
		FunctionDefinition: `### get_top_expenses(df, n=10, category=None, year=None, month=None, min_amount=None)
Use when: asking for biggest or largest expenses.

- ` + "`n`" + `: how many to return (default 10)
- ` + "`min_amount`" + `: only include expenses above this value`,
		Examples: `Q: "What were my biggest expenses in Dec 2024?"
fig, result = get_top_expenses(df, n=10, year=2024, month=12)

Q: "Show top 5 food purchases in 2025"
fig, result = get_top_expenses(df, n=5, category='Food', year=2025)`,
	},
}
