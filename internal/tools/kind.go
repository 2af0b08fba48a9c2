package tools

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ledger-sage/ledger-sage/internal/chart"
	"github.com/ledger-sage/ledger-sage/internal/dataset"
)

// Kind identifies one of the analysis tools.
type Kind int

const (
	KindUnknown Kind = iota
	KindTimeSeries
	KindDistribution
	KindComparison
	KindTotal
	KindStatistics
	KindTopExpenses
)

var kindNames = map[Kind]string{
	KindTimeSeries:   "plot_time_series",
	KindDistribution: "plot_distribution",
	KindComparison:   "plot_comparison_bars",
	KindTotal:        "calculate_total",
	KindStatistics:   "calculate_statistics",
	KindTopExpenses:  "get_top_expenses",
}

// Name returns the wire name of the tool.
func (k Kind) Name() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindFromName maps a wire name to its Kind.
func KindFromName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindUnknown, false
}

// Kinds lists all tools in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindTimeSeries,
		KindDistribution,
		KindComparison,
		KindTotal,
		KindStatistics,
		KindTopExpenses,
	}
}

// Result is the outcome of running a tool: an optional chart, a text
// message, and a warning when arguments were auto-corrected.
type Result struct {
	Chart   *chart.Config
	Message string
	Warning string
}

// Runner validates arguments and dispatches tool executions.
type Runner struct {
	Validator Validator
	Logger    *slog.Logger
}

// NewRunner returns a Runner with the default validator.
func NewRunner(logger *slog.Logger) Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return Runner{Validator: NewValidator(), Logger: logger}
}

// Execute runs a tool against the dataset. Arguments are cleaned through the
// validator first, then decoded into the tool's request type.
func (r Runner) Execute(ds *dataset.Dataset, kind Kind, args map[string]any, now time.Time) (Result, error) {
	cleaned, warning := r.Validator.Clean(args, ds.Vocabulary())
	if warning != "" {
		r.Logger.Info("auto-corrected tool arguments",
			"tool", kind.Name(),
			"fix", warning)
	}

	var (
		cfg *chart.Config
		msg string
		err error
	)
	switch kind {
	case KindTimeSeries:
		var req TimeSeriesRequest
		if err = decodeArgs(cleaned, &req); err == nil {
			cfg, msg = TimeSeries(ds, req, now)
		}
	case KindDistribution:
		var req DistributionRequest
		if err = decodeArgs(cleaned, &req); err == nil {
			cfg, msg = Distribution(ds, req, now)
		}
	case KindComparison:
		var req ComparisonRequest
		if err = decodeArgs(cleaned, &req); err == nil {
			cfg, msg = Comparison(ds, req, now)
		}
	case KindTotal:
		var req TotalRequest
		if err = decodeArgs(cleaned, &req); err == nil {
			cfg, msg = Total(ds, req, now)
		}
	case KindStatistics:
		var req StatisticsRequest
		if err = decodeArgs(cleaned, &req); err == nil {
			cfg, msg = Statistics(ds, req, now)
		}
	case KindTopExpenses:
		var req TopExpensesRequest
		if err = decodeArgs(cleaned, &req); err == nil {
			cfg, msg = TopExpenses(ds, req, now)
		}
	default:
		return Result{}, fmt.Errorf("unknown tool kind %d", kind)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", kind.Name(), err)
	}

	return Result{Chart: cfg, Message: msg, Warning: warning}, nil
}
