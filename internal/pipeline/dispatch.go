package pipeline

import (
	"strings"

	"github.com/ledger-sage/ledger-sage/internal/tools"
)

// SelectTool maps the router's raw output to a tool. Small models pad their
// answer, so only the first whitespace token counts, with wrapping backticks
// and quotes stripped. Unrecognized output falls back to calculate_total;
// the second return reports whether that happened.
func SelectTool(raw string) (tools.Kind, bool) {
	token := raw
	if fields := strings.Fields(raw); len(fields) > 0 {
		token = fields[0]
	}
	token = strings.NewReplacer("`", "", "'", "", `"`, "").Replace(token)

	if kind, ok := tools.KindFromName(token); ok {
		return kind, false
	}
	return tools.KindTotal, true
}
