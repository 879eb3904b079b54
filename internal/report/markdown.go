// Package report renders run results for humans and machines.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sells-group/econ-intel/internal/country"
	"github.com/sells-group/econ-intel/internal/model"
)

// FormatMarkdown generates a human-readable intelligence report.
func FormatMarkdown(run *model.Run) string {
	var b strings.Builder
	result := run.Result

	fmt.Fprintf(&b, "# Economic Intelligence Report\n")
	fmt.Fprintf(&b, "Run: %s\n", run.ID)
	fmt.Fprintf(&b, "Status: %s\n", run.Status)
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().UTC().Format(time.RFC3339))

	if result == nil {
		b.WriteString("No results recorded for this run.\n")
		return b.String()
	}

	// Summary.
	b.WriteString("## Summary\n")
	for _, id := range model.Indicators {
		fmt.Fprintf(&b, "- %s: %d countries reconciled\n", id.Label(), len(result.Reconciled[id]))
	}
	fmt.Fprintf(&b, "- Anomalies: %d\n", len(result.Anomalies))
	fmt.Fprintf(&b, "- Coverage gaps: %d\n", len(result.Missing))
	fmt.Fprintf(&b, "- Warnings: %d\n", len(result.Warnings))
	if result.Partial {
		b.WriteString("- **Partial run**: at least one indicator had no usable sources\n")
	}
	b.WriteString("\n")

	// Rankings.
	for _, id := range model.Indicators {
		ranking, ok := result.Rankings[id]
		if !ok || (len(ranking.Top) == 0 && len(ranking.Bottom) == 0) {
			continue
		}
		fmt.Fprintf(&b, "## %s\n", id.Label())
		writeRankTable(&b, "Top", ranking.Top, result.Reconciled[id])
		writeRankTable(&b, "Bottom", ranking.Bottom, result.Reconciled[id])
	}

	// Cost of living aligned to the GDP top ten.
	b.WriteString("## Cost of Living (GDP Top 10)\n")
	if len(result.CostOfLivingTop) == 0 {
		b.WriteString("No validated cost-of-living values for the GDP top 10.\n\n")
	} else {
		b.WriteString("| GDP Rank | Country | Cost of Living Index |\n")
		b.WriteString("|---:|---|---:|\n")
		for _, entry := range result.CostOfLivingTop {
			fmt.Fprintf(&b, "| %d | %s | %.1f |\n", entry.Rank, country.DisplayName(entry.Country), entry.Value)
		}
		b.WriteString("\n")
	}

	// Discrepancies: every flagged value is shown, never silently merged.
	writeDiscrepancies(&b, result)

	// Coverage gaps.
	b.WriteString("## Missing Coverage\n")
	if len(result.Missing) == 0 {
		b.WriteString("None.\n\n")
	} else {
		for _, m := range result.Missing {
			fmt.Fprintf(&b, "- %s / %s: %s\n", country.DisplayName(m.Country), m.Indicator.Label(), m.Reason)
		}
		b.WriteString("\n")
	}

	// Anomalies.
	b.WriteString("## Anomalies\n")
	if len(result.Anomalies) == 0 {
		b.WriteString("None detected.\n\n")
	} else {
		for _, a := range result.Anomalies {
			fmt.Fprintf(&b, "- **%s** [%s, magnitude %.2f]: %s\n",
				country.DisplayName(a.Country), a.RuleID, a.Magnitude, a.Narrative)
		}
		b.WriteString("\n")
	}

	// Stages.
	b.WriteString("## Stages\n")
	for _, s := range result.Stages {
		fmt.Fprintf(&b, "- %s: %s (%dms)\n", s.Name, s.Status, s.Duration)
		if s.Error != "" {
			fmt.Fprintf(&b, "  Error: %s\n", s.Error)
		}
	}
	b.WriteString("\n")

	// Warnings.
	if len(result.Warnings) > 0 {
		b.WriteString("## Warnings\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeRankTable(b *strings.Builder, label string, entries []model.RankedEntry, reconciled map[string]model.ReconciledIndicator) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s %d\n", label, len(entries))
	b.WriteString("| Rank | Country | Value | Sources | Agreement | Flag |\n")
	b.WriteString("|---:|---|---:|---|---:|---|\n")
	for _, entry := range entries {
		rec := reconciled[entry.Country]
		agreement := "n/a"
		if rec.AgreementScore != nil {
			agreement = fmt.Sprintf("%.3f", *rec.AgreementScore)
		}
		flag := ""
		if rec.Flagged {
			flag = "unverified"
		}
		fmt.Fprintf(b, "| %d | %s | %.2f | %s | %s | %s |\n",
			entry.Rank, country.DisplayName(entry.Country), entry.Value,
			strings.Join(rec.Sources, ", "), agreement, flag)
	}
	b.WriteString("\n")
}

// writeDiscrepancies lists every flagged reconciled value across indicators.
func writeDiscrepancies(b *strings.Builder, result *model.RunResult) {
	b.WriteString("## Source Disagreement\n")
	count := 0
	for _, id := range model.Indicators {
		keys := make([]string, 0, len(result.Reconciled[id]))
		for key, rec := range result.Reconciled[id] {
			if rec.Flagged {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		for _, key := range keys {
			rec := result.Reconciled[id][key]
			if rec.AgreementScore != nil {
				fmt.Fprintf(b, "- %s / %s: agreement %.3f across %s\n",
					country.DisplayName(key), id.Label(), *rec.AgreementScore, strings.Join(rec.Sources, ", "))
			} else {
				fmt.Fprintf(b, "- %s / %s: single source (%s), unverified\n",
					country.DisplayName(key), id.Label(), strings.Join(rec.Sources, ", "))
			}
			count++
		}
	}
	if count == 0 {
		b.WriteString("All reconciled values are cross-validated.\n")
	}
	b.WriteString("\n")
}
