package service

import (
	"fmt"
	"strings"
	"time"
)

const (
	reportRule = "====================================="

	noResultsLine = "No new results in the last 24 hours."

	guardrailNotice = "GUARDRAIL NOTICE: This report only includes publicly available\n" +
		"information. No private data was accessed or scraped."
)

// BuildQuery renders the search query for one target:
//
//	<target> news reddit "t1" OR "t2" ...
func BuildQuery(target string, terms []string) string {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = `"` + t + `"`
	}
	q := target + " news reddit"
	if len(quoted) > 0 {
		q += " " + strings.Join(quoted, " OR ")
	}
	return q
}

// ReportSubject is the email subject for a report generated at t
func ReportSubject(brand string, t time.Time) string {
	return fmt.Sprintf("%s - Daily Recon Report - %s", brand, t.Format("Jan 2, 2006"))
}

// BuildReport renders the plain-text report. Sections follow the order of results.
func BuildReport(brand string, generatedAt time.Time, results []TargetResult) string {
	var b strings.Builder

	b.WriteString(reportRule + "\n")
	fmt.Fprintf(&b, "%s - DAILY RECON REPORT\n", strings.ToUpper(brand))
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt.Format(time.RFC3339))
	b.WriteString(reportRule + "\n\n")

	for _, r := range results {
		fmt.Fprintf(&b, "--- %s ---\n", r.Target)
		switch {
		case r.Error != "":
			fmt.Fprintf(&b, "[%s]\n\n", r.Error)
		case len(r.Results) == 0:
			b.WriteString(noResultsLine + "\n\n")
		default:
			for _, item := range r.Results {
				fmt.Fprintf(&b, "Title: %s\n", item.Title)
				fmt.Fprintf(&b, "Link: %s\n", item.Link)
				fmt.Fprintf(&b, "Snippet: %s\n\n", item.Snippet)
			}
		}
	}

	b.WriteString(reportRule + "\n")
	b.WriteString(guardrailNotice + "\n")
	b.WriteString(reportRule + "\n")
	return b.String()
}
