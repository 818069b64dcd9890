package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"DomainFlip/internal/domain/models"
)

// MarkdownWriter renders a scan result as a Markdown report suitable for
// documentation and sharing.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(r *models.ScanResult) error {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, r)
	w.writeTrends(md, r)
	w.writePortfolio(md, r)
	w.writePlans(md, r)
	w.writeErrors(md, r)
	w.writeFooter(md)

	return md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, r *models.ScanResult) {
	md.H1("Domain Flipping Strategy")
	md.PlainText("")

	strategy := r.Strategy
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Scan", "`" + r.ScanID + "`"},
			{"Generated", r.FinishedAt.Format("2006-01-02 15:04:05 MST")},
			{"Trends Scored", strconv.Itoa(len(r.Trends))},
			{"Domains Evaluated", strconv.Itoa(len(r.Evaluations))},
			{"Portfolio Size", strconv.Itoa(len(strategy.Portfolio))},
			{"Total Investment", fmt.Sprintf("$%d", strategy.TotalInvestment)},
			{"Projected Profit", fmt.Sprintf("$%.2f", strategy.ProjectedProfit)},
			{"ROI", fmt.Sprintf("%.2f%%", strategy.ROIPercentage)},
		},
	})
	md.PlainText("")

	if strategy.Empty() {
		md.Note("No candidate domain cleared the profit threshold in this scan.")
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeTrends(md *markdown.Markdown, r *models.ScanResult) {
	md.H2("Top Trends")
	md.PlainText("")

	if len(r.Trends) == 0 {
		md.PlainText("No trends scored.")
		md.PlainText("")
		return
	}

	n := len(r.Trends)
	if n > 10 {
		n = 10
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		t := r.Trends[i]
		rows[i] = []string{t.Keyword, strconv.Itoa(t.Score), string(t.CommercialValue)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Keyword", "Score", "Commercial Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writePortfolio(md *markdown.Markdown, r *models.ScanResult) {
	md.H2("Portfolio")
	md.PlainText("")

	if r.Strategy.Empty() {
		md.PlainText("Portfolio is empty.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(r.Strategy.Portfolio))
	for i, e := range r.Strategy.Portfolio {
		rows[i] = []string{
			"`" + e.Domain + "`",
			fmt.Sprintf("$%d", e.EstimatedValue),
			e.RegistrationCost,
			fmt.Sprintf("$%.2f", e.ProfitPotential),
			e.TimeToSell,
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Domain", "Estimated Value", "Registration", "Profit Potential", "Time to Sell"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writePlans(md *markdown.Markdown, r *models.ScanResult) {
	pm := r.Strategy.PortfolioManagement
	md.H2("Portfolio Management")
	md.PlainText("")
	md.BulletList(
		"Acquisition budget: "+pm.AcquisitionBudget,
		"Renewal strategy: "+pm.RenewalStrategy,
		"Selling timeline: "+pm.SellingTimeline,
		"Profit reinvestment: "+pm.ProfitReinvestment,
	)
	md.PlainText("")

	sp := r.Strategy.ScalingPlan
	md.H2("Scaling Plan")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Period", "Plan"},
		Rows: [][]string{
			{"Month 1-3", sp.Month1To3},
			{"Month 4-6", sp.Month4To6},
			{"Month 7-12", sp.Month7To12},
			{"Year 2", sp.Year2},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeErrors(md *markdown.Markdown, r *models.ScanResult) {
	if len(r.QueryErrors) == 0 {
		return
	}
	md.H2("Failed Queries")
	md.PlainText("")
	rows := make([][]string, 0, len(r.QueryErrors))
	for q, msg := range r.QueryErrors {
		rows = append(rows, []string{"`" + q + "`", truncateString(msg, 80)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Query", "Error"},
		Rows:   rows,
	})
	md.PlainText("")
	md.Warningf("%d search queries failed; trends fall back to seed keywords.", len(r.QueryErrors))
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Estimates are heuristic; registration prices assume standard $12-15 renewals.*")
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
