package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs run summaries in Markdown format.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteSummary outputs the summary in Markdown format.
func (w *MarkdownWriter) WriteSummary(s *Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, s)
	w.writeReports(md, s)
	w.writeFailures(md, s)
	w.writeFooter(md, s)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, s *Summary) {
	md.H1("Bioform Export Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", s.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Reports", strconv.Itoa(len(s.Reports))},
			{"Failed Reports", strconv.Itoa(s.FailedReports())},
			{"Skipped Rows", strconv.Itoa(s.FailedRows())},
		},
	})
	md.PlainText("")

	switch {
	case s.FailedReports() > 0:
		md.Cautionf("%d report(s) could not be produced. See the error column below.", s.FailedReports())
	case s.FailedRows() > 0:
		md.Warningf("%d row(s) were skipped. Fix the answers in the form service and export again.", s.FailedRows())
	default:
		md.Tip("Every submission was exported.")
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeReports(md *markdown.Markdown, s *Summary) {
	md.H2("Reports")
	md.PlainText("")

	rows := make([][]string, 0, len(s.Reports))
	for _, r := range s.Reports {
		status := "ok"
		if r.Error != "" {
			status = r.Error
		}
		rows = append(rows, []string{
			r.Report,
			"`" + r.File + "`",
			strconv.Itoa(r.Fetched),
			strconv.Itoa(r.AfterCutoff),
			strconv.Itoa(r.AfterDedup),
			strconv.Itoa(r.Records),
			strconv.Itoa(len(r.Failures)),
			status,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Report", "File", "Fetched", "After Cutoff", "After Dedup", "Records", "Skipped", "Status"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, s)
}

// writePieChart charts the records emitted per report.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s *Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Records per Report"),
		piechart.WithShowData(true),
	)

	total := 0
	for _, r := range s.Reports {
		if r.Records > 0 {
			chart.LabelAndIntValue(r.Report, uint64(r.Records))
			total += r.Records
		}
	}
	if total == 0 {
		return
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, s *Summary) {
	md.H2("Skipped Rows")
	md.PlainText("")

	if s.FailedRows() == 0 {
		md.PlainText("No rows were skipped.")
		md.PlainText("")
		return
	}

	var rows [][]string
	for _, r := range s.Reports {
		for _, f := range r.Failures {
			key := f.Key
			if key == "" {
				key = "-"
			}
			rows = append(rows, []string{r.Report, strconv.Itoa(f.Row), key, f.Step, f.Reason})
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Report", "Row", "Key", "Step", "Reason"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, s *Summary) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by bioform %s*", s.Version)
}
