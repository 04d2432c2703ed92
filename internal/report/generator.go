package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fjacquet/lendtrack/internal/logging"

	"github.com/charmbracelet/glamour"
	"github.com/gocarina/gocsv"
)

// Generator writes report rows in the requested format.
type Generator struct {
	logger        logging.Logger
	delimiter     rune
	markdownStyle string
}

// NewGenerator creates a Generator. CSV output uses delimiter; markdown
// output is styled with the named glamour style ("auto", "dark", "light",
// "notty", ...).
func NewGenerator(logger logging.Logger, delimiter rune, markdownStyle string) *Generator {
	if delimiter == 0 {
		delimiter = ','
	}
	if markdownStyle == "" {
		markdownStyle = "auto"
	}
	return &Generator{
		logger:        logger.WithField(logging.FieldComponent, "ReportGenerator"),
		delimiter:     delimiter,
		markdownStyle: markdownStyle,
	}
}

// Delimiter returns the CSV field separator.
func (g *Generator) Delimiter() rune {
	return g.delimiter
}

// Write renders rows (a slice of csv-tagged structs) in format. JSON output
// encodes payload instead, so it keeps the full typed values.
func (g *Generator) Write(w io.Writer, format Format, rows interface{}, payload interface{}) error {
	switch format {
	case FormatJSON:
		return g.writeJSON(w, payload)
	case FormatCSV:
		return g.writeCSV(w, rows)
	case FormatTable:
		return g.writeTable(w, rows)
	case FormatMarkdown:
		return g.writeMarkdown(w, rows)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (g *Generator) writeJSON(w io.Writer, payload interface{}) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}

func (g *Generator) writeCSV(w io.Writer, rows interface{}) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = g.delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		g.logger.WithError(err).Error("Failed to marshal rows to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// records turns rows into a header line followed by the data lines.
func (g *Generator) records(rows interface{}) ([][]string, error) {
	var buf bytes.Buffer
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csv.NewWriter(&buf))); err != nil {
		return nil, fmt.Errorf("error flattening rows: %w", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error flattening rows: %w", err)
	}
	return records, nil
}

func (g *Generator) writeTable(w io.Writer, rows interface{}) error {
	records, err := g.records(rows)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, rec := range records {
		if _, err := fmt.Fprintln(tw, strings.Join(rec, "\t")); err != nil {
			return fmt.Errorf("error writing table: %w", err)
		}
	}
	return tw.Flush()
}

// Markdown renders rows as a markdown table without styling.
func (g *Generator) Markdown(rows interface{}) (string, error) {
	records, err := g.records(rows)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", nil
	}

	var sb strings.Builder
	line := func(cells []string) {
		escaped := make([]string, len(cells))
		for i, c := range cells {
			escaped[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		sb.WriteString("| " + strings.Join(escaped, " | ") + " |\n")
	}

	line(records[0])
	sep := make([]string, len(records[0]))
	for i := range sep {
		sep[i] = "---"
	}
	line(sep)
	for _, rec := range records[1:] {
		line(rec)
	}
	return sb.String(), nil
}

func (g *Generator) writeMarkdown(w io.Writer, rows interface{}) error {
	md, err := g.Markdown(rows)
	if err != nil {
		return err
	}

	out, err := glamour.Render(md, g.markdownStyle)
	if err != nil {
		g.logger.WithError(err).Warn("Failed to style markdown, writing it raw")
		out = md
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("error writing markdown: %w", err)
	}
	return nil
}
