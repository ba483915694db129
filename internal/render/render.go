// Package render writes tables, lists and reports as text, Markdown, HTML
// or JSON.
package render

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/roach88/weekreview/internal/list"
	reviewtable "github.com/roach88/weekreview/internal/table"
	"github.com/roach88/weekreview/internal/value"
)

// Format selects an output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// PropertyHeader heads the row-name column.
const PropertyHeader = "Property"

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatMarkdown, FormatHTML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, markdown, html or json)", s)
}

// HeaderLabel renders a column header: "4 Mon" for a day, the number for a
// week, the label otherwise.
func HeaderLabel(h reviewtable.Header) string {
	switch h := h.(type) {
	case reviewtable.DateHeader:
		return fmt.Sprintf("%d %s", h.Date.Day(), h.Date.Weekday().String()[:3])
	case reviewtable.WeekHeader:
		return strconv.Itoa(h.Week)
	case reviewtable.LabelHeader:
		return h.Label
	default:
		return ""
	}
}

// Table writes t followed by a newline. Nothing is written for a nil or
// empty table. Short rows are padded with blank cells.
func Table(w io.Writer, t *reviewtable.Table, f Format) error {
	if t == nil || t.IsEmpty() {
		return nil
	}

	tw := table.NewWriter()
	style := table.StyleDefault
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)

	header := table.Row{PropertyHeader}
	for _, h := range t.Headers {
		header = append(header, HeaderLabel(h))
	}
	tw.AppendHeader(header)

	for _, name := range t.RowNames() {
		row := table.Row{name}
		for _, cell := range t.Data[name] {
			row = append(row, value.Format(cell))
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		tw.AppendRow(row)
	}

	var out string
	switch f {
	case FormatMarkdown:
		out = tw.RenderMarkdown()
	case FormatHTML:
		out = tw.RenderHTML()
	default:
		out = tw.Render()
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

// List writes a heading and one bullet per value. Nothing is written for a
// nil list or a list without values.
func List(w io.Writer, l *list.List, f Format) error {
	if l == nil || len(l.Values) == 0 {
		return nil
	}

	var sb strings.Builder
	switch f {
	case FormatMarkdown:
		fmt.Fprintf(&sb, "### %s\n\n", l.Header)
		for _, v := range l.Values {
			fmt.Fprintf(&sb, "- %s\n", v)
		}
	case FormatHTML:
		fmt.Fprintf(&sb, "<h3>%s</h3>\n<ul>\n", html.EscapeString(l.Header))
		for _, v := range l.Values {
			fmt.Fprintf(&sb, "  <li>%s</li>\n", html.EscapeString(v))
		}
		sb.WriteString("</ul>\n")
	default:
		fmt.Fprintf(&sb, "%s\n", l.Header)
		for _, v := range l.Values {
			fmt.Fprintf(&sb, "  - %s\n", v)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func title(w io.Writer, s string, f Format) error {
	var err error
	switch f {
	case FormatMarkdown:
		_, err = fmt.Fprintf(w, "## %s\n\n", s)
	case FormatHTML:
		_, err = fmt.Fprintf(w, "<h2>%s</h2>\n", html.EscapeString(s))
	default:
		_, err = fmt.Fprintf(w, "%s\n\n", s)
	}
	return err
}
