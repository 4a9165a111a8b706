package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gomdtask/pkg/reorder"
)

// Table formatting constants.
const (
	cursorSymbol     = ">"
	tablePadding     = 2
	tableColumnCount = 7 // LINE, KIND, INDENT, PARENT, SECTION, BLOCK, TEXT
	cursorWidth      = 2
	minLineWidth     = 4
	minKindWidth     = 15
	minIndentWidth   = 6
	minParentWidth   = 6
	minSectionWidth  = 7
	minBlockWidth    = 5
	minTextWidth     = 20
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableFormatter formats an outline as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

type columnWidths struct {
	line    int
	kind    int
	indent  int
	parent  int
	section int
	block   int
	text    int
}

type tableRow struct {
	entry   reorder.Entry
	line    string
	indent  string
	parent  string
	section string
	block   string
}

// FormatOutline renders entries one row per line. cursorLine, when non-zero,
// is marked in the gutter. Headings start a new group separated by a light
// rule.
func (t *TableFormatter) FormatOutline(entries []reorder.Entry, cursorLine int) string {
	if len(entries) == 0 {
		return ""
	}

	rows := make([]tableRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, newTableRow(entry))
	}
	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for idx, row := range rows {
		if idx > 0 && row.entry.Raw.IsHeading() {
			builder.WriteString(t.formatSeparator(widths, lightSeparator))
			builder.WriteString("\n")
		}
		builder.WriteString(t.formatRow(row, widths, row.entry.Line == cursorLine))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend(entries))
	builder.WriteString("\n")

	return builder.String()
}

func newTableRow(entry reorder.Entry) tableRow {
	row := tableRow{
		entry:   entry,
		line:    strconv.Itoa(entry.Line),
		indent:  strconv.Itoa(entry.Indent),
		parent:  "-",
		section: fmt.Sprintf("%d-%d", entry.Section.Start, entry.Section.End),
		block:   "-",
	}
	if entry.Parent != 0 {
		row.parent = strconv.Itoa(entry.Parent)
	}
	if entry.Block != nil {
		row.block = FormatBlock(*entry.Block)
	}
	return row
}

// calculateColumnWidths determines column widths from content, giving the
// TEXT column whatever the terminal has left.
func (t *TableFormatter) calculateColumnWidths(rows []tableRow) columnWidths {
	widths := columnWidths{
		line:    minLineWidth,
		kind:    minKindWidth,
		indent:  minIndentWidth,
		parent:  minParentWidth,
		section: minSectionWidth,
		block:   minBlockWidth,
		text:    minTextWidth,
	}

	for _, row := range rows {
		widths.line = max(widths.line, len(row.line))
		widths.kind = max(widths.kind, len(row.entry.Kind))
		widths.parent = max(widths.parent, len(row.parent))
		widths.section = max(widths.section, len(row.section))
		widths.block = max(widths.block, len(row.block))
		widths.text = max(widths.text, lipgloss.Width(row.entry.Text))
	}

	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.text = max(minTextWidth, widths.text-(total-t.termWidth))
	}

	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return cursorWidth + widths.line + widths.kind + widths.indent + widths.parent +
		widths.section + widths.block + widths.text + tablePadding*(tableColumnCount-1)
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf("%*s%*s  %-*s  %*s  %*s  %-*s  %-*s  %-*s",
		cursorWidth, "",
		widths.line, "LINE",
		widths.kind, "KIND",
		widths.indent, "INDENT",
		widths.parent, "PARENT",
		widths.section, "SECTION",
		widths.block, "BLOCK",
		widths.text, "TEXT",
	)
	return t.styles.TableHeader.Render(header)
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.calculateTotalWidth(widths)))
}

// formatRow formats a single row, styling the KIND and TEXT cells by kind.
func (t *TableFormatter) formatRow(row tableRow, widths columnWidths, atCursor bool) string {
	gutter := strings.Repeat(" ", cursorWidth)
	if atCursor {
		gutter = cursorSymbol + " "
	}

	style := t.kindStyle(row.entry.Raw)
	kind := style.Render(fmt.Sprintf("%-*s", widths.kind, row.entry.Kind))
	text := style.Render(truncateString(row.entry.Text, widths.text))

	content := fmt.Sprintf("%s%*s  %s  %*s  %*s  %-*s  %-*s  %s",
		gutter,
		widths.line, row.line,
		kind,
		widths.indent, row.indent,
		widths.parent, row.parent,
		widths.section, row.section,
		widths.block, row.block,
		text,
	)

	if atCursor {
		return t.styles.TableCursor.Render(content)
	}
	return content
}

// kindStyle returns the style for a line kind.
func (t *TableFormatter) kindStyle(kind reorder.LineKind) lipgloss.Style {
	switch kind.Kind {
	case reorder.KindTask:
		if kind.Checked {
			return t.styles.KindChecked
		}
		return t.styles.KindTask
	case reorder.KindListItem, reorder.KindEmptyListItem:
		return t.styles.KindListItem
	case reorder.KindHeading:
		return t.styles.KindHeading
	case reorder.KindBlank:
		return t.styles.KindBlank
	default:
		return t.styles.KindOther
	}
}

// formatLegend counts the list lines and tasks in the outline.
func (t *TableFormatter) formatLegend(entries []reorder.Entry) string {
	var tasks, done, items, headings int
	for _, entry := range entries {
		switch entry.Raw.Kind {
		case reorder.KindTask:
			tasks++
			if entry.Raw.Checked {
				done++
			}
		case reorder.KindListItem, reorder.KindEmptyListItem:
			items++
		case reorder.KindHeading:
			headings++
		}
	}

	parts := []string{
		fmt.Sprintf("%d lines", len(entries)),
		t.styles.KindTask.Render(fmt.Sprintf("%d tasks", tasks)),
		t.styles.KindChecked.Render(fmt.Sprintf("%d done", done)),
		t.styles.KindListItem.Render(fmt.Sprintf("%d list items", items)),
		t.styles.KindHeading.Render(fmt.Sprintf("%d headings", headings)),
	}
	legend := " " + strings.Join(parts, " | ")
	if !t.colorEnabled {
		legend += " | " + cursorSymbol + " = cursor"
	}
	return t.styles.TableLegend.Render(legend)
}

// truncateString truncates a string to maxLen display cells, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if lipgloss.Width(str) <= maxLen {
		return str
	}
	runes := []rune(str)
	if maxLen <= 3 {
		return string(runes[:min(maxLen, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxLen {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
