package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"issue-assistant/internal/analysis"
	"issue-assistant/internal/issues"
)

const (
	labelWidth = 18
	valueWidth = 80
)

func PadRight(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// Truncate shortens str to width display cells, marking the cut with "...".
func Truncate(str string, width int) string {
	if width <= 0 {
		return str
	}
	return runewidth.Truncate(str, width, "...")
}

type row struct {
	label string
	value string
}

func renderRows(rows []row) string {
	var b strings.Builder
	for _, r := range rows {
		lines := wrap(r.value, valueWidth)
		if len(lines) == 0 {
			lines = []string{""}
		}
		for i, line := range lines {
			label := ""
			if i == 0 {
				label = r.label
			}
			fmt.Fprintf(&b, "%s %s\n", PadRight(label, labelWidth), line)
		}
	}
	return b.String()
}

// wrap breaks text into lines at most width display cells wide, splitting on spaces.
func wrap(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	curWidth := 0
	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		if curWidth > 0 && curWidth+1+w > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
		if curWidth > 0 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(word)
		curWidth += w
	}
	if curWidth > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// FormatAnalysis renders an analysis as an aligned two-column table.
func FormatAnalysis(r analysis.AnalysisResult) string {
	return renderRows([]row{
		{"Summary", r.Summary},
		{"Type", r.Type},
		{"Priority", r.PriorityScore},
		{"Labels", strings.Join(r.SuggestedLabels, ", ")},
		{"Impact", r.PotentialImpact},
	})
}

// FormatDeveloperInfo renders issue metadata followed by the top comments.
func FormatDeveloperInfo(info issues.DeveloperInfo) string {
	m := info.Metadata
	rows := []row{
		{"State", m.State},
		{"Author", m.Author},
		{"Comments", fmt.Sprintf("%d", m.CommentCount)},
		{"Created", m.CreatedAt},
		{"Updated", m.UpdatedAt},
		{"Labels", strings.Join(m.Labels, ", ")},
		{"Issue", m.HTMLURL},
		{"Repository", m.RepoHTMLURL},
	}
	for i, c := range info.TopComments {
		rows = append(rows, row{fmt.Sprintf("Comment %d", i+1), Truncate(c, valueWidth*2)})
	}
	if len(info.DetailedJSON) > 0 {
		keys := make([]string, 0, len(info.DetailedJSON))
		for k := range info.DetailedJSON {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rows = append(rows, row{"Fields", strings.Join(keys, ", ")})
	}
	return renderRows(rows)
}
