package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"itemedit/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle      = lipgloss.NewStyle().Padding(0, 1)
)

// WriteText renders items and comments as tables; anything else falls back to %v.
func WriteText(w io.Writer, v any) error {
	var out string
	switch x := v.(type) {
	case []model.Item:
		out = ItemTable(x)
	case model.Item:
		out = ItemTable([]model.Item{x}) + "\n" + CommentTable(x.Comments)
	case model.Comment:
		out = CommentTable([]model.Comment{x})
	case []model.Comment:
		out = CommentTable(x)
	default:
		out = fmt.Sprintf("%v", v)
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func ItemTable(items []model.Item) string {
	if len(items) == 0 {
		return "No items found."
	}
	rows := make([][]string, len(items))
	for i, it := range items {
		done := " "
		if it.Complete {
			done = "x"
		}
		rows[i] = []string{
			it.ID,
			done,
			it.Title,
			it.AssignedTo,
			string(it.Priority),
			dash(it.DueDate),
			dash(model.JoinTags(it.Tags)),
			strconv.Itoa(len(it.Comments)),
		}
	}
	return renderTable([]string{"ID", "Done", "Title", "Assigned", "Pri", "Due", "Tags", "Comments"}, rows)
}

func CommentTable(comments []model.Comment) string {
	if len(comments) == 0 {
		return "No comments yet."
	}
	rows := make([][]string, len(comments))
	for i, c := range comments {
		rows[i] = []string{
			c.Timestamp.Local().Format("2006-01-02 15:04"),
			c.Author,
			strings.ReplaceAll(strings.TrimSpace(c.Content), "\n", " "),
		}
	}
	return renderTable([]string{"When", "Author", "Comment"}, rows)
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerRowStyle
			}
			return cellStyle
		})
	return t.Render()
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
