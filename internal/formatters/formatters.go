package formatters

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/grovetools/core/tui/theme"
	"github.com/grovetools/recfix/internal/event"
)

// stripCommonIndent removes common leading whitespace from all lines
func stripCommonIndent(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		return text
	}

	// Find minimum indent (ignoring empty lines)
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}

	if minIndent <= 0 {
		return text
	}

	var result strings.Builder
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			result.WriteString("\n")
		} else {
			if len(line) >= minIndent {
				result.WriteString(line[minIndent:])
			} else {
				result.WriteString(line)
			}
			if i < len(lines)-1 {
				result.WriteString("\n")
			}
		}
	}
	return result.String()
}

// DiffLines returns the raw-to-canonical diff of one record, one entry per
// changed or context line. It is empty when nothing changed.
func DiffLines(old map[string]any, rec event.Record) ([]string, error) {
	canonical, err := rec.Item()
	if err != nil {
		return nil, err
	}

	diff := cmp.Diff(old, canonical)
	if diff == "" {
		return nil, nil
	}

	var lines []string
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		// cmp pads with non-breaking spaces at random.
		lines = append(lines, strings.ReplaceAll(line, "\u00a0", " "))
	}
	return lines, nil
}

// dedentDiff drops the enclosing map[string]any{ ... } lines of a cmp diff
// and strips the indent shared by the remaining field lines, keeping each
// line's two-column -/+ marker.
func dedentDiff(lines []string) []string {
	markers := make([]string, len(lines))
	bodies := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= 2 {
			markers[i], bodies[i] = line[:2], line[2:]
		} else {
			markers[i] = line
		}
	}

	last := len(lines) - 1
	if last > 0 && strings.HasSuffix(bodies[0], "{") && strings.TrimSpace(bodies[last]) == "}" {
		markers, bodies = markers[1:last], bodies[1:last]
	}

	bodies = strings.Split(stripCommonIndent(strings.Join(bodies, "\n")), "\n")
	out := make([]string, len(bodies))
	for i, body := range bodies {
		out[i] = markers[i] + body
	}
	return out
}

// FormatChange renders the diff of one record with removed lines in red and
// added lines in green. maxLines limits the number of changed lines shown;
// 0 shows all of them.
func FormatChange(old map[string]any, rec event.Record, maxLines int) string {
	lines, err := DiffLines(old, rec)
	if err != nil {
		return fmt.Sprintf("  (diff unavailable: %v)\n", err)
	}

	mutedStyle := lipgloss.NewStyle().Foreground(theme.DefaultColors.MutedText)
	if len(lines) == 0 {
		return mutedStyle.Render("  (already canonical)") + "\n"
	}

	greenStyle := lipgloss.NewStyle().Foreground(theme.DefaultColors.Green)
	redStyle := lipgloss.NewStyle().Foreground(theme.DefaultColors.Red)

	var output strings.Builder
	shown, hidden := 0, 0
	for _, line := range dedentDiff(lines) {
		changed := strings.HasPrefix(line, "-") || strings.HasPrefix(line, "+")
		if changed {
			if maxLines > 0 && shown >= maxLines {
				hidden++
				continue
			}
			shown++
		}

		switch {
		case strings.HasPrefix(line, "-"):
			output.WriteString(redStyle.Render("  "+line) + "\n")
		case strings.HasPrefix(line, "+"):
			output.WriteString(greenStyle.Render("  "+line) + "\n")
		default:
			output.WriteString(mutedStyle.Render("  "+line) + "\n")
		}
	}
	if hidden > 0 {
		output.WriteString(mutedStyle.Render(fmt.Sprintf("  ... (%d more changed lines)", hidden)) + "\n")
	}
	return output.String()
}

// FieldText renders a raw field for listings. Bilingual mappings show their
// English text; missing values show fallback.
func FieldText(item map[string]any, field, fallback string) string {
	v := event.Lookup(item, field)
	switch v.Kind() {
	case event.KindAbsent:
		return fallback
	case event.KindMap:
		m, _ := v.Map()
		if en, ok := m["en"]; ok {
			return event.ValueOf(en).String()
		}
		return fmt.Sprint(m)
	case event.KindNull:
		return "null"
	case event.KindString, event.KindList, event.KindOther:
		return v.String()
	}
	return fallback
}

// FormatCategories renders a category list.
func FormatCategories(categories []string) string {
	quoted := make([]string, len(categories))
	for i, c := range categories {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
