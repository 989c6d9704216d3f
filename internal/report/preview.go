package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"sheetboard/domain/briefing"
	"sheetboard/internal/inference"
)

// BriefingMarkdown renders a briefing as a markdown report for the confirmation step.
// Profiles are optional; when given they add per-column counts to the columns table.
func BriefingMarkdown(b *briefing.Briefing, profiles []inference.ColumnProfile) string {
	var sb strings.Builder

	sb.WriteString("# Import briefing\n\n")
	if b.Summary != "" {
		sb.WriteString(escape(b.Summary) + "\n\n")
	}
	fmt.Fprintf(&sb, "**Data type:** %s\n\n", escape(b.DataType))

	sb.WriteString("## Grouping\n\n")
	switch b.Grouping.Strategy {
	case briefing.GroupByColumn:
		fmt.Fprintf(&sb, "Items are grouped by **%s**. Rows without a value go to *%s*.\n\n",
			escape(b.Grouping.ByColumn), escape(fallback(b.Grouping.DefaultGroup, briefing.UncategorizedGroup)))
	default:
		fmt.Fprintf(&sb, "All items go to a single group, *%s*.\n\n",
			escape(fallback(b.Grouping.DefaultGroup, briefing.DefaultGroupName)))
	}

	byName := make(map[string]inference.ColumnProfile, len(profiles))
	for _, p := range profiles {
		byName[p.Name] = p
	}

	sb.WriteString("## Columns\n\n")
	sb.WriteString("| Column | Type | Filled | Distinct | Description |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, col := range b.SuggestedColumns {
		filled, distinct := "-", "-"
		if p, ok := byName[col.Name]; ok {
			filled = fmt.Sprintf("%d", p.NonEmpty)
			distinct = fmt.Sprintf("%d", p.Distinct)
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			escape(col.Name), escape(string(col.Type)), filled, distinct, escape(col.Description))
	}
	sb.WriteString("\n")

	if len(b.Visualizations) > 0 {
		sb.WriteString("## Suggested visualizations\n\n")
		for _, v := range b.Visualizations {
			fmt.Fprintf(&sb, "- **%s** (%s on %s)", escape(v.Title), escape(string(v.Type)), escape(v.DataSource))
			if v.Description != "" {
				sb.WriteString(": " + escape(v.Description))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(b.Recommendations) > 0 {
		sb.WriteString("## Recommendations\n\n")
		for _, r := range b.Recommendations {
			sb.WriteString("- " + escape(r) + "\n")
		}
	}

	return sb.String()
}

// BriefingHTML renders the markdown report to HTML. Raw HTML in the markdown is dropped.
func BriefingHTML(b *briefing.Briefing, profiles []inference.ColumnProfile) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(BriefingMarkdown(b, profiles)))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML})
	return markdown.Render(doc, renderer)
}

// Backslash escapes come back out of the parser as plain text, so the HTML renderer escapes them once
var markdownEscaper = strings.NewReplacer(
	"\\", "\\\\", "|", "\\|", "*", "\\*", "_", "\\_",
	"<", "\\<", ">", "\\>", "&", "\\&", "`", "\\`", "[", "\\[", "]", "\\]",
)

func escape(s string) string {
	return markdownEscaper.Replace(s)
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
