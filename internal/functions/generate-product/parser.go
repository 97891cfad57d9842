// internal/functions/generate-product/parser.go
package generateproduct

import (
	"strings"

	"cardgen/internal/models"
)

// ParseCard splits generated text into a title and a description using a
// line heuristic. Fallbacks are not applied: either field may come back empty.
//
// Line 0 is always dropped. Until a title is found, lines that mention the
// title label or start with "1." are dropped and the first other line becomes
// the title. After that, lines mentioning the description label or starting
// with "2." are dropped and the rest, with emphasis stripped, are joined with
// "\n". No separator is written while the description is still empty.
func ParseCard(text string, locale Locale) models.ProductCard {
	var (
		title string
		desc  strings.Builder
	)

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case i == 0:
		case title == "" && (strings.Contains(lower, locale.TitleLabel) || strings.HasPrefix(line, "1.")):
		case title == "":
			title = stripEmphasis(line)
		case strings.Contains(lower, locale.DescLabel) || strings.HasPrefix(line, "2."):
		default:
			if desc.Len() > 0 {
				desc.WriteByte('\n')
			}
			desc.WriteString(stripEmphasis(line))
		}
	}

	return models.ProductCard{
		Title:       title,
		Description: desc.String(),
	}
}

func stripEmphasis(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "*", "")
	return strings.TrimSpace(s)
}

// ApplyFallbacks fills empty fields: the title from the locale template and
// the description with the whole generated text. It reports which fields were
// filled.
func ApplyFallbacks(card models.ProductCard, text, name, category string, locale Locale) (models.ProductCard, []string) {
	var filled []string
	if card.Title == "" {
		card.Title = locale.DefaultTitle(name, category)
		filled = append(filled, "title")
	}
	if card.Description == "" {
		card.Description = text
		filled = append(filled, "description")
	}
	return card, filled
}
