// internal/functions/generate-product/prompt.go
package generateproduct

import (
	"fmt"
	"strings"

	"cardgen/internal/models"
)

// Locale is the business wording for one output language. The prompt
// structure is the same for every locale.
type Locale struct {
	Code          string
	SystemPrompt  string
	TitleLabel    string // lowercase word announcing the title section
	DescLabel     string // lowercase word announcing the description section
	FallbackTitle string // format: name, category
	productLine   string
	categoryLine  string
	featuresLine  string
	instructions  []string
}

var locales = map[string]Locale{
	"ru": {
		Code:          "ru",
		SystemPrompt:  "Ты эксперт по созданию продающих описаний товаров для маркетплейсов.",
		TitleLabel:    "заголовок",
		DescLabel:     "описание",
		FallbackTitle: "%s - %s премиум качества | Быстрая доставка",
		productLine:   "Товар: %s",
		categoryLine:  "Категория: %s",
		featuresLine:  "Особенности: %s",
		instructions: []string{
			"Ты - эксперт по созданию продающих карточек товаров для маркетплейсов (Wildberries, Ozon, Яндекс.Маркет).",
			"Создай:",
			"1. SEO-оптимизированный заголовок (до 200 символов) - включи название, категорию, ключевые преимущества",
			"2. Продающее описание (500-800 символов):",
			"   - Начни с яркого представления товара",
			"   - Перечисли 4-5 ключевых преимуществ с эмодзи",
			"   - Добавь призыв к действию",
			"   - Создай ощущение срочности",
			"Пиши на русском языке, используй эмодзи для визуальной привлекательности.",
		},
	},
	"en": {
		Code:          "en",
		SystemPrompt:  "You are an expert at writing product sales copy for marketplaces.",
		TitleLabel:    "title",
		DescLabel:     "description",
		FallbackTitle: "%s - %s premium quality | Fast delivery",
		productLine:   "Product: %s",
		categoryLine:  "Category: %s",
		featuresLine:  "Features: %s",
		instructions: []string{
			"You are an expert at creating product cards that sell on marketplaces (Amazon, eBay, Etsy).",
			"Create:",
			"1. An SEO-optimized title (up to 200 characters) - include the name, the category and the key benefits",
			"2. A persuasive description (500-800 characters):",
			"   - Open with a vivid introduction of the product",
			"   - List 4-5 key benefits marked with emoji",
			"   - Add a call to action",
			"   - Create a sense of urgency",
			"Write in English and use emoji for visual appeal.",
		},
	},
}

// LocaleFor returns the wording for code, falling back to Russian.
func LocaleFor(code string) Locale {
	if l, ok := locales[code]; ok {
		return l
	}
	return locales["ru"]
}

// BuildPrompt renders the user message. The features line is present only
// when features is non-empty.
func (l Locale) BuildPrompt(name, category, features string) string {
	var parts []string

	parts = append(parts, l.instructions[0])
	parts = append(parts, "")
	parts = append(parts, fmt.Sprintf(l.productLine, name))
	parts = append(parts, fmt.Sprintf(l.categoryLine, category))
	if features != "" {
		parts = append(parts, fmt.Sprintf(l.featuresLine, features))
	}
	parts = append(parts, "")
	parts = append(parts, l.instructions[1:len(l.instructions)-1]...)
	parts = append(parts, "")
	parts = append(parts, l.instructions[len(l.instructions)-1])

	return strings.Join(parts, "\n")
}

// DefaultTitle is used when nothing in the generated text qualifies as a title.
func (l Locale) DefaultTitle(name, category string) string {
	return fmt.Sprintf(l.FallbackTitle, name, category)
}

func (l Locale) messages(prompt string) []models.ChatMessage {
	return []models.ChatMessage{
		{Role: models.RoleSystem, Content: l.SystemPrompt},
		{Role: models.RoleUser, Content: prompt},
	}
}
