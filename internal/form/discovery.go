// Form discovery walks a rendered career page and catalogs every
// candidate input without classifying how to answer it. Greenhouse
// forms carry no schema, the DOM is the only contract.

package form

import (
	"log"
	"strings"

	"github.com/playwright-community/playwright-go"
)

type Category string

const (
	CategoryText     Category = "native-text"
	CategorySelect   Category = "native-select"
	CategoryCombobox Category = "rich-combobox"
	CategoryFile     Category = "file"
	CategoryUnknown  Category = "unknown"
)

// comboboxClassMarker is the CSS-class convention Greenhouse's
// JavaScript dropdown widgets render with. Its presence promotes a
// field to rich-combobox regardless of the underlying tag.
const comboboxClassMarker = "select__input"

type Field struct {
	ID         string
	Category   Category
	Label      string
	Required   bool
	Attributes map[string]string
}

// Discover enumerates every input, textarea and select element on the
// page. It never fails: elements that cannot be read are skipped, and a
// form-less page yields an empty catalog (the orchestrator decides
// whether that is an error).
func Discover(page playwright.Page) []Field {
	elements, err := page.Locator("input, textarea, select").All()
	if err != nil {
		log.Printf("⚠️ Could not enumerate form elements: %v", err)
		return nil
	}

	var fields []Field
	for _, el := range elements {
		id, err := el.GetAttribute("id")
		if err != nil || id == "" {
			// a field without an id is not actionable
			continue
		}

		attrs := readAttributes(el)
		tag := tagName(el)
		category := classify(tag, attrs)

		fields = append(fields, Field{
			ID:         id,
			Category:   category,
			Label:      resolveLabel(page, id, category, attrs),
			Required:   attrs["aria-required"] == "true",
			Attributes: attrs,
		})
	}

	log.Printf("🔍 Discovered %d form fields", len(fields))
	return fields
}

func classify(tag string, attrs map[string]string) Category {
	if strings.Contains(attrs["class"], comboboxClassMarker) {
		return CategoryCombobox
	}
	switch tag {
	case "select":
		return CategorySelect
	case "textarea":
		return CategoryText
	case "input":
		switch attrs["type"] {
		case "file":
			return CategoryFile
		case "", "text", "email", "tel", "url", "search", "number":
			return CategoryText
		default:
			return CategoryUnknown
		}
	default:
		return CategoryUnknown
	}
}

// resolveLabel finds the human question text for a field: an explicit
// label-for association for native elements, the aria-labelledby target
// (or aria-label) for combobox widgets.
func resolveLabel(page playwright.Page, id string, category Category, attrs map[string]string) string {
	if category == CategoryCombobox {
		if labelID := attrs["aria-labelledby"]; labelID != "" {
			text, err := page.Locator("#" + labelID).TextContent()
			if err == nil {
				return strings.TrimSpace(text)
			}
		}
		return strings.TrimSpace(attrs["aria-label"])
	}

	labels := page.Locator(`label[for="` + id + `"]`)
	if count, err := labels.Count(); err == nil && count > 0 {
		text, err := labels.First().TextContent()
		if err == nil {
			return strings.TrimSpace(text)
		}
	}
	return strings.TrimSpace(attrs["aria-label"])
}

func readAttributes(el playwright.Locator) map[string]string {
	attrs := map[string]string{}
	raw, err := el.Evaluate(`el => {
		const m = {};
		for (const a of el.attributes) { m[a.name] = a.value; }
		return m;
	}`, nil)
	if err != nil {
		return attrs
	}
	if m, ok := raw.(map[string]interface{}); ok {
		for k, v := range m {
			if s, ok := v.(string); ok {
				attrs[k] = s
			}
		}
	}
	return attrs
}

func tagName(el playwright.Locator) string {
	raw, err := el.Evaluate("el => el.tagName.toLowerCase()", nil)
	if err != nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return ""
}
