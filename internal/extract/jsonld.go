package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// jsonLDPosting holds the fields a schema.org JobPosting block can fill.
type jsonLDPosting struct {
	Title    string
	Company  string
	Location string
	Salary   string
}

// parseJSONLDPosting returns the first JobPosting found in the document's
// ld+json scripts.
func parseJSONLDPosting(doc *goquery.Document) (jsonLDPosting, bool) {
	var (
		found  jsonLDPosting
		exists bool
	)

	doc.Find("script[type='application/ld+json']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}

		data, err := decodeJSONLD(raw)
		if err != nil {
			return true
		}

		if posting, ok := firstJobPosting(data); ok {
			found = postingFromJSONLD(posting)
			exists = true
			return false
		}
		return true
	})

	return found, exists
}

func decodeJSONLD(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "<!--")
	raw = strings.TrimSuffix(raw, "-->")
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, "\u2028", "")
	raw = strings.ReplaceAll(raw, "\u2029", "")

	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return data, nil
}

func firstJobPosting(data any) (map[string]any, bool) {
	switch value := data.(type) {
	case []any:
		for _, item := range value {
			if posting, ok := firstJobPosting(item); ok {
				return posting, true
			}
		}
	case map[string]any:
		if strings.EqualFold(stringValue(value["@type"], value["type"]), "jobposting") {
			return value, true
		}
		for _, key := range []string{"@graph", "mainEntity", "itemListElement"} {
			if nested, ok := value[key]; ok {
				if posting, found := firstJobPosting(nested); found {
					return posting, true
				}
			}
		}
	}
	return nil, false
}

func postingFromJSONLD(value map[string]any) jsonLDPosting {
	return jsonLDPosting{
		Title:    stringValue(value["title"], value["name"]),
		Company:  stringValue(mapValue(value["hiringOrganization"], "name"), value["hiringOrganization"]),
		Location: locationFromJSONLD(value["jobLocation"]),
		Salary:   salaryFromJSONLD(value["baseSalary"]),
	}
}

func salaryFromJSONLD(value any) string {
	salary, ok := value.(map[string]any)
	if !ok {
		if text, isString := value.(string); isString {
			return strings.TrimSpace(text)
		}
		return ""
	}

	amounts, _ := salary["value"].(map[string]any)
	unit := stringValue(salary["unitText"], mapValue(salary["value"], "unitText"))

	var minStr, maxStr string
	if amounts != nil {
		minStr = stringValue(amounts["minValue"], amounts["value"])
		maxStr = stringValue(amounts["maxValue"])
	} else {
		minStr = stringValue(salary["value"])
	}
	if minStr == "" {
		return ""
	}

	out := "$" + minStr
	if maxStr != "" && maxStr != minStr {
		out += " - $" + maxStr
	}
	return out + salaryUnitSuffix(unit)
}

func salaryUnitSuffix(unit string) string {
	switch strings.ToUpper(strings.TrimSpace(unit)) {
	case "HOUR":
		return "/hr"
	case "MONTH":
		return "/mo"
	case "YEAR":
		return "/yr"
	default:
		return ""
	}
}

func locationFromJSONLD(value any) string {
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			if loc := locationFromJSONLD(item); loc != "" {
				return loc
			}
		}
	case map[string]any:
		if address, ok := v["address"].(map[string]any); ok {
			return joinAddress(address)
		}
		return joinAddress(v)
	case string:
		return strings.TrimSpace(v)
	}
	return ""
}

func joinAddress(value map[string]any) string {
	var parts []string
	for _, part := range []string{
		stringValue(value["addressLocality"]),
		stringValue(value["addressRegion"]),
	} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

func stringValue(values ...any) string {
	for _, value := range values {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		case float64:
			return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
		case int:
			return fmt.Sprintf("%d", v)
		case json.Number:
			return v.String()
		case map[string]any:
			if name := stringValue(v["name"]); name != "" {
				return name
			}
		}
	}
	return ""
}

func mapValue(value any, key string) any {
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return m[key]
}
