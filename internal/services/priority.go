package services

import "strings"

// categoryBasePriority holds the starting priority per report category.
var categoryBasePriority = map[string]int{
	"bache":     3,
	"alumbrado": 2,
	"basura":    1,
	"drenaje":   4,
	"vialidad":  3,
}

const defaultBasePriority = 2

// criticalKeywords bump the priority by one when mentioned in a description.
var criticalKeywords = []string{
	"accidente",
	"niños",
	"niño",
	"niña",
	"riesgo",
	"peligro",
	"peligroso",
	"urgente",
	"emergencia",
	"grave",
	"severo",
	"inundación",
	"inundado",
	"desbordamiento",
	"fuga",
	"explosión",
	"incendio",
	"colapso",
	"herido",
	"lesionado",
}

// CalculatePriority derives a report priority from its category and
// description. Used when the AI analysis is unavailable or not confident
// enough to trust its suggestion.
func CalculatePriority(category, description string) int {
	priority, ok := categoryBasePriority[strings.ToLower(category)]
	if !ok {
		priority = defaultBasePriority
	}

	lower := strings.ToLower(description)
	for _, kw := range criticalKeywords {
		if strings.Contains(lower, kw) {
			priority++
			break
		}
	}

	if priority < 1 {
		priority = 1
	}
	if priority > 5 {
		priority = 5
	}
	return priority
}
