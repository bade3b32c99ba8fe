// Package geo validates that submissions belong to the supported
// municipality (Mérida, Yucatán). The check combines a coordinate bounding
// box, postal codes extracted from the description, and mentions of other
// municipalities or states.
package geo

import (
	"fmt"
	"regexp"
	"strings"
)

// Validator decides whether a submission's location is acceptable.
// The returned message is client-facing.
type Validator interface {
	Validate(description string, latitude, longitude float64) (bool, string)
}

// Mérida approximate bounding box.
const (
	minLatitude  = 20.85
	maxLatitude  = 21.05
	minLongitude = -89.75
	maxLongitude = -89.50
)

var postalCodeRe = regexp.MustCompile(`\b(97\d{3})\b`)

// Municipalities and states whose mention in a description marks the report
// as out of scope.
var (
	otherMunicipalities = []string{
		"progreso", "uman", "tizimin", "valladolid", "tekax",
		"motul", "izamal", "ticul", "oxkutzcab", "peto",
	}
	otherStates = []string{
		"campeche", "quintana roo", "tabasco", "chiapas",
		"veracruz", "oaxaca", "mexico", "cdmx",
	}
)

// accentReplacer strips the Spanish diacritics relevant for matching.
var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u", "Ñ", "n",
)

// Normalize lowercases text and strips accents for substring comparison.
func Normalize(text string) string {
	return strings.TrimSpace(strings.ToLower(accentReplacer.Replace(text)))
}

// MeridaValidator is the production Validator implementation.
type MeridaValidator struct{}

func NewMeridaValidator() *MeridaValidator {
	return &MeridaValidator{}
}

func (v *MeridaValidator) Validate(description string, latitude, longitude float64) (bool, string) {
	if code := extractPostalCode(description); code != "" {
		if !meridaPostalCodes[code] {
			return false, fmt.Sprintf("El código postal %s no pertenece a Mérida, Yucatán", code)
		}
	}

	if latitude != 0 || longitude != 0 {
		if latitude < minLatitude || latitude > maxLatitude ||
			longitude < minLongitude || longitude > maxLongitude {
			return false, "Las coordenadas proporcionadas no están dentro de Mérida, Yucatán"
		}
	}

	if description != "" {
		normalized := Normalize(description)

		for _, municipality := range otherMunicipalities {
			if strings.Contains(normalized, municipality) {
				return false, fmt.Sprintf("El reporte parece ser de %s, no de Mérida", titleCase(municipality))
			}
		}

		for _, state := range otherStates {
			if strings.Contains(normalized, state) {
				return false, fmt.Sprintf("El reporte parece ser de %s, no de Yucatán", titleCase(state))
			}
		}
	}

	return true, "Ubicación válida: Mérida, Yucatán"
}

func extractPostalCode(description string) string {
	if description == "" {
		return ""
	}
	if m := postalCodeRe.FindStringSubmatch(description); m != nil {
		return m[1]
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
