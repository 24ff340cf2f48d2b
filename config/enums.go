package config

// Specification of the edition type being produced.
// ENUM(diplomatic, translation)
type EditionType int

// DefaultLanguage returns the transcription language assumed for the edition
// type when configuration does not specify one.
func (e EditionType) DefaultLanguage() string {
	switch e {
	case EditionTypeTranslation:
		return "es"
	default:
		return "grc"
	}
}

// LanguageName returns a human readable name for a language code used in the
// TEI language usage declaration.
func LanguageName(code string) string {
	switch code {
	case "grc":
		return "Ancient Greek"
	case "es":
		return "Spanish"
	case "la":
		return "Latin"
	case "en":
		return "English"
	default:
		return code
	}
}
