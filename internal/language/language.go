package language

import "strings"

type entry struct {
	tag     string // catalog region tag (e.g. "sr-RS")
	code2   string // ISO 639-1
	native  string // name in the language itself
	english string
}

var languages = []entry{
	{"en-US", "en", "English", "English"},
	{"sr-RS", "sr", "Srpski", "Serbian"},
	{"hr-HR", "hr", "Hrvatski", "Croatian"},
	{"bs-BA", "bs", "Bosanski", "Bosnian"},
	{"sk-SK", "sk", "Slovenský", "Slovak"},
	{"de-DE", "de", "Deutsch", "German"},
	{"es-ES", "es", "Español", "Spanish"},
	{"fr-FR", "fr", "Français", "French"},
	{"it-IT", "it", "Italiano", "Italian"},
	{"ru-RU", "ru", "Русский", "Russian"},
	{"pt-BR", "pt", "Português", "Portuguese"},
	{"pl-PL", "pl", "Polski", "Polish"},
	{"tr-TR", "tr", "Türkçe", "Turkish"},
	{"ar-AE", "ar", "العربية", "Arabic"},
	{"zh-CN", "zh", "中文", "Chinese"},
}

// Index maps built at init time.
var (
	byTag   map[string]int
	byCode2 map[string]int
	byWord  map[string]int
)

func init() {
	byTag = make(map[string]int, len(languages))
	byCode2 = make(map[string]int, len(languages))
	byWord = make(map[string]int, len(languages)*2)
	for i, e := range languages {
		byTag[strings.ToLower(e.tag)] = i
		byCode2[e.code2] = i
		byWord[strings.ToLower(e.english)] = i
		byWord[strings.ToLower(e.native)] = i
	}
}

func lookup(value string) (int, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return 0, false
	}
	value = strings.ReplaceAll(value, "_", "-")
	if i, ok := byTag[value]; ok {
		return i, true
	}
	if i, ok := byWord[value]; ok {
		return i, true
	}
	primary, _, _ := strings.Cut(value, "-")
	if i, ok := byCode2[primary]; ok {
		return i, true
	}
	return 0, false
}

// Choice is one selectable response language.
type Choice struct {
	Tag     string
	Native  string
	English string
}

// Choices returns the supported languages in menu order.
func Choices() []Choice {
	out := make([]Choice, len(languages))
	for i, e := range languages {
		out[i] = Choice{Tag: e.tag, Native: e.native, English: e.english}
	}
	return out
}

// Supported reports whether value names one of the offered languages.
func Supported(value string) bool {
	_, ok := lookup(value)
	return ok
}

// Canonical returns the region tag for a tag, ISO code or name, or "" when
// unrecognized. "de", "de_de" and "Deutsch" all map to "de-DE".
func Canonical(value string) string {
	if i, ok := lookup(value); ok {
		return languages[i].tag
	}
	return ""
}

// ToISO2 returns the ISO 639-1 code for any recognized value, or "".
func ToISO2(value string) string {
	if i, ok := lookup(value); ok {
		return languages[i].code2
	}
	return ""
}

// DisplayName returns the native name for a recognized value. Returns
// "Unknown" for empty input and the trimmed input otherwise.
func DisplayName(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Unknown"
	}
	if i, ok := lookup(value); ok {
		return languages[i].native
	}
	return strings.TrimSpace(value)
}

