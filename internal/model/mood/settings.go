package mood

// Language selects the prompt template and fallback wording.
type Language string

const (
	English Language = "en"
	Italian Language = "it"
)

// ParseLanguage accepts only the supported language tags.
func ParseLanguage(raw string) (Language, bool) {
	switch Language(raw) {
	case English:
		return English, true
	case Italian:
		return Italian, true
	default:
		return "", false
	}
}

// Persisted keys shared by the services that own them.
const (
	HistoryKey  = "emotionHistory"
	SettingsKey = "appSettings"
)

// Settings 用户偏好，整体持久化。
type Settings struct {
	DarkMode             bool     `json:"darkMode"`
	NotificationsEnabled bool     `json:"notificationsEnabled"`
	Language             Language `json:"language"`
}

// DefaultSettings returns the built-in preferences used on first start or after a corrupt load.
func DefaultSettings() Settings {
	return Settings{
		DarkMode:             false,
		NotificationsEnabled: true,
		Language:             English,
	}
}

// Theme names the colour scheme a view should render with.
func (s Settings) Theme() string {
	if s.DarkMode {
		return "dark"
	}
	return "light"
}
