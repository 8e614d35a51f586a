package internal

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	ApiBaseURL    string `env:"API_BASE_URL,required=true"`
	TopicsBaseURL string `env:"TOPICS_BASE_URL,required=true"`
	Namespace     string `env:"NAMESPACE,default=moderator"`
	Username      string `env:"CHAT_USERNAME,required=true"`

	DefaultLanguage string        `env:"DEFAULT_LANGUAGE,default=en"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL,default=3m"`

	CensoredWords   string `env:"CENSORED_WORDS"`
	CharReplacement string `env:"CHARACTER_REPLACEMENT,default=*"`

	BadgerFilepath string        `env:"BADGER_FILEPATH"`
	ImageTTL       time.Duration `env:"IMAGE_TTL,default=24h"`
	TranscriptPath string        `env:"TRANSCRIPT_PATH"`

	// Local token vendor for development against a backend without the
	// hosted token endpoint.
	LocalAuth         bool          `env:"LOCAL_AUTH"`
	AuthSecret        string        `env:"AUTH_SECRET"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=1h"`

	LogLevel string `env:"LOG_LEVEL,default=info"`
}

// WordList splits the comma-separated censored words setting.
func (c Config) WordList() []string {
	if strings.TrimSpace(c.CensoredWords) == "" {
		return nil
	}
	parts := strings.Split(c.CensoredWords, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if w := strings.TrimSpace(p); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
