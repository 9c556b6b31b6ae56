package survey

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mindprobe/MindProbe/internal/models"
)

//go:embed questions.yaml
var defaultQuestions []byte

// Config holds the question catalog driving the survey.
type Config struct {
	MinWords  int                          `yaml:"min_words"`
	Questions map[models.Language][]string `yaml:"questions"`
}

// DefaultConfig parses the embedded question catalog.
func DefaultConfig() (*Config, error) {
	return ParseConfig(defaultQuestions)
}

// ParseConfig parses and validates a YAML question catalog.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse question catalog: %w", err)
	}
	if cfg.MinWords <= 0 {
		return nil, fmt.Errorf("min_words must be positive, got %d", cfg.MinWords)
	}
	if len(cfg.Questions) == 0 {
		return nil, fmt.Errorf("question catalog is empty")
	}
	for language, questions := range cfg.Questions {
		if !models.IsValidLanguage(language) {
			return nil, fmt.Errorf("unsupported language %q in question catalog", language)
		}
		if len(questions) != models.SurveyQuestionCount {
			return nil, fmt.Errorf("language %s has %d questions, expected %d",
				language, len(questions), models.SurveyQuestionCount)
		}
		for i, q := range questions {
			if q == "" {
				return nil, fmt.Errorf("language %s question %d is empty", language, i)
			}
		}
	}
	if _, ok := cfg.Questions[models.DefaultLanguage]; !ok {
		return nil, fmt.Errorf("question catalog missing default language %s", models.DefaultLanguage)
	}
	return &cfg, nil
}

// Question returns question i in the given language, falling back to the
// default language when the catalog has no entry for it.
func (c *Config) Question(language models.Language, i int) string {
	questions, ok := c.Questions[language]
	if !ok {
		questions = c.Questions[models.DefaultLanguage]
	}
	return questions[i]
}
