package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"homework_status_bot/internal/domain/homework"
)

// LoadVerdicts reads a status → phrase table from a YAML mapping, e.g.
//
//	approved: Reviewer liked the work!
//	reviewing: Work taken for review.
//	rejected: Reviewer found issues.
//
// The file replaces the built-in table entirely.
func LoadVerdicts(path string) (homework.Verdicts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read verdicts file: %w", err)
	}

	var table map[string]string
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse verdicts file %s: %w", path, err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("verdicts file %s defines no statuses", path)
	}

	verdicts := make(homework.Verdicts, len(table))
	for status, phrase := range table {
		status = strings.TrimSpace(status)
		if status == "" || strings.TrimSpace(phrase) == "" {
			return nil, fmt.Errorf("verdicts file %s: empty status or phrase", path)
		}
		verdicts[status] = phrase
	}
	return verdicts, nil
}
