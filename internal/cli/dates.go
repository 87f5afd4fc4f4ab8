package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var dueDateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDueDate turns user input into a timestamp. Literal layouts are tried
// first, then natural language ("tomorrow", "next monday at 3pm"). An empty
// string means no due date.
func ParseDueDate(raw string, now time.Time) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	for _, layout := range dueDateLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, now.Location()); err == nil {
			return &parsed, nil
		}
	}

	parser := when.New(nil)
	parser.Add(en.All...)
	parser.Add(common.All...)

	result, err := parser.Parse(trimmed, now)
	if err != nil || result == nil {
		return nil, fmt.Errorf("could not parse date %q", raw)
	}

	parsed := result.Time
	return &parsed, nil
}
