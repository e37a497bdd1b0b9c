package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"xui-manager/internal/constants"
)

// ValidateIdentifier validates a client identifier (UUID or email label)
func ValidateIdentifier(identifier string) error {
	if len(identifier) < constants.MinIdentifierLength || len(identifier) > constants.MaxIdentifierLength {
		return fmt.Errorf("identifier must be between %d and %d characters",
			constants.MinIdentifierLength, constants.MaxIdentifierLength)
	}

	if strings.ContainsAny(identifier, " \t\n") {
		return fmt.Errorf("identifier cannot contain whitespace")
	}

	return nil
}

// IsUUID reports whether the string is a syntactically valid UUID
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// ParseSelection parses an inbound selection like "1,3,4" or "all" into
// 0-based indices against a list of count items. Out-of-range entries
// are skipped and reported, matching the interactive prompt's behavior;
// a non-numeric entry is an error.
func ParseSelection(input string, count int) (selected []int, skipped []int, err error) {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, "all") || input == "" {
		selected = make([]int, count)
		for i := range selected {
			selected[i] = i
		}
		return selected, nil, nil
	}

	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, convErr := strconv.Atoi(part)
		if convErr != nil {
			return nil, nil, fmt.Errorf("invalid selection %q: not a number", part)
		}
		if n < 1 || n > count {
			skipped = append(skipped, n)
			continue
		}
		selected = append(selected, n-1)
	}

	if len(selected) == 0 && len(skipped) == 0 {
		return nil, nil, fmt.Errorf("empty selection")
	}

	return selected, skipped, nil
}
