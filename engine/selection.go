package engine

import (
	"strconv"
	"strings"

	"github.com/Chandima-Prabhath/Aura/apperrors"
)

// ParseSelection expands a selection expression like "1-3,10" against the
// available episode numbers. Tokens are comma separated, each a single
// integer or an inclusive "start-end" range. The result preserves
// first-occurrence order, ranges expand ascending, and duplicates collapse
// to their first position. An empty expression or "all" selects every
// available episode in listing order.
//
// A non-integer token, a range with start > end, or a number absent from
// available is a ValidationError; nothing is silently dropped.
func ParseSelection(expr string, available []int) ([]int, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" || strings.EqualFold(trimmed, "all") {
		return append([]int(nil), available...), nil
	}

	availSet := make(map[int]struct{}, len(available))
	for _, n := range available {
		availSet[n] = struct{}{}
	}

	var selected []int
	seen := make(map[int]struct{})

	appendNumber := func(token string, n int) error {
		if _, ok := availSet[n]; !ok {
			return apperrors.NewValidationError(expr, token, "episode "+strconv.Itoa(n)+" is not available")
		}
		if _, dup := seen[n]; dup {
			return nil
		}
		seen[n] = struct{}{}
		selected = append(selected, n)
		return nil
	}

	for _, token := range strings.Split(trimmed, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, apperrors.NewValidationError(expr, token, "empty token")
		}

		if start, end, ok := splitRange(token); ok {
			s, err := strconv.Atoi(start)
			if err != nil {
				return nil, apperrors.NewValidationError(expr, token, "range start is not an integer")
			}
			e, err := strconv.Atoi(end)
			if err != nil {
				return nil, apperrors.NewValidationError(expr, token, "range end is not an integer")
			}
			if s > e {
				return nil, apperrors.NewValidationError(expr, token, "range start is greater than end")
			}
			for n := s; n <= e; n++ {
				if err := appendNumber(token, n); err != nil {
					return nil, err
				}
			}
			continue
		}

		n, err := strconv.Atoi(token)
		if err != nil {
			return nil, apperrors.NewValidationError(expr, token, "not an integer or range")
		}
		if err := appendNumber(token, n); err != nil {
			return nil, err
		}
	}

	return selected, nil
}

// splitRange reports token as a "start-end" pair. A leading '-' belongs to
// a (malformed) number, not a range.
func splitRange(token string) (start, end string, ok bool) {
	idx := strings.Index(token, "-")
	if idx <= 0 || idx == len(token)-1 {
		return "", "", false
	}
	return token[:idx], token[idx+1:], true
}
