package finding

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors_MatchThroughWrapping(t *testing.T) {
	all := []error{ErrMalformed, ErrSchemaMismatch, ErrEmptyInput, ErrMissingTemplateVariable}
	for _, want := range all {
		wrapped := fmt.Errorf("bandit: results[3]: %w", want)
		for _, other := range all {
			if got := errors.Is(wrapped, other); got != (other == want) {
				t.Errorf("errors.Is(%q, %q) = %v", wrapped, other, got)
			}
		}
	}
}

func TestErrors_Messages(t *testing.T) {
	for err, msg := range map[error]string{
		ErrMalformed:               "finding: malformed input",
		ErrSchemaMismatch:          "finding: schema mismatch",
		ErrEmptyInput:              "finding: empty input",
		ErrMissingTemplateVariable: "finding: missing template variable",
	} {
		if err.Error() != msg {
			t.Errorf("got %q, want %q", err.Error(), msg)
		}
	}
}
