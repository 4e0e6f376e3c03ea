package timer

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// GenerateID returns a new timer id. IDs are ULIDs so listings sort by
// creation time without a secondary index.
func GenerateID() string {
	return strings.ToLower(ulid.Make().String())
}

// validate checks the fields of a timer before it is stored.
func validate(t *Timer) error {
	var errs []string

	if t.ID == "" {
		errs = append(errs, "id is required")
	}
	if !t.Class.Valid() {
		errs = append(errs, fmt.Sprintf("unknown class %q", t.Class))
	}
	if t.EntityID == "" {
		errs = append(errs, "entity_id is required")
	}
	if t.ExpiresAt.IsZero() {
		errs = append(errs, "expires_at is required")
	}
	if t.PreExpireWarning < 0 {
		errs = append(errs, "pre_expire_warning must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, "; "))
	}
	return nil
}
