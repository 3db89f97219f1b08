package order

import (
	"fmt"
	"strings"
	"unicode"

	"gasfill/internal/pkg/errs"

	"github.com/lucsky/cuid"
)

const (
	idPrefix    = "ORD-"
	idMaxLength = 64
)

// ID is the external order identifier, always of the form ORD-<suffix>.
type ID string

// NewID returns an identifier with a collision-resistant cuid suffix.
func NewID() ID {
	return ID(idPrefix + cuid.New())
}

// ParseID accepts ORD- followed by letters, digits, '-' or '_'.
func ParseID(s string) (ID, error) {
	id := ID(s)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

func (id ID) String() string {
	return string(id)
}

func (id ID) Validate() error {
	s := string(id)
	if s == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	suffix, ok := strings.CutPrefix(s, idPrefix)
	if !ok || suffix == "" || len(s) > idMaxLength {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%q is not of the form %s<n>", s, idPrefix))
	}
	for _, r := range suffix {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%q contains %q", s, r))
		}
	}
	return nil
}
