package util

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// OrderNumberPrefix is the human-visible prefix of generated order numbers.
const OrderNumberPrefix = "ORD-"

// NewSessionID returns a random opaque identifier for an anonymous browser
// session.
func NewSessionID() string {
	return uuid.NewString()
}

// NewOrderNumber returns a short human-presentable order number of the form
// ORD-XXXXXXXX (8 uppercase hex characters). Collision probability is low
// but non-zero, so callers must re-check against existing orders before
// committing.
func NewOrderNumber() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s%s", OrderNumberPrefix, strings.ToUpper(hex[:8]))
}
