package vector

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Config keys as they appear in config.yml.
const (
	KeyItem             = "vector-item"
	KeyBothHands        = "use-both-hands"
	KeySingleTime       = "set-single-time"
	KeyVisibilityLength = "visibility-length-double"
	KeyVelocityModifier = "velocity-modifier-double"
	KeyMaxVelocity      = "max-velocity-double"
)

// Keys lists every config key in file order.
var Keys = []string{
	KeyItem,
	KeyBothHands,
	KeySingleTime,
	KeyVisibilityLength,
	KeyVelocityModifier,
	KeyMaxVelocity,
}

var (
	// ErrUnknownKey is returned for keys that are not in config.yml.
	ErrUnknownKey = errors.New("unknown key")
	// ErrInvalidValue is returned for values that do not fit their key.
	ErrInvalidValue = errors.New("invalid value")
	// ErrUnknownItem is returned for item identifiers missing from the catalog.
	ErrUnknownItem = errors.New("unknown item")
)

// MaxVisibilityLength is the longest aim distance, in blocks. Ray traces
// and particle lines are bounded by it.
const MaxVisibilityLength = 256

// KeyKind is the value type a config key accepts.
type KeyKind int

const (
	KindBool KeyKind = iota
	KindDouble
	KindItem
)

// String returns the kind name.
func (k KeyKind) String() string {
	switch k {
	case KindDouble:
		return "double"
	case KindItem:
		return "item"
	default:
		return "bool"
	}
}

// ClassifyKey derives the value type of a key from its name: keys containing
// "double" take a number, keys containing "item" take an item identifier and
// everything else takes true or false.
func ClassifyKey(key string) KeyKind {
	switch {
	case strings.Contains(key, "double"):
		return KindDouble
	case strings.Contains(key, "item"):
		return KindItem
	default:
		return KindBool
	}
}

// ParseValue validates raw for key and returns its canonical text form.
func ParseValue(key, raw string, catalog ItemCatalog) (string, error) {
	switch ClassifyKey(key) {
	case KindDouble:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return "", fmt.Errorf("%w: '%s'", ErrInvalidValue, raw)
		}
		if err := validateDouble(key, v); err != nil {
			return "", err
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case KindItem:
		name := NormalizeItem(raw)
		if catalog == nil || !catalog.Has(name) {
			return "", fmt.Errorf("%w: '%s'", ErrUnknownItem, raw)
		}
		return name, nil
	default:
		if raw != "true" && raw != "false" {
			return "", fmt.Errorf("%w: '%s'", ErrInvalidValue, raw)
		}
		return raw, nil
	}
}

// validateDouble enforces the range of the numeric keys. The velocity
// modifier divides the cap threshold, so zero is rejected here rather than
// at impulse time.
func validateDouble(key string, v float64) error {
	if math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite", ErrInvalidValue, key)
	}
	switch key {
	case KeyVelocityModifier:
		if !(v > 0) {
			return fmt.Errorf("%w: %s must be greater than 0, got %g", ErrInvalidValue, key, v)
		}
	case KeyVisibilityLength:
		if !(v > 0) || v > MaxVisibilityLength {
			return fmt.Errorf("%w: %s must be in (0, %d], got %g", ErrInvalidValue, key, MaxVisibilityLength, v)
		}
	case KeyMaxVelocity:
		if !(v >= 0) {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidValue, key, v)
		}
	}
	return nil
}
