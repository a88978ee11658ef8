package operator

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxLabelLength bounds a device label in runes.
const MaxLabelLength = 40

// ErrInvalidLabel indicates a device label is blank, too long or contains
// control characters.
var ErrInvalidLabel = errors.New("invalid device label")

// GenerateLabel returns a fresh label of the form PC-NNNN.
func GenerateLabel() string {
	return fmt.Sprintf("PC-%d", rand.IntN(9000)+1000)
}

// NormalizeLabel trims s and checks it is usable as a device label.
func NormalizeLabel(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: must not be blank", ErrInvalidLabel)
	}
	if utf8.RuneCountInString(s) > MaxLabelLength {
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidLabel, MaxLabelLength)
	}
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return "", fmt.Errorf("%w: contains control characters", ErrInvalidLabel)
	}
	return s, nil
}
