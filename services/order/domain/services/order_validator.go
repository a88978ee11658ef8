// Package services contains stateless domain services for the order bounded
// context. They operate purely on domain types.
package services

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/ghuser/stockroom/services/order/domain/models"
)

// MaxItemsPerBatch bounds a single AddItems call.
const MaxItemsPerBatch = 200

// ValidateOrderInput requires a non-blank title and supplier without
// control characters.
func ValidateOrderInput(in models.OrderInput) error {
	if err := validateText("title", in.Title); err != nil {
		return err
	}
	if err := validateText("supplier", in.Supplier); err != nil {
		return err
	}
	return nil
}

// ValidateItemInput requires an article and a quantity that parses as a
// non-negative integer.
func ValidateItemInput(in models.ItemInput) error {
	if err := validateText("article", in.Article); err != nil {
		return err
	}
	if _, err := ParseQuantity(in.Quantity); err != nil {
		return err
	}
	return nil
}

// ValidateItemBatch validates every input and reports the first failure with
// its position.
func ValidateItemBatch(ins []models.ItemInput) error {
	if len(ins) == 0 {
		return fmt.Errorf("at least one item is required")
	}
	if len(ins) > MaxItemsPerBatch {
		return fmt.Errorf("at most %d items per batch", MaxItemsPerBatch)
	}
	for i, in := range ins {
		if err := ValidateItemInput(in); err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	return nil
}

// ParseQuantity converts a quantity string to its integer value.
func ParseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("quantity is required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("quantity %q is not a whole number", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("quantity must not be negative")
	}
	return n, nil
}

func validateText(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%s is required", field)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("%s must not contain control characters", field)
		}
	}
	return nil
}
