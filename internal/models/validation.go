package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidSort indicates an unknown sort key
	ErrInvalidSort = errors.New("invalid sort key")

	// ErrInvalidOrder indicates an order that is neither asc nor desc
	ErrInvalidOrder = errors.New("invalid sort order")

	// ErrInvalidRarity indicates a rarity filter outside the known tiers
	ErrInvalidRarity = errors.New("invalid rarity")
)

// validate is the validator instance
var validate = validator.New()

// ValidateInventoryRequest validates an InventoryRequest
func ValidateInventoryRequest(req *InventoryRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	return nil
}

// ValidateSaveSnapshotRequest validates a SaveSnapshotRequest
func ValidateSaveSnapshotRequest(req *SaveSnapshotRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Owner) == "" {
		return errors.New("owner cannot be blank")
	}
	return nil
}

// ValidateOrder validates an order query value; empty means ascending
func ValidateOrder(order string) (desc bool, err error) {
	switch strings.ToLower(order) {
	case "", "asc":
		return false, nil
	case "desc":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrInvalidOrder, order)
	}
}

// ValidateRarityFilter validates a rarity filter value
func ValidateRarityFilter(value string) (Rarity, error) {
	r := ParseRarity(value)
	if r == RarityUnknown && !strings.EqualFold(strings.TrimSpace(value), string(RarityUnknown)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidRarity, value)
	}
	return r, nil
}

// ValidationDetails flattens validator errors into a field -> tag map for error responses
func ValidationDetails(err error) map[string]interface{} {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]interface{}{"reason": err.Error()}
	}
	details := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		details[fe.Namespace()] = fe.Tag()
	}
	return details
}
