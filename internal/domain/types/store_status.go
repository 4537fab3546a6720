package types

import (
	"fmt"
	"strings"
)

// StoreStatus es el estado de moderación de una tienda.
type StoreStatus string

const (
	StoreActive  StoreStatus = "ACTIVE"
	StorePending StoreStatus = "PENDING"
	StoreBlocked StoreStatus = "BLOCKED"
)

func ParseStoreStatus(s string) (StoreStatus, error) {
	st := StoreStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StoreActive, StorePending, StoreBlocked:
		return st, nil
	}
	return "", fmt.Errorf("unknown store status %q", s)
}
