package core

import (
	"fmt"

	"github.com/google/uuid"
)

// Slot-based id pool. Ids index into the owner table and are recycled on
// release, so GPU-facing handles stay small and dense.
var owners []interface{}

func IdentifierAcquireNewID(owner interface{}) uint32 {
	for i := range owners {
		if owners[i] == nil {
			owners[i] = owner
			return uint32(i)
		}
	}
	owners = append(owners, owner)
	return uint32(len(owners) - 1)
}

func IdentifierReleaseID(id uint32) error {
	if int(id) >= len(owners) {
		return fmt.Errorf("cannot release id %d: out of range (max %d)", id, len(owners))
	}
	owners[id] = nil
	return nil
}

// NewInstanceID returns a globally unique identifier for long-lived objects
// (render commands, scenes) that outlive the slot ids above.
func NewInstanceID() string {
	return uuid.New().String()
}
