package core

import (
	"fmt"
	"slices"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]List)
	registryMu sync.RWMutex
)

// Register adds a list to the registry.
// Panics if a list with the same key is already registered.
func Register(l List) {
	registryMu.Lock()
	defer registryMu.Unlock()

	key := l.Info().Key
	if _, exists := registry[key]; exists {
		panic(fmt.Sprintf("list already registered: %s", key))
	}

	registry[key] = l
}

// Get returns a list by key.
// Returns false if not found.
func Get(key string) (List, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	l, ok := registry[key]
	return l, ok
}

// All returns all registered lists.
// Sorted by portal, then group, then key for consistent ordering.
func All() []List {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]List, 0, len(registry))
	for _, l := range registry {
		result = append(result, l)
	}

	sortLists(result)
	return result
}

// ByPortal returns all lists of one portal.
// Sorted by group then key.
func ByPortal(p Portal) []List {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var result []List
	for _, l := range registry {
		if l.Info().Portal == p {
			result = append(result, l)
		}
	}

	sortLists(result)
	return result
}

// Portals returns every portal with at least one list, in display order.
func Portals() []Portal {
	registryMu.RLock()
	defer registryMu.RUnlock()

	seen := make(map[Portal]bool)
	for _, l := range registry {
		seen[l.Info().Portal] = true
	}

	var portals []Portal
	for _, p := range portalOrder {
		if seen[p] {
			portals = append(portals, p)
		}
	}
	return portals
}

// ListCount returns the number of registered lists.
func ListCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered lists.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]List)
}

func sortLists(lists []List) {
	sort.Slice(lists, func(i, j int) bool {
		a, b := lists[i].Info(), lists[j].Info()
		if a.Portal != b.Portal {
			return slices.Index(portalOrder, a.Portal) < slices.Index(portalOrder, b.Portal)
		}
		if a.Group.EN != b.Group.EN {
			return a.Group.EN < b.Group.EN
		}
		return a.Key < b.Key
	})
}
