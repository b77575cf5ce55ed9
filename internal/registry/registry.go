// Package registry provides a global registry of room campaigns.
// Campaigns register themselves in init() functions, allowing the platform
// to discover and load them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/laserpunk/internal/rooms"
)

// CampaignInfo contains metadata about a registered campaign.
type CampaignInfo struct {
	ID        string
	Title     string
	StartRoom string
}

// Factory creates the room catalog of a campaign.
type Factory func() rooms.Catalog

type entry struct {
	info    CampaignInfo
	factory Factory
}

var (
	campaigns = make(map[string]entry)
	mu        sync.RWMutex
)

// Register adds a campaign to the registry.
// Typically called from a package's init() function.
// Panics if a campaign with the same ID is already registered.
func Register(info CampaignInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := campaigns[info.ID]; exists {
		panic(fmt.Sprintf("registry: campaign %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}
	campaigns[info.ID] = entry{info: info, factory: f}
}

// List returns information about all registered campaigns, sorted by ID.
func List() []CampaignInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]CampaignInfo, 0, len(campaigns))
	for _, e := range campaigns {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds the catalog of a campaign by its ID.
// Returns an error if the campaign ID is not registered.
func Create(id string) (rooms.Catalog, CampaignInfo, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := campaigns[id]
	if !ok {
		return nil, CampaignInfo{}, fmt.Errorf("registry: unknown campaign %q", id)
	}

	return e.factory(), e.info, nil
}

// Exists checks if a campaign with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := campaigns[id]
	return ok
}
