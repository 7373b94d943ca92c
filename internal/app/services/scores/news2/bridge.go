package news2

import (
	"context"
	"sepsis-service/internal/app/services/parameters"
	"time"
)

// Bridge assembles the NEWS2 parameter bag from the sibling SOFA and
// qSOFA bags, fetching only what neither sibling already resolved.
// Supplemental oxygen never overlaps and is always fetched directly.
type Bridge struct {
	Resolver *parameters.Resolver
}

func NewBridge(resolver *parameters.Resolver) *Bridge {
	return &Bridge{Resolver: resolver}
}

// BuildBag layers the sibling bags first, then resolves the remaining
// inputs through the regular fallback chain. Either sibling may be nil
// when its system was not requested.
func (b *Bridge) BuildBag(ctx context.Context, patientID string, at time.Time, qsofaBag, sofaBag *parameters.Bag) *parameters.Bag {
	bag := parameters.NewBag()
	bag.Merge(qsofaBag)
	bag.Merge(sofaBag)

	groups := make([]parameters.Group, 0)
	for _, name := range parameters.News2Parameters() {
		if bag.Has(name) {
			continue
		}
		groups = append(groups, parameters.Group{Name: string(name), Parameters: []parameters.Name{name}})
	}
	if len(groups) == 0 {
		return bag
	}

	fetched := b.Resolver.Resolve(ctx, patientID, groups, at)
	bag.Merge(fetched)
	return bag
}
