// Package catalog is the fixed set of collectible creatures a player can add
// to their profile.
package catalog

import (
	"sort"
	"strings"

	"github.com/gosimple/slug"
)

type Rarity string

const (
	Common    Rarity = "Common"
	Uncommon  Rarity = "Uncommon"
	Rare      Rarity = "Rare"
	Epic      Rarity = "Epic"
	Legendary Rarity = "Legendary"
	Mythic    Rarity = "Mythic"
)

// Rarities in ascending order.
var Rarities = []Rarity{Common, Uncommon, Rare, Epic, Legendary, Mythic}

// Rank is the position of r in Rarities, or -1.
func (r Rarity) Rank() int {
	for i, v := range Rarities {
		if v == r {
			return i
		}
	}
	return -1
}

// ParseRarity matches case-insensitively.
func ParseRarity(s string) (Rarity, bool) {
	s = strings.TrimSpace(s)
	for _, r := range Rarities {
		if strings.EqualFold(string(r), s) {
			return r, true
		}
	}
	return "", false
}

// Multiplier scales rewards by rarity. Unknown rarities count as Common.
func (r Rarity) Multiplier() float64 {
	switch r {
	case Uncommon:
		return 1.5
	case Rare:
		return 2
	case Epic:
		return 3
	case Legendary:
		return 5
	case Mythic:
		return 10
	default:
		return 1
	}
}

type Stats struct {
	Attack       int
	Defense      int
	Speed        int
	Intelligence int
}

func (s Stats) Total() int { return s.Attack + s.Defense + s.Speed + s.Intelligence }

type Item struct {
	ID          string
	Name        string
	Rarity      Rarity
	Description string
	Stats       Stats
	Edition     int
	Supply      int
}

// Slug is the name form accepted by Find.
func (it Item) Slug() string { return slug.Make(it.Name) }

var items = []Item{
	{ID: "demo-001", Name: "Shadow Stalker", Rarity: Legendary, Edition: 1, Supply: 10,
		Description: "The first Demogorgon to emerge from the Upside Down. Apex predator with unmatched hunting abilities.",
		Stats:       Stats{95, 80, 85, 45}},
	{ID: "demo-002", Name: "Crimson Maw", Rarity: Epic, Edition: 2, Supply: 25,
		Description: "Blood-soaked terror from the depths. Known for its ferocious attacks.",
		Stats:       Stats{90, 70, 75, 40}},
	{ID: "demo-003", Name: "Void Walker", Rarity: Mythic, Edition: 3, Supply: 5,
		Description: "Transcendent being that exists between dimensions. Rarest of all Demogorgons.",
		Stats:       Stats{100, 95, 90, 85}},
	{ID: "demo-004", Name: "Forest Lurker", Rarity: Rare, Edition: 4, Supply: 50,
		Description: "Camouflaged hunter that stalks through the twisted woods of the Upside Down.",
		Stats:       Stats{75, 65, 80, 50}},
	{ID: "demo-005", Name: "Juvenile Snapper", Rarity: Common, Edition: 5, Supply: 200,
		Description: "Young Demogorgon still developing its powers. Common but deadly.",
		Stats:       Stats{50, 45, 60, 30}},
	{ID: "demo-006", Name: "Electric Fiend", Rarity: Epic, Edition: 6, Supply: 30,
		Description: "Charged with energy from the Upside Down. Crackling with raw power.",
		Stats:       Stats{85, 75, 88, 55}},
	{ID: "demo-007", Name: "Pack Hunter", Rarity: Uncommon, Edition: 7, Supply: 100,
		Description: "Works in coordination with other Demogorgons. Strength in numbers.",
		Stats:       Stats{60, 55, 70, 60}},
	{ID: "demo-008", Name: "Toxic Spitter", Rarity: Rare, Edition: 8, Supply: 40,
		Description: "Mutated variant capable of projecting acidic bile. Extremely dangerous.",
		Stats:       Stats{80, 60, 65, 48}},
	{ID: "demo-009", Name: "Alpha Prime", Rarity: Legendary, Edition: 9, Supply: 15,
		Description: "Leader of the pack. Commands lesser Demogorgons with terrifying efficiency.",
		Stats:       Stats{92, 88, 80, 75}},
	{ID: "demo-010", Name: "Frost Biter", Rarity: Epic, Edition: 10, Supply: 35,
		Description: "Adapted to the coldest regions of the Upside Down. Freezing touch.",
		Stats:       Stats{82, 78, 70, 52}},
	{ID: "demodog-001", Name: "Dart", Rarity: Rare, Edition: 11, Supply: 50,
		Description: "The famous Demo-Dog raised by Dustin. Loyal but dangerous.",
		Stats:       Stats{70, 60, 85, 65}},
	{ID: "demodog-002", Name: "Scout Runner", Rarity: Uncommon, Edition: 12, Supply: 80,
		Description: "Fast-moving Demo-Dog used for reconnaissance by the Mind Flayer.",
		Stats:       Stats{55, 50, 90, 58}},
	{ID: "demodog-003", Name: "Pack Alpha", Rarity: Epic, Edition: 13, Supply: 25,
		Description: "Leader of a Demo-Dog pack. Coordinated and cunning.",
		Stats:       Stats{78, 68, 82, 70}},
	{ID: "demo-011", Name: "Midnight Prowler", Rarity: Common, Edition: 14, Supply: 150,
		Description: "Standard Demogorgon variant. Still terrifying in its own right.",
		Stats:       Stats{52, 48, 58, 35}},
	{ID: "demo-012", Name: "Tentacle Horror", Rarity: Legendary, Edition: 15, Supply: 12,
		Description: "Mutated with extra appendages. Nightmare incarnate.",
		Stats:       Stats{94, 85, 75, 50}},
}

// All returns the catalog in edition order.
func All() []Item { return append([]Item(nil), items...) }

func Get(id string) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Find resolves an id or a name in any casing or spacing.
func Find(query string) (Item, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Item{}, false
	}
	if it, ok := Get(strings.ToLower(query)); ok {
		return it, true
	}
	want := slug.Make(query)
	for _, it := range items {
		if it.Slug() == want {
			return it, true
		}
	}
	return Item{}, false
}

func Filter(list []Item, r Rarity) []Item {
	var out []Item
	for _, it := range list {
		if it.Rarity == r {
			out = append(out, it)
		}
	}
	return out
}

type SortBy string

const (
	ByEdition SortBy = "edition"
	ByRarity  SortBy = "rarity"
	ByName    SortBy = "name"
)

// Sort orders list in place. Rarity sorts rarest first, ties by edition.
func Sort(list []Item, by SortBy) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		switch by {
		case ByRarity:
			if a.Rarity.Rank() != b.Rarity.Rank() {
				return a.Rarity.Rank() > b.Rarity.Rank()
			}
		case ByName:
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		}
		return a.Edition < b.Edition
	})
}
