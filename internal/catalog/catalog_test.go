package catalog

import "testing"

func TestAllIsEditionOrdered(t *testing.T) {
	all := All()
	if len(all) != 15 {
		t.Fatalf("len=%d, want 15", len(all))
	}
	seen := map[string]bool{}
	for i, it := range all {
		if it.Edition != i+1 {
			t.Fatalf("%s edition=%d at position %d", it.ID, it.Edition, i)
		}
		if seen[it.ID] {
			t.Fatalf("duplicate id %s", it.ID)
		}
		seen[it.ID] = true
		if it.Rarity.Rank() < 0 {
			t.Fatalf("%s has rarity %q", it.ID, it.Rarity)
		}
	}

	all[0].Name = "mutated"
	if it, _ := Get("demo-001"); it.Name != "Shadow Stalker" {
		t.Fatalf("All leaked internal slice")
	}
}

func TestFind(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"demo-003", "demo-003"},
		{"  DEMODOG-001 ", "demodog-001"},
		{"Void Walker", "demo-003"},
		{"void-walker", "demo-003"},
		{"juvenile   snapper", "demo-005"},
		{"dart", "demodog-001"},
	}
	for _, tc := range cases {
		it, ok := Find(tc.query)
		if !ok || it.ID != tc.want {
			t.Fatalf("Find(%q)=%s,%v want %s", tc.query, it.ID, ok, tc.want)
		}
	}
	for _, q := range []string{"", "demo-999", "mind flayer"} {
		if _, ok := Find(q); ok {
			t.Fatalf("Find(%q) matched", q)
		}
	}
}

func TestFilterAndSort(t *testing.T) {
	leg := Filter(All(), Legendary)
	if len(leg) != 3 {
		t.Fatalf("legendary count=%d, want 3", len(leg))
	}

	list := All()
	Sort(list, ByRarity)
	if list[0].ID != "demo-003" || list[1].ID != "demo-001" || list[len(list)-1].Rarity != Common {
		t.Fatalf("rarity order: %s %s ... %s", list[0].ID, list[1].ID, list[len(list)-1].ID)
	}

	Sort(list, ByName)
	if list[0].Name != "Alpha Prime" || list[len(list)-1].Name != "Void Walker" {
		t.Fatalf("name order: %s ... %s", list[0].Name, list[len(list)-1].Name)
	}

	Sort(list, ByEdition)
	if list[0].Edition != 1 || list[14].Edition != 15 {
		t.Fatalf("edition order broken")
	}
}

func TestRarity(t *testing.T) {
	want := map[Rarity]float64{Common: 1, Uncommon: 1.5, Rare: 2, Epic: 3, Legendary: 5, Mythic: 10, "Bogus": 1}
	for r, m := range want {
		if got := r.Multiplier(); got != m {
			t.Fatalf("%s multiplier=%v, want %v", r, got, m)
		}
	}
	if r, ok := ParseRarity(" epic "); !ok || r != Epic {
		t.Fatalf("ParseRarity(epic)=%q,%v", r, ok)
	}
	if _, ok := ParseRarity("shiny"); ok {
		t.Fatalf("ParseRarity accepted junk")
	}
}

func TestStatsTotal(t *testing.T) {
	it, _ := Get("demo-003")
	if got := it.Stats.Total(); got != 370 {
		t.Fatalf("Void Walker total=%d, want 370", got)
	}
}
