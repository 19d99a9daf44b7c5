package vocab

import "github.com/ozscout/scoutql/internal/model"

// Builtin returns the store built from the embedded AFL tables.
// A YAML vocabulary file replaces these entirely when configured.
func Builtin(maxEditRatio float64) *Store {
	store, err := New(builtinEntries(), maxEditRatio)
	if err != nil {
		// The embedded tables are fixed at compile time; failing to load
		// them is a programming error.
		panic("builtin vocabulary: " + err.Error())
	}
	return store
}

func builtinEntries() []model.VocabularyEntry {
	team := func(id string, aliases ...string) model.VocabularyEntry {
		return model.VocabularyEntry{CanonicalID: id, Category: model.CategoryTeam, Aliases: aliases}
	}
	position := func(id string, aliases ...string) model.VocabularyEntry {
		return model.VocabularyEntry{CanonicalID: id, Category: model.CategoryPosition, Aliases: aliases}
	}
	league := func(id string, aliases ...string) model.VocabularyEntry {
		return model.VocabularyEntry{CanonicalID: id, Category: model.CategoryLeague, Aliases: aliases}
	}
	stat := func(id, unit string, aliases ...string) model.VocabularyEntry {
		return model.VocabularyEntry{CanonicalID: id, Category: model.CategoryStatistic, Unit: unit, Aliases: aliases}
	}

	return []model.VocabularyEntry{
		team("adelaide", "crows"),
		team("brisbane", "lions"),
		team("carlton", "blues"),
		team("collingwood", "magpies", "pies"),
		team("essendon", "bombers"),
		team("fremantle", "dockers", "freo"),
		team("geelong", "cats"),
		team("gold_coast", "suns"),
		team("gws", "giants", "greater western sydney"),
		team("hawthorn", "hawks"),
		team("melbourne", "demons", "dees"),
		team("north_melbourne", "kangaroos", "roos"),
		team("port_adelaide", "power", "port"),
		team("richmond", "tigers"),
		team("st_kilda", "saints"),
		team("sydney", "swans"),
		team("west_coast", "eagles"),
		team("western_bulldogs", "bulldogs", "dogs"),

		position("defender", "defence", "back", "backman", "fullback", "halfback"),
		position("midfielder", "midfield", "mid", "centre", "wing", "winger"),
		position("forward", "forwards"),
		position("key_forward", "key forwards", "tall forward"),
		position("small_forward", "small forwards"),
		position("ruck", "ruckman", "big man"),

		league("afl", "australian football league"),
		league("vfl", "victorian football league"),
		league("sanfl", "south australian national football league"),
		league("wafl", "west australian football league"),

		stat("disposals", "per game", "disposal", "possession", "possessions", "touch", "touches"),
		stat("kicks", "per game", "kick", "kicking"),
		stat("handballs", "per game", "handball", "handpass", "handpasses"),
		stat("marks", "per game", "mark", "marking"),
		stat("tackles", "per game", "tackle", "tackling"),
		stat("goals", "per game", "goal"),
		stat("contested_possessions", "per game", "contested possession", "hard ball", "contested ball"),
		stat("clearances", "per game", "clearance", "clearance rate", "clearance rates", "clearing"),
		stat("goal_accuracy", "%", "accuracy", "kicking accuracy"),

		{
			CanonicalID: "age",
			Category:    model.CategoryAttribute,
			ValueType:   model.ValueNumeric,
			Unit:        "years",
			Aliases:     []string{"aged", "years old"},
		},
		{
			CanonicalID: "position",
			Category:    model.CategoryAttribute,
			ValueType:   model.ValueCategorical,
			Aliases:     []string{"role"},
		},
		{
			CanonicalID: "team",
			Category:    model.CategoryAttribute,
			ValueType:   model.ValueCategorical,
			Aliases:     []string{"club", "side"},
		},
		{
			CanonicalID: "league",
			Category:    model.CategoryAttribute,
			ValueType:   model.ValueCategorical,
			Aliases:     []string{"competition"},
		},
	}
}
