package roster

var defaultGroups = map[Category][]string{
	Tank: {
		"Angela",
		"Anziz",
		"Captain America",
		"Doctor Strange",
		"Emma Frost",
		"Groot",
		"Hulk",
		"Magneto",
		"Peni Parker",
		"La Chose",
		"Thor",
		"Venom",
	},
	DPS: {
		"Black Panther",
		"Black Widow",
		"Blade",
		"Hawkeye",
		"Hela",
		"La Torche",
		"Iron Fist",
		"Iron Man",
		"Magik",
		"Mister Fantastic",
		"Moon Knight",
		"Namor",
		"Nayel",
		"Phoenix",
		"Psylocke",
		"Wanda",
		"Spider-Man",
		"Squirrel Girl",
		"Star-Lord",
		"Storm",
		"The Punisher",
		"Winter Soldier",
		"Wolverine",
	},
	Healer: {
		"Adam Warlock",
		"Cloak & Dagger",
		"Invisible Woman",
		"Jeff",
		"Loki",
		"Luna Snow",
		"Mantis",
		"Rocket Raccoon",
		"Ultron",
	},
}

// Default returns the built-in roster.
func Default() *Roster {
	r, err := New(defaultGroups)
	if err != nil {
		panic(err)
	}
	return r
}
