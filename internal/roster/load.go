package roster

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads a roster from a TOML file with one string array per category:
//
//	tank = ["Groot", "Hulk"]
//	dps = ["Storm"]
//	healer = ["Mantis"]
func Load(path string) (*Roster, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	raw := map[string][]string{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode roster: %w", err)
	}
	groups := make(map[Category][]string, len(raw))
	for key, names := range raw {
		c, err := ParseCategory(key)
		if err != nil {
			return nil, err
		}
		groups[c] = append(groups[c], names...)
	}
	r, err := New(groups)
	if err != nil {
		return nil, err
	}
	if r.Total() == 0 {
		return nil, fmt.Errorf("roster is empty")
	}
	return r, nil
}
