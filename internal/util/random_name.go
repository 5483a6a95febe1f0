package util

import (
	"fmt"

	"chatpoker-server/internal/rng"
)

var adjectives = []string{
	"Lucky", "Bold", "Quiet", "Sly", "Steady", "Wild", "Patient", "Reckless", "Cool", "Grinning", "Stone-faced",
	"Red", "Blue", "Green", "Golden", "Silver", "Fuzzy", "Smiling", "Tall", "Grand", "Ultimate", "Prime",
	"Sneaky", "Cheerful", "Sleepy", "Tight", "Loose", "Careful", "Daring",
}

var animals = []string{
	"Shark", "Fish", "Whale", "Donkey", "Mouse", "Rock", "Maniac", "Calling Station", "Fox", "Owl", "Otter",
	"Bear", "Tiger", "Lion", "Wolf", "Eagle", "Hedgehog", "Badger", "Panda", "Crocodile", "Dolphin",
}

// GetRandomName returns a random name by combining an adjective with an animal
func GetRandomName(g rng.Generator) string {
	return fmt.Sprintf("%s %s", adjectives[g.Intn(len(adjectives))], animals[g.Intn(len(animals))])
}
