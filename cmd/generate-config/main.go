package main

import (
	"os"

	"chatpoker-server/internal/config"
	"gopkg.in/yaml.v2"
)

// prints the default configuration so it can be used as a starting config.yaml
func main() {
	if err := yaml.NewEncoder(os.Stdout).Encode(config.DefaultConfig()); err != nil {
		panic(err)
	}
}
