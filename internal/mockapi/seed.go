package mockapi

import (
	"bytes"
	_ "embed"
)

//go:embed seed.yaml
var demoSeed []byte

// DemoSeed returns the built-in demo shop.
func DemoSeed() (*Seed, error) {
	return LoadSeed(bytes.NewReader(demoSeed))
}
