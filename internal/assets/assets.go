// Package assets embeds the bundled sample decks.
package assets

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed sample_decks.yaml
var sampleDecksYAML []byte

type SampleCard struct {
	Front      string `yaml:"front"`
	Back       string `yaml:"back"`
	FrontNotes string `yaml:"front_notes"`
	BackNotes  string `yaml:"back_notes"`
}

type SampleDeck struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Style       string       `yaml:"style"`
	Pinned      bool         `yaml:"pinned"`
	Cards       []SampleCard `yaml:"cards"`
}

// SampleDecks returns the decks bundled with the binary.
func SampleDecks() ([]SampleDeck, error) {
	var doc struct {
		Decks []SampleDeck `yaml:"decks"`
	}
	if err := yaml.Unmarshal(sampleDecksYAML, &doc); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal() > %w", err)
	}
	return doc.Decks, nil
}
