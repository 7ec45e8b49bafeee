/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rugby

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Classifier decides which competitions count as World Cup matches, finals
// and championship deciders. Each list holds case-insensitive substrings of
// the competition name; a predicate matches when any of them is contained.
type Classifier struct {
	WorldCup      []string `json:"world_cup"`
	Final         []string `json:"final"`
	WorldCupFinal []string `json:"world_cup_final"`
	Championship  []string `json:"championship"`
}

// DefaultClassifier returns the substrings used by the results.csv dataset.
func DefaultClassifier() Classifier {
	return Classifier{
		WorldCup:      []string{"world cup"},
		Final:         []string{"final"},
		WorldCupFinal: []string{"rugby world cup final"},
		Championship:  []string{"world cup final"},
	}
}

// LoadClassifier reads a classifier from a JSON file. Lists left out of the
// file keep their default value.
func LoadClassifier(path string) (Classifier, error) {
	cls := DefaultClassifier()
	data, err := os.ReadFile(path)
	if err != nil {
		return cls, fmt.Errorf("rugby.LoadClassifier: %w", err)
	}

	var override Classifier
	err = json.Unmarshal(data, &override)
	if err != nil {
		return cls, fmt.Errorf("rugby.LoadClassifier: failed to parse %v: %w",
			path, err)
	}
	if override.WorldCup != nil {
		cls.WorldCup = override.WorldCup
	}
	if override.Final != nil {
		cls.Final = override.Final
	}
	if override.WorldCupFinal != nil {
		cls.WorldCupFinal = override.WorldCupFinal
	}
	if override.Championship != nil {
		cls.Championship = override.Championship
	}

	return cls, nil
}

// ClassifierFromFlag returns DefaultClassifier when path is empty and the
// file's contents otherwise.
func ClassifierFromFlag(path string) (Classifier, error) {
	if path == "" {
		return DefaultClassifier(), nil
	}
	return LoadClassifier(path)
}

func (c Classifier) IsWorldCup(competition string) bool {
	return containsAny(competition, c.WorldCup)
}

func (c Classifier) IsFinal(competition string) bool {
	return containsAny(competition, c.Final)
}

func (c Classifier) IsWorldCupFinal(competition string) bool {
	return containsAny(competition, c.WorldCupFinal)
}

func (c Classifier) IsChampionship(competition string) bool {
	return containsAny(competition, c.Championship)
}

func containsAny(competition string, needles []string) bool {
	lc := strings.ToLower(competition)
	for _, n := range needles {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if strings.Contains(lc, n) {
			return true
		}
	}
	return false
}
