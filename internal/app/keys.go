package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// keysByName maps lowercased tcell key names ("ctrl+c", "esc", "f10") to keys.
var keysByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[normalizeKeyName(name)] = k
	}
	return m
}()

func normalizeKeyName(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", "+"))
}

// ParseKeys converts key names as written in the config file.
func ParseKeys(names []string) ([]tcell.Key, error) {
	keys := make([]tcell.Key, 0, len(names))
	for _, name := range names {
		k, ok := keysByName[normalizeKeyName(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, name)
		}
		keys = append(keys, k)
	}
	return keys, nil
}
