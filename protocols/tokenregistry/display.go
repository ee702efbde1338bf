package tokenregistry

import (
	"sort"
	"strings"
)

// ResolveDisplay derives the human-facing name and image of an NFT vault.
//
//   - one collection, one enumerated id: the asset's own name and image
//   - one collection, several ids: the pluralized dominant asset type, else the collection name
//   - anything else: the distinct collection names joined with " & "
//
// The result only depends on the order of collections and the asset set.
func ResolveDisplay(collections []Collection, assets []Asset) (name, image string) {
	if len(collections) == 0 {
		return "", ""
	}

	if len(collections) == 1 {
		c := collections[0]
		switch {
		case len(c.TokenIDs) == 1:
			if a, ok := findAsset(assets, c, c.TokenIDs[0]); ok {
				return a.Name, a.Image
			}
			return c.Name, c.Image
		case len(c.TokenIDs) > 1:
			if t := dominantType(assets, c); t != "" {
				return pluralize(t), c.Image
			}
			return c.Name, c.Image
		}
	}

	seen := make(map[string]struct{}, len(collections))
	names := make([]string, 0, len(collections))
	for _, c := range collections {
		if c.Name == "" {
			continue
		}
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		names = append(names, c.Name)
	}
	return strings.Join(names, " & "), collections[0].Image
}

func findAsset(assets []Asset, c Collection, id string) (Asset, bool) {
	for _, a := range assets {
		if a.Collection == c.Address && a.TokenID == id {
			return a, true
		}
	}
	return Asset{}, false
}

// dominantType returns the most common asset type among the collection's enumerated ids.
// Ties go to the lexically smallest type.
func dominantType(assets []Asset, c Collection) string {
	ids := make(map[string]struct{}, len(c.TokenIDs))
	for _, id := range c.TokenIDs {
		ids[id] = struct{}{}
	}

	counts := make(map[string]int)
	for _, a := range assets {
		if a.Collection != c.Address || a.Type == "" {
			continue
		}
		if _, ok := ids[a.TokenID]; !ok {
			continue
		}
		counts[a.Type]++
	}
	if len(counts) == 0 {
		return ""
	}

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}
		return types[i] < types[j]
	})
	return types[0]
}

func pluralize(word string) string {
	lower := strings.ToLower(word)
	switch {
	case strings.HasSuffix(lower, "s"):
		return word
	case strings.HasSuffix(lower, "x"), strings.HasSuffix(lower, "ch"), strings.HasSuffix(lower, "sh"):
		return word + "es"
	case strings.HasSuffix(lower, "y") && len(lower) > 1 && !strings.ContainsRune("aeiou", rune(lower[len(lower)-2])):
		return word[:len(word)-1] + "ies"
	default:
		return word + "s"
	}
}
