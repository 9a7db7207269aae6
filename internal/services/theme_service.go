package services

import (
	"strings"
)

// Theme is one entry of the tour theme table. The slice below is ordered so
// classification output stays deterministic across runs.
type Theme struct {
	Name     string
	Boost    float64
	Keywords []string
}

var tourThemes = []Theme{
	{Name: "cultural", Boost: 0.25, Keywords: []string{"museum", "monument", "historic", "temple", "gallery", "heritage", "church", "mosque", "castle", "ruins"}},
	{Name: "adventure", Boost: 0.25, Keywords: []string{"nature", "beach", "desert", "hiking", "diving", "snorkel", "quad", "safari", "kayak", "trail", "climb"}},
	{Name: "foodies", Boost: 0.30, Keywords: []string{"restaurant", "cafe", "market", "street food", "bakery", "eatery", "diner"}},
	{Name: "family", Boost: 0.20, Keywords: []string{"park", "zoo", "aquarium", "children", "playground", "amusement", "family"}},
	{Name: "couples", Boost: 0.25, Keywords: []string{"romantic", "sunset", "candlelight", "spa", "scenic", "viewpoint", "resort"}},
	{Name: "friends", Boost: 0.20, Keywords: []string{"bar", "club", "sports", "fun", "nightlife", "escape room", "bowling"}},
}

type ThemeServiceInterface interface {
	ListThemes() []Theme
	ThemeBoost(name string) (float64, bool)
	ClassifyThemes(text string) []string
	NormalizeCategory(rawType string) string
}

type ThemeService struct{}

func NewThemeService() ThemeServiceInterface {
	return &ThemeService{}
}

func (s *ThemeService) ListThemes() []Theme {
	out := make([]Theme, len(tourThemes))
	copy(out, tourThemes)
	return out
}

func (s *ThemeService) ThemeBoost(name string) (float64, bool) {
	for _, t := range tourThemes {
		if t.Name == name {
			return t.Boost, true
		}
	}
	return 0, false
}

// ClassifyThemes is a heuristic multi-label classifier: a theme matches when
// any of its keywords appears as a substring of the text.
func (s *ThemeService) ClassifyThemes(text string) []string {
	if text == "" {
		return []string{}
	}
	lowered := strings.ToLower(text)
	hits := []string{}
	for _, t := range tourThemes {
		for _, kw := range t.Keywords {
			if strings.Contains(lowered, kw) {
				hits = append(hits, t.Name)
				break
			}
		}
	}
	return hits
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// NormalizeCategory folds free-form POI types into the small category set the
// assembler diversifies over.
func (s *ThemeService) NormalizeCategory(rawType string) string {
	if rawType == "" {
		return "other"
	}
	t := strings.ToLower(rawType)
	switch {
	case containsAny(t, "hotel", "resort", "hostel", "inn", "lodg"):
		return "hotel"
	case containsAny(t, "restaurant", "cafe", "bar", "pub", "food", "eat"):
		return "restaurant"
	case containsAny(t, "shop", "mall", "market", "store", "boutique", "bazaar"):
		return "shop"
	case containsAny(t, "museum", "nature", "beach", "park", "tourist", "monument", "landmark", "viewpoint", "temple", "mosque", "church", "castle"):
		return "tourist place"
	case containsAny(t, "club", "entertainment", "nightlife"):
		return "entertainment"
	default:
		return "other"
	}
}

// ThemeResolver decides which theme labels a candidate carries. The keyword
// resolver classifies from text on the fly; the stored-tag resolver trusts
// tags precomputed at ingest time.
type ThemeResolver interface {
	Resolve(category, name, description string, storedTags []string) []string
}

type KeywordThemeResolver struct {
	themes ThemeServiceInterface
}

func NewKeywordThemeResolver(themes ThemeServiceInterface) ThemeResolver {
	return &KeywordThemeResolver{themes: themes}
}

func (r *KeywordThemeResolver) Resolve(category, name, description string, _ []string) []string {
	return r.themes.ClassifyThemes(category + " " + name + " " + description)
}

type StoredTagThemeResolver struct {
	themes ThemeServiceInterface
}

func NewStoredTagThemeResolver(themes ThemeServiceInterface) ThemeResolver {
	return &StoredTagThemeResolver{themes: themes}
}

func (r *StoredTagThemeResolver) Resolve(_, _, _ string, storedTags []string) []string {
	out := []string{}
	for _, tag := range storedTags {
		if _, ok := r.themes.ThemeBoost(tag); ok {
			out = append(out, tag)
		}
	}
	return out
}
