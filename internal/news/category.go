package news

import "strings"

// Category is a headline category understood by the proxy.
type Category string

const (
	CategoryGeneral       Category = "general"
	CategoryTechnology    Category = "technology"
	CategoryBusiness      Category = "business"
	CategorySports        Category = "sports"
	CategoryHealth        Category = "health"
	CategoryScience       Category = "science"
	CategoryEntertainment Category = "entertainment"
)

// FallbackQuery is sent when neither a search term nor a specific category is given.
const FallbackQuery = "news OR headlines OR breaking news"

var categoryKeywords = map[Category]string{
	CategoryTechnology:    "technology OR tech OR software OR AI OR innovation",
	CategoryBusiness:      "business OR economy OR finance OR market OR stock",
	CategorySports:        "sports OR football OR basketball OR soccer OR tennis",
	CategoryHealth:        "health OR medical OR disease OR medicine OR wellness",
	CategoryScience:       "science OR research OR discovery OR study OR experiment",
	CategoryEntertainment: "entertainment OR movie OR music OR celebrity OR film",
}

// Known reports whether c has a keyword expansion.
func (c Category) Known() bool {
	_, ok := categoryKeywords[c]
	return ok
}

// Query returns the upstream search expression for c. Unknown categories are
// searched for verbatim.
func (c Category) Query() string {
	if kw, ok := categoryKeywords[c]; ok {
		return kw
	}
	return string(c)
}

// searchTerm resolves the upstream q parameter: an explicit query wins, then a
// specific category, then the generic fallback.
func searchTerm(query, category string) string {
	if q := strings.TrimSpace(query); q != "" {
		return query
	}
	c := Category(strings.TrimSpace(category))
	switch {
	case c.Known():
		return c.Query()
	case c == "" || c == CategoryGeneral:
		return FallbackQuery
	default:
		return string(c)
	}
}
