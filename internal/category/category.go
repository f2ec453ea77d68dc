// Package category holds the closed set of announcement categories.
// The canonical names are an external contract shared with API consumers.
package category

import (
	"sort"
	"strings"
)

type Category string

const (
	Job       Category = "JOB"
	Housing   Category = "HOUSING"
	Sale      Category = "SALE"
	Services  Category = "SERVICES"
	Transport Category = "TRANSPORT"
	Education Category = "EDUCATION"
	Events    Category = "EVENTS"
	Pets      Category = "PETS"
	Health    Category = "HEALTH"
	Other     Category = "OTHER"
)

var byName = map[string]Category{
	string(Job):       Job,
	string(Housing):   Housing,
	string(Sale):      Sale,
	string(Services):  Services,
	string(Transport): Transport,
	string(Education): Education,
	string(Events):    Events,
	string(Pets):      Pets,
	string(Health):    Health,
	string(Other):     Other,
}

func (c Category) String() string {
	return string(c)
}

// Names returns every canonical category name in stable sorted order.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse maps free-form text to its category value. The lookup trims
// surrounding whitespace and is case-insensitive.
func Parse(raw string) (Category, bool) {
	c, ok := byName[strings.ToUpper(strings.TrimSpace(raw))]
	return c, ok
}
