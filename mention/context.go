package mention

import "sort"

// Context is the ResolutionContext shared by every mention resolved for
// one source entity: an accumulating set of country codes contributed by
// GeonamesStage and JudithaLookupStage hits.
type Context struct {
	countries map[string]bool
}

// NewContext returns an empty resolution context.
func NewContext() *Context {
	return &Context{countries: make(map[string]bool)}
}

// AddCountry records a country code discovered while resolving a mention.
func (c *Context) AddCountry(code string) {
	if code == "" {
		return
	}
	if c.countries == nil {
		c.countries = make(map[string]bool)
	}
	c.countries[code] = true
}

// Countries returns the accumulated country codes, sorted for determinism.
func (c *Context) Countries() []string {
	out := make([]string, 0, len(c.countries))
	for code := range c.countries {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
