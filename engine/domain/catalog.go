package domain

// Step is one entry of a template's default investigation checklist.
type Step struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Template describes one investigation domain: the label shown on cards, the
// prefix it contributes to normalized titles, and the default checklist and
// acceptance criteria applied when the caller supplies none. Templates are
// read-only; callers must not mutate the returned slices.
type Template struct {
	Key                string
	Label              string
	TitlePrefix        string
	AnalysisSteps      []Step
	AcceptanceCriteria []string
}

// Summary is the discovery view of a template, returned by Catalog.List.
type Summary struct {
	Key           string   `json:"key"`
	Label         string   `json:"label"`
	StepTitles    []string `json:"step_titles"`
	CriteriaCount int      `json:"criteria_count"`
}

// GeneralKey is the catch-all domain used when no key is supplied.
const GeneralKey = "general"

// Catalog is the immutable set of domain templates, fully enumerated at
// startup. It is safe for concurrent use since it is never mutated after New.
type Catalog struct {
	order     []string
	templates map[string]Template
}

// New builds a catalog from the built-in templates.
func New() *Catalog {
	c := &Catalog{
		order:     make([]string, 0, len(builtinTemplates)),
		templates: make(map[string]Template, len(builtinTemplates)),
	}
	for _, tpl := range builtinTemplates {
		c.order = append(c.order, tpl.Key)
		c.templates[tpl.Key] = tpl
	}
	return c
}

var defaultCatalog = New()

// Default returns the process-wide catalog.
func Default() *Catalog {
	return defaultCatalog
}

// Lookup returns the template for key and whether the key is known.
func (c *Catalog) Lookup(key string) (Template, bool) {
	tpl, ok := c.templates[key]
	return tpl, ok
}

// Resolve returns the template for key, falling back to the general template.
// This is for defaulting only; input validation must reject unknown keys with
// IsValid before resolution is reached.
func (c *Catalog) Resolve(key string) Template {
	if tpl, ok := c.templates[key]; ok {
		return tpl
	}
	return c.templates[GeneralKey]
}

// IsValid reports whether key names a known domain.
func (c *Catalog) IsValid(key string) bool {
	_, ok := c.templates[key]
	return ok
}

// Keys returns the domain keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	return keys
}

// List returns one summary per template, in catalog order.
func (c *Catalog) List() []Summary {
	summaries := make([]Summary, 0, len(c.order))
	for _, key := range c.order {
		tpl := c.templates[key]
		titles := make([]string, 0, len(tpl.AnalysisSteps))
		for _, step := range tpl.AnalysisSteps {
			titles = append(titles, step.Title)
		}
		summaries = append(summaries, Summary{
			Key:           tpl.Key,
			Label:         tpl.Label,
			StepTitles:    titles,
			CriteriaCount: len(tpl.AcceptanceCriteria),
		})
	}
	return summaries
}
