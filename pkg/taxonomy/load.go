package taxonomy

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// The three table documents a taxonomy directory must provide.
const (
	synonymsFile   = "synonyms.yaml"
	categoriesFile = "categories.yaml"
	checkboxesFile = "checkboxes.yaml"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

type synonymsDoc struct {
	Concepts map[string][]string `yaml:"concepts"`
}

type categoriesDoc struct {
	Categories map[string][]string `yaml:"categories"`
	Roles      map[string][]string `yaml:"roles"`
}

type checkboxesDoc struct {
	Concepts []checkboxConceptSpec `yaml:"concepts"`
}

type checkboxConceptSpec struct {
	Name    string              `yaml:"name"`
	Aliases []string            `yaml:"aliases"`
	States  []checkboxStateSpec `yaml:"states"`
}

type checkboxStateSpec struct {
	Name    string       `yaml:"name"`
	Field   string       `yaml:"field"`
	Phrases []string     `yaml:"phrases"`
	Capture *captureSpec `yaml:"capture"`
}

type captureSpec struct {
	Field string `yaml:"field"`
	Regex string `yaml:"regex"`
}

// Load reads the three table documents from dir and assembles a Taxonomy.
func Load(dir string) (*Taxonomy, error) {
	read := func(name string) ([]byte, error) {
		return os.ReadFile(filepath.Join(dir, name))
	}
	return build(read)
}

// Default assembles a Taxonomy from the embedded table documents.
func Default() (*Taxonomy, error) {
	read := func(name string) ([]byte, error) {
		return defaultsFS.ReadFile("defaults/" + name)
	}
	return build(read)
}

func build(read func(string) ([]byte, error)) (*Taxonomy, error) {
	var syn synonymsDoc
	if err := readYAML(read, synonymsFile, &syn); err != nil {
		return nil, err
	}
	var cat categoriesDoc
	if err := readYAML(read, categoriesFile, &cat); err != nil {
		return nil, err
	}
	var chk checkboxesDoc
	if err := readYAML(read, checkboxesFile, &chk); err != nil {
		return nil, err
	}

	t := &Taxonomy{
		synonyms:   make(map[string][]string, len(syn.Concepts)),
		categories: make(map[string][]string, len(cat.Categories)),
		roles:      make(map[string][]string, len(cat.Roles)),
	}

	for key, vars := range syn.Concepts {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return nil, fmt.Errorf("%s: empty concept key", synonymsFile)
		}
		t.synonyms[key] = lowerAll(vars)
		t.conceptKeys = append(t.conceptKeys, key)
	}
	sort.Strings(t.conceptKeys)

	for key, kws := range cat.Categories {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return nil, fmt.Errorf("%s: empty category key", categoriesFile)
		}
		t.categories[key] = lowerAll(kws)
		t.catKeys = append(t.catKeys, key)
	}
	sort.Strings(t.catKeys)

	for key, vars := range cat.Roles {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return nil, fmt.Errorf("%s: empty role key", categoriesFile)
		}
		t.roles[key] = lowerAll(vars)
		for _, v := range t.roles[key] {
			t.roleVars = append(t.roleVars, roleVariant{role: key, variant: v})
		}
	}
	// Longest variant first, then lexicographic for a stable order.
	sort.Slice(t.roleVars, func(i, j int) bool {
		a, b := t.roleVars[i].variant, t.roleVars[j].variant
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})

	for _, spec := range chk.Concepts {
		c, err := buildCheckboxConcept(spec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", checkboxesFile, err)
		}
		t.checkboxes = append(t.checkboxes, c)
	}

	return t, nil
}

func buildCheckboxConcept(spec checkboxConceptSpec) (CheckboxConcept, error) {
	name := strings.ToLower(strings.TrimSpace(spec.Name))
	if name == "" {
		return CheckboxConcept{}, fmt.Errorf("checkbox concept with empty name")
	}
	c := CheckboxConcept{
		Name:    name,
		Aliases: lowerAll(spec.Aliases),
	}
	seen := make(map[string]bool, len(spec.States))
	for _, ss := range spec.States {
		stateName := strings.ToLower(strings.TrimSpace(ss.Name))
		if stateName == "" {
			return CheckboxConcept{}, fmt.Errorf("concept %s: state with empty name", name)
		}
		if seen[stateName] {
			return CheckboxConcept{}, fmt.Errorf("concept %s: duplicate state %q", name, stateName)
		}
		seen[stateName] = true
		if len(ss.Phrases) == 0 {
			return CheckboxConcept{}, fmt.Errorf("concept %s: state %q has no phrases", name, stateName)
		}

		st := CheckboxState{
			Name:    stateName,
			Field:   strings.ToLower(strings.TrimSpace(ss.Field)),
			Phrases: lowerAll(ss.Phrases),
		}
		if st.Field == "" {
			st.Field = stateName
		}
		if ss.Capture != nil {
			re, err := regexp.Compile(ss.Capture.Regex)
			if err != nil {
				return CheckboxConcept{}, fmt.Errorf("concept %s: state %q capture: %w", name, stateName, err)
			}
			capField := strings.ToLower(strings.TrimSpace(ss.Capture.Field))
			if capField == "" {
				return CheckboxConcept{}, fmt.Errorf("concept %s: state %q capture has no field", name, stateName)
			}
			st.Capture = &Capture{Field: capField, re: re}
		}
		c.States = append(c.States, st)
	}
	if len(c.States) == 0 {
		return CheckboxConcept{}, fmt.Errorf("concept %s: no states", name)
	}
	return c, nil
}

func readYAML(read func(string) ([]byte, error), name string, v any) error {
	data, err := read(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
