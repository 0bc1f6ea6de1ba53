package css

// Declaration is a single property/value pair as written in a stylesheet.
// Property is lower-cased; Value keeps its original spelling with runs of
// whitespace collapsed to a single space.
type Declaration struct {
	Property string `yaml:"property"`
	Value    string `yaml:"value"`
}

// Rule is a qualified rule with its declarations in source order.
type Rule struct {
	Selectors    []string      `yaml:"selectors"`
	Declarations []Declaration `yaml:"declarations"`
}

// KeyframeRule is one block inside @keyframes, e.g. "0%, 50% { ... }".
type KeyframeRule struct {
	Values       []string      `yaml:"values"`
	Declarations []Declaration `yaml:"declarations"`
}

// Keyframes is a named @keyframes block.
type Keyframes struct {
	Name  string         `yaml:"name"`
	Rules []KeyframeRule `yaml:"keyframes"`
}

// Stylesheet is the subset of a parsed stylesheet used for animations.
type Stylesheet struct {
	Rules     []Rule
	Keyframes []*Keyframes
	Warnings  []string
}

// KeyframesByName returns the last @keyframes block with the given name, the
// one that wins in the cascade.
func (s *Stylesheet) KeyframesByName(name string) *Keyframes {
	for i := len(s.Keyframes) - 1; i >= 0; i-- {
		if s.Keyframes[i].Name == name {
			return s.Keyframes[i]
		}
	}
	return nil
}
