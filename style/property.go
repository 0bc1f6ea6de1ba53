package style

// Property identifies an animatable property of a view.
type Property int

const (
	PropertyUnknown Property = iota
	Opacity
	BackgroundColor
	Rotate
	Scale
	Translate

	// Sub-properties produced by expanding the transform shorthand. They are
	// folded into Scale and Translate before reaching a view.
	ScaleX
	ScaleY
	TranslateX
	TranslateY
)

var propertyNames = [...]string{
	PropertyUnknown: "unknown",
	Opacity:         "opacity",
	BackgroundColor: "backgroundColor",
	Rotate:          "rotate",
	Scale:           "scale",
	Translate:       "translate",
	ScaleX:          "scaleX",
	ScaleY:          "scaleY",
	TranslateX:      "translateX",
	TranslateY:      "translateY",
}

// String returns the internal property name.
func (p Property) String() string {
	if p < 0 || int(p) >= len(propertyNames) {
		return propertyNames[PropertyUnknown]
	}
	return propertyNames[p]
}

// MarshalText lets properties be used as map keys in YAML and JSON output.
func (p Property) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// PropertyValue is one component produced by shorthand expansion.
type PropertyValue struct {
	Property Property
	Value    Value
}
