package attr

import "strings"

// Spec describes one recognised attribute's grammar constructor and
// category flags (§3 "reports (deprecated|presentation|event|…) category
// flags").
type Spec struct {
	New      func() Value
	Category Category
}

// registry maps a local attribute name to its grammar; a prefixed entry
// such as "xml:lang" is keyed by its qualified name. Presentation
// attributes (those with an identical CSS-property meaning, §4.3) are
// flagged so the style engine can unify them with stylesheet declarations.
var registry = map[string]Spec{
	"viewBox":          {New: func() Value { return &ViewBox{} }},
	"width":            {New: func() Value { return &Length{} }, Category: CategoryPresentation},
	"height":           {New: func() Value { return &Length{} }, Category: CategoryPresentation},
	"x":                {New: func() Value { return &Length{} }, Category: CategoryPresentation},
	"y":                {New: func() Value { return &Length{} }, Category: CategoryPresentation},
	"cx":               {New: func() Value { return &Length{} }, Category: CategoryPresentation},
	"cy":               {New: func() Value { return &Length{} }, Category: CategoryPresentation},
	"r":                {New: func() Value { return &Length{} }, Category: CategoryPresentation},
	"rx":               {New: func() Value { return &Length{} }, Category: CategoryPresentation},
	"ry":               {New: func() Value { return &Length{} }, Category: CategoryPresentation},
	"stroke-width":     {New: func() Value { return &Length{} }, Category: CategoryPresentation},
	"stroke-dashoffset": {New: func() Value { return &Length{} }, Category: CategoryPresentation},
	"font-size":        {New: func() Value { return &Length{} }, Category: CategoryPresentation},
	"fill":             {New: func() Value { return &Paint{} }, Category: CategoryPresentation},
	"stroke":           {New: func() Value { return &Paint{} }, Category: CategoryPresentation},
	"color":            {New: func() Value { return &Color{} }, Category: CategoryPresentation},
	"stop-color":       {New: func() Value { return &Color{} }, Category: CategoryPresentation},
	"flood-color":      {New: func() Value { return &Color{} }, Category: CategoryPresentation},
	"lighting-color":   {New: func() Value { return &Color{} }, Category: CategoryPresentation},
	"font-family":      {New: func() Value { return &FontFamily{} }, Category: CategoryPresentation},
	"transform":        {New: func() Value { return &Transform{} }, Category: CategoryPresentation},
	"gradientTransform": {New: func() Value { return &Transform{} }},
	"patternTransform":  {New: func() Value { return &Transform{} }},
	"class":            {New: func() Value { v := NewClass(); return &v }},
	"stroke-dasharray": {New: func() Value { v := NewListOf[string](SepSpaceOrComma); return &v }, Category: CategoryPresentation},
	"dur":              {New: func() Value { return &ClockValue{} }},
	"begin":            {New: func() Value { return &BeginEnd{} }},
	"end":              {New: func() Value { return &BeginEnd{} }},
	"cursor":           {New: NewGrammar(cursorGrammar), Category: CategoryPresentation},
	// Deprecated presentation attributes (§4.7 remove_deprecated_attrs).
	"xml:lang":          {New: nil, Category: CategoryDeprecated},
	"enable-background": {New: nil, Category: CategoryDeprecated},
}

// xlinkLocalNames are the local names of attributes in the xlink namespace, for the
// remove_xlink / noXLink lint rule (§4.7, §6 config).
var xlinkLocalNames = map[string]bool{
	"href": true, "show": true, "actuate": true, "role": true, "arcrole": true, "title": true, "type": true,
}

// isEventAttr reports whether local is an `on*` script-event attribute.
func isEventAttr(local string) bool {
	return strings.HasPrefix(local, "on")
}

// Lookup returns the Spec for a local attribute name, and whether one is
// registered. Unregistered names are carried as raw/Unparsed (§3).
func Lookup(local string) (Spec, bool) {
	s, ok := registry[local]
	return s, ok
}

// CategoryFor computes the category flags for an attribute independent of
// whether it has a typed grammar. The presentation and deprecated flags
// come from registry entries, so an unregistered name such as "opacity"
// gets neither; the event and xlink flags need no entry.
func CategoryFor(local string, ns string) Category {
	cat := CategoryNone
	if spec, ok := registry[local]; ok {
		cat |= spec.Category
	}
	if isEventAttr(local) {
		cat |= CategoryEvent
	}
	if ns == "http://www.w3.org/1999/xlink" {
		cat |= CategoryXLink
	}
	return cat
}

// Parse parses raw using the registered grammar for local, or reports
// ok=false if no grammar is registered (caller should keep raw text).
func Parse(local, raw string) (Value, bool, error) {
	spec, ok := registry[local]
	if !ok || spec.New == nil {
		return nil, false, nil
	}
	v := spec.New()
	if err := v.Parse(raw); err != nil {
		return nil, true, err
	}
	return v, true, nil
}

// WriteAtom renders v to its canonical shortest textual form.
func WriteAtom(v Value) string {
	var sb strings.Builder
	v.WriteAtom(&sb)
	return sb.String()
}
