package config

import "github.com/jinzhu/copier"

// nonDefaultJobs mirrors original_source's jobs/mod.rs comment dividing
// passes into "default" (always on unless omitted) and "non default"
// (opt-in only, since they mutate content an author must explicitly ask
// for — adding attributes/classes, or touching things precheck/off-canvas
// pruning would rather be asked for than assumed).
var nonDefaultJobs = map[string]bool{
	"add_attributes_to_svg_element": true,
	"add_classes_to_svg":            true,
	"cleanup_list_of_values":        true,
	"remove_attrs":                  true,
	"remove_elements_by_attr":       true,
	"remove_off_canvas_paths":       true,
	"precheck":                      true,
}

func boolSetting(v bool) JobSetting { return JobSetting{IsBool: true, Enabled: v} }

// Presets holds the built-in named configs §6's `-e/--extends` selects
// between. "default" enables every pass original_source treats as
// default; "safe" additionally omits passes that can change rendering
// under edge-case viewers (off-canvas pruning, stroke/fill removal,
// hidden-element removal, transform baking) per spec.md §4.5/§4.7's documented trade-offs.
var Presets = map[string]Config{
	"default": {
		Lint: LintConfig{
			NoUnknownElements:   "warn",
			NoUnknownAttributes: "warn",
			NoDeprecated:        "warn",
			NoDefaultAttributes: "warn",
			NoXLink:             "warn",
			NoInvalidAttrValue:  "warn",
		},
	},
	"safe": {
		Optimise: OptimiseConfig{
			Omit: []string{
				"remove_off_canvas_paths",
				"remove_useless_stroke_and_fill",
				"remove_hidden_elems",
				"apply_transforms",
			},
		},
		Lint: LintConfig{
			NoUnknownElements:   "warn",
			NoUnknownAttributes: "warn",
			NoDeprecated:        "warn",
			NoDefaultAttributes: "warn",
			NoXLink:             "warn",
			NoInvalidAttrValue:  "warn",
		},
	},
}

// ResolvePreset returns a deep copy of the named preset so callers can
// mutate it (apply per-file job overrides) without corrupting the shared
// literal — the same defensive-copy role jinzhu/copier plays in the
// teacher's config-merging code, applied here instead of a hand-rolled
// field-by-field copy since Config nests slices and maps.
func ResolvePreset(name string) (Config, bool) {
	src, ok := Presets[name]
	if !ok {
		return Config{}, false
	}
	var dst Config
	if err := copier.CopyWithOption(&dst, &src, copier.Option{DeepCopy: true}); err != nil {
		return src, true
	}
	return dst, true
}

// Resolve applies cfg.Optimise.Extends (if set) as a base preset, then
// layers cfg's own Jobs/Omit/Lint settings on top of it.
func Resolve(cfg Config) (Config, error) {
	if cfg.Optimise.Extends == nil {
		return cfg, nil
	}
	base, ok := ResolvePreset(*cfg.Optimise.Extends)
	if !ok {
		return cfg, nil
	}
	if base.Optimise.Jobs == nil {
		base.Optimise.Jobs = map[string]JobSetting{}
	}
	for name, setting := range cfg.Optimise.Jobs {
		base.Optimise.Jobs[name] = setting
	}
	base.Optimise.Omit = append(base.Optimise.Omit, cfg.Optimise.Omit...)
	if cfg.Lint != (LintConfig{}) {
		base.Lint = cfg.Lint
	}
	return base, nil
}
