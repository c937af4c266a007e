package config

import (
	"encoding/json"
	"fmt"

	"github.com/oxvg/oxvg-go/internal/jobs"
)

// decode unmarshals setting's raw config (if any) into a zero-valued T,
// leaving T's zero value in place for a bare `true`/omitted setting.
func decode[T any](setting JobSetting) (T, error) {
	var cfg T
	if setting.IsBool || len(setting.Raw) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(setting.Raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decoding job config: %w", err)
	}
	return cfg, nil
}

// factories maps each name in jobs.Order to a constructor taking that
// pass's decoded JobSetting. A name present in jobs.Order but missing
// here would be a bug in this file, not a config error; BuildJobs reports
// it as a "no factory registered" error.
var factories = map[string]func(JobSetting) (jobs.Job, error){
	"precheck": func(s JobSetting) (jobs.Job, error) {
		cfg, err := decode[jobs.PrecheckConfig](s)
		if cfg == (jobs.PrecheckConfig{}) && s.IsBool {
			cfg.PrecleanChecks = true
			cfg.FailFast = true
		}
		return jobs.NewPrecheck(cfg), err
	},
	"remove_doctype":        func(JobSetting) (jobs.Job, error) { return jobs.NewRemoveDoctype(), nil },
	"remove_xml_proc_inst":  func(JobSetting) (jobs.Job, error) { return jobs.NewRemoveXMLProcInst(), nil },
	"remove_comments": func(s JobSetting) (jobs.Job, error) {
		cfg, err := decode[jobs.RemoveCommentsConfig](s)
		return jobs.NewRemoveComments(cfg), err
	},
	"remove_metadata":        func(JobSetting) (jobs.Job, error) { return jobs.NewRemoveMetadata(), nil },
	"remove_editors_ns_data": func(JobSetting) (jobs.Job, error) { return jobs.NewRemoveEditorsNSData(), nil },
	"remove_scripts":         func(JobSetting) (jobs.Job, error) { return jobs.NewRemoveScripts(), nil },
	"remove_xlink":           func(JobSetting) (jobs.Job, error) { return jobs.NewRemoveXLink(), nil },
	"remove_empty_text":      func(JobSetting) (jobs.Job, error) { return jobs.NewRemoveEmptyText(), nil },
	"remove_useless_defs":    func(JobSetting) (jobs.Job, error) { return jobs.NewRemoveUselessDefs(), nil },
	"remove_elements_by_attr": func(s JobSetting) (jobs.Job, error) {
		cfg, err := decode[jobs.RemoveElementsByAttrConfig](s)
		return jobs.NewRemoveElementsByAttr(cfg), err
	},
	"remove_unknowns_and_defaults": func(s JobSetting) (jobs.Job, error) {
		cfg, err := decode[jobs.RemoveUnknownsAndDefaultsConfig](s)
		return jobs.NewRemoveUnknownsAndDefaults(cfg), err
	},
	"remove_non_inheritable_group_attrs": func(JobSetting) (jobs.Job, error) {
		return jobs.NewRemoveNonInheritableGroupAttrs(), nil
	},
	"remove_useless_stroke_and_fill": func(JobSetting) (jobs.Job, error) {
		return jobs.NewRemoveUselessStrokeAndFill(), nil
	},
	"remove_view_box":         func(JobSetting) (jobs.Job, error) { return jobs.NewRemoveViewBox(), nil },
	"remove_hidden_elems":     func(JobSetting) (jobs.Job, error) { return jobs.NewRemoveHiddenElems(), nil },
	"remove_off_canvas_paths": func(JobSetting) (jobs.Job, error) { return jobs.NewRemoveOffCanvasPaths(), nil },
	"remove_deprecated_attrs": func(JobSetting) (jobs.Job, error) { return jobs.NewRemoveDeprecatedAttrs(), nil },
	"remove_empty_attrs":      func(JobSetting) (jobs.Job, error) { return jobs.NewRemoveEmptyAttrs(), nil },
	"remove_attrs": func(s JobSetting) (jobs.Job, error) {
		cfg, err := decode[jobs.RemoveAttrsConfig](s)
		if err != nil {
			return nil, err
		}
		return jobs.NewRemoveAttrs(cfg)
	},
	"remove_empty_containers": func(JobSetting) (jobs.Job, error) { return jobs.NewRemoveEmptyContainers(), nil },

	"merge_styles":              func(JobSetting) (jobs.Job, error) { return jobs.NewMergeStyles(), nil },
	"merge_paths":                func(JobSetting) (jobs.Job, error) { return jobs.NewMergePaths(), nil },
	"move_elems_attrs_to_group": func(JobSetting) (jobs.Job, error) { return jobs.NewMoveElemsAttrsToGroup(), nil },
	"move_group_attrs_to_elems": func(JobSetting) (jobs.Job, error) { return jobs.NewMoveGroupAttrsToElems(), nil },
	"collapse_groups":           func(JobSetting) (jobs.Job, error) { return jobs.NewCollapseGroups(), nil },

	"inline_styles": func(s JobSetting) (jobs.Job, error) {
		cfg, err := decode[jobs.InlineStylesConfig](s)
		return jobs.NewInlineStyles(cfg), err
	},
	"minify_styles":              func(JobSetting) (jobs.Job, error) { return jobs.NewMinifyStyles(), nil },
	"convert_style_to_attrs":     func(JobSetting) (jobs.Job, error) { return jobs.NewConvertStyleToAttrs(), nil },
	"convert_one_stop_gradients": func(JobSetting) (jobs.Job, error) { return jobs.NewConvertOneStopGradients(), nil },
	"convert_colors": func(s JobSetting) (jobs.Job, error) {
		cfg, err := decode[jobs.ConvertColorsConfig](s)
		return jobs.NewConvertColors(cfg), err
	},
	"convert_shape_to_path":     func(JobSetting) (jobs.Job, error) { return jobs.NewConvertShapeToPath(), nil },
	"convert_ellipse_to_circle": func(JobSetting) (jobs.Job, error) { return jobs.NewConvertEllipseToCircle(), nil },
	"apply_transforms": func(s JobSetting) (jobs.Job, error) {
		cfg, err := decode[jobs.ApplyTransformsConfig](s)
		return jobs.NewApplyTransforms(cfg), err
	},
	"convert_transform": func(JobSetting) (jobs.Job, error) { return jobs.NewConvertTransform(), nil },
	"convert_path_data": func(s JobSetting) (jobs.Job, error) {
		cfg, err := decode[jobs.ConvertPathDataConfig](s)
		return jobs.NewConvertPathData(cfg), err
	},
	"cleanup_enable_background": func(JobSetting) (jobs.Job, error) { return jobs.NewCleanupEnableBackground(), nil },
	"cleanup_list_of_values": func(s JobSetting) (jobs.Job, error) {
		cfg, err := decode[jobs.CleanupListOfValuesConfig](s)
		return jobs.NewCleanupListOfValues(cfg), err
	},
	"cleanup_numeric_values": func(s JobSetting) (jobs.Job, error) {
		cfg, err := decode[jobs.CleanupNumericValuesConfig](s)
		return jobs.NewCleanupNumericValues(cfg), err
	},
	"cleanup_ids": func(s JobSetting) (jobs.Job, error) {
		cfg, err := decode[jobs.CleanupIDsConfig](s)
		return jobs.NewCleanupIDs(cfg), err
	},

	"add_attributes_to_svg_element": func(s JobSetting) (jobs.Job, error) {
		cfg, err := decode[jobs.AddAttributesToSVGConfig](s)
		return jobs.NewAddAttributesToSVG(cfg), err
	},
	"add_classes_to_svg": func(s JobSetting) (jobs.Job, error) {
		cfg, err := decode[jobs.AddClassesToSVGConfig](s)
		return jobs.NewAddClassesToSVG(cfg), err
	},

	"sort_defs_children": func(JobSetting) (jobs.Job, error) { return jobs.NewSortDefsChildren(), nil },
	"sort_attrs": func(s JobSetting) (jobs.Job, error) {
		cfg, err := decode[jobs.SortAttrsConfig](s)
		return jobs.NewSortAttrs(cfg), err
	},
}

// BuildJobs materialises cfg.Optimise into the ordered pass list the
// optimiser orchestrator runs (§4.7). A pass runs when: it's named in
// jobs.Order, it's not in Omit, and either it's in nonDefaultJobs with an
// explicit enabling entry in Jobs, or it's a default pass not explicitly
// disabled (`false`) in Jobs.
func BuildJobs(cfg OptimiseConfig) ([]jobs.Job, error) {
	omitted := make(map[string]bool, len(cfg.Omit))
	for _, name := range cfg.Omit {
		omitted[name] = true
	}

	var out []jobs.Job
	for _, name := range jobs.Order {
		if omitted[name] {
			continue
		}
		setting, explicit := cfg.Jobs[name]
		if explicit && setting.IsBool && !setting.Enabled {
			continue
		}
		if nonDefaultJobs[name] && !explicit {
			continue
		}
		if !explicit {
			setting = boolSetting(true)
		}
		factory, ok := factories[name]
		if !ok {
			return nil, fmt.Errorf("config: no factory registered for pass %q", name)
		}
		job, err := factory(setting)
		if err != nil {
			return nil, fmt.Errorf("config: pass %q: %w", name, err)
		}
		out = append(out, job)
	}
	return out, nil
}
