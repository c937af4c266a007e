// Package jobs implements the transformation passes (I) the optimiser
// orchestrator runs in a fixed order over one shared tree (§4.7). Each
// pass is a visitor.Visitor plus a small config struct and the
// precondition flags the orchestrator consults before materialising a
// stylesheet or computed style for it.
package jobs

// Order is the fixed pass order the optimiser runs jobs in (§4.7: removers
// before consolidators before rewriters, additive passes last). Config
// selects a subset by name; jobs not named in Order can never run, and a
// name appearing in a config's "jobs" list but missing from Order is a
// config error the caller should report rather than silently ignore.
var Order = []string{
	"precheck",

	"remove_doctype",
	"remove_xml_proc_inst",
	"remove_comments",
	"remove_metadata",
	"remove_editors_ns_data",
	"remove_scripts",
	"remove_xlink",
	"remove_empty_text",
	"remove_useless_defs",
	"remove_elements_by_attr",
	"remove_unknowns_and_defaults",
	"remove_non_inheritable_group_attrs",
	"remove_useless_stroke_and_fill",
	"remove_view_box",
	"remove_hidden_elems",
	"remove_off_canvas_paths",
	"remove_deprecated_attrs",
	"remove_empty_attrs",
	"remove_attrs",
	"remove_empty_containers",

	"merge_styles",
	"merge_paths",
	"move_elems_attrs_to_group",
	"move_group_attrs_to_elems",
	"collapse_groups",

	"inline_styles",
	"minify_styles",
	"convert_style_to_attrs",
	"convert_one_stop_gradients",
	"convert_colors",
	"convert_shape_to_path",
	"convert_ellipse_to_circle",
	"apply_transforms",
	"convert_transform",
	"convert_path_data",
	"cleanup_enable_background",
	"cleanup_list_of_values",
	"cleanup_numeric_values",
	"cleanup_ids",

	"add_attributes_to_svg_element",
	"add_classes_to_svg",

	"sort_defs_children",
	"sort_attrs",
}

// Index maps a pass name to its position in Order, used by config
// validation to reject unknown names in a fixed amount of lookups.
var Index = func() map[string]int {
	m := make(map[string]int, len(Order))
	for i, name := range Order {
		m[name] = i
	}
	return m
}()
