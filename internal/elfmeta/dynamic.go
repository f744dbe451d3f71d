package elfmeta

import "sort"

// DynamicTable is the accessor's projection of a .dynamic section: only the
// entries the metadata core consumes. Present is false when the section is
// absent or not of the dynamic-linking-table type.
type DynamicTable struct {
	Present bool

	// Soname is the DT_SONAME entry, or empty when the object declares none.
	Soname string

	// Needed holds the DT_NEEDED entries in table order, duplicates included.
	Needed []string
}

// DynamicMeta is the resolved dynamic-linking metadata for one shared object.
type DynamicMeta struct {
	Soname string
	Needed []string
}

// ResolveDynamic resolves a shared object's declared name and dependency list
// from its dynamic table projection.
//
// A shared object is not required to declare its own name, so an absent or
// empty SONAME falls back to fallbackName (conventionally the scanned file's
// base name). Needed entries are sorted lexicographically with a stable sort:
// link order can vary between otherwise-identical builds, and a deterministic
// order avoids spurious diffs between two builds of the same source. Duplicate
// entries are preserved; a binary may legitimately list the same dependency
// more than once.
func ResolveDynamic(tab DynamicTable, fallbackName string) DynamicMeta {
	meta := DynamicMeta{Soname: tab.Soname}
	if meta.Soname == "" {
		meta.Soname = fallbackName
	}
	if !tab.Present || len(tab.Needed) == 0 {
		return meta
	}

	needed := make([]string, len(tab.Needed))
	copy(needed, tab.Needed)
	sort.SliceStable(needed, func(i, j int) bool {
		return needed[i] < needed[j]
	})
	meta.Needed = needed
	return meta
}
