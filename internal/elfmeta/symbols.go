package elfmeta

import (
	"debug/elf"
	"sort"
)

// SymbolRecord is one decoded symbol-table entry. Records are produced by the
// elffile accessor from .symtab and .dynsym; a table the accessor could not
// decode contributes a single record with Err set so partial failures stay
// visible to callers.
type SymbolRecord struct {
	Name         string
	Binding      elf.SymBind
	Type         elf.SymType
	SectionIndex elf.SectionIndex

	// Err marks a record the accessor failed to decode. Such records are
	// skipped and counted, never classified.
	Err error
}

// Classified is the partition of a symbol table into the exported and
// imported ABI surfaces. Both name lists are deduplicated and sorted
// lexicographically (byte-wise, case-sensitive) regardless of the input
// ordering of the underlying records.
type Classified struct {
	Exported []string
	Imported []string

	// Skipped counts records dropped because of decode errors.
	Skipped int
}

// Classify partitions symbol records into exported and imported name sets.
//
// A symbol is exported when it is defined in this object (section index other
// than SHN_UNDEF), globally bound, and a function or data object. Weak
// definitions are deliberately excluded: a weak defined symbol may be
// overridden at load time and is not a reliable part of the ABI contract.
//
// A symbol is imported when it is undefined (SHN_UNDEF), globally or weakly
// bound, and a function. Weak undefined references count because they are
// still real runtime dependencies; undefined data references are not part of
// the surface a consumer needs resolved.
//
// Classification never fails on a record: malformed records are counted in
// Skipped and the remaining records are classified normally.
func Classify(records []SymbolRecord) Classified {
	exported := make(map[string]struct{})
	imported := make(map[string]struct{})
	skipped := 0

	for _, rec := range records {
		switch {
		case rec.Err != nil:
			skipped++
		case isExported(rec):
			exported[rec.Name] = struct{}{}
		case isImported(rec):
			imported[rec.Name] = struct{}{}
		}
	}

	return Classified{
		Exported: sortedNames(exported),
		Imported: sortedNames(imported),
		Skipped:  skipped,
	}
}

func isExported(rec SymbolRecord) bool {
	return rec.SectionIndex != elf.SHN_UNDEF &&
		rec.Binding == elf.STB_GLOBAL &&
		(rec.Type == elf.STT_FUNC || rec.Type == elf.STT_OBJECT)
}

func isImported(rec SymbolRecord) bool {
	return rec.SectionIndex == elf.SHN_UNDEF &&
		(rec.Binding == elf.STB_GLOBAL || rec.Binding == elf.STB_WEAK) &&
		rec.Type == elf.STT_FUNC
}

// sortedNames flattens a name set into a sorted slice. An empty set yields a
// nil slice, not an empty one, to keep zero-value comparisons simple.
func sortedNames(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
