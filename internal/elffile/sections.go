package elffile

import (
	"debug/elf"
	"errors"

	"github.com/serpent-os/elfmeta/internal/elfmeta"
)

// Section looks up a section by name and returns its raw content together
// with the declared type and the file's byte order. The second return value
// is false when the section is absent or its content cannot be read.
func (f *File) Section(name string) (elfmeta.Section, bool) {
	sec := f.elf.Section(name)
	if sec == nil {
		return elfmeta.Section{}, false
	}
	data, err := sec.Data()
	if err != nil {
		return elfmeta.Section{}, false
	}
	return elfmeta.Section{
		Name:  sec.Name,
		Type:  sec.Type,
		Order: f.elf.ByteOrder,
		Data:  data,
	}, true
}

// DynamicTable returns the .dynamic projection the resolver consumes. Present
// is false when the section is absent, of the wrong type, or unreadable.
func (f *File) DynamicTable() elfmeta.DynamicTable {
	sec := f.elf.Section(".dynamic")
	if sec == nil || sec.Type != elf.SHT_DYNAMIC {
		return elfmeta.DynamicTable{}
	}

	// DynString walks the table and resolves indices through .dynstr; a
	// failure here means the table cannot be trusted at all.
	sonames, err := f.elf.DynString(elf.DT_SONAME)
	if err != nil {
		return elfmeta.DynamicTable{}
	}
	needed, err := f.elf.DynString(elf.DT_NEEDED)
	if err != nil {
		return elfmeta.DynamicTable{}
	}

	tab := elfmeta.DynamicTable{Present: true, Needed: needed}
	if len(sonames) > 0 {
		tab.Soname = sonames[0]
	}
	return tab
}

// SymbolRecords decodes .symtab then .dynsym, in that order, into the flat
// record sequence the classifier consumes. An absent table contributes
// nothing; a malformed table contributes a single record with Err set so the
// classifier can account for the loss instead of aborting the scan.
func (f *File) SymbolRecords() []elfmeta.SymbolRecord {
	var records []elfmeta.SymbolRecord
	records = appendSymbolTable(records, f.elf.Symbols)
	records = appendSymbolTable(records, f.elf.DynamicSymbols)
	return records
}

func appendSymbolTable(records []elfmeta.SymbolRecord, load func() ([]elf.Symbol, error)) []elfmeta.SymbolRecord {
	syms, err := load()
	if err != nil {
		if errors.Is(err, elf.ErrNoSymbols) {
			return records
		}
		return append(records, elfmeta.SymbolRecord{Err: err})
	}
	for _, s := range syms {
		records = append(records, elfmeta.SymbolRecord{
			Name:         s.Name,
			Binding:      elf.ST_BIND(s.Info),
			Type:         elf.ST_TYPE(s.Info),
			SectionIndex: s.Section,
		})
	}
	return records
}
