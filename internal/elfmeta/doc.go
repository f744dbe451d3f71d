// Package elfmeta implements the metadata extraction core for ELF shared
// objects: decoding a GNU build-id from a NOTE section, resolving SONAME and
// NEEDED entries from a dynamic-linking table projection, and classifying a
// symbol table into exported and imported ABI surfaces.
//
// All functions in this package are pure transforms over already-loaded bytes
// and records. They perform no I/O and no logging; callers load file content
// through the elffile package and render results through the report package.
//
// # Error model
//
// Extraction failures are local and recoverable. The package distinguishes
// three conditions via static sentinel errors:
//
//   - ErrNotApplicable: the input is not the structure being looked for
//     (wrong section type, non-GNU note). Expected for many binaries.
//   - ErrTruncated: a structure claims a size larger than the remaining buffer.
//   - ErrOutOfBounds: computed offsets do not reconcile with the section's
//     declared length, indicating corruption or an unexpected layout.
//
// Callers degrade the corresponding output field and continue; none of these
// conditions aborts processing of a file.
package elfmeta
