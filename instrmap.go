// Package instrmap builds a mapping from x86 instruction mnemonics to their
// compiler-intrinsic equivalents by scraping an instruction reference site.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package instrmap
