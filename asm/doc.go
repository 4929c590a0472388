// Package asm models a fixture program as a sequence of typed statements.
//
// Programs are built from Statement values (comments, labels, pushes, pops,
// operations and branches), checked with Validate, and rendered to starj
// assembler text with Render. Validation proves the properties every
// fixture relies on: labels are unique and defined, mnemonics exist, a
// guard sentinel is used only as a guard, and no control path can run past
// the final statement without halting.
package asm
