// Package refvm is a small reference interpreter for starj assembler
// text. It executes generated fixtures in tests, and can inject faults
// to prove that a fixture detects a broken implementation.
package refvm
