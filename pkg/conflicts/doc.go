// Package conflicts finds repository paths provided by several packages
// whose relative order the override graph does not settle.
//
// Detection is incremental: only paths the mapping index marked unchecked
// are inspected, and paths that pass are cleared. The first conflict found
// is returned and its path stays unchecked, so callers resolve conflicts one
// at a time and call Detect again.
package conflicts
