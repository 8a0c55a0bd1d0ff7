// Package output renders command results for the terminal or as JSON.
//
// Rich terminal output applies the semantic styles of the styles package;
// plain text output carries the same lines without escape codes and JSON
// output encodes the rows for scripts.
package output
