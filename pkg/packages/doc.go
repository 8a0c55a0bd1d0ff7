// Package packages loads the root package and the packages installed into
// it, and keeps them in a Collection addressed by name.
//
// The collection order is the order packages are handed to the override
// graph: installed packages sorted by name, then the root package.
package packages
