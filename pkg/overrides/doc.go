// Package overrides records which packages override which.
//
// The Graph holds one node per package name and an edge A -> B whenever B
// overrides A: if both packages map the same repository path, B's resource
// wins. Edges come from the "override" declarations of package manifests,
// from the root package's "override-order" list, and from conflicts that the
// repository manager resolves on behalf of the root package.
//
// Sort orders any subset of the nodes so that overridden packages come first.
// A cycle never makes Sort loop: the nodes it could not place are appended
// in input order and reported through an OVERRIDE_CYCLE error.
package overrides
