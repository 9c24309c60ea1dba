// Package inherit resolves inheritance between extra properties.
//
// A property may name a parent through its InheritsFrom field, using the
// parent's canonical id ("file[/column]/author", matched case-insensitively).
// For every vehicle where the child has no value of its own the parent's
// values are used as a fallback.
//
// # Resolution
//
// Resolve works on a table keyed by canonical id. Parents are looked up by
// id rather than by pointer, so broken graphs are repaired by removing
// entries:
//
//  1. Properties whose parent does not exist are removed. Removing one may
//     orphan another, so this repeats until nothing changes.
//  2. The transitive set of descendants is computed for every property. A
//     property that is its own descendant sits on a cycle; one such property
//     is removed and step 1 runs again.
//  3. Each property gets a depth (roots are 0). Properties are processed by
//     ascending depth so that a parent has already received its own
//     inherited values when it is merged into its children.
//
// # Merge rule
//
// For every vehicle of the parent: if the child has an unversioned value the
// vehicle is skipped entirely. Otherwise each parent row is copied unless the
// child already has a row for exactly the same game version.
//
// Every removal is reported through the warn.List passed to Resolve.
package inherit
