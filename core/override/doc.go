// Package override holds the override record model and the first two stages
// of catalogue resolution.
//
// # Records
//
// Two record shapes exist:
//   - BuiltinOverride sets any subset of the four built-in attributes of a
//     vehicle (country, tier, class, category), optionally scoped to a game
//     version, or deletes the vehicle's earlier data.
//   - ExtraOverride sets the value of one extra property for one vehicle,
//     optionally scoped to a game version.
//
// Records come from files. Built-in files ("WotBuiltIn-<v>.csv") contain only
// BuiltinOverride rows; extra files ("WotData-<name>-<author>-<v>.csv") may
// define several properties at once, one per column. The baseline taken from
// the game client is modelled as file version 0, the lowest precedence.
//
// # Stages
//
//  1. Intra-file reconciliation (ReconcileBuiltin, ReconcileExtra) removes
//     duplicate rows for the same vehicle and game version, keeping the last
//     one, and collapses runs of redundant delete rows.
//  2. Cross-file resolution (MergeBuiltins, MergeExtras) applies every file in
//     ascending file version, producing one ordered row list per vehicle (and
//     per property for extras).
//
// Neither stage fails: every discarded row is reported through a warn.List.
// Property inheritance and the final per-version projection live in the
// inherit and snapshot packages.
package override
