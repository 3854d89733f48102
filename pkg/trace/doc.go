// Package trace defines the step format shared by every instrumented
// algorithm, and the tools to build and replay it.
//
// # Steps
//
// A [Step] is a diff, not a snapshot: its [NodeUpdate] and [EdgeUpdate]
// entries carry only the fields that changed, keyed by id. Replaying all steps
// of an [Execution] in order against the original graph, merging each entry
// shallowly, reproduces the algorithm's final declared state ([Replay]).
//
// Each step may also carry a [Snapshot] of the algorithm's working structures
// for display. Snapshot is a closed set of variants, one per algorithm family
// ([Frontier], [Distances], [Scores], [Tree], [Forest], [AllPairs], [Flow]).
// On the wire every variant writes only its own named slots (queue, stack,
// result, list, array, matrix) so existing players keep working, plus a
// "snapshot" tag naming the variant.
//
// # Building
//
// One [Builder] belongs to one run. Algorithms append steps to it
// synchronously and finish with [Builder.Execution]. The builder numbers the
// steps, copies nothing it does not own, and derives the operation log
// (labels instead of ids, cumulative visited list) as steps arrive.
//
// # Playback
//
// [Player] walks an execution forward and backward over its own copy of the
// graph, recording the previous values of every touched field so steps can
// be un-applied. Executions are never modified after they are returned, so
// any number of players may share one.
package trace
