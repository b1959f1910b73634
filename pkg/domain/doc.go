/*
Package domain holds the core data model of the assessment engine: the
question graph vocabulary (Node, Route, Option), the per-attempt
SessionState with its answer history, and the derived Report.

Types here are plain data with no I/O. Mutation of a SessionState is
reserved to the walker operations; everything else treats it as a value
to snapshot, persist, or render.
*/
package domain
