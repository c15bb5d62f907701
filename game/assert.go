package game

import "github.com/rs/zerolog/log"

// debugBuild is flipped by the "debug" build tag (assert_debug.go);
// default build logs-and-continues, matching spec.md §7's
// "Logic assertion ... fatal in debug, logged in release" policy and
// the original's BM_ASSERT macro duality.
var debugBuild = false

// Invariant panics in a debug build when cond is false, otherwise logs
// a warning and continues (spec.md §4.C / §7).
func Invariant(cond bool, format string, args ...any) {
	if cond {
		return
	}
	if debugBuild {
		log.Panic().Msgf(format, args...)
	}
	log.Warn().Msgf("invariant violated: "+format, args...)
}
