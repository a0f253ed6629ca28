//go:build !pprof

package profile

// Enabled reports whether profiling was compiled in.
const Enabled = false

// Modes returns nil: profiling requires the pprof build tag.
func Modes() []string { return nil }

func start(Profiler) Stopper { return ignore{} }
