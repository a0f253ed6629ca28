// Package profile provides optional runtime profiling with
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag. Without it,
// [Profiler.Start] always returns a no-op and [Modes] is empty.
//
//	go build -tags pprof .
//	schemaflag --pprof-mode cpu parse --schema train.yaml -- --lr 0.1
//	go tool pprof -http=: ~/.cache/schemaflag/pprof/cpu.pprof
//
// A build with the tag also registers the [net/http/pprof] handlers.
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
