package preprocessor

// IncludeResolver resolves a #include target to its contents (§4.2,
// "pluggable resolver abstraction"). current is the path/name of the
// buffer containing the #include directive; target is the raw text
// between the quotes or angle brackets; quoted distinguishes
// `"target"` from `<target>`.
//
// Implementations live in internal/resolvers (in-memory, filesystem,
// and a SQLite-backed caching wrapper); tests may supply a trivial
// map-backed stub directly.
type IncludeResolver interface {
	Resolve(current, target string, quoted bool) (handle string, text string, err error)
}

// NoIncludes is an IncludeResolver that rejects every #include, for
// configurations that never expect one (§4.2's resolver is pluggable
// specifically so embedders without a filesystem can supply this).
type NoIncludes struct{}

func (NoIncludes) Resolve(current, target string, quoted bool) (string, string, error) {
	return "", "", errUnsupportedInclude{target: target}
}

type errUnsupportedInclude struct{ target string }

func (e errUnsupportedInclude) Error() string {
	return "no include resolver configured for target " + e.target
}
