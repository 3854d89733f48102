package cache

// Keyer derives cache keys for executions.
type Keyer interface {
	// TraceKey identifies the execution of algorithm over the graph with
	// the given content hash.
	TraceKey(algorithm, graphHash string, opts TraceKeyOpts) string
}

// TraceKeyOpts are the run parameters that change an execution.
type TraceKeyOpts struct {
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	Directed bool   `json:"directed,omitempty"`
}

// DefaultKeyer produces unprefixed keys of the form "trace:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// TraceKey implements Keyer.
func (DefaultKeyer) TraceKey(algorithm, graphHash string, opts TraceKeyOpts) string {
	return hashKey("trace", algorithm, graphHash, opts)
}

// ScopedKeyer prefixes every key of an inner keyer, so entries written by
// different releases never collide.
//
//	keyer := NewScopedKeyer(nil, "v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// TraceKey implements Keyer.
func (k *ScopedKeyer) TraceKey(algorithm, graphHash string, opts TraceKeyOpts) string {
	return k.prefix + k.inner.TraceKey(algorithm, graphHash, opts)
}
