package htmlcore

import (
	"github.com/crestfall/htmlcore/parseerr"
	"github.com/crestfall/htmlcore/treebuilder"
)

// config holds parser configuration assembled from Option values.
type config struct {
	fragmentContext *treebuilder.FragmentContext
	strict          bool
	collectErrors   bool
	sink            parseerr.Sink
}

func newConfig(opts ...Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// errorSink returns the Sink a parse should report to: the caller's
// WithErrorSink value if set, a CollectingSink when WithCollectErrors or
// WithStrictMode is set (so resolveErrors has something to inspect), or
// parseerr.Discard otherwise.
func (c *config) errorSink() parseerr.Sink {
	if c.sink != nil {
		return c.sink
	}
	if c.strict || c.collectErrors {
		return parseerr.NewCollectingSink()
	}
	return parseerr.Discard
}

// resolveErrors applies WithStrictMode/WithCollectErrors semantics once
// parsing has finished: strict mode surfaces the first reported error,
// collect mode wraps every reported error, and the default is silent
// recovery (the sink already saw every error as it happened).
func (c *config) resolveErrors(sink parseerr.Sink) error {
	collecting, ok := sink.(*parseerr.CollectingSink)
	if !ok || len(collecting.Errors) == 0 {
		return nil
	}
	if c.strict {
		return &strictError{first: collecting.Errors[0]}
	}
	if c.collectErrors {
		return parseerr.Errors(collecting.Errors)
	}
	return nil
}

// Option configures Parse/ParseFragment behavior.
type Option func(*config)

// WithFragment records a fragment-parsing context element by tag name, in
// the HTML namespace. Parse ignores it, and ParseFragment replaces it with
// its own contextTag argument, so it has no effect on either.
func WithFragment(tagName string) Option {
	return func(c *config) {
		c.fragmentContext = &treebuilder.FragmentContext{TagName: tagName, Namespace: "html"}
	}
}

// WithFragmentNS is WithFragment with an explicit namespace. Like
// WithFragment it has no effect on Parse or ParseFragment, and the tree
// builder does not read a FragmentContext's Namespace, so it does not
// enable parsing of SVG or MathML fragments.
func WithFragmentNS(tagName, namespace string) Option {
	return func(c *config) {
		c.fragmentContext = &treebuilder.FragmentContext{TagName: tagName, Namespace: namespace}
	}
}

// WithStrictMode makes Parse/ParseFragment return the first reported
// parse error instead of silently recovering from it.
func WithStrictMode() Option {
	return func(c *config) {
		c.strict = true
	}
}

// WithCollectErrors makes Parse/ParseFragment return every reported parse
// error, wrapped in a parseerr.Errors, alongside the successfully built
// tree. Without this option parse errors are recovered from silently.
func WithCollectErrors() Option {
	return func(c *config) {
		c.collectErrors = true
	}
}

// WithErrorSink reports parse errors to sink as they happen. The sink
// replaces the one WithStrictMode/WithCollectErrors would create, so those
// options take effect only when sink is a *parseerr.CollectingSink; with
// any other Sink they return no error.
func WithErrorSink(sink parseerr.Sink) Option {
	return func(c *config) {
		c.sink = sink
	}
}
