package filter

import (
	"github.com/s0up4200/trendcarousel/tmdb"
)

// Filter decides whether a trending item becomes a slide
type Filter interface {
	// Evaluate checks if an item matches the filter criteria
	Evaluate(item tmdb.Item) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}
