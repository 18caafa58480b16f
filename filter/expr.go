// Package filter compiles expr-lang expressions that select which trending
// items become carousel slides, for example:
//
//	VoteAverage >= 7 and not Adult and MediaType == "movie"
//	Year >= 2020 and contains(Title, "star")
package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/trendcarousel/tmdb"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	cache *lruCache
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) Compiler {
	c := &exprCompiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCompiler = NewExprCompiler(WithCache(32))

// Compile compiles an expression with the package's cached compiler
func Compile(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(newEnvironment(tmdb.Item{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &exprFilter{
		expression: expression,
		program:    program,
	}

	if c.cache != nil {
		c.cache.Put(expression, f)
	}

	return f, nil
}

// Evaluate evaluates the filter against an item. Runtime errors count as no match.
func (f *exprFilter) Evaluate(item tmdb.Item) bool {
	result, err := expr.Run(f.program, newEnvironment(item))
	if err != nil {
		return false
	}
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// Apply returns the items matching f in their original order. A nil filter matches everything.
func Apply(f Filter, items []tmdb.Item) []tmdb.Item {
	if f == nil {
		return items
	}

	matched := make([]tmdb.Item, 0, len(items))
	for _, item := range items {
		if f.Evaluate(item) {
			matched = append(matched, item)
		}
	}
	return matched
}

// newEnvironment exposes item fields and helper functions to expressions
func newEnvironment(item tmdb.Item) map[string]any {
	env := make(map[string]any, 24)

	env["Item"] = item
	env["ID"] = item.ID
	env["Title"] = item.DisplayTitle()
	env["MediaType"] = string(item.MediaType)
	env["Overview"] = item.Overview
	env["Language"] = item.OriginalLanguage
	env["Date"] = item.Date()
	env["Year"] = yearOf(item.Date())
	env["VoteAverage"] = item.VoteAverage
	env["VoteCount"] = item.VoteCount
	env["Popularity"] = item.Popularity
	env["Adult"] = item.Adult
	env["HasPoster"] = item.PosterPath != ""

	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["daysSince"] = func(date string) int {
		t, err := time.Parse(time.DateOnly, date)
		if err != nil {
			return -1
		}
		return int(time.Since(t).Hours() / 24)
	}

	return env
}

// yearOf returns the year of a YYYY-MM-DD date, 0 when absent
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
