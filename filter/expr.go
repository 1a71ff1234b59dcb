package filter

import (
	"maps"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/bodocord/bodocord/bcdice"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	helpers map[string]any
	cache   *lruCache[CompiledFilter]
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helpers: createHelperFunctions(newLRUCache[*regexp.Regexp](64)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles an expression into an executable filter. Shorthand terms
// such as name:"cthulhu" are rewritten first.
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

	source := expression
	if IsShorthand(source) {
		source = ConvertShorthand(source)
	}

	program, err := expr.Compile(source,
		expr.Env(runtimeEnvironment(c.helpers, bcdice.AvailableGameSystem{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helpers,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate reports whether the game system matches. A runtime error counts
// as no match.
func (f *exprFilter) Evaluate(system bcdice.AvailableGameSystem) bool {
	ok, err := f.Match(system)
	return err == nil && ok
}

// Match runs the filter and reports evaluation failures as *EvaluationError
func (f *exprFilter) Match(system bcdice.AvailableGameSystem) (bool, error) {
	result, err := expr.Run(f.program, runtimeEnvironment(f.helpers, system))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			SystemID:   system.ID,
			Err:        err,
		}
	}
	// AsBool guarantees the type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions builds the helpers shared by every evaluation.
// Patterns given to matches are compiled once and kept in patterns.
func createHelperFunctions(patterns *lruCache[*regexp.Regexp]) map[string]any {
	return map[string]any{
		"containsText": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWithText": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWithText": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"matchRegex": func(str, pattern string) (bool, error) {
			re, ok := patterns.Get(pattern)
			if !ok {
				var err error
				re, err = regexp.Compile(pattern)
				if err != nil {
					return false, err
				}
				patterns.Put(pattern, re)
			}
			return re.MatchString(str), nil
		},
	}
}

// runtimeEnvironment exposes the game system fields next to the helpers
func runtimeEnvironment(helpers map[string]any, system bcdice.AvailableGameSystem) map[string]any {
	env := make(map[string]any, len(helpers)+4)
	maps.Copy(env, helpers)
	env["System"] = system
	env["ID"] = system.ID
	env["Name"] = system.Name
	env["SortKey"] = system.SortKey
	return env
}
