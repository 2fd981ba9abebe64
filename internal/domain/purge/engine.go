package purge

import (
	"errors"
	"log/slog"

	"vuexpurge.dev/pkg/vuexpurge/internal/syntax"
)

// Purger replaces mapped spreads of one flavor inside `methods` blocks.
type Purger struct {
	flavor Flavor
}

// New returns a Purger for the given flavor.
func New(flavor Flavor) *Purger {
	return &Purger{flavor: flavor}
}

// Name implements Transform.
func (p *Purger) Name() string {
	return "purge-" + p.flavor.Name
}

// env is the per-run state threaded through the traversal. It is computed
// once from the root before the walk starts.
type env struct {
	flavor     Flavor
	dialect    Dialect
	semicolons bool
	stats      *Stats
}

// Transform implements Transform. The input tree is never modified; on error
// no tree is returned.
func (p *Purger) Transform(root *syntax.Node) (Result, error) {
	if root == nil {
		return Result{}, nil
	}

	stats := &Stats{}
	e := env{
		flavor:     p.flavor,
		dialect:    DetectDialect(root),
		semicolons: DetectSemicolons(root),
		stats:      stats,
	}

	out, err := e.visit(root)
	if err != nil {
		return Result{}, err
	}

	slog.Debug("purge pass done",
		"pass", p.Name(),
		"dialect", e.dialect.String(),
		"rewritten", stats.Rewritten,
		"methods", stats.Methods,
		"skipped", stats.Skipped)

	return Result{Root: out, Stats: *stats}, nil
}

// visit rewrites children first, then applies the node rule.
func (e env) visit(n *syntax.Node) (*syntax.Node, error) {
	if n.IsLeaf() {
		return n, nil
	}

	children, changed, err := mapSlice(n.Children, e.visit)
	if err != nil {
		return nil, err
	}

	if changed {
		n = n.With(children)
	}

	if !IsTargetProperty(n) {
		return n, nil
	}

	return e.rewriteProperty(n)
}

func (e env) rewriteProperty(pair *syntax.Node) (*syntax.Node, error) {
	value := pair.ChildByField("value")
	if value == nil || value.Kind != syntax.KindObject {
		return pair, nil
	}

	rewritten, err := e.rewriteElements(pair, value)
	if err != nil {
		return nil, err
	}

	if rewritten == value {
		return pair, nil
	}

	return pair.Replace(value, rewritten), nil
}

// rewriteElements walks the object's children in order, swapping each mapped
// spread for its generated methods. Punctuation is carried along so commas
// stay between elements.
func (e env) rewriteElements(pair, obj *syntax.Node) (*syntax.Node, error) {
	out := make([]*syntax.Node, 0, len(obj.Children))

	changed := false
	dropComma := false

	for i, child := range obj.Children {
		if dropComma {
			dropComma = false

			if child.Kind == syntax.KindComma {
				continue
			}
		}

		call := mappedCall(child, e.flavor.Helper)
		if call == nil {
			out = append(out, child)
			continue
		}

		ext, err := ExtractArguments(call.ChildByField("arguments"))
		if err != nil {
			if !errors.Is(err, ErrUnsupportedArguments) {
				return nil, err
			}

			slog.Debug("mapped spread left as is",
				"helper", e.flavor.Helper,
				"offset", child.Start,
				"error", err)

			e.stats.Skipped++

			out = append(out, child)

			continue
		}

		s := synthesizer{env: e, layout: newLayout(child, pair)}

		methods, err := s.methods(ext)
		if err != nil {
			return nil, err
		}

		changed = true
		e.stats.Rewritten++
		e.stats.Methods += len(methods)

		if len(methods) == 0 {
			dropComma = i+1 < len(obj.Children)

			continue
		}

		for j, m := range methods {
			if j > 0 {
				out = append(out, factory.Punct(",", ""))
			}

			out = append(out, m)
		}
	}

	if !changed {
		return obj, nil
	}

	return obj.With(out), nil
}
