// Package purge rewrites spreads of Vuex mapping helpers inside `methods`
// blocks into explicit methods that forward to the store.
package purge

import "vuexpurge.dev/pkg/vuexpurge/internal/syntax"

// Transform rewrites a syntax tree. Implementations must not mutate the input
// tree; on error no tree is returned.
type Transform interface {
	Name() string
	Transform(root *syntax.Node) (Result, error)
}

// Result is the output of a Transform.
type Result struct {
	Root  *syntax.Node
	Stats Stats
}

// Stats counts what a Transform did.
type Stats struct {
	Rewritten int // mapped spreads replaced by methods
	Methods   int // methods generated
	Skipped   int // mapped spreads left alone because of their arguments
}

// Add returns the sum of both stats.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Rewritten: s.Rewritten + o.Rewritten,
		Methods:   s.Methods + o.Methods,
		Skipped:   s.Skipped + o.Skipped,
	}
}

// Changed reports whether any spread was rewritten.
func (s Stats) Changed() bool {
	return s.Rewritten > 0
}

// TransformFunc adapts a named function to the Transform interface.
type TransformFunc struct {
	N string
	F func(*syntax.Node) (Result, error)
}

func (t TransformFunc) Name() string { return t.N }

func (t TransformFunc) Transform(root *syntax.Node) (Result, error) { return t.F(root) }

// Chain composes transforms left-to-right into a single Transform. Each
// transform receives the output of the previous one and stats are summed.
func Chain(transforms ...Transform) Transform {
	return TransformFunc{
		N: "chain",
		F: func(root *syntax.Node) (Result, error) {
			out := Result{Root: root}

			for _, t := range transforms {
				r, err := t.Transform(out.Root)
				if err != nil {
					return Result{}, err
				}

				out.Root = r.Root
				out.Stats = out.Stats.Add(r.Stats)
			}

			return out, nil
		},
	}
}

// mapSlice applies fn to each element. Returns (newSlice, true) if any
// element changed, or (original, false) if all elements are identical.
func mapSlice[T comparable](items []T, fn func(T) (T, error)) ([]T, bool, error) {
	var out []T

	modified := false

	for i, item := range items {
		newItem, err := fn(item)
		if err != nil {
			return nil, false, err
		}

		if newItem != item && !modified {
			out = make([]T, len(items))
			copy(out[:i], items[:i])
			modified = true
		}

		if modified {
			out[i] = newItem
		}
	}

	if !modified {
		return items, false, nil
	}

	return out, true, nil
}
