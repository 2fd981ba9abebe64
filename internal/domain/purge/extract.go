package purge

import (
	"errors"
	"fmt"

	"vuexpurge.dev/pkg/vuexpurge/internal/syntax"
)

// ErrUnsupportedArguments is returned when a helper call's arguments are not
// one of the recognized shapes. It is recoverable: the spread stays as is.
var ErrUnsupportedArguments = errors.New("unsupported helper arguments")

// Mapping pairs a generated method with the store entry it forwards to.
type Mapping struct {
	Method *syntax.Node // key of an object-form entry; nil for array-form
	Target *syntax.Node // expression naming the store entry
}

// Extraction is the namespace and ordered entries of a helper call.
type Extraction struct {
	Namespace string
	Names     []Mapping
}

// ExtractArguments interprets the argument list of a helper call. Supported
// shapes:
//
//	helper(['a', 'b'])
//	helper('ns', ['a', 'b'])
//	helper({ a: 'a', b: 'other' })
//	helper('ns', { a: 'a', b: 'other' })
//
// Array elements are returned as found, holes as KindOmittedExpression
// targets; checking that they are string literals is left to the caller.
// Object-form values must be string literals.
func ExtractArguments(args *syntax.Node) (Extraction, error) {
	if args == nil || args.Kind != syntax.KindArguments {
		return Extraction{}, ErrUnsupportedArguments
	}

	named := args.NamedChildren()

	switch len(named) {
	case 1:
		names, err := extractNames(named[0])
		if err != nil {
			return Extraction{}, err
		}

		return Extraction{Names: names}, nil
	case 2:
		namespace, ok := syntax.StringValue(named[0])
		if !ok {
			return Extraction{}, fmt.Errorf("%w: namespace is a %s", ErrUnsupportedArguments, named[0].Kind)
		}

		names, err := extractNames(named[1])
		if err != nil {
			return Extraction{}, err
		}

		return Extraction{Namespace: namespace, Names: names}, nil
	}

	return Extraction{}, fmt.Errorf("%w: %d arguments", ErrUnsupportedArguments, len(named))
}

func extractNames(list *syntax.Node) ([]Mapping, error) {
	switch list.Kind {
	case syntax.KindArray:
		return extractArrayNames(list), nil
	case syntax.KindObject:
		return extractObjectNames(list)
	}

	return nil, fmt.Errorf("%w: names are a %s", ErrUnsupportedArguments, list.Kind)
}

func extractArrayNames(array *syntax.Node) []Mapping {
	names := make([]Mapping, 0, len(array.Children))

	var prev syntax.Kind

	for _, child := range array.Children {
		switch {
		case child.Named:
			names = append(names, Mapping{Target: child})
		case child.Kind == syntax.KindComma && (prev == syntax.KindLBracket || prev == syntax.KindComma):
			names = append(names, Mapping{Target: &syntax.Node{
				Kind:  syntax.KindOmittedExpression,
				Named: true,
				Start: child.Start,
			}})
		}

		prev = child.Kind
	}

	return names
}

func extractObjectNames(obj *syntax.Node) ([]Mapping, error) {
	entries := obj.NamedChildren()
	names := make([]Mapping, 0, len(entries))

	for _, entry := range entries {
		if entry.Kind != syntax.KindPair {
			return nil, fmt.Errorf("%w: mapping entry is a %s", ErrUnsupportedArguments, entry.Kind)
		}

		key := entry.ChildByField("key")
		if _, ok := methodName(key); !ok {
			return nil, fmt.Errorf("%w: mapping key is a %s", ErrUnsupportedArguments, key.Kind)
		}

		value := entry.ChildByField("value")
		if value == nil || value.Kind != syntax.KindString {
			return nil, fmt.Errorf("%w: mapping value is not a string", ErrUnsupportedArguments)
		}

		names = append(names, Mapping{Method: key, Target: value})
	}

	return names, nil
}

// methodName returns the property name written by an object key.
func methodName(key *syntax.Node) (string, bool) {
	if key == nil {
		return "", false
	}

	switch key.Kind {
	case syntax.KindPropertyIdentifier:
		return key.Text, true
	case syntax.KindString:
		return syntax.StringValue(key)
	}

	return "", false
}
