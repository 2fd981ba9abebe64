package purge

import "vuexpurge.dev/pkg/vuexpurge/internal/syntax"

// PayloadName is the sole parameter of every generated method.
const PayloadName = "payload"

var factory = syntax.NewFactory()

// PayloadParameter returns the parameter declaration of a generated method:
// `payload?: any` when typed, `payload` otherwise.
func PayloadParameter(typed bool) *syntax.Node {
	name := factory.Identifier(PayloadName, "")
	if !typed {
		return name
	}

	return factory.Branch(syntax.KindOptionalParameter,
		factory.Field("pattern", name),
		factory.Punct("?", ""),
		factory.Field("type", factory.Branch(syntax.KindTypeAnnotation,
			factory.Punct(":", ""),
			factory.Token(syntax.KindPredefinedType, "any", " "),
		)),
	)
}

// ReturnType returns the return annotation of a generated method,
// `: Promise<any>` when typed and nil otherwise.
func ReturnType(typed bool) *syntax.Node {
	if !typed {
		return nil
	}

	return factory.Branch(syntax.KindTypeAnnotation,
		factory.Punct(":", ""),
		factory.Branch(syntax.KindGenericType,
			factory.Field("name", factory.Token(syntax.KindTypeIdentifier, "Promise", " ")),
			factory.Field("type_arguments", factory.Branch(syntax.KindTypeArguments,
				factory.Punct("<", ""),
				factory.Token(syntax.KindPredefinedType, "any", ""),
				factory.Punct(">", ""),
			)),
		),
	)
}
