package syntax

// Kind is the node type, named after the tree-sitter JavaScript/TypeScript
// grammars so parsed and synthesized nodes share one vocabulary.
type Kind string

// Node kinds the purge passes inspect or synthesize.
const (
	KindProgram              Kind = "program"
	KindEOF                  Kind = "eof"
	KindComment              Kind = "comment"
	KindError                Kind = "ERROR"
	KindObject               Kind = "object"
	KindPair                 Kind = "pair"
	KindSpreadElement        Kind = "spread_element"
	KindShorthandProperty    Kind = "shorthand_property_identifier"
	KindComputedPropertyName Kind = "computed_property_name"
	KindPropertyIdentifier   Kind = "property_identifier"
	KindIdentifier           Kind = "identifier"
	KindCallExpression       Kind = "call_expression"
	KindMemberExpression     Kind = "member_expression"
	KindArguments            Kind = "arguments"
	KindArray                Kind = "array"
	KindString               Kind = "string"
	KindTemplateString       Kind = "template_string"
	KindRegex                Kind = "regex"
	KindThis                 Kind = "this"
	KindMethodDefinition     Kind = "method_definition"
	KindFormalParameters     Kind = "formal_parameters"
	KindOptionalParameter    Kind = "optional_parameter"
	KindTypeAnnotation       Kind = "type_annotation"
	KindPredefinedType       Kind = "predefined_type"
	KindGenericType          Kind = "generic_type"
	KindTypeIdentifier       Kind = "type_identifier"
	KindTypeArguments        Kind = "type_arguments"
	KindStatementBlock       Kind = "statement_block"
	KindReturnStatement      Kind = "return_statement"
	KindExpressionStatement  Kind = "expression_statement"
	KindLexicalDeclaration   Kind = "lexical_declaration"
	KindVariableDeclaration  Kind = "variable_declaration"
	KindImportStatement      Kind = "import_statement"
	KindScriptElement        Kind = "script_element"
	KindStartTag             Kind = "start_tag"
	KindAttribute            Kind = "attribute"
	KindAttributeName        Kind = "attribute_name"
	KindAttributeValue       Kind = "attribute_value"
	KindQuotedAttributeValue Kind = "quoted_attribute_value"
	KindRawText              Kind = "raw_text"

	// KindOmittedExpression marks an array hole such as the middle element
	// of ['a', , 'b']. The grammar emits no node for it.
	KindOmittedExpression Kind = "omitted_expression"
)

// Punctuation kinds are the token text itself.
const (
	KindComma     Kind = ","
	KindSemicolon Kind = ";"
	KindLBracket  Kind = "["
)

// atomicKinds are converted to a single token even though the grammar gives
// them children: their text is needed verbatim.
var atomicKinds = map[Kind]bool{
	KindString:         true,
	KindTemplateString: true,
	KindRegex:          true,
}

// IsAtomic reports whether nodes of kind k are kept as one token.
func IsAtomic(k Kind) bool {
	return atomicKinds[k]
}
