// Package cst defines the grammar node tags of the SystemVerilog subset and
// read-only accessors over the trees built by pkg/parser.
//
// Accessors never guess: when a node does not have the expected shape they
// return an error matching syntax.ErrMalformedTree.
//
// # Node shapes
//
// Child indices are fixed per tag; nil marks an omitted optional part.
//
//	DescriptionList      [item...]
//	ModuleDeclaration    [ModuleHeader, ModuleItemList, 'endmodule', EndLabel?]
//	ModuleHeader         ['module', id, FormalParameterList?, PortList?, ';']
//	PackageDeclaration   ['package', id, ';', PackageItemList, 'endpackage', EndLabel?]
//	ClassDeclaration     [ClassHeader, ClassItemList, 'endclass', EndLabel?]
//	ClassHeader          ['virtual'?, 'class', id, FormalParameterList?, ExtendsClause?, ';']
//	FormalParameterList  ['#', '(', ParamDeclaration, ',', ..., ')']
//	ParamDeclaration     [keyword?, ParamType, TrailingAssign?, ';'?]
//	                     [keyword?, 'type', TypeAssignment, ';'?]
//	ParamType            [TypeInfo, id, UnpackedDimensions?]
//	TypeInfo             [base?, signing?, PackedDimensions?]
//	TypeAssignment       [id, '='?, TypeInfo | expression?]
//	TrailingAssign       ['=', expression]
//	FunctionDeclaration  [FunctionHeader, StatementList, 'endfunction', EndLabel?]
//	FunctionHeader       [qualifier?, 'function', lifetime?, return type?, id, PortList?, ';']
//	PreprocessorInclude  ['`include', string]
//	BinaryExpression     [lhs, operator, rhs]
//	Reference            [id | QualifiedId | FunctionCall, extension...]
//	FunctionCall         [callee, ArgumentList?]
//	VoidCast             ['void', ''', '(', expression, ')']
package cst

import "github.com/leapstack-labs/svkit/pkg/syntax"

// Node tags.
const (
	DescriptionList syntax.NodeTag = iota + 1

	ModuleDeclaration
	ModuleHeader
	ModuleItemList
	PackageDeclaration
	PackageItemList
	ClassDeclaration
	ClassHeader
	ClassItemList
	ExtendsClause
	EndLabel

	FormalParameterList
	ParamDeclaration
	ParamType
	TypeInfo
	TypeAssignment
	TrailingAssign
	PackedDimensions
	UnpackedDimensions
	Dimension

	DataDeclaration
	VariableDeclarationList
	VariableDeclaration
	ContinuousAssign
	InitialStatement

	FunctionDeclaration
	FunctionHeader
	PortList
	PortItem

	StatementList
	AssignmentStatement
	ExpressionStatement
	ForLoopStatement
	ForInitialization
	SeqBlock
	IfStatement
	ReturnStatement
	NullStatement

	BinaryExpression
	UnaryExpression
	PostfixExpression
	AssignmentExpression
	ConditionExpression
	ParenGroup
	Concatenation
	Reference
	QualifiedId
	HierarchyExtension
	Select
	FunctionCall
	MacroCall
	ArgumentList
	VoidCast

	PreprocessorInclude
	PreprocessorDefine
	PreprocessorIfdef
	PreprocessorIfndef
	PreprocessorElse
	PreprocessorEndif
	PreprocessorUndef
)

var names = map[syntax.NodeTag]string{
	DescriptionList:         "kDescriptionList",
	ModuleDeclaration:       "kModuleDeclaration",
	ModuleHeader:            "kModuleHeader",
	ModuleItemList:          "kModuleItemList",
	PackageDeclaration:      "kPackageDeclaration",
	PackageItemList:         "kPackageItemList",
	ClassDeclaration:        "kClassDeclaration",
	ClassHeader:             "kClassHeader",
	ClassItemList:           "kClassItems",
	ExtendsClause:           "kExtendsList",
	EndLabel:                "kLabel",
	FormalParameterList:     "kFormalParameterList",
	ParamDeclaration:        "kParamDeclaration",
	ParamType:               "kParamType",
	TypeInfo:                "kTypeInfo",
	TypeAssignment:          "kTypeAssignment",
	TrailingAssign:          "kTrailingAssign",
	PackedDimensions:        "kPackedDimensions",
	UnpackedDimensions:      "kUnpackedDimensions",
	Dimension:               "kDimension",
	DataDeclaration:         "kDataDeclaration",
	VariableDeclarationList: "kVariableDeclarationAssignmentList",
	VariableDeclaration:     "kVariableDeclarationAssignment",
	ContinuousAssign:        "kContinuousAssignmentStatement",
	InitialStatement:        "kInitialStatement",
	FunctionDeclaration:     "kFunctionDeclaration",
	FunctionHeader:          "kFunctionHeader",
	PortList:                "kPortList",
	PortItem:                "kPortItem",
	StatementList:           "kBlockItemStatementList",
	AssignmentStatement:     "kNetVariableAssignment",
	ExpressionStatement:     "kStatement",
	ForLoopStatement:        "kForLoopStatement",
	ForInitialization:       "kForInitialization",
	SeqBlock:                "kSeqBlock",
	IfStatement:             "kConditionalStatement",
	ReturnStatement:         "kJumpStatement",
	NullStatement:           "kNullStatement",
	BinaryExpression:        "kBinaryExpression",
	UnaryExpression:         "kUnaryPrefixExpression",
	PostfixExpression:       "kIncrementDecrementExpression",
	AssignmentExpression:    "kAssignmentExpression",
	ConditionExpression:     "kConditionExpression",
	ParenGroup:              "kParenGroup",
	Concatenation:           "kConcatenationExpression",
	Reference:               "kReference",
	QualifiedId:             "kQualifiedId",
	HierarchyExtension:      "kHierarchyExtension",
	Select:                  "kSelectVariableDimension",
	FunctionCall:            "kFunctionCall",
	MacroCall:               "kMacroCall",
	ArgumentList:            "kArgumentList",
	VoidCast:                "kVoidcast",
	PreprocessorInclude:     "kPreprocessorInclude",
	PreprocessorDefine:      "kPreprocessorDefine",
	PreprocessorIfdef:       "kPreprocessorIfdef",
	PreprocessorIfndef:      "kPreprocessorIfndef",
	PreprocessorElse:        "kPreprocessorElse",
	PreprocessorEndif:       "kPreprocessorEndif",
	PreprocessorUndef:       "kPreprocessorUndef",
}

func init() {
	syntax.RegisterNodeNames(names)
}

// TagByName returns the tag whose display name is name, as printed by
// syntax.Fprint.
func TagByName(name string) (syntax.NodeTag, bool) {
	for t, n := range names {
		if n == name {
			return t, true
		}
	}
	return 0, false
}
