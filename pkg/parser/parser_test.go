package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/svkit/pkg/cst"
	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

func mustParse(t *testing.T, src string) syntax.Symbol {
	t.Helper()
	res, err := Parse(src, "test.sv")
	require.NoError(t, err)
	require.NotNil(t, res.Tree)
	return res.Tree
}

func countTag(root syntax.Symbol, tag syntax.NodeTag) int {
	n := 0
	syntax.Inspect(root, func(sym syntax.Symbol, _ *syntax.Context) bool {
		if syntax.IsNodeTag(sym, tag) {
			n++
		}
		return true
	})
	return n
}

func TestParse_EmptySource(t *testing.T) {
	for _, src := range []string{"", "  \n", "// only a comment\n/* and a block */"} {
		res, err := Parse(src, "empty.sv")
		require.NoError(t, err)
		assert.Nil(t, res.Tree)
		assert.Empty(t, res.Diagnostics)
	}
}

func TestParse_Constructs(t *testing.T) {
	tests := []struct {
		name string
		src  string
		tag  syntax.NodeTag
		want int
	}{
		{"package", "package foo; endpackage", cst.PackageDeclaration, 1},
		{"package with label", "package foo; endpackage : foo", cst.EndLabel, 1},
		{"module with ports", "module m #(parameter int W = 8) (input logic [W-1:0] a, output b); endmodule", cst.PortItem, 2},
		{"class", "class c extends base::obj; int x; endclass", cst.ClassDeclaration, 1},
		{"virtual class", "virtual class c #(type T = int); endclass", cst.ParamDeclaration, 1},
		{"params", "parameter int A = 1; localparam B = A + 2; parameter type T = logic [3:0];", cst.ParamDeclaration, 3},
		{"user typed param", "parameter pkg::t_e P = pkg::X;", cst.QualifiedId, 2},
		{"function", "function automatic int add(input int a, int b); return a + b; endfunction", cst.FunctionDeclaration, 1},
		{"void function", "class c; function void f(); void'(obj.randomize()); endfunction endclass", cst.VoidCast, 1},
		{"for loop", "function f; for (int i = 0; i < 4; ++i) begin x[i] = i; end endfunction", cst.ForLoopStatement, 1},
		{"for step assign", "function f; for (i = 0; i < 4; i = i + 1) ; endfunction", cst.AssignmentExpression, 1},
		{"if else", "function f; if (a) b = 1; else b = 2; endfunction", cst.IfStatement, 1},
		{"create call", `function f; foo_h = foo::type_id::create("foo_h", this); endfunction`, cst.FunctionCall, 1},
		{"method chain", "function f; x = a.b().c[2]; endfunction", cst.Reference, 3},
		{"system call", `function f; s = $sformat("%0d", i); endfunction`, cst.FunctionCall, 1},
		{"ternary", "localparam X = a ? 1 : 2;", cst.ConditionExpression, 1},
		{"concatenation", "assign y = {a, b};", cst.Concatenation, 1},
		{"include", "`include \"foo.svh\"\nmodule m; `include \"bar.svh\"\nendmodule", cst.PreprocessorInclude, 2},
		{"defines", "`ifndef G\n`define G\n`define W 8\n`endif", cst.PreprocessorDefine, 2},
		{"macro item", "class c; `uvm_object_utils(c)\nendclass", cst.MacroCall, 1},
		{"data declarations", "module m; logic [3:0] a, b = 1; pkg::t c; endmodule", cst.VariableDeclaration, 3},
		{"initial", "module m; initial begin a = 1; end endmodule", cst.InitialStatement, 1},
		{"unary and postfix", "function f; i++; x = -a & ~b; endfunction", cst.UnaryExpression, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.src)
			assert.Equal(t, tt.want, countTag(tree, tt.tag))
		})
	}
}

func TestParse_Precedence(t *testing.T) {
	tree := mustParse(t, "localparam X = 1 + 2 * 3;")
	matches := 0
	syntax.Inspect(tree, func(sym syntax.Symbol, _ *syntax.Context) bool {
		n, ok := syntax.AsNode(sym)
		if !ok || n.NodeTag() != cst.BinaryExpression {
			return true
		}
		matches++
		op, _ := syntax.AsLeaf(n.Child(1))
		assert.Equal(t, token.PLUS, op.Token.Kind, "outermost operator is +")
		assert.True(t, syntax.IsNodeTag(n.Child(2), cst.BinaryExpression))
		return false
	})
	assert.Equal(t, 1, matches)
}

func TestParse_ParamShapes(t *testing.T) {
	tree := mustParse(t, "parameter Bar = 1;")
	decl := tree.(*syntax.Node).Child(0).(*syntax.Node)
	require.Equal(t, cst.ParamDeclaration, decl.NodeTag())
	require.Equal(t, 4, decl.NumChildren())

	pt := decl.Child(1).(*syntax.Node)
	assert.Equal(t, cst.ParamType, pt.NodeTag())
	info := pt.Child(0).(*syntax.Node)
	assert.Equal(t, cst.TypeInfo, info.NodeTag())
	assert.Nil(t, info.Child(0))
	assert.Nil(t, info.Child(1))
	assert.Nil(t, info.Child(2))
	assert.True(t, syntax.IsNodeTag(decl.Child(2), cst.TrailingAssign))
	assert.True(t, syntax.IsLeafKind(decl.Child(3), token.SEMICOLON))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"missing semicolon", "package foo\nendpackage", 2},
		{"unterminated string", "`include \"foo.svh\n", 1},
		{"unterminated comment", "module m;\n/* never closed\nendmodule\n", 2},
		{"comment only unterminated", "/* header", 1},
		{"illegal char", "module m; \x01 endmodule", 1},
		{"missing end", "module m;\n", 2},
		{"bad include", "`include foo", 1},
		{"unsupported item", "module m; always @(posedge clk) x = 1; endmodule", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(tt.src, "bad.sv")
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, ErrSyntax))

			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			require.NotEmpty(t, se.Diagnostics)
			assert.Equal(t, tt.line, se.Diagnostics[0].Pos.Line)
			assert.Contains(t, err.Error(), "bad.sv:")
		})
	}
}

func TestParse_UnterminatedBlockComment(t *testing.T) {
	_, err := Parse("package p;\nendpackage\n/* trailing *", "p.sv")
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	require.Len(t, se.Diagnostics, 1)
	assert.Equal(t, "unterminated block comment", se.Diagnostics[0].Message)
	assert.Equal(t, 3, se.Diagnostics[0].Pos.Line)
	assert.Equal(t, 1, se.Diagnostics[0].Pos.Column)
}

func TestParse_EndLabelMismatchIsWarning(t *testing.T) {
	res, err := Parse("module foo; endmodule : bar", "m.sv")
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, SeverityWarning, res.Diagnostics[0].Severity)
	assert.Contains(t, res.Diagnostics[0].String(), `"bar"`)
}
