package ast

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestPrint_ConstantValue(t *testing.T) {
	n := New(ConstantValue, TokenInfo{Lexeme: "25", Pos: Pos{File: "t.tess", Line: 1, Column: 1}})
	n.Value = Value{Kind: LiteralInt, Int: 25}

	out := Print(n)
	if !strings.Contains(out, "ConstantValue") {
		t.Errorf("expected output to mention ConstantValue, got %s", out)
	}
	if !strings.Contains(out, "25") {
		t.Errorf("expected output to carry the literal value, got %s", out)
	}
}

func TestPrint_NestedChildren(t *testing.T) {
	lhs := New(ConstantValue, TokenInfo{Lexeme: "1"})
	lhs.Value = Value{Kind: LiteralInt, Int: 1}
	rhs := New(ConstantValue, TokenInfo{Lexeme: "2"})
	rhs.Value = Value{Kind: LiteralInt, Int: 2}

	bin := New(BinaryOperator, TokenInfo{Lexeme: "+"})
	bin.AddChild(lhs)
	bin.AddChild(rhs)

	out := Print(bin)
	if !strings.Contains(out, "BinaryOperator") {
		t.Fatalf("expected BinaryOperator in dump, got %s", out)
	}
	if strings.Count(out, "ConstantValue") != 2 {
		t.Fatalf("expected both operands dumped, got %s", out)
	}
}

func TestReparent_MovesChildBetweenParents(t *testing.T) {
	oldParent := New(Expression, TokenInfo{})
	child := New(ConstantValue, TokenInfo{})
	oldParent.AddChild(child)

	newParent := New(BinaryOperator, TokenInfo{})
	child.Reparent(newParent)

	if len(oldParent.Children) != 0 {
		t.Errorf("expected child removed from old parent, got %d children", len(oldParent.Children))
	}
	if len(newParent.Children) != 1 || newParent.Children[0] != child {
		t.Errorf("expected child attached to new parent")
	}
	if child.Parent != newParent {
		t.Errorf("expected child.Parent updated to new parent")
	}
}

// TestSimplify_StructuralEquality compares two independently built
// dump trees with cmp.Diff instead of the string-contains checks
// above: it catches a child in the wrong position or an extra node
// that substring matching on Print's output would miss.
func TestSimplify_StructuralEquality(t *testing.T) {
	build := func() *Node {
		lhs := New(ConstantValue, TokenInfo{Lexeme: "1"})
		lhs.Value = Value{Kind: LiteralInt, Int: 1}
		rhs := New(ConstantValue, TokenInfo{Lexeme: "2"})
		rhs.Value = Value{Kind: LiteralInt, Int: 2}
		bin := New(BinaryOperator, TokenInfo{Lexeme: "+"})
		bin.AddChild(lhs)
		bin.AddChild(rhs)
		return bin
	}

	a := simplify(build())
	b := simplify(build())

	// Pos carries no file for either tree here, but ignore it anyway:
	// structural equality should not hinge on source position.
	if diff := cmp.Diff(a, b, cmpopts.IgnoreFields(dump{}, "Pos")); diff != "" {
		t.Errorf("two structurally identical ASTs produced different dumps (-first +second):\n%s", diff)
	}

	swapped := build()
	swapped.Children[0], swapped.Children[1] = swapped.Children[1], swapped.Children[0]
	c := simplify(swapped)
	if diff := cmp.Diff(a, c, cmpopts.IgnoreFields(dump{}, "Pos")); diff == "" {
		t.Errorf("expected swapped operand order to produce a structural diff, got none")
	}
}

func TestFlags_Has(t *testing.T) {
	f := FlagExported | FlagVariadic
	if !f.Has(FlagExported) || !f.Has(FlagVariadic) {
		t.Fatal("expected both flags set")
	}
	if f.Has(FlagImported) {
		t.Fatal("did not expect FlagImported set")
	}
}
