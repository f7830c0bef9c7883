package metadata

import (
	"errors"
	"testing"

	"github.com/typeql-tools/funcmeta/typeql/parser"
)

func collectFromSource(t *testing.T, source string) []string {
	t.Helper()
	def, err := parser.ParseFunction(source, "test.tql")
	if err != nil {
		t.Fatalf("ParseFunction failed: %v", err)
	}
	calls, err := collectCalls(def.Body, def.Return)
	if err != nil {
		t.Fatalf("collectCalls failed: %v", err)
	}
	return calls
}

func TestCollectCalls_DepthFirstLeftToRight(t *testing.T) {
	calls := collectFromSource(t, `fun pipeline($t: taxpayer) -> double:
    match
        let $a = outer(inner_left($t), inner_right($t));
        let $b = trailing($a);
    return first $b;`)

	expected := []string{"outer", "inner_left", "inner_right", "trailing"}
	if len(calls) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, calls)
	}
	for i, name := range expected {
		if calls[i] != name {
			t.Errorf("Expected call %d to be %q, got %q", i, name, calls[i])
		}
	}
}

func TestCollectCalls_FirstSeenWins(t *testing.T) {
	calls := collectFromSource(t, `fun twice($t: taxpayer) -> double:
    match
        let $a = shared($t);
        let $b = other(shared($t));
    return first $a;`)

	expected := []string{"shared", "other"}
	if len(calls) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, calls)
	}
	for i, name := range expected {
		if calls[i] != name {
			t.Errorf("Expected call %d to be %q, got %q", i, name, calls[i])
		}
	}
}

func TestCollectCalls_InsideConstraintsAndComparisons(t *testing.T) {
	calls := collectFromSource(t, `fun eligible($t: taxpayer, $y: tax_year) -> boolean:
    match
        $t has income threshold_for($y);
        $t (member: $t, group: current_group($t)) isa membership;
        $income >= minimum_income($y);
    return first $t;`)

	expected := []string{"threshold_for", "current_group", "minimum_income"}
	if len(calls) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, calls)
	}
	for i, name := range expected {
		if calls[i] != name {
			t.Errorf("Expected call %d to be %q, got %q", i, name, calls[i])
		}
	}
}

func TestCollectCalls_SelfReferenceIsRecorded(t *testing.T) {
	calls := collectFromSource(t, `fun factorial($n: integer) -> integer:
    match
        let $r = factorial($n);
    return first $r;`)

	if len(calls) != 1 || calls[0] != "factorial" {
		t.Errorf("Expected [factorial], got %v", calls)
	}
}

func TestCollectCalls_EmptyBody(t *testing.T) {
	calls := collectFromSource(t, `fun identity($x: double) -> double:
    return first $x;`)

	if calls == nil {
		t.Fatal("Expected a non-nil slice")
	}
	if len(calls) != 0 {
		t.Errorf("Expected no calls, got %v", calls)
	}
}

func TestCollectCalls_DepthGuard(t *testing.T) {
	// Build an expression nested beyond the traversal limit
	var expr parser.ExprNode = &parser.VariableExpr{Name: "x"}
	for i := 0; i < maxTraversalDepth+10; i++ {
		expr = &parser.BinaryExpr{Left: expr, Operator: "+", Right: &parser.LiteralExpr{Value: int64(1)}}
	}
	body := []parser.StmtNode{&parser.LetStmt{Vars: []string{"y"}, Value: expr}}

	_, err := collectCalls(body, nil)
	if err == nil {
		t.Fatal("Expected a depth error")
	}
	var depthErr *DepthError
	if !errors.As(err, &depthErr) {
		t.Fatalf("Expected DepthError, got %T: %v", err, err)
	}
	if depthErr.Depth <= maxTraversalDepth {
		t.Errorf("Expected depth above %d, got %d", maxTraversalDepth, depthErr.Depth)
	}
}
