package parser

import (
	"strings"
	"testing"
)

// parseOne parses source expected to hold exactly one valid definition
func parseOne(t *testing.T, source string) *FunctionDefinition {
	t.Helper()
	def, err := ParseFunction(source, "test.tql")
	if err != nil {
		t.Fatalf("ParseFunction failed: %v", err)
	}
	return def
}

const federalTaxSource = `fun calculate_federal_tax($taxpayer: taxpayer, $year: tax_year, $status: filing_status) -> double:
    match
        let $taxable = calculate_taxable_income($taxpayer, $year, $status);
        let $min, $max, $rate, $base = get_tax_bracket($taxable, $year, $status);
        let $tax = $base + (($taxable - $min) * $rate);
    return first $tax;`

const totalIncomeSource = `fun calculate_total_income($taxpayer: taxpayer) -> double:
    match
        $income (earner: $taxpayer, type: $type) isa income_source, has amount $amt;
    return sum($amt);`

const taxBracketSource = `fun get_tax_bracket($income: double, $year: tax_year, $status: filing_status) -> bracket_min, bracket_max, rate, base_tax:
    match
        (applicable_year: $year,
         applicable_status: $status,
         bracket: $bracket) isa tax_bracket_rule;
        $bracket has bracket_min $min, has bracket_max $max, has rate $rate, has base_tax $base;
        $income >= $min;
        $income <= $max;
    return first $min, $max, $rate, $base;`

const mutualFriendsSource = `fun mutual_friends($p1: person, $p2: person) -> { person }:
    match
        $f1 isa friendship, links (friend: $p1, friend: $pm);
        $f2 isa friendship, links (friend: $p2, friend: $pm);
    return { $pm };`

func TestParser_FederalTax(t *testing.T) {
	def := parseOne(t, federalTaxSource)

	sig := def.Signature
	if sig.Name != "calculate_federal_tax" {
		t.Errorf("Expected name 'calculate_federal_tax', got %q", sig.Name)
	}

	if len(sig.Args) != 3 {
		t.Fatalf("Expected 3 arguments, got %d", len(sig.Args))
	}
	if sig.Args[0].Variable != "taxpayer" {
		t.Errorf("Expected first argument 'taxpayer', got %q", sig.Args[0].Variable)
	}
	label, ok := sig.Args[1].Type.(*LabelType)
	if !ok {
		t.Fatalf("Expected LabelType for second argument, got %T", sig.Args[1].Type)
	}
	if label.Name != "tax_year" {
		t.Errorf("Expected label 'tax_year', got %q", label.Name)
	}

	single, ok := sig.Output.(*SingleOutput)
	if !ok {
		t.Fatalf("Expected SingleOutput, got %T", sig.Output)
	}
	builtin, ok := single.Types[0].(*BuiltinType)
	if !ok {
		t.Fatalf("Expected BuiltinType output, got %T", single.Types[0])
	}
	if builtin.Token != "double" {
		t.Errorf("Expected token 'double', got %q", builtin.Token)
	}

	if len(def.Body) != 3 {
		t.Fatalf("Expected 3 body statements, got %d", len(def.Body))
	}

	// Multi-assignment let
	multi, ok := def.Body[1].(*LetStmt)
	if !ok {
		t.Fatalf("Expected LetStmt, got %T", def.Body[1])
	}
	if len(multi.Vars) != 4 {
		t.Errorf("Expected 4 bound variables, got %d", len(multi.Vars))
	}
	call, ok := multi.Value.(*CallExpr)
	if !ok {
		t.Fatalf("Expected CallExpr value, got %T", multi.Value)
	}
	if call.Function != "get_tax_bracket" {
		t.Errorf("Expected call to 'get_tax_bracket', got %q", call.Function)
	}
	if len(call.Arguments) != 3 {
		t.Errorf("Expected 3 call arguments, got %d", len(call.Arguments))
	}

	// Arithmetic let with grouping
	arith, ok := def.Body[2].(*LetStmt)
	if !ok {
		t.Fatalf("Expected LetStmt, got %T", def.Body[2])
	}
	bin, ok := arith.Value.(*BinaryExpr)
	if !ok {
		t.Fatalf("Expected BinaryExpr value, got %T", arith.Value)
	}
	if bin.Operator != "+" {
		t.Errorf("Expected '+' at top of expression, got %q", bin.Operator)
	}

	ret, ok := def.Return.(*SingleReturn)
	if !ok {
		t.Fatalf("Expected SingleReturn, got %T", def.Return)
	}
	if ret.Selector != SelectorFirst {
		t.Errorf("Expected first selector, got %v", ret.Selector)
	}
	if len(ret.Vars) != 1 || ret.Vars[0] != "tax" {
		t.Errorf("Expected [tax], got %v", ret.Vars)
	}
}

func TestParser_TotalIncome(t *testing.T) {
	def := parseOne(t, totalIncomeSource)

	if len(def.Body) != 1 {
		t.Fatalf("Expected 1 body statement, got %d", len(def.Body))
	}

	pattern, ok := def.Body[0].(*PatternStmt)
	if !ok {
		t.Fatalf("Expected PatternStmt, got %T", def.Body[0])
	}
	if pattern.Subject != "income" {
		t.Errorf("Expected subject 'income', got %q", pattern.Subject)
	}
	if pattern.Relation == nil || len(pattern.Relation.Roles) != 2 {
		t.Fatalf("Expected a 2-role relation tuple, got %+v", pattern.Relation)
	}
	if pattern.Relation.Roles[0].Role != "earner" {
		t.Errorf("Expected role 'earner', got %q", pattern.Relation.Roles[0].Role)
	}

	if len(pattern.Constraints) != 2 {
		t.Fatalf("Expected 2 constraints, got %d", len(pattern.Constraints))
	}
	isa, ok := pattern.Constraints[0].(*IsaConstraint)
	if !ok || isa.TypeName != "income_source" {
		t.Errorf("Expected isa income_source, got %+v", pattern.Constraints[0])
	}
	has, ok := pattern.Constraints[1].(*HasConstraint)
	if !ok || has.Attribute != "amount" {
		t.Errorf("Expected has amount, got %+v", pattern.Constraints[1])
	}

	ret, ok := def.Return.(*ReduceReturn)
	if !ok {
		t.Fatalf("Expected ReduceReturn, got %T", def.Return)
	}
	if ret.Operator != "sum" || ret.Variable != "amt" {
		t.Errorf("Expected sum($amt), got %s($%s)", ret.Operator, ret.Variable)
	}
}

func TestParser_TaxBracket(t *testing.T) {
	def := parseOne(t, taxBracketSource)

	single, ok := def.Signature.Output.(*SingleOutput)
	if !ok {
		t.Fatalf("Expected SingleOutput, got %T", def.Signature.Output)
	}
	if len(single.Types) != 4 {
		t.Fatalf("Expected 4 output types, got %d", len(single.Types))
	}

	if len(def.Body) != 4 {
		t.Fatalf("Expected 4 body statements, got %d", len(def.Body))
	}

	// Leading relation tuple with no subject variable
	pattern, ok := def.Body[0].(*PatternStmt)
	if !ok {
		t.Fatalf("Expected PatternStmt, got %T", def.Body[0])
	}
	if pattern.Subject != "" {
		t.Errorf("Expected no subject, got %q", pattern.Subject)
	}
	if pattern.Relation == nil || len(pattern.Relation.Roles) != 3 {
		t.Fatalf("Expected a 3-role relation tuple, got %+v", pattern.Relation)
	}

	// Multi-has pattern
	hasPattern, ok := def.Body[1].(*PatternStmt)
	if !ok {
		t.Fatalf("Expected PatternStmt, got %T", def.Body[1])
	}
	if len(hasPattern.Constraints) != 4 {
		t.Errorf("Expected 4 has constraints, got %d", len(hasPattern.Constraints))
	}

	// Standalone comparisons
	cmp, ok := def.Body[2].(*ComparisonStmt)
	if !ok {
		t.Fatalf("Expected ComparisonStmt, got %T", def.Body[2])
	}
	if cmp.Operator != ">=" {
		t.Errorf("Expected '>=', got %q", cmp.Operator)
	}

	ret, ok := def.Return.(*SingleReturn)
	if !ok {
		t.Fatalf("Expected SingleReturn, got %T", def.Return)
	}
	if len(ret.Vars) != 4 {
		t.Errorf("Expected 4 return variables, got %d", len(ret.Vars))
	}
}

func TestParser_MutualFriends(t *testing.T) {
	def := parseOne(t, mutualFriendsSource)

	stream, ok := def.Signature.Output.(*StreamOutput)
	if !ok {
		t.Fatalf("Expected StreamOutput, got %T", def.Signature.Output)
	}
	label, ok := stream.Types[0].(*LabelType)
	if !ok || label.Name != "person" {
		t.Errorf("Expected stream of person, got %+v", stream.Types[0])
	}

	pattern, ok := def.Body[0].(*PatternStmt)
	if !ok {
		t.Fatalf("Expected PatternStmt, got %T", def.Body[0])
	}
	links, ok := pattern.Constraints[1].(*LinksConstraint)
	if !ok {
		t.Fatalf("Expected LinksConstraint, got %T", pattern.Constraints[1])
	}
	if len(links.Relation.Roles) != 2 {
		t.Errorf("Expected 2 role players, got %d", len(links.Relation.Roles))
	}

	ret, ok := def.Return.(*StreamReturn)
	if !ok {
		t.Fatalf("Expected StreamReturn, got %T", def.Return)
	}
	if len(ret.Vars) != 1 || ret.Vars[0] != "pm" {
		t.Errorf("Expected [pm], got %v", ret.Vars)
	}
}

func TestParser_ZeroParameters(t *testing.T) {
	def := parseOne(t, `fun standard_deduction() -> double:
        match
            $d isa deduction, has amount $amt;
        return first $amt;`)

	if len(def.Signature.Args) != 0 {
		t.Errorf("Expected 0 arguments, got %d", len(def.Signature.Args))
	}
}

func TestParser_BareReturnWithoutMatch(t *testing.T) {
	def := parseOne(t, `fun latest_year($y: tax_year) -> tax_year:
        return last $y;`)

	if len(def.Body) != 0 {
		t.Errorf("Expected empty body, got %d statements", len(def.Body))
	}
	ret, ok := def.Return.(*SingleReturn)
	if !ok {
		t.Fatalf("Expected SingleReturn, got %T", def.Return)
	}
	if ret.Selector != SelectorLast {
		t.Errorf("Expected last selector, got %v", ret.Selector)
	}
}

func TestParser_SourceSliceIsVerbatim(t *testing.T) {
	def := parseOne(t, mutualFriendsSource)

	if def.Source != mutualFriendsSource {
		t.Errorf("Expected verbatim source slice.\nWant: %q\nGot:  %q", mutualFriendsSource, def.Source)
	}
}

func TestParser_MultipleDefinitions(t *testing.T) {
	source := federalTaxSource + "\n\n" + totalIncomeSource

	defs, err := ParseDefinitions(source, "test.tql")
	if err != nil {
		t.Fatalf("ParseDefinitions failed: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("Expected 2 definitions, got %d", len(defs))
	}
	if defs[1].Signature.Name != "calculate_total_income" {
		t.Errorf("Expected second definition 'calculate_total_income', got %q", defs[1].Signature.Name)
	}
	if !strings.HasPrefix(defs[1].Source, "fun calculate_total_income") {
		t.Errorf("Second definition source slice is wrong: %q", defs[1].Source)
	}
}

func TestParser_MalformedDefinitionDoesNotAbortSiblings(t *testing.T) {
	source := "fun broken( -> double:\nreturn first $x;\n\n" + totalIncomeSource

	defs, err := ParseDefinitions(source, "test.tql")
	if err == nil {
		t.Fatal("Expected parse errors")
	}
	if len(defs) != 1 {
		t.Fatalf("Expected 1 surviving definition, got %d", len(defs))
	}
	if defs[0].Signature.Name != "calculate_total_income" {
		t.Errorf("Expected surviving definition 'calculate_total_income', got %q", defs[0].Signature.Name)
	}
}

func TestParser_ErrorHasLocation(t *testing.T) {
	_, err := ParseFunction("fun missing_paren -> double: return first $x;", "test.tql")
	if err == nil {
		t.Fatal("Expected an error")
	}
	if !strings.Contains(err.Error(), "test.tql:") {
		t.Errorf("Expected error to carry the file location, got %q", err.Error())
	}
}

func TestParser_NestedCalls(t *testing.T) {
	def := parseOne(t, `fun effective_rate($t: taxpayer) -> double:
        match
            let $rate = divide(calculate_federal_tax($t), calculate_total_income($t));
        return first $rate;`)

	let, ok := def.Body[0].(*LetStmt)
	if !ok {
		t.Fatalf("Expected LetStmt, got %T", def.Body[0])
	}
	outer, ok := let.Value.(*CallExpr)
	if !ok {
		t.Fatalf("Expected CallExpr, got %T", let.Value)
	}
	if outer.Function != "divide" {
		t.Errorf("Expected outer call 'divide', got %q", outer.Function)
	}
	inner, ok := outer.Arguments[0].(*CallExpr)
	if !ok {
		t.Fatalf("Expected nested CallExpr, got %T", outer.Arguments[0])
	}
	if inner.Function != "calculate_federal_tax" {
		t.Errorf("Expected nested call 'calculate_federal_tax', got %q", inner.Function)
	}
}
