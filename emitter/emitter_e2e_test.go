package emitter

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"rbc/ast"
	"rbc/ir"
	"rbc/lexer"
	"rbc/parser"
	"rbc/refvm"
	"rbc/runtime"
	"rbc/scope"
)

// compileAndRun lexes, parses, and emits source against a fresh refvm
// module, then runs "main" with stdin wired to in and stdout captured into
// the returned buffer. It exercises the exact same pipeline cmd/rbc's
// "run" subcommand drives, end to end, against the seed scenarios
// spec.md §8 describes (E1-E6).
func compileAndRun(t *testing.T, source, stdin string, wordSize int) (string, int64, error) {
	t.Helper()

	tokens, err := lexer.NewWithWordSize(source, wordSize).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	def, err := parser.New(tokens, ast.DefaultFactory{}).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	prog := def.(*ast.Program)

	builder := refvm.NewBuilder(wordSize)
	s := scope.New()
	runtime.Register(builder, s, wordSize)

	em := New(builder, s, wordSize)
	if err := em.EmitProgram(prog); err != nil {
		t.Fatalf("EmitProgram: %v", err)
	}

	vm := refvm.New(builder.Module(), wordSize)
	var out bytes.Buffer
	bufOut := bufio.NewWriter(&out)
	vm.Stdout = bufOut
	vm.Stdin = bufio.NewReader(strings.NewReader(stdin))

	result, runErr := vm.RunMain(ir.Mangle("main"))
	bufOut.Flush()
	return out.String(), result, runErr
}

// TestE1HelloWorld is spec.md §8 scenario E1.
func TestE1HelloWorld(t *testing.T) {
	src := `main(){ extrn putstr; putstr("hello!*n"); }`
	out, _, err := compileAndRun(t, src, "", refvm.DefaultBytesPerWord)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "hello!\n" {
		t.Fatalf("got %q, want %q", out, "hello!\n")
	}
}

// TestE2RecursiveFactorial is spec.md §8 scenario E2.
func TestE2RecursiveFactorial(t *testing.T) {
	src := `fact(n) return(n==0?1:n*fact(n-1));
main(){extrn putnumb, fact; putnumb(fact(5));}`
	out, _, err := compileAndRun(t, src, "", refvm.DefaultBytesPerWord)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "120" {
		t.Fatalf("got %q, want %q", out, "120")
	}
}

// TestE3WhileLoopWithCompoundAssign is spec.md §8 scenario E3.
func TestE3WhileLoopWithCompoundAssign(t *testing.T) {
	src := `main(){ auto i; i=0; while(i<3){ i=+1; } extrn putnumb; putnumb(i); }`
	out, _, err := compileAndRun(t, src, "", refvm.DefaultBytesPerWord)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "3" {
		t.Fatalf("got %q, want %q", out, "3")
	}
}

// TestE4VectorIndexingWithPostIncrement is spec.md §8 scenario E4.
func TestE4VectorIndexingWithPostIncrement(t *testing.T) {
	src := `v[2] 1,2,3; main(){ extrn v, putnumb; auto s, i; s=0; i=0; while(i<3){ s=+v[i++]; } putnumb(s); }`
	out, _, err := compileAndRun(t, src, "", refvm.DefaultBytesPerWord)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "6" {
		t.Fatalf("got %q, want %q", out, "6")
	}
}

// TestE5BytesPerWordGlobal is spec.md §8 scenario E5, run once per target
// word size the spec allows.
func TestE5BytesPerWordGlobal(t *testing.T) {
	for _, wordSize := range []int{4, 8} {
		src := `main(){ extrn putnumb, __bytes_per_word; putnumb(__bytes_per_word); }`
		out, _, err := compileAndRun(t, src, "", wordSize)
		if err != nil {
			t.Fatalf("run (wordSize=%d): %v", wordSize, err)
		}
		want := "4"
		if wordSize == 8 {
			want = "8"
		}
		if out != want {
			t.Fatalf("wordSize=%d: got %q, want %q", wordSize, out, want)
		}
	}
}

// TestE6EchoStdinUntilEOT is spec.md §8 scenario E6.
func TestE6EchoStdinUntilEOT(t *testing.T) {
	src := `main(){ auto c; while((c=getchar())!='*e') putchar(c); }`
	out, _, err := compileAndRun(t, src, "abc\x04", refvm.DefaultBytesPerWord)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "abc" {
		t.Fatalf("got %q, want %q", out, "abc")
	}
}

// TestSwitchFallsThroughToEndWithNoMatch exercises B's switch having no
// default label (spec.md §4.4): when no case matches, control passes
// straight to the statement after the switch.
func TestSwitchFallsThroughToEndWithNoMatch(t *testing.T) {
	src := `main(){ extrn putnumb; auto x; x=0; switch(99){ case 1: x=1; case 2: x=2; } putnumb(x); }`
	out, _, err := compileAndRun(t, src, "", refvm.DefaultBytesPerWord)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "0" {
		t.Fatalf("got %q, want %q", out, "0")
	}
}

// TestSwitchCaseFallsThroughToNextCase confirms B's switch/case has no
// implicit break: reaching case 1 continues straight into case 2's body.
func TestSwitchCaseFallsThroughToNextCase(t *testing.T) {
	src := `main(){ extrn putnumb; auto x; x=0; switch(1){ case 1: x=+1; case 2: x=+10; } putnumb(x); }`
	out, _, err := compileAndRun(t, src, "", refvm.DefaultBytesPerWord)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "11" {
		t.Fatalf("got %q, want %q", out, "11")
	}
}

// TestBreakExitsInnermostSwitch confirms "break" inside a switch jumps to
// the statement after the switch, not after any enclosing loop.
func TestBreakExitsInnermostSwitch(t *testing.T) {
	src := `main(){ extrn putnumb; auto x, i; x=0; i=0;
while(i<2){
	switch(i){ case 0: x=+1; break; case 1: x=+100; }
	x=+1000;
	i=+1;
}
putnumb(x); }`
	out, _, err := compileAndRun(t, src, "", refvm.DefaultBytesPerWord)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// i=0: case 0 matches, x=+1 (x=1), break skips straight to x=+1000 (x=1001).
	// i=1: case 1 matches, x=+100 (x=1101), falls through to switch end
	// naturally (no case after it), then x=+1000 (x=2101).
	if out != "2101" {
		t.Fatalf("got %q, want %q", out, "2101")
	}
}

// TestGotoJumpsForwardPastIntermediateStatements exercises a forward goto
// to a label discovered by the function-wide pre-pass before the goto
// itself is reached (spec.md §4.4 step 2).
func TestGotoJumpsForwardPastIntermediateStatements(t *testing.T) {
	src := `main(){ extrn putnumb; auto x; x=0; goto skip; x=99; skip: x=+1; putnumb(x); }`
	out, _, err := compileAndRun(t, src, "", refvm.DefaultBytesPerWord)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "1" {
		t.Fatalf("got %q, want %q", out, "1")
	}
}

// TestTernaryMergesThroughStackSlot exercises the ternary operator's
// both-arms-assign-a-temp-then-load lowering (see DESIGN.md).
func TestTernaryMergesThroughStackSlot(t *testing.T) {
	src := `main(){ extrn putnumb; auto x; x = 1 ? 7 : 8; putnumb(x); }`
	out, _, err := compileAndRun(t, src, "", refvm.DefaultBytesPerWord)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "7" {
		t.Fatalf("got %q, want %q", out, "7")
	}
}

// TestEagerBitwiseOperatorsAlwaysEvaluateBothSides confirms & and | never
// short-circuit (spec.md §3): the right operand's side effect (i+=1)
// always happens, even though the left operand alone already determines
// the result of "0 & ...".
func TestEagerBitwiseOperatorsAlwaysEvaluateBothSides(t *testing.T) {
	src := `main(){ extrn putnumb; auto i; i=0; 0 & (i=+1); putnumb(i); }`
	out, _, err := compileAndRun(t, src, "", refvm.DefaultBytesPerWord)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "1" {
		t.Fatalf("got %q, want %q", out, "1")
	}
}

// TestExitPropagatesAsExitError confirms b.exit() surfaces as a
// runtime.ExitError rather than an ordinary error, the sentinel cmd/rbc's
// "run" subcommand turns into a real process exit.
func TestExitPropagatesAsExitError(t *testing.T) {
	src := `main(){ extrn exit, putstr; putstr("before*n"); exit(); putstr("after*n"); }`
	out, _, err := compileAndRun(t, src, "", refvm.DefaultBytesPerWord)
	if _, ok := err.(runtime.ExitError); !ok {
		t.Fatalf("want runtime.ExitError, got %v (%T)", err, err)
	}
	if out != "before\n" {
		t.Fatalf("got %q, want %q (exit must stop before the second putstr)", out, "before\n")
	}
}
