package main

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

// runSource compiles and interprets a whole program, returning main's result.
func runSource(t *testing.T, input string) int32 {
	t.Helper()
	module, err := compileProgram(input, false)
	be.Err(t, err, nil)
	result, err := Run(module)
	be.Err(t, err, nil)
	return result
}

func runSourceErr(t *testing.T, input string) error {
	t.Helper()
	module, err := compileProgram(input, false)
	be.Err(t, err, nil)
	_, err = Run(module)
	if err == nil {
		t.Fatalf("expected a runtime error for:\n%s", input)
	}
	return err
}

func TestRunLetAndAdd(t *testing.T) {
	result := runSource(t, `
fn main() -> int {
    let a: int = 10;
    let b: int = 20;
    return a + b;
}
`)
	be.Equal(t, result, 30)
}

func TestRunOperatorPrecedence(t *testing.T) {
	result := runSource(t, `
fn main() -> int {
    return 2 + 3 * 4;
}
`)
	be.Equal(t, result, 14)
}

func TestRunSubtractionChain(t *testing.T) {
	result := runSource(t, `
fn main() -> int {
    return 10 - 3 - 2;
}
`)
	be.Equal(t, result, 5)
}

func TestRunDivisionAndRemainder(t *testing.T) {
	result := runSource(t, `
fn main() -> int {
    return 17 / 5 * 100 + 17 % 5;
}
`)
	be.Equal(t, result, 302)
}

func TestRunGroupedExpression(t *testing.T) {
	result := runSource(t, `
fn main() -> int {
    return (2 + 3) * 4;
}
`)
	be.Equal(t, result, 20)
}

func TestRunIfElse(t *testing.T) {
	result := runSource(t, `
fn main() -> int {
    if (1 < 2) {
        return 1;
    } else {
        return 0;
    }
}
`)
	be.Equal(t, result, 1)
}

func TestRunIfFallthrough(t *testing.T) {
	result := runSource(t, `
fn main() -> int {
    let a: int = 7;
    if (a < 5) {
        return 0;
    }
    return a;
}
`)
	be.Equal(t, result, 7)
}

func TestRunIfTrueLiteral(t *testing.T) {
	result := runSource(t, `
fn main() -> int {
    if (true) {
        return 3;
    }
    return 0;
}
`)
	be.Equal(t, result, 3)
}

func TestRunReassignment(t *testing.T) {
	result := runSource(t, `
fn main() -> int {
    let a: int = 1;
    a = a + 41;
    return a;
}
`)
	be.Equal(t, result, 42)
}

func TestRunLetRedefinition(t *testing.T) {
	result := runSource(t, `
fn main() -> int {
    let a: int = 1;
    let a: int = 9;
    return a;
}
`)
	be.Equal(t, result, 9)
}

func TestRunFunctionCall(t *testing.T) {
	result := runSource(t, `
fn forty() -> int {
    return 40;
}
fn main() -> int {
    return forty() + 2;
}
`)
	be.Equal(t, result, 42)
}

func TestRunNestedCalls(t *testing.T) {
	result := runSource(t, `
fn one() -> int {
    return 1;
}
fn two() -> int {
    return one() + one();
}
fn main() -> int {
    return two() + one();
}
`)
	be.Equal(t, result, 3)
}

func TestRunFloatComparisonDrivesBranch(t *testing.T) {
	result := runSource(t, `
fn main() -> int {
    let x: float = 1.5;
    let y: float = 2.5;
    if (x < y) {
        return 1;
    }
    return 0;
}
`)
	be.Equal(t, result, 1)
}

func TestRunImplicitZeroReturn(t *testing.T) {
	result := runSource(t, `
fn main() -> int {
    let a: int = 5;
}
`)
	be.Equal(t, result, 0)
}

func TestRunAliasSpellings(t *testing.T) {
	result := runSource(t, `
bruh main() snek int {
    lit a : int be 10 rn
    pause a + 20 rn
}
`)
	be.Equal(t, result, 30)
}

func TestRunIntegerWrapsAt32Bits(t *testing.T) {
	result := runSource(t, `
fn main() -> int {
    let big: int = 2147483647;
    return big + 1;
}
`)
	be.Equal(t, result, -2147483648)
}

func TestRunDivideByZero(t *testing.T) {
	err := runSourceErr(t, `
fn main() -> int {
    return 1 / 0;
}
`)
	be.True(t, strings.Contains(err.Error(), "integer divide by zero"))
}

func TestRunRemainderByZero(t *testing.T) {
	err := runSourceErr(t, `
fn main() -> int {
    return 1 % 0;
}
`)
	be.True(t, strings.Contains(err.Error(), "integer remainder by zero"))
}

func TestRunUnboundedRecursion(t *testing.T) {
	err := runSourceErr(t, `
fn f() -> int {
    return f();
}
fn main() -> int {
    return f();
}
`)
	be.True(t, strings.Contains(err.Error(), "call depth exceeded"))
}

func TestRunMissingMain(t *testing.T) {
	module, err := compileProgram("fn helper() -> int { return 1; }", false)
	be.Err(t, err, nil)
	_, err = Run(module)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "no main function"))
}

func TestRunMainMustReturnInt(t *testing.T) {
	module, err := compileProgram("fn main() -> bool { return true; }", false)
	be.Err(t, err, nil)
	_, err = Run(module)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "main must take no arguments and return an int"))
}

func TestRunCompileErrorsAbort(t *testing.T) {
	_, err := compileProgram("fn main() -> int { return 1 + 2.5; }", false)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "type mismatch"))
}

func TestRunParseErrorsAbort(t *testing.T) {
	_, err := compileProgram("fn main() -> int { return 1 }", false)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "parsing errors"))
}
