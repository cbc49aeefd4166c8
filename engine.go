package main

import (
	"fmt"
	"math"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// The engine is a reference interpreter for the instruction subset the
// compiler emits: alloca/load/store, integer and floating arithmetic, signed
// integer and ordered floating comparisons, structured branches, calls, and
// returns. It verifies the module, then walks basic blocks directly.

const maxCallDepth = 10000

type wordKind int

const (
	wInt wordKind = iota
	wFloat
	wBool
	wPtr
)

// word is a single runtime value. wPtr words address a storage slot created
// by alloca (or a module global).
type word struct {
	kind wordKind
	i    int64
	f    float64
	b    bool
	p    *word
}

func (w word) String() string {
	switch w.kind {
	case wInt:
		return fmt.Sprintf("%d", w.i)
	case wFloat:
		return fmt.Sprintf("%g", w.f)
	case wBool:
		return fmt.Sprintf("%t", w.b)
	default:
		return "<ptr>"
	}
}

type engine struct {
	globals map[value.Value]word
}

// Run verifies module, locates its main function, and interprets it. main
// must take no arguments and return a 32-bit integer.
func Run(module *ir.Module) (int32, error) {
	if err := verifyModule(module); err != nil {
		return 0, err
	}

	var entry *ir.Func
	for _, f := range module.Funcs {
		if f.Name() == "main" {
			entry = f
			break
		}
	}
	if entry == nil {
		return 0, fmt.Errorf("module has no main function")
	}
	if !entry.Sig.RetType.Equal(types.I32) || len(entry.Params) != 0 {
		return 0, fmt.Errorf("main must take no arguments and return an int")
	}

	e := &engine{globals: make(map[value.Value]word)}
	for _, g := range module.Globals {
		slot := new(word)
		w, err := constWord(g.Init)
		if err != nil {
			return 0, fmt.Errorf("global %s: %w", g.Name(), err)
		}
		*slot = w
		e.globals[g] = word{kind: wPtr, p: slot}
	}

	result, err := e.runFunc(entry, 0)
	if err != nil {
		return 0, err
	}
	if result.kind != wInt {
		return 0, fmt.Errorf("main returned a non-integer value")
	}
	return int32(result.i), nil
}

// verifyModule checks the structural invariants the interpreter relies on:
// every function has at least one block and every block is terminated.
func verifyModule(module *ir.Module) error {
	for _, f := range module.Funcs {
		if len(f.Blocks) == 0 {
			return fmt.Errorf("function %s has no body", f.Name())
		}
		for _, b := range f.Blocks {
			if b.Term == nil {
				return fmt.Errorf("function %s: block %s has no terminator", f.Name(), b.Name())
			}
		}
	}
	return nil
}

func (e *engine) runFunc(f *ir.Func, depth int) (word, error) {
	if depth > maxCallDepth {
		return word{}, fmt.Errorf("call depth exceeded in %s", f.Name())
	}

	regs := make(map[value.Value]word)
	block := f.Blocks[0]

	for {
		for _, inst := range block.Insts {
			w, err := e.step(inst, regs, depth)
			if err != nil {
				return word{}, err
			}
			if named, ok := inst.(value.Value); ok {
				regs[named] = w
			}
		}

		switch term := block.Term.(type) {
		case *ir.TermRet:
			if term.X == nil {
				return word{}, fmt.Errorf("function %s returned no value", f.Name())
			}
			return e.eval(term.X, regs)
		case *ir.TermBr:
			block = term.Target.(*ir.Block)
		case *ir.TermCondBr:
			cond, err := e.eval(term.Cond, regs)
			if err != nil {
				return word{}, err
			}
			if cond.kind != wBool {
				return word{}, fmt.Errorf("branch condition is not a bool")
			}
			if cond.b {
				block = term.TargetTrue.(*ir.Block)
			} else {
				block = term.TargetFalse.(*ir.Block)
			}
		default:
			return word{}, fmt.Errorf("unsupported terminator %T", block.Term)
		}
	}
}

func (e *engine) step(inst ir.Instruction, regs map[value.Value]word, depth int) (word, error) {
	switch v := inst.(type) {
	case *ir.InstAlloca:
		return word{kind: wPtr, p: new(word)}, nil

	case *ir.InstStore:
		val, err := e.eval(v.Src, regs)
		if err != nil {
			return word{}, err
		}
		dst, err := e.eval(v.Dst, regs)
		if err != nil {
			return word{}, err
		}
		if dst.kind != wPtr {
			return word{}, fmt.Errorf("store destination is not a pointer")
		}
		*dst.p = val
		return word{}, nil

	case *ir.InstLoad:
		src, err := e.eval(v.Src, regs)
		if err != nil {
			return word{}, err
		}
		if src.kind != wPtr {
			return word{}, fmt.Errorf("load source is not a pointer")
		}
		return *src.p, nil

	case *ir.InstAdd:
		return e.intBinary(v.X, v.Y, regs, func(a, b int64) (int64, error) { return a + b, nil })
	case *ir.InstSub:
		return e.intBinary(v.X, v.Y, regs, func(a, b int64) (int64, error) { return a - b, nil })
	case *ir.InstMul:
		return e.intBinary(v.X, v.Y, regs, func(a, b int64) (int64, error) { return a * b, nil })
	case *ir.InstSDiv:
		return e.intBinary(v.X, v.Y, regs, func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, fmt.Errorf("integer divide by zero")
			}
			return a / b, nil
		})
	case *ir.InstSRem:
		return e.intBinary(v.X, v.Y, regs, func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, fmt.Errorf("integer remainder by zero")
			}
			return a % b, nil
		})

	case *ir.InstFAdd:
		return e.floatBinary(v.X, v.Y, regs, func(a, b float64) float64 { return a + b })
	case *ir.InstFSub:
		return e.floatBinary(v.X, v.Y, regs, func(a, b float64) float64 { return a - b })
	case *ir.InstFMul:
		return e.floatBinary(v.X, v.Y, regs, func(a, b float64) float64 { return a * b })
	case *ir.InstFDiv:
		return e.floatBinary(v.X, v.Y, regs, func(a, b float64) float64 { return a / b })
	case *ir.InstFRem:
		return e.floatBinary(v.X, v.Y, regs, math.Mod)

	case *ir.InstICmp:
		return e.icmp(v, regs)
	case *ir.InstFCmp:
		return e.fcmp(v, regs)

	case *ir.InstCall:
		callee, ok := v.Callee.(*ir.Func)
		if !ok {
			return word{}, fmt.Errorf("call to a non-function value")
		}
		return e.runFunc(callee, depth+1)

	default:
		return word{}, fmt.Errorf("unsupported instruction %T", inst)
	}
}

func (e *engine) intBinary(x, y value.Value, regs map[value.Value]word, op func(a, b int64) (int64, error)) (word, error) {
	a, b, err := e.evalPair(x, y, regs, wInt)
	if err != nil {
		return word{}, err
	}
	r, err := op(a.i, b.i)
	if err != nil {
		return word{}, err
	}
	// The language's integers are 32-bit; wrap like the hardware would.
	return word{kind: wInt, i: int64(int32(r))}, nil
}

func (e *engine) floatBinary(x, y value.Value, regs map[value.Value]word, op func(a, b float64) float64) (word, error) {
	a, b, err := e.evalPair(x, y, regs, wFloat)
	if err != nil {
		return word{}, err
	}
	return word{kind: wFloat, f: float64(float32(op(a.f, b.f)))}, nil
}

func (e *engine) icmp(v *ir.InstICmp, regs map[value.Value]word) (word, error) {
	a, b, err := e.evalPair(v.X, v.Y, regs, wInt)
	if err != nil {
		return word{}, err
	}
	var r bool
	switch v.Pred {
	case enum.IPredEQ:
		r = a.i == b.i
	case enum.IPredNE:
		r = a.i != b.i
	case enum.IPredSLT:
		r = a.i < b.i
	case enum.IPredSLE:
		r = a.i <= b.i
	case enum.IPredSGT:
		r = a.i > b.i
	case enum.IPredSGE:
		r = a.i >= b.i
	default:
		return word{}, fmt.Errorf("unsupported integer comparison %v", v.Pred)
	}
	return word{kind: wBool, b: r}, nil
}

// fcmp implements the ordered predicates: any comparison involving NaN is
// false.
func (e *engine) fcmp(v *ir.InstFCmp, regs map[value.Value]word) (word, error) {
	a, b, err := e.evalPair(v.X, v.Y, regs, wFloat)
	if err != nil {
		return word{}, err
	}
	if math.IsNaN(a.f) || math.IsNaN(b.f) {
		return word{kind: wBool, b: false}, nil
	}
	var r bool
	switch v.Pred {
	case enum.FPredOEQ:
		r = a.f == b.f
	case enum.FPredONE:
		r = a.f != b.f
	case enum.FPredOLT:
		r = a.f < b.f
	case enum.FPredOLE:
		r = a.f <= b.f
	case enum.FPredOGT:
		r = a.f > b.f
	case enum.FPredOGE:
		r = a.f >= b.f
	default:
		return word{}, fmt.Errorf("unsupported float comparison %v", v.Pred)
	}
	return word{kind: wBool, b: r}, nil
}

func (e *engine) evalPair(x, y value.Value, regs map[value.Value]word, want wordKind) (word, word, error) {
	a, err := e.eval(x, regs)
	if err != nil {
		return word{}, word{}, err
	}
	b, err := e.eval(y, regs)
	if err != nil {
		return word{}, word{}, err
	}
	if a.kind != want || b.kind != want {
		return word{}, word{}, fmt.Errorf("operand type mismatch")
	}
	return a, b, nil
}

// eval resolves an operand: constants evaluate directly, everything else
// must have been produced by a previous instruction (or be a global slot).
func (e *engine) eval(operand value.Value, regs map[value.Value]word) (word, error) {
	switch v := operand.(type) {
	case *constant.Int, *constant.Float:
		return constWord(v.(constant.Constant))
	default:
		if w, ok := regs[operand]; ok {
			return w, nil
		}
		if w, ok := e.globals[operand]; ok {
			return w, nil
		}
		return word{}, fmt.Errorf("use of undefined value %s", operand.String())
	}
}

func constWord(c constant.Constant) (word, error) {
	switch v := c.(type) {
	case *constant.Int:
		if v.Typ.BitSize == 1 {
			return word{kind: wBool, b: v.X.Int64() != 0}, nil
		}
		return word{kind: wInt, i: v.X.Int64()}, nil
	case *constant.Float:
		f, _ := v.X.Float64()
		return word{kind: wFloat, f: float64(float32(f))}, nil
	default:
		return word{}, fmt.Errorf("unsupported constant %T", c)
	}
}
