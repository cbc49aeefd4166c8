package main

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Compiler walks the AST and lowers every node into LLVM IR through the llir
// builder. It threads a current insertion block and a current environment;
// both are swapped at function boundaries via an explicit frame stack so that
// restoration is guaranteed on every exit path, including error exits.
type Compiler struct {
	module *ir.Module

	fn    *ir.Func  // function currently being generated, nil at top level
	block *ir.Block // current insertion point, nil outside function bodies
	env   *Environment

	typeMap map[string]types.Type
	frames  []frame
	blockID int

	Errors ErrorList
}

// frame is one saved (environment, insertion point) pair. Frames are pushed
// and popped only around function-statement compilation, strictly nested.
type frame struct {
	env   *Environment
	block *ir.Block
	fn    *ir.Func
}

// NewCompiler creates a Compiler with a fresh module and a global environment
// pre-populated with the builtin boolean constants.
func NewCompiler() *Compiler {
	c := &Compiler{
		module: ir.NewModule(),
		env:    NewEnvironment(),
		typeMap: map[string]types.Type{
			"int":   types.I32,
			"float": types.Float,
			"bool":  types.I1,
		},
	}

	// true/false live as module-level i1 globals so identifier resolution can
	// load them through the same storage-handle path as any variable.
	trueGlobal := c.module.NewGlobalDef("true", constant.NewBool(true))
	falseGlobal := c.module.NewGlobalDef("false", constant.NewBool(false))
	c.env.Define("true", trueGlobal, types.I1)
	c.env.Define("false", falseGlobal, types.I1)

	return c
}

// Module returns the IR module built so far.
func (c *Compiler) Module() *ir.Module {
	return c.module
}

// Compile generates code for node and its children.
func (c *Compiler) Compile(node *ASTNode) {
	if node == nil {
		return
	}

	switch node.Kind {
	case NodeProgram, NodeBlock:
		for _, stmt := range node.Children {
			c.Compile(stmt)
		}
	case NodeLet:
		c.compileLet(node)
	case NodeAssign:
		c.compileAssign(node)
	case NodeFunc:
		c.compileFunction(node)
	case NodeReturn:
		c.compileReturn(node)
	case NodeIf:
		c.compileIf(node)
	default:
		// Expression in statement position: generate it and discard the value.
		c.resolve(node)
	}
}

func (c *Compiler) pushFrame() {
	c.frames = append(c.frames, frame{env: c.env, block: c.block, fn: c.fn})
}

func (c *Compiler) popFrame() {
	top := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	c.env = top.env
	c.block = top.block
	c.fn = top.fn
}

func (c *Compiler) newBlockName(prefix string) string {
	c.blockID++
	return fmt.Sprintf("%s_%d", prefix, c.blockID)
}

// insideFunction reports whether there is a current insertion point,
// recording a diagnostic when there is not.
func (c *Compiler) insideFunction(node *ASTNode, what string) bool {
	if c.block != nil {
		return true
	}
	c.Errors.Add(node.Line, node.Col, "%s outside of a function body", what)
	return false
}

// compileLet resolves the initializer and either allocates fresh storage for
// a new name or stores into the existing handle. A let on an already-declared
// name deliberately behaves as reassignment, not shadowing.
func (c *Compiler) compileLet(node *ASTNode) {
	if !c.insideFunction(node, "let statement") {
		return
	}

	val, typ, ok := c.resolve(node.Children[0])
	if !ok {
		return
	}

	if existing, found := c.env.Lookup(node.String); found {
		c.block.NewStore(val, existing.Value)
		return
	}

	ptr := c.block.NewAlloca(typ)
	c.block.NewStore(val, ptr)
	c.env.Define(node.String, ptr, typ)
}

// compileAssign stores into an already-declared target. Assigning to an
// undeclared name is reported and skipped, leaving prior IR state unaffected.
func (c *Compiler) compileAssign(node *ASTNode) {
	if !c.insideFunction(node, "assignment") {
		return
	}

	val, _, ok := c.resolve(node.Children[0])
	if !ok {
		return
	}

	existing, found := c.env.Lookup(node.String)
	if !found {
		c.Errors.Add(node.Line, node.Col,
			"identifier %s has not been declared before it was re-assigned", node.String)
		return
	}
	c.block.NewStore(val, existing.Value)
}

// compileFunction declares the function, then generates its body under a
// fresh child environment and entry block. The enclosing (environment,
// insertion point) pair is restored through the frame stack even when body
// generation records errors. The function's own name is bound before the
// body is generated, so recursive-by-name calls resolve.
func (c *Compiler) compileFunction(node *ASTNode) {
	retType, ok := c.typeMap[node.TypeName]
	if !ok {
		c.Errors.Add(node.Line, node.Col, "unknown return type %s", node.TypeName)
		return
	}

	fn := c.module.NewFunc(node.String, retType)
	entry := fn.NewBlock(node.String + "_entry")

	func() {
		c.pushFrame()
		defer c.popFrame()

		c.fn = fn
		c.block = entry
		c.env = NewEnclosedEnvironment(c.env, node.String)
		c.env.Define(node.String, fn, retType)

		c.Compile(node.Children[0])

		// A fall-through path (or a merge block left behind by branches that
		// both return) still needs a terminator for the module to verify.
		if c.block.Term == nil {
			c.block.NewRet(c.zeroValue(retType))
		}
	}()

	c.env.Define(node.String, fn, retType)
}

// compileReturn resolves the expression and emits a return. A value whose
// type does not match the enclosing declared return type is reported.
func (c *Compiler) compileReturn(node *ASTNode) {
	if !c.insideFunction(node, "return statement") {
		return
	}

	val, typ, ok := c.resolve(node.Children[0])
	if !ok {
		return
	}

	if !typ.Equal(c.fn.Sig.RetType) {
		c.Errors.Add(node.Line, node.Col,
			"cannot return %s from function %s returning %s",
			typ, c.fn.Name(), c.fn.Sig.RetType)
		return
	}

	if c.block.Term == nil {
		c.block.NewRet(val)
	}
}

// compileIf emits a structured one-way or two-way conditional. Control
// reconverges at a merge block; branches that already terminated (returned)
// do not branch to it. The language has no expression-position if, so no phi
// is produced.
func (c *Compiler) compileIf(node *ASTNode) {
	if !c.insideFunction(node, "if statement") {
		return
	}

	cond, condType, ok := c.resolve(node.Children[0])
	if !ok {
		return
	}
	if !condType.Equal(types.I1) {
		c.Errors.Add(node.Line, node.Col, "if condition must be a bool, got %s", condType)
		return
	}

	thenBlock := c.fn.NewBlock(c.newBlockName("if_then"))
	var elseBlock *ir.Block
	if len(node.Children) == 3 {
		elseBlock = c.fn.NewBlock(c.newBlockName("if_else"))
	}
	mergeBlock := c.fn.NewBlock(c.newBlockName("if_merge"))

	if elseBlock != nil {
		c.block.NewCondBr(cond, thenBlock, elseBlock)
	} else {
		c.block.NewCondBr(cond, thenBlock, mergeBlock)
	}

	c.block = thenBlock
	c.Compile(node.Children[1])
	if c.block.Term == nil {
		c.block.NewBr(mergeBlock)
	}

	if elseBlock != nil {
		c.block = elseBlock
		c.Compile(node.Children[2])
		if c.block.Term == nil {
			c.block.NewBr(mergeBlock)
		}
	}

	c.block = mergeBlock
}

// compileInfix resolves both operands left to right, then dispatches on the
// resolved type pairing: signed integer ops for (int, int), ordered floating
// ops for (float, float). Any other pairing is a reported type mismatch.
func (c *Compiler) compileInfix(node *ASTNode) (value.Value, types.Type, bool) {
	left, leftType, ok := c.resolve(node.Children[0])
	if !ok {
		return nil, nil, false
	}
	right, rightType, ok := c.resolve(node.Children[1])
	if !ok {
		return nil, nil, false
	}

	switch {
	case leftType.Equal(types.I32) && rightType.Equal(types.I32):
		return c.intInfix(node, left, right)
	case leftType.Equal(types.Float) && rightType.Equal(types.Float):
		return c.floatInfix(node, left, right)
	default:
		c.Errors.Add(node.Line, node.Col,
			"type mismatch for operator %s: %s and %s", node.Op, leftType, rightType)
		return nil, nil, false
	}
}

func (c *Compiler) intInfix(node *ASTNode, left, right value.Value) (value.Value, types.Type, bool) {
	switch node.Op {
	case "+":
		return c.block.NewAdd(left, right), types.I32, true
	case "-":
		return c.block.NewSub(left, right), types.I32, true
	case "*":
		return c.block.NewMul(left, right), types.I32, true
	case "/":
		return c.block.NewSDiv(left, right), types.I32, true
	case "%":
		return c.block.NewSRem(left, right), types.I32, true
	case "<":
		return c.block.NewICmp(enum.IPredSLT, left, right), types.I1, true
	case "<=":
		return c.block.NewICmp(enum.IPredSLE, left, right), types.I1, true
	case ">":
		return c.block.NewICmp(enum.IPredSGT, left, right), types.I1, true
	case ">=":
		return c.block.NewICmp(enum.IPredSGE, left, right), types.I1, true
	case "==":
		return c.block.NewICmp(enum.IPredEQ, left, right), types.I1, true
	case "!=":
		return c.block.NewICmp(enum.IPredNE, left, right), types.I1, true
	default:
		c.Errors.Add(node.Line, node.Col, "unsupported operator %s for int operands", node.Op)
		return nil, nil, false
	}
}

// floatInfix mirrors intInfix with floating arithmetic and ordered
// comparisons: a comparison is false when either operand is NaN.
func (c *Compiler) floatInfix(node *ASTNode, left, right value.Value) (value.Value, types.Type, bool) {
	switch node.Op {
	case "+":
		return c.block.NewFAdd(left, right), types.Float, true
	case "-":
		return c.block.NewFSub(left, right), types.Float, true
	case "*":
		return c.block.NewFMul(left, right), types.Float, true
	case "/":
		return c.block.NewFDiv(left, right), types.Float, true
	case "%":
		return c.block.NewFRem(left, right), types.Float, true
	case "<":
		return c.block.NewFCmp(enum.FPredOLT, left, right), types.I1, true
	case "<=":
		return c.block.NewFCmp(enum.FPredOLE, left, right), types.I1, true
	case ">":
		return c.block.NewFCmp(enum.FPredOGT, left, right), types.I1, true
	case ">=":
		return c.block.NewFCmp(enum.FPredOGE, left, right), types.I1, true
	case "==":
		return c.block.NewFCmp(enum.FPredOEQ, left, right), types.I1, true
	case "!=":
		return c.block.NewFCmp(enum.FPredONE, left, right), types.I1, true
	default:
		c.Errors.Add(node.Line, node.Col, "unsupported operator %s for float operands", node.Op)
		return nil, nil, false
	}
}

// compileCall looks up the callee's signature and handle, evaluates the
// arguments, and emits a call. Argument passing is not threaded through yet;
// the call yields the function's declared return type.
func (c *Compiler) compileCall(node *ASTNode) (value.Value, types.Type, bool) {
	existing, found := c.env.Lookup(node.String)
	if !found {
		c.Errors.Add(node.Line, node.Col, "undefined function %s", node.String)
		return nil, nil, false
	}
	callee, isFunc := existing.Value.(*ir.Func)
	if !isFunc {
		c.Errors.Add(node.Line, node.Col, "%s is not a function", node.String)
		return nil, nil, false
	}

	for _, arg := range node.Children {
		if _, _, ok := c.resolve(arg); !ok {
			return nil, nil, false
		}
	}

	return c.block.NewCall(callee), existing.Type, true
}

// resolve lowers an expression to a typed IR value. Literals become typed
// constants; identifiers are chain-resolved and loaded from their storage
// handle; infix and call expressions recurse into their own routines.
func (c *Compiler) resolve(node *ASTNode) (value.Value, types.Type, bool) {
	if node == nil {
		return nil, nil, false
	}
	if !c.insideFunction(node, "expression") {
		return nil, nil, false
	}

	switch node.Kind {
	case NodeInteger:
		return constant.NewInt(types.I32, node.Integer), types.I32, true
	case NodeFloat:
		return constant.NewFloat(types.Float, node.Float), types.Float, true
	case NodeBoolean:
		return constant.NewBool(node.Boolean), types.I1, true
	case NodeIdent:
		existing, found := c.env.Lookup(node.String)
		if !found {
			c.Errors.Add(node.Line, node.Col, "undefined identifier %s", node.String)
			return nil, nil, false
		}
		if _, isFunc := existing.Value.(*ir.Func); isFunc {
			c.Errors.Add(node.Line, node.Col, "cannot use function %s as a value", node.String)
			return nil, nil, false
		}
		return c.block.NewLoad(existing.Type, existing.Value), existing.Type, true
	case NodeBinary:
		return c.compileInfix(node)
	case NodeCall:
		return c.compileCall(node)
	default:
		c.Errors.Add(node.Line, node.Col, "cannot resolve %s as an expression", node.Kind)
		return nil, nil, false
	}
}

func (c *Compiler) zeroValue(typ types.Type) constant.Constant {
	switch {
	case typ.Equal(types.Float):
		return constant.NewFloat(types.Float, 0)
	case typ.Equal(types.I1):
		return constant.NewBool(false)
	default:
		return constant.NewInt(types.I32, 0)
	}
}
