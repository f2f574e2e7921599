package main

import "fmt"

// code is an ordered sequence of compiled instructions. The machine
// pops from the front by re-slicing, so closures capturing a code
// value see an immutable snapshot; nothing ever writes through a
// captured slice.
type code []instr

// instr is one compiled Grass instruction, an appInstr or absInstr.
type instr interface {
	fmt.Stringer
	instruction()
}

// appInstr applies env[funcIdx] to env[argIdx]; both indices are
// 1-based and positive.
type appInstr struct {
	funcIdx int
	argIdx  int
}

// absInstr forms a closure of the given arity over the current
// environment.
type absInstr struct {
	arity int
	body  code
}

func (appInstr) instruction() {}
func (absInstr) instruction() {}

type compileError struct {
	pos  Pos
	what string
	n    int
}

func (err compileError) Error() string {
	return fmt.Sprintf("compile error at %v: non-positive %v %v", err.pos, err.what, err.n)
}

// compileProg maps a parsed program onto machine code. The structure
// carries over directly; the only check is that every arity and index
// is strictly positive, since a zero run means the parser broke its
// contract.
func compileProg(prog *Prog) (code, error) {
	c := make(code, 0, len(prog.Items))
	for _, item := range prog.Items {
		in, err := compileTop(item)
		if err != nil {
			return nil, err
		}
		c = append(c, in)
	}
	return c, nil
}

func compileTop(item Top) (instr, error) {
	switch it := item.(type) {
	case Abs:
		return compileAbs(it)
	case App:
		return compileApp(it)
	}
	return nil, fmt.Errorf("unknown program item %T", item)
}

func compileAbs(ab Abs) (instr, error) {
	if ab.Arity < 1 {
		return nil, compileError{ab.Pos, "arity", ab.Arity}
	}
	body := make(code, 0, len(ab.Body))
	for _, ap := range ab.Body {
		in, err := compileApp(ap)
		if err != nil {
			return nil, err
		}
		body = append(body, in)
	}
	return absInstr{arity: ab.Arity, body: body}, nil
}

func compileApp(ap App) (instr, error) {
	if ap.FuncIdx < 1 {
		return nil, compileError{ap.Pos, "function index", ap.FuncIdx}
	}
	if ap.ArgIdx < 1 {
		return nil, compileError{ap.Pos, "argument index", ap.ArgIdx}
	}
	return appInstr{funcIdx: ap.FuncIdx, argIdx: ap.ArgIdx}, nil
}
