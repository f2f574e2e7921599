package main

import (
	"fmt"
	"strconv"
)

// value is anything the machine can bind in an environment: a
// character byte, a closure, or a primitive.
type value interface {
	fmt.Stringer
	grassValue()
}

type charVal byte

// closureVal pairs a code sequence with its captured environment.
// Both are shared by reference and immutable once captured.
type closureVal struct {
	code code
	env  *env
}

type primVal int

const (
	primIn primVal = iota
	primSucc
	primOut
)

func (charVal) grassValue()    {}
func (closureVal) grassValue() {}
func (primVal) grassValue()    {}

func (c charVal) String() string {
	return strconv.QuoteRune(rune(c))
}

func (cl closureVal) String() string {
	return fmt.Sprintf("Closure{code: %v, env: %v}", formatCode(cl.code), formatEnv(cl.env))
}

func (p primVal) String() string {
	switch p {
	case primIn:
		return "In"
	case primSucc:
		return "Succ"
	case primOut:
		return "Out"
	}
	return fmt.Sprintf("Prim(%v)", int(p))
}

// The Church encodings below are synthesized afresh for every
// character equality; they are machine artifacts, not source
// constructs, and character comparison tests depend on these exact
// shapes.

// identity is λx.x: a closure with no instructions, so the return
// protocol takes the just-bound argument as the result.
func identity() value {
	return closureVal{}
}

// churchFalse is λa.λb.b: binding a leaves a one-arg closure whose
// empty body returns b.
func churchFalse() value {
	return closureVal{code: code{absInstr{arity: 1}}}
}

// churchTrue is λa.λb.a: in the inner body index 3 is the captured
// identity and index 2 is a, so App(3, 2) yields a through the
// machine's own calling convention.
func churchTrue() value {
	return closureVal{
		code: code{absInstr{arity: 1, body: code{appInstr{funcIdx: 3, argIdx: 2}}}},
		env:  (*env)(nil).push(identity()),
	}
}
