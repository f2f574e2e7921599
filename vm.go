package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jcorbin/gograss/internal/flushio"
)

// frame is a suspended caller context on the dump.
type frame struct {
	code code
	env  *env
}

// VM is a SECD-style machine over compiled Grass code: the current
// code sequence, the active environment, and a dump of saved frames
// acting as the continuation stack.
type VM struct {
	code code
	env  *env
	dump []frame

	in  io.ByteReader
	out flushio.WriteFlusher

	logfn func(mess string, args ...interface{})

	steps     int
	stepLimit int

	closers []io.Closer
}

type indexError int

func (idx indexError) Error() string {
	return fmt.Sprintf("out of bounds access at index %v", int(idx))
}

type notACharError struct{ v value }

func (err notACharError) Error() string {
	return fmt.Sprintf("expected a character value, found %v", err.v)
}

var (
	errIllegalState = errors.New("illegal state encountered")
	errStepLimit    = errors.New("step limit exceeded")
)

type vmHaltError struct{ error }

func (err vmHaltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("VM halted: %v", err.error)
	}
	return "VM halted"
}
func (err vmHaltError) Unwrap() error { return err.error }

// halt stops the machine by panicking with a vmHaltError, flushing
// any buffered output first; Run recovers it into an error return. A
// nil err is a clean halt.
func (vm *VM) halt(err error) {
	if vm.out != nil {
		if ferr := vm.out.Flush(); err == nil {
			err = ferr
		}
	}
	herr := vmHaltError{err}
	if err != nil {
		vm.logf("halt error: %v", herr)
	}
	panic(herr)
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

func (vm *VM) logf(mess string, args ...interface{}) {
	if vm.logfn != nil {
		vm.logfn(mess, args...)
	}
}

// seed installs compiled top-level code and the initial Grass
// environment: index 1 = In, 2 = 'w', 3 = Succ, 4 = Out. The dump
// starts with a single sentinel frame so that top-level code falling
// off the end pops into a state exposing the final value for the
// self-application terminator.
func (vm *VM) seed(c code) {
	vm.code = c
	vm.env = (*env)(nil).
		push(primOut).
		push(primSucc).
		push(charVal('w')).
		push(primIn)
	vm.dump = []frame{{}}
}

func (vm *VM) exec(ctx context.Context) error {
	for {
		vm.step()
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// step performs one machine transition: execute the head instruction,
// or with empty code either return from the topmost frame or run the
// termination protocol.
func (vm *VM) step() {
	if vm.logfn != nil {
		vm.logf("@%v %v", vm.steps, stateString(vm))
	}
	vm.steps++
	if vm.stepLimit != 0 && vm.steps > vm.stepLimit {
		vm.halt(errStepLimit)
	}

	if len(vm.code) > 0 {
		in := vm.code[0]
		vm.code = vm.code[1:]
		switch it := in.(type) {
		case absInstr:
			if it.arity == 1 {
				vm.env = vm.env.push(closureVal{code: it.body, env: vm.env})
			} else {
				// Multi-arity unfolds one argument at a time: a thunk
				// that, applied once, re-emits the (n-1)-ary
				// abstraction over the same body.
				dec := absInstr{arity: it.arity - 1, body: it.body}
				vm.env = vm.env.push(closureVal{code: code{dec}, env: vm.env})
			}
		case appInstr:
			ff, ok := vm.env.get(it.funcIdx)
			if !ok {
				vm.halt(indexError(it.funcIdx))
			}
			fa, ok := vm.env.get(it.argIdx)
			if !ok {
				vm.halt(indexError(it.argIdx))
			}
			vm.call(ff, fa)
		}
		return
	}

	rv, ok := vm.env.get(1)
	if !ok {
		vm.halt(errIllegalState)
	}

	if n := len(vm.dump); n > 0 {
		fr := vm.dump[n-1]
		vm.dump = vm.dump[:n-1]
		vm.code = fr.code
		vm.env = fr.env.push(rv)
		return
	}

	// Top level: a closure result is applied to itself to drive
	// termination; anything else is the machine's final value.
	if cl, isClosure := rv.(closureVal); isClosure {
		vm.code = cl.code
		vm.env = cl.env.push(rv)
		return
	}
	vm.halt(nil)
}

// call implements the calling convention shared by every value kind.
// All pushes land on the current environment after any frame save.
func (vm *VM) call(fn, arg value) {
	switch fv := fn.(type) {
	case charVal:
		// Character equality answers with a Church boolean; anything
		// that is not the same character selects False.
		if c, isChar := arg.(charVal); isChar && c == fv {
			vm.env = vm.env.push(churchTrue())
		} else {
			vm.env = vm.env.push(churchFalse())
		}
	case closureVal:
		// Save-and-enter: the frame takes the remaining caller code,
		// so a call in tail position saves an empty frame that
		// collapses on return.
		vm.dump = append(vm.dump, frame{code: vm.code, env: vm.env})
		vm.code = fv.code
		vm.env = fv.env.push(arg)
	case primVal:
		vm.env = vm.env.push(vm.callPrim(fv, arg))
	}
}

func (vm *VM) callPrim(p primVal, arg value) value {
	switch p {
	case primIn:
		vm.haltif(vm.out.Flush())
		b, err := vm.in.ReadByte()
		if err != nil {
			// EOF reflects the argument so programs can detect
			// end of input.
			return arg
		}
		return charVal(b)
	case primSucc:
		c, isChar := arg.(charVal)
		if !isChar {
			vm.halt(notACharError{arg})
		}
		return charVal(c + 1)
	case primOut:
		c, isChar := arg.(charVal)
		if !isChar {
			vm.halt(notACharError{arg})
		}
		_, err := vm.out.Write([]byte{byte(c)})
		vm.haltif(err)
		return arg
	}
	vm.halt(fmt.Errorf("unknown primitive %v", int(p)))
	return nil
}
