package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/jcorbin/gograss/internal/flushio"
	"github.com/jcorbin/gograss/internal/panicerr"
)

// New compiles a parsed program and builds a machine around it,
// seeded with the initial Grass environment. Input defaults to empty
// and output to discard; pass options to wire real streams.
func New(prog *Prog, opts ...VMOption) (*VM, error) {
	c, err := compileProg(prog)
	if err != nil {
		return nil, err
	}
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	vm.seed(c)
	return &vm, nil
}

// Run evaluates the machine to termination, recovering any internal
// halt into an ordinary error return; a clean halt returns nil.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("VM", func() error {
		return vm.exec(ctx)
	})
	var he vmHaltError
	if errors.As(err, &he) {
		err = he.error
	}
	return err
}

// Close closes any closers adopted from options, in reverse order.
func (vm *VM) Close() (err error) {
	for i := len(vm.closers) - 1; i >= 0; i-- {
		if cerr := vm.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func WithInput(r io.Reader) VMOption  { return inputOption{r} }
func WithOutput(w io.Writer) VMOption { return outputOption{w} }
func WithStepLimit(n int) VMOption    { return stepLimitOption(n) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return logfnOption(logfn) }

type VMOption interface{ apply(vm *VM) }

var defaultOptions = VMOptions(
	WithInput(bytes.NewReader(nil)),
	WithOutput(io.Discard),
)

// VMOptions combines options, flattening nested combinations.
func VMOptions(opts ...VMOption) VMOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(vm *VM) {}

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type stepLimitOption int
type logfnOption func(mess string, args ...interface{})

func (i inputOption) apply(vm *VM) {
	if br, is := i.Reader.(io.ByteReader); is {
		vm.in = br
	} else {
		vm.in = bufio.NewReader(i.Reader)
	}
	if cl, is := i.Reader.(io.Closer); is {
		vm.closers = append(vm.closers, cl)
	}
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
	if cl, is := o.Writer.(io.Closer); is {
		vm.closers = append(vm.closers, cl)
	}
}

func (lim stepLimitOption) apply(vm *VM) {
	vm.stepLimit = int(lim)
}

func (logfn logfnOption) apply(vm *VM) {
	vm.logfn = logfn
}
