package main

import (
	"fmt"
	"io"
	"strings"
)

// Abbreviated state rendering for the step trace: collections show at
// most showDepth leading entries followed by an ellipsis, since
// environments and dumps grow without bound in running programs.

const showDepth = 3

func stateString(vm *VM) string {
	return fmt.Sprintf("code:%v env:%v dump:%v",
		formatCode(vm.code), formatEnv(vm.env), formatDump(vm.dump))
}

func formatCode(c code) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, in := range c {
		if i >= showDepth {
			sb.WriteString(", ...")
			break
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(in.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

func formatEnv(e *env) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 1; e != nil; i, e = i+1, e.next {
		if i > showDepth {
			sb.WriteString(", ...")
			break
		}
		if i > 1 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v: %v", i, e.val)
	}
	sb.WriteByte(']')
	return sb.String()
}

func formatDump(frames []frame) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := len(frames) - 1; i >= 0; i-- {
		fr := frames[i]
		if n := len(frames) - 1 - i; n >= showDepth {
			sb.WriteString(", ...")
			break
		} else if n > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "Frame{code: %v, env: %v}", formatCode(fr.code), formatEnv(fr.env))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (ap appInstr) String() string {
	return fmt.Sprintf("App(%v, %v)", ap.funcIdx, ap.argIdx)
}

func (ab absInstr) String() string {
	return fmt.Sprintf("Abs(%v, %v)", ab.arity, formatCode(ab.body))
}

// vmDumper renders a machine dump for the --dump flag and post-mortem
// inspection. Top-level code and the environment are listed in full;
// abstraction bodies and saved frames use the abbreviated form.
type vmDumper struct {
	vm  *VM
	out io.Writer
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# Machine Dump\n")
	fmt.Fprintf(dump.out, "  steps: %v\n", dump.vm.steps)
	fmt.Fprintf(dump.out, "  code: %v instruction(s)\n", len(dump.vm.code))
	for _, in := range dump.vm.code {
		fmt.Fprintf(dump.out, "    %v\n", in)
	}
	fmt.Fprintf(dump.out, "  env: depth %v\n", dump.vm.env.depth())
	i := 1
	for e := dump.vm.env; e != nil; e = e.next {
		fmt.Fprintf(dump.out, "    @%v %v\n", i, e.val)
		i++
	}
	fmt.Fprintf(dump.out, "  dump: %v frame(s)\n", len(dump.vm.dump))
	for j := len(dump.vm.dump) - 1; j >= 0; j-- {
		fr := dump.vm.dump[j]
		fmt.Fprintf(dump.out, "    Frame{code: %v, env: %v}\n", formatCode(fr.code), formatEnv(fr.env))
	}
}
