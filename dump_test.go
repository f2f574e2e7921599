package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func TestDump_seededState(t *testing.T) {
	vm := testVM(code{
		absInstr{arity: 2, body: code{appInstr{funcIdx: 1, argIdx: 2}}},
		appInstr{funcIdx: 3, argIdx: 2},
	})
	snaps.MatchSnapshot(t, stateString(vm))
}

func TestDump_abbreviatesDeepState(t *testing.T) {
	vm := testVM(nil)
	for i := 0; i < 8; i++ {
		vm.env = vm.env.push(charVal('a' + byte(i)))
		vm.dump = append(vm.dump, frame{env: vm.env})
	}
	snaps.MatchSnapshot(t, stateString(vm))
}

func TestDump_churchEncodings(t *testing.T) {
	snaps.MatchSnapshot(t, identity().String())
	snaps.MatchSnapshot(t, churchFalse().String())
	snaps.MatchSnapshot(t, churchTrue().String())
}

func TestDump_fullDumpAfterRun(t *testing.T) {
	vm := testVM(code{appInstr{funcIdx: 3, argIdx: 2}})
	require.NoError(t, vm.Run(context.Background()))

	var buf bytes.Buffer
	vmDumper{vm: vm, out: &buf}.dump()
	snaps.MatchSnapshot(t, buf.String())
}
