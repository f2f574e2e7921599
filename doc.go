/*
Package main implements an interpreter for Grass, the grass-planting
programming language.

Grass source text is written with only three letters, w W v, and their
full-width forms ｗ Ｗ ｖ, so that a program looks like a neatly mowed
lawn:

	wWWwwww

Every other character is insignificant and may appear freely; before
the first w even W and v are noise, since a program must begin with an
abstraction.

The language itself is an untyped call-by-value lambda calculus. A run
of w opens an abstraction and its length is the arity; an application
is a run of W naming the function followed by a run of w naming the
argument, both as 1-based de Bruijn indices into the environment; v
separates top-level items. Programs start with four values pre-bound
at the innermost indices: In (read one byte from standard input, or
reflect the argument at end of input), the character w, Succ (next
byte value, wrapping), and Out (write one byte to standard output).
Character values applied as functions perform equality tests, answered
with Church booleans the machine builds from its own code forms.

Evaluation uses a SECD-style machine: a current code sequence, a
persistent environment shared structurally between closures, and a
dump of saved caller frames. When the top-level code runs out, the
final value is applied to itself; evaluation halts once that value is
no longer a closure. That protocol means some well-formed programs
never terminate, which is the language's defined behavior, not an
error.

Layout: parse.go maps glyphs to an AST, code.go compiles it to the
instruction form, env.go and value.go define the machine's data
model, vm.go is the evaluator, dump.go renders machine states, and
main.go is the command line front end.
*/
package main
