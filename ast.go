package main

import "fmt"

// Pos locates a glyph in Grass source text; both Line and Col are
// 1-based and count runes, so full-width glyphs occupy one column.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string { return fmt.Sprintf("%v:%v", p.Line, p.Col) }

// Prog is a parsed Grass program: a leading abstraction followed by
// any number of further abstractions and applications.
type Prog struct {
	Items []Top
}

// Top is a top-level program item: either an Abs or an App.
type Top interface {
	topItem()
}

// Abs is an abstraction of the given arity whose body is a sequence
// of applications. An empty body is legal.
type Abs struct {
	Arity int
	Body  []App
	Pos   Pos
}

// App applies the environment value at de Bruijn index FuncIdx to the
// one at ArgIdx. Both indices are 1-based; the parser never produces
// zero.
type App struct {
	FuncIdx int
	ArgIdx  int
	Pos     Pos
}

func (Abs) topItem() {}
func (App) topItem() {}
