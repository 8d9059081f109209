package lambda

import (
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Frame maps the names of one call (parameters and locals) to their values.
type Frame struct {
	vals map[string]Value
}

func NewFrame() *Frame {
	return &Frame{
		vals: make(map[string]Value),
	}
}

func (f *Frame) Get(name string) (Value, bool) {
	val, ok := f.vals[name]
	return val, ok
}

func (f *Frame) Set(name string, val Value) {
	f.vals[name] = val
}

func (f *Frame) Delete(name string) {
	delete(f.vals, name)
}

func (f *Frame) Len() int {
	return len(f.vals)
}

// CallStack holds one Frame per active function call or lambda application.
// Only the top frame is visible to name resolution.
type CallStack struct {
	frames *arraystack.Stack
}

func NewCallStack() *CallStack {
	return &CallStack{
		frames: arraystack.New(),
	}
}

func (s *CallStack) Push(f *Frame) {
	s.frames.Push(f)
}

func (s *CallStack) Pop() *Frame {
	f, ok := s.frames.Pop()
	if !ok {
		return nil
	}

	return f.(*Frame)
}

// Top returns nil when no call is active.
func (s *CallStack) Top() *Frame {
	f, ok := s.frames.Peek()
	if !ok {
		return nil
	}

	return f.(*Frame)
}

func (s *CallStack) Depth() int {
	return s.frames.Size()
}

// Environment is the state of one interpreter: global variables, declared
// functions and the call stack. It lives as long as the interpreter.
type Environment struct {
	Globals   *Frame
	Functions map[string]*FuncDecl
	Stack     *CallStack
}

func NewEnvironment() *Environment {
	return &Environment{
		Globals:   NewFrame(),
		Functions: make(map[string]*FuncDecl),
		Stack:     NewCallStack(),
	}
}

// Lookup reads name from the top frame, then from the globals. Frames below
// the top are never consulted.
func (e *Environment) Lookup(name string) (Value, *Frame, bool) {
	if top := e.Stack.Top(); top != nil {
		if val, ok := top.Get(name); ok {
			return val, top, true
		}
	}

	val, ok := e.Globals.Get(name)
	return val, e.Globals, ok
}

// Assign writes to the top frame, or to the globals when no call is active.
func (e *Environment) Assign(name string, val Value) {
	if top := e.Stack.Top(); top != nil {
		top.Set(name, val)
		return
	}

	e.Globals.Set(name, val)
}
