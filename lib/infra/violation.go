package infra

import (
	"fmt"
	"io"
	"path"
	"runtime"
	"strconv"
	"strings"
)

// References:
// https://github.com/pkg/errors/blob/master/stack.go

type Frame uintptr

func (frame Frame) pc() uintptr {
	return uintptr(frame) - 1
}

func (frame Frame) file() string {
	pc := frame.pc()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknownFile"
	}
	f, _ := fn.FileLine(pc)
	return f
}

func (frame Frame) line() int {
	pc := frame.pc()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return 0
	}
	_, l := fn.FileLine(pc)
	return l
}

func (frame Frame) name() string {
	pc := frame.pc()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknownFunc"
	}
	return fn.Name()
}

// Format characters:
// %s - source file
// %d - source line
// %n - function name
// %v - verbose, equivalent to %s:%d
// %+s - function name and full path separated by \n\t
// %+v - equivalent to %+s:%d
func (frame Frame) Format(s fmt.State, verb rune) {
	switch verb {
	case 's':
		if s.Flag('+') {
			_, _ = io.WriteString(s, frame.name())
			_, _ = io.WriteString(s, "\n\t")
			_, _ = io.WriteString(s, frame.file())
		} else {
			_, _ = io.WriteString(s, path.Base(frame.file()))
		}
	case 'd':
		_, _ = io.WriteString(s, strconv.Itoa(frame.line()))
	case 'n':
		_, _ = io.WriteString(s, funcName(frame.name()))
	case 'v':
		frame.Format(s, 's')
		_, _ = io.WriteString(s, ":")
		frame.Format(s, 'd')
	}
}

func (frame Frame) MarshalText() ([]byte, error) {
	name := frame.name()
	if name == "unknownFunc" {
		return []byte("unknownFrame"), nil
	}
	builder := strings.Builder{}
	_, _ = builder.WriteString(name)
	_, _ = builder.WriteString(" ")
	_, _ = builder.WriteString(frame.file())
	_, _ = builder.WriteString(":")
	_, _ = builder.WriteString(strconv.Itoa(frame.line()))
	return []byte(builder.String()), nil
}

func funcName(name string) string {
	i := strings.LastIndex(name, "/")
	name = name[i+1:]
	i = strings.Index(name, ".")
	return name[i+1:]
}

// Violation is the panic value of a broken internal invariant.
// It is a bug of the data structure itself, never an expected outcome,
// so it is raised by panic instead of returned.
type Violation struct {
	msg   string
	frame Frame
}

func newViolation(skip int, msg string) *Violation {
	var pcs [1]uintptr
	// runtime.Callers, newViolation and the exported wrapper.
	if n := runtime.Callers(skip+3, pcs[:]); n == 0 {
		return &Violation{msg: msg}
	}
	return &Violation{msg: msg, frame: Frame(pcs[0])}
}

func NewViolation(msg string) *Violation {
	return newViolation(0, msg)
}

func NewViolationf(format string, args ...any) *Violation {
	return newViolation(0, fmt.Sprintf(format, args...))
}

// Assert panics with a *Violation raised at the caller when cond is false.
func Assert(cond bool, msg string) {
	if cond {
		return
	}
	panic(newViolation(0, msg))
}

func (v *Violation) Error() string {
	if v == nil {
		return ""
	}
	return v.msg
}

// Frame returns where the violation has been raised.
func (v *Violation) Frame() Frame {
	return v.frame
}

// Format characters:
// %s, %v - the message
// %+v - the message followed by the raising frame (%+v of Frame)
func (v *Violation) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		_, _ = io.WriteString(s, v.msg)
		if s.Flag('+') && v.frame != 0 {
			_, _ = io.WriteString(s, "\n")
			v.frame.Format(s, verb)
		}
	case 's':
		_, _ = io.WriteString(s, v.msg)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", v.msg)
	}
}
