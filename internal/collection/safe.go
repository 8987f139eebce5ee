package collection

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-gridframe/gridframe"
)

// getTrace produces the string representation of a stack trace
func getTrace() string {
	var name, file string
	var line int
	var pc [16]uintptr
	var res strings.Builder
	n := runtime.Callers(3, pc[:])
	for _, pc := range pc[:n] {
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		file, line = fn.FileLine(pc)
		name = fn.Name()
		if !strings.HasPrefix(name, "runtime.") {
			fmt.Fprintf(&res, "%s\n\t%s:%d\n", name, file, line)
		}
	}
	return res.String()
}

// safeRun applies an operation to the elements of a partition such that
// panics, whether from user code or from the tabular engine, are recovered
// and returned as errors rather than killing the evaluating goroutine
func safeRun(op operation, els []interface{}) (out []interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = fmt.Errorf("%s Panic: %w\n%s", op.name(), anErr, getTrace())
			} else {
				err = fmt.Errorf("%s Panic: %v\n%s", op.name(), r, getTrace())
			}
		}
	}()
	out, err = op.run(els)
	return
}

// safeReduce applies a ReductionOperation to a pair of elements such that
// panics are recovered and returned as errors
func safeReduce(fn gridframe.ReductionOperation, left interface{}, right interface{}) (res interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = fmt.Errorf("Reduction Panic: %w\n%s", anErr, getTrace())
			} else {
				err = fmt.Errorf("Reduction Panic: %v\n%s", r, getTrace())
			}
		}
	}()
	res, err = fn(left, right)
	return
}
