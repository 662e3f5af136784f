package utils

import (
	"bytes"
	"fmt"
	"runtime"
)

// Stack returns a formatted stack trace of the calling goroutine, skipping the first skip frames
func Stack(skip int) []byte {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	buf := &bytes.Buffer{}
	for {
		frame, more := frames.Next()
		fmt.Fprintf(buf, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return buf.Bytes()
}
