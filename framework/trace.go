package framework

import (
	"fmt"
	"path"
	"regexp"
	"runtime"
	"strings"
	"sync"
)

const traceLabel = "Error Trace:"

var traceEntryRegex = regexp.MustCompile(`^\S+\.go:\d+$`)

var (
	hiddenDirs     = make(map[string]struct{})
	hiddenDirsLock sync.RWMutex
)

func init() {
	HideFramesIn(CallerDir())
}

// CallerDir returns the source directory of the function that calls it.
func CallerDir() string {
	_, file, _, ok := runtime.Caller(1)
	if !ok {
		return ""
	}
	return path.Dir(file)
}

// HideFramesIn marks a source directory as library code. Frames from non-test files in that
// directory are omitted from failure traces, so that failures are reported against the code
// that called into the library.
func HideFramesIn(dir string) {
	if dir == "" {
		return
	}
	hiddenDirsLock.Lock()
	hiddenDirs[dir] = struct{}{}
	hiddenDirsLock.Unlock()
}

func isHiddenFile(file string) bool {
	if strings.HasSuffix(file, "_test.go") {
		return false
	}
	hiddenDirsLock.RLock()
	_, hidden := hiddenDirs[path.Dir(file)]
	hiddenDirsLock.RUnlock()
	return hidden
}

func isHiddenFrame(frame runtime.Frame) bool {
	if frame.File == "" {
		return true
	}
	if strings.HasPrefix(frame.Function, "runtime.") || strings.HasPrefix(frame.Function, "testing.") {
		return true
	}
	return isHiddenFile(frame.File)
}

// CallerTrace returns "file:line" entries for the current call stack, innermost first, with
// library, runtime and testing frames removed. The skip parameter counts frames above the
// caller of CallerTrace, as for runtime.Caller.
func CallerTrace(skip int) []string {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	var trace []string
	for {
		frame, more := frames.Next()
		if !isHiddenFrame(frame) {
			trace = append(trace, fmt.Sprintf("%s:%d", frame.File, frame.Line))
		}
		if !more {
			break
		}
	}
	return trace
}

// ScrubTrace rewrites the "Error Trace:" block of a testify failure message so that it only
// lists frames outside of library code. If no frames remain, the block is dropped.
func ScrubTrace(message string) string {
	lines := strings.Split(message, "\n")
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		pos := strings.Index(line, traceLabel)
		if pos < 0 {
			out = append(out, line)
			continue
		}
		indent := line[:pos]
		entries := []string{strings.TrimSpace(line[pos+len(traceLabel):])}
		for i+1 < len(lines) && traceEntryRegex.MatchString(strings.TrimSpace(lines[i+1])) {
			i++
			entries = append(entries, strings.TrimSpace(lines[i]))
		}
		kept := 0
		for _, e := range entries {
			if e == "" || isHiddenFile(entryFile(e)) {
				continue
			}
			if kept == 0 {
				out = append(out, indent+traceLabel+"\t"+e)
			} else {
				out = append(out, indent+strings.Repeat(" ", len(traceLabel))+"\t"+e)
			}
			kept++
		}
	}
	return strings.Join(out, "\n")
}

func entryFile(entry string) string {
	if pos := strings.LastIndex(entry, ":"); pos >= 0 {
		return entry[:pos]
	}
	return entry
}
