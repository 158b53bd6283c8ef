package shaderbox

import (
	"errors"
	"fmt"
)

// ErrContextLost is reported by a Device when the graphics context is gone.
// The render loop stops when it sees it.
var ErrContextLost = errors.New("graphics context lost")

// IOError reports a failed shader source fetch.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ShaderCompileError carries the compiler log of a failed stage.
type ShaderCompileError struct {
	Kind StageKind
	Log  string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Kind, e.Log)
}

// ProgramLinkError carries the linker log of a failed program.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return fmt.Sprintf("shader program linking failed: %s", e.Log)
}

// ContextUnavailableError means no graphics backend could be brought up.
type ContextUnavailableError struct {
	Reason string
	Err    error
}

func (e *ContextUnavailableError) Error() string {
	if e.Err == nil {
		return "graphics context unavailable: " + e.Reason
	}
	return fmt.Sprintf("graphics context unavailable: %s: %v", e.Reason, e.Err)
}

func (e *ContextUnavailableError) Unwrap() error { return e.Err }

// FrameError is a backend fault observed while rendering a single frame.
type FrameError struct {
	Frame uint64
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }
