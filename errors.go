package glcheck

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/constraint"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrUnsupported matches every *UnsupportedError.
	ErrUnsupported = errors.New("glcheck: unsupported")

	// ErrRuntime matches every *RuntimeError.
	ErrRuntime = errors.New("glcheck: native error")
)

// ConstraintViolation reports a failed precondition. It is a programmer
// error: the native call was not made and retrying cannot succeed.
type ConstraintViolation = constraint.Violation

// RuntimeError is a non-zero code read from the driver's error flag
// after a native call.
type RuntimeError struct {
	Code        uint32
	Description string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("glcheck: %s (0x%04X)", e.Description, e.Code)
}

// Is reports whether target is ErrRuntime.
func (e *RuntimeError) Is(target error) bool { return target == ErrRuntime }

// CompileError reports a shader that failed to compile or a program
// that failed to link. Log is the driver's info log.
type CompileError struct {
	Name string
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("glcheck: compile %s: %s", e.Name, e.Log)
}

// UnsupportedError reports a context that glcheck cannot drive.
type UnsupportedError struct {
	Message string
}

func (e *UnsupportedError) Error() string { return "glcheck: " + e.Message }

// Is reports whether target is ErrUnsupported.
func (e *UnsupportedError) Is(target error) bool { return target == ErrUnsupported }

// IsConstraintViolation reports whether err is or wraps a
// ConstraintViolation.
func IsConstraintViolation(err error) bool {
	var v *ConstraintViolation
	return errors.As(err, &v)
}

const (
	stackOverflow  = 0x0503
	stackUnderflow = 0x0504
)

// ErrorDescription returns the symbolic name of a native error code.
func ErrorDescription(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "GL_NO_ERROR"
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case stackOverflow:
		return "GL_STACK_OVERFLOW"
	case stackUnderflow:
		return "GL_STACK_UNDERFLOW"
	}
	return fmt.Sprintf("OpenGL error: code %d", code)
}
