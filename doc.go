// Package glcheck is a validating layer over a stateful OpenGL or OpenGL
// ES driver.
//
// # Overview
//
// glcheck sits between an application and the driver's C-style entry
// points. Every operation checks its preconditions before the native call
// is made and reads the driver's error flag after it, so a mistake is
// reported at the call that made it rather than frames later as a black
// screen.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/glcheck"
//	    "github.com/gogpu/glcheck/fake"
//	)
//
//	drv, _ := fake.NewNamed("gl33")
//	iface, err := glcheck.Open(drv)
//	if err != nil {
//	    return err
//	}
//	switch c := iface.(type) {
//	case *glcheck.Modern:
//	    c.PolygonSetMode(glcheck.PolygonLines)
//	case *glcheck.Embedded:
//	    if ds, ok := c.PackedDepthStencil(); ok {
//	        ds.RenderbufferAllocateDepth24Stencil8(640, 480)
//	    }
//	}
//
// # Tiers
//
// Open probes the version string and returns exactly one of:
//   - *Embedded: OpenGL ES 2.0 and later
//   - *Legacy: desktop OpenGL 2.1 with framebuffer object extensions
//   - *Modern: desktop OpenGL 3.0 and later
//
// Operations that a tier cannot perform are absent from its type, so
// calling them is a compile error rather than a runtime one. Optional
// features are reached through capability objects such as
// TextureFilterAnisotropic, which exist only when the extension is
// supported and allowed by the RestrictionPolicy.
//
// # Errors
//
// Failures fall into four groups:
//   - *ConstraintViolation: a precondition failed and nothing was sent
//     to the driver
//   - *RuntimeError: the driver raised an error flag (matches ErrRuntime)
//   - *CompileError: a shader failed to compile or a program to link
//   - *UnsupportedError: the context cannot be driven (matches
//     ErrUnsupported)
//
// # Resources
//
// Every object the driver creates is returned as a handle that records
// its native name and whether it has been deleted. Deletion is final:
// any later use of a deleted handle, including a second delete, is a
// constraint violation.
//
// # Related packages
//
// Package shader translates WGSL to the GLSL dialect of a context and
// builds programs from it. Package texload decodes images into 2D
// textures. Command glprobe prints what a driver profile exposes.
//
// # Threading
//
// A facade is bound to the thread its driver is current on. It does no
// locking of its own.
package glcheck
