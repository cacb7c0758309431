// Package fake implements native.Driver entirely in memory.
//
// The fake keeps the object tables, bindings and error flag of a real
// context and applies the same validation rules for the subset of the
// API that glcheck uses, so a mistake that would raise a GL error on
// hardware raises the same error here. What it pretends to be (version
// string, extensions, limits) comes from a Profile.
package fake

import (
	"context"
	"log/slog"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/glenum"
	"github.com/gogpu/glcheck/native"
)

var _ native.Driver = (*Driver)(nil)

// Driver is an in-memory OpenGL context.
type Driver struct {
	profile      Profile
	es           bool
	major, minor int
	exts         mapset.Set[string]
	log          *slog.Logger

	err      uint32
	calls    map[string]int
	lastName uint32

	buffers       map[uint32]*buffer
	textures      map[uint32]*texture
	renderbuffers map[uint32]*renderbuffer
	framebuffers  map[uint32]*framebuffer
	shaders       map[uint32]*shader
	programs      map[uint32]*program

	arrayBuffer   uint32
	elementBuffer uint32
	drawFB        uint32
	boundRB       uint32
	current       uint32
	activeUnit    int
	units         []unitBindings
	attribs       []vertexAttrib

	enabled      map[uint32]bool
	blend        [6]uint32 // srcRGB, dstRGB, srcA, dstA, eqRGB, eqA
	cullFace     uint32
	frontFace    uint32
	depthFunc    uint32
	depthMask    bool
	colorMask    [4]bool
	clearColor   [4]float32
	clearDepth   float32
	clearStencil int32
	stencil      [2]stencilFace
	scissor      [4]int32
	viewport     [4]int32
	lineWidth    float32
	polygonMode  uint32
	drawBuffers  []uint32
	draws        int
	clears       int
}

type unitBindings struct {
	tex2D uint32
	cube  uint32
}

type stencilFace struct {
	fn, sfail, dpfail, dppass uint32
	ref                       int32
	valueMask, writeMask      uint32
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger makes the driver log GL errors as they are raised.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		d.log = l
	}
}

// New returns a driver that behaves like the context described by p.
func New(p Profile, opts ...Option) (*Driver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	es, major, minor, _ := parseVersion(p.Version)
	d := &Driver{
		profile:       p,
		es:            es,
		major:         major,
		minor:         minor,
		exts:          mapset.NewThreadUnsafeSet(p.Extensions...),
		log:           slog.New(discard{}),
		calls:         make(map[string]int),
		buffers:       make(map[uint32]*buffer),
		textures:      make(map[uint32]*texture),
		renderbuffers: make(map[uint32]*renderbuffer),
		framebuffers:  make(map[uint32]*framebuffer),
		shaders:       make(map[uint32]*shader),
		programs:      make(map[uint32]*program),
		units:         make([]unitBindings, p.MaxTextureUnits),
		attribs:       make([]vertexAttrib, p.MaxVertexAttribs),
		enabled:       map[uint32]bool{gl.DITHER: true},
		blend:         [6]uint32{gl.ONE, gl.ZERO, gl.ONE, gl.ZERO, gl.FUNC_ADD, gl.FUNC_ADD},
		cullFace:      gl.BACK,
		frontFace:     gl.CCW,
		depthFunc:     gl.LESS,
		depthMask:     true,
		colorMask:     [4]bool{true, true, true, true},
		clearDepth:    1,
		lineWidth:     1,
		polygonMode:   glenum.FILL,
	}
	for i := range d.stencil {
		d.stencil[i] = stencilFace{
			fn: gl.ALWAYS, sfail: gl.KEEP, dpfail: gl.KEEP, dppass: gl.KEEP,
			valueMask: ^uint32(0), writeMask: ^uint32(0),
		}
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// NewNamed returns a driver for the named built-in profile.
func NewNamed(name string, opts ...Option) (*Driver, error) {
	p, ok := LookupProfile(name)
	if !ok {
		return nil, &UnknownProfileError{Name: name}
	}
	return New(p, opts...)
}

// UnknownProfileError is returned by NewNamed for unregistered names.
type UnknownProfileError struct {
	Name string
}

func (e *UnknownProfileError) Error() string {
	return "fake: unknown profile: " + e.Name
}

// Profile returns the profile the driver was built from.
func (d *Driver) Profile() Profile { return d.profile }

// InjectError raises code as if the next checked call had failed.
func (d *Driver) InjectError(code uint32) { d.setError(code) }

// CallCount returns how many times the named entry point was called.
func (d *Driver) CallCount(fn string) int { return d.calls[fn] }

// Draws returns the number of successful draw calls.
func (d *Driver) Draws() int { return d.draws }

// Clears returns the number of successful clear calls.
func (d *Driver) Clears() int { return d.clears }

// LastDrawBuffers returns the list most recently passed to DrawBuffers.
func (d *Driver) LastDrawBuffers() []uint32 {
	return append([]uint32(nil), d.drawBuffers...)
}

func (d *Driver) record(fn string) { d.calls[fn]++ }

// setError keeps the first error until GetError reads it.
func (d *Driver) setError(code uint32) {
	if d.err != gl.NO_ERROR {
		return
	}
	d.err = code
	if d.log.Enabled(context.Background(), slog.LevelDebug) {
		d.log.Debug("fake: gl error raised", "code", code)
	}
}

func (d *Driver) newName() uint32 {
	d.lastName++
	return d.lastName
}

// core reports whether the context is a desktop core profile.
func (d *Driver) core() bool { return !d.es && d.major >= 3 }

// es2 reports whether the context is OpenGL ES 2.
func (d *Driver) es2() bool { return d.es && d.major < 3 }

func (d *Driver) maxColorAttachments() int {
	if d.es2() {
		return 1
	}
	return d.profile.MaxColorAttachments
}

// ===== Queries =====

// GetError returns and clears the error flag.
func (d *Driver) GetError() uint32 {
	d.record("GetError")
	code := d.err
	d.err = gl.NO_ERROR
	return code
}

// GetString implements native.Queries.
func (d *Driver) GetString(name uint32) string {
	d.record("GetString")
	switch name {
	case gl.VERSION:
		return d.profile.Version
	case gl.VENDOR:
		return d.profile.Vendor
	case gl.RENDERER:
		return d.profile.Renderer
	case gl.SHADING_LANGUAGE_VERSION:
		return d.profile.ShadingLanguageVersion
	case gl.EXTENSIONS:
		if d.core() {
			d.setError(gl.INVALID_ENUM)
			return ""
		}
		return strings.Join(d.profile.Extensions, " ")
	}
	d.setError(gl.INVALID_ENUM)
	return ""
}

// GetStringi implements native.Queries. It only exists on 3.0 contexts.
func (d *Driver) GetStringi(name, index uint32) string {
	d.record("GetStringi")
	if d.major < 3 {
		d.setError(gl.INVALID_OPERATION)
		return ""
	}
	if name != gl.EXTENSIONS {
		d.setError(gl.INVALID_ENUM)
		return ""
	}
	if int(index) >= len(d.profile.Extensions) {
		d.setError(gl.INVALID_VALUE)
		return ""
	}
	return d.profile.Extensions[index]
}

// GetIntegerv implements native.Queries.
func (d *Driver) GetIntegerv(pname uint32, data []int32) {
	d.record("GetIntegerv")
	if len(data) == 0 {
		return
	}
	switch pname {
	case gl.MAX_TEXTURE_IMAGE_UNITS, gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS:
		data[0] = int32(d.profile.MaxTextureUnits)
	case gl.MAX_TEXTURE_SIZE, gl.MAX_RENDERBUFFER_SIZE:
		data[0] = int32(d.profile.MaxTextureSize)
	case gl.MAX_VERTEX_ATTRIBS:
		data[0] = int32(d.profile.MaxVertexAttribs)
	case gl.MAX_COLOR_ATTACHMENTS:
		if d.es2() {
			d.setError(gl.INVALID_ENUM)
			return
		}
		data[0] = int32(d.profile.MaxColorAttachments)
	case gl.MAX_DRAW_BUFFERS:
		if d.es2() {
			d.setError(gl.INVALID_ENUM)
			return
		}
		data[0] = int32(d.profile.MaxDrawBuffers)
	case glenum.NUM_EXTENSIONS:
		if d.major < 3 {
			d.setError(gl.INVALID_ENUM)
			return
		}
		data[0] = int32(len(d.profile.Extensions))
	case glenum.DEPTH_BITS:
		if d.core() {
			d.setError(gl.INVALID_ENUM)
			return
		}
		data[0] = int32(d.framebufferBits(true))
	case glenum.STENCIL_BITS:
		if d.core() {
			d.setError(gl.INVALID_ENUM)
			return
		}
		data[0] = int32(d.framebufferBits(false))
	case glenum.ARRAY_BUFFER_BINDING:
		data[0] = int32(d.arrayBuffer)
	case glenum.ELEMENT_ARRAY_BUFFER_BINDING:
		data[0] = int32(d.elementBuffer)
	case gl.FRAMEBUFFER_BINDING:
		data[0] = int32(d.drawFB)
	case glenum.RENDERBUFFER_BINDING:
		data[0] = int32(d.boundRB)
	case glenum.TEXTURE_BINDING_2D:
		data[0] = int32(d.units[d.activeUnit].tex2D)
	case glenum.TEXTURE_BINDING_CUBE_MAP:
		data[0] = int32(d.units[d.activeUnit].cube)
	case glenum.ACTIVE_TEXTURE:
		data[0] = int32(gl.TEXTURE0 + d.activeUnit)
	case glenum.CURRENT_PROGRAM:
		data[0] = int32(d.current)
	case glenum.POLYGON_MODE:
		if d.es {
			d.setError(gl.INVALID_ENUM)
			return
		}
		for i := range data[:min(len(data), 2)] {
			data[i] = int32(d.polygonMode)
		}
	default:
		d.setError(gl.INVALID_ENUM)
	}
}

// GetFloatv implements native.Queries.
func (d *Driver) GetFloatv(pname uint32, data []float32) {
	d.record("GetFloatv")
	if len(data) == 0 {
		return
	}
	switch pname {
	case glenum.ALIASED_LINE_WIDTH_RANGE:
		copy(data, d.profile.AliasedLineWidth[:])
	case glenum.SMOOTH_LINE_WIDTH_RANGE:
		if d.es {
			d.setError(gl.INVALID_ENUM)
			return
		}
		copy(data, d.profile.SmoothLineWidth[:])
	case glenum.LINE_WIDTH:
		data[0] = d.lineWidth
	case glenum.MAX_TEXTURE_MAX_ANISOTROPY:
		if !d.exts.Contains("GL_EXT_texture_filter_anisotropic") {
			d.setError(gl.INVALID_ENUM)
			return
		}
		data[0] = d.profile.MaxAnisotropy
	default:
		d.setError(gl.INVALID_ENUM)
	}
}

// GetBooleanv implements native.Queries.
func (d *Driver) GetBooleanv(pname uint32, data []bool) {
	d.record("GetBooleanv")
	if len(data) == 0 {
		return
	}
	switch pname {
	case glenum.COLOR_WRITEMASK:
		copy(data, d.colorMask[:])
	case glenum.DEPTH_WRITEMASK:
		data[0] = d.depthMask
	default:
		d.setError(gl.INVALID_ENUM)
	}
}

func validCapability(c uint32) bool {
	switch c {
	case gl.BLEND, gl.CULL_FACE, gl.DEPTH_TEST, gl.DITHER, gl.SCISSOR_TEST, gl.STENCIL_TEST:
		return true
	}
	return false
}

// IsEnabled implements native.Queries.
func (d *Driver) IsEnabled(capability uint32) bool {
	d.record("IsEnabled")
	if !validCapability(capability) {
		d.setError(gl.INVALID_ENUM)
		return false
	}
	return d.enabled[capability]
}

// Enable implements native.Queries.
func (d *Driver) Enable(capability uint32) {
	d.record("Enable")
	if !validCapability(capability) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	d.enabled[capability] = true
}

// Disable implements native.Queries.
func (d *Driver) Disable(capability uint32) {
	d.record("Disable")
	if !validCapability(capability) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	d.enabled[capability] = false
}

// discard is a handler that drops every record.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }
