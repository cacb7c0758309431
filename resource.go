package glcheck

import (
	"sort"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glcheck/internal/constraint"
)

// resource is the state shared by every handle: the native object name
// and the deleted flag. Only the facade sets the flag, and it is never
// cleared.
type resource struct {
	id      uint32
	deleted bool
}

// NativeID returns the object name assigned by the driver.
func (r *resource) NativeID() uint32 { return r.id }

// IsDeleted reports whether the object has been deleted.
func (r *resource) IsDeleted() bool { return r.deleted }

func (r *resource) markDeleted() { r.deleted = true }

// live checks that a handle is non-nil and has not been deleted.
func live[T any, P interface {
	*T
	IsDeleted() bool
}](p P, kind string) error {
	if p == nil {
		return constraint.New(kind + " not null")
	}
	if p.IsDeleted() {
		return constraint.New(kind + " not deleted")
	}
	return nil
}

// ArrayBuffer is a buffer of vertex records laid out by a descriptor.
type ArrayBuffer struct {
	resource
	desc     *ArrayBufferDescriptor
	elements int
	usage    UsageHint
}

// Descriptor returns the record layout.
func (b *ArrayBuffer) Descriptor() *ArrayBufferDescriptor { return b.desc }

// Elements returns the number of records.
func (b *ArrayBuffer) Elements() int { return b.elements }

// Size returns the size of the buffer in bytes.
func (b *ArrayBuffer) Size() int { return b.elements * b.desc.Size() }

// Usage returns the usage hint given at allocation.
func (b *ArrayBuffer) Usage() UsageHint { return b.usage }

// IndexBuffer is a buffer of element indices.
type IndexBuffer struct {
	resource
	typ   IndexType
	count int
	usage UsageHint
}

// Type returns the index type.
func (b *IndexBuffer) Type() IndexType { return b.typ }

// Count returns the number of indices.
func (b *IndexBuffer) Count() int { return b.count }

// Size returns the size of the buffer in bytes.
func (b *IndexBuffer) Size() int { return b.count * b.typ.Size() }

// Texture2D is a two-dimensional texture.
type Texture2D struct {
	resource
	width, height int
	format        gputypes.TextureFormat
	spec          textureSpec
	mipmapped     bool
}

// Width returns the width in texels.
func (t *Texture2D) Width() int { return t.width }

// Height returns the height in texels.
func (t *Texture2D) Height() int { return t.height }

// Format returns the texel format.
func (t *Texture2D) Format() gputypes.TextureFormat { return t.format }

// Role returns the attachment role of the texture's format.
func (t *Texture2D) Role() RenderableRole { return textureRole(t.format) }

// TextureCube is a cube map texture with square faces.
type TextureCube struct {
	resource
	size      int
	format    gputypes.TextureFormat
	spec      textureSpec
	mipmapped bool
}

// Size returns the width and height of each face.
func (t *TextureCube) Size() int { return t.size }

// Format returns the texel format.
func (t *TextureCube) Format() gputypes.TextureFormat { return t.format }

// Renderbuffer is an image that can only be rendered to.
type Renderbuffer struct {
	resource
	format        RenderbufferFormat
	width, height int
}

// Format returns the storage format.
func (r *Renderbuffer) Format() RenderbufferFormat { return r.format }

// Width returns the width in pixels.
func (r *Renderbuffer) Width() int { return r.width }

// Height returns the height in pixels.
func (r *Renderbuffer) Height() int { return r.height }

// Role returns the attachment role derived from the format.
func (r *Renderbuffer) Role() RenderableRole { return r.format.Role() }

// Framebuffer is an assembled framebuffer object.
type Framebuffer struct {
	resource
	colors     map[ColorAttachmentPoint]bool
	hasDepth   bool
	hasStencil bool
}

// ColorAttachmentPoints returns the occupied color points in order.
func (f *Framebuffer) ColorAttachmentPoints() []ColorAttachmentPoint {
	points := make([]ColorAttachmentPoint, 0, len(f.colors))
	for p := range f.colors {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })
	return points
}

// HasColorAttachment reports whether point is occupied.
func (f *Framebuffer) HasColorAttachment(point ColorAttachmentPoint) bool {
	return f.colors[point]
}

// HasDepth reports whether a depth image is attached.
func (f *Framebuffer) HasDepth() bool { return f.hasDepth }

// HasStencil reports whether a stencil image is attached.
func (f *Framebuffer) HasStencil() bool { return f.hasStencil }

// VertexShader is a compiled vertex shader.
type VertexShader struct {
	resource
	name string
}

// Name returns the name given at compilation.
func (s *VertexShader) Name() string { return s.name }

// FragmentShader is a compiled fragment shader.
type FragmentShader struct {
	resource
	name string
}

// Name returns the name given at compilation.
func (s *FragmentShader) Name() string { return s.name }

// Program is a linked shader program together with its active
// attributes and uniforms.
type Program struct {
	resource
	name       string
	attributes map[string]*ProgramAttribute
	uniforms   map[string]*ProgramUniform
}

// Name returns the name given at creation.
func (p *Program) Name() string { return p.name }

// Attribute returns the active attribute called name.
func (p *Program) Attribute(name string) (*ProgramAttribute, bool) {
	a, ok := p.attributes[name]
	return a, ok
}

// Uniform returns the active uniform called name.
func (p *Program) Uniform(name string) (*ProgramUniform, bool) {
	u, ok := p.uniforms[name]
	return u, ok
}

// AttributeNames returns the names of the active attributes, sorted.
func (p *Program) AttributeNames() []string { return sortedKeys(p.attributes) }

// UniformNames returns the names of the active uniforms, sorted.
func (p *Program) UniformNames() []string { return sortedKeys(p.uniforms) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ProgramAttribute is an active vertex input of a program.
type ProgramAttribute struct {
	program  *Program
	name     string
	location int32
	typ      ShaderType
}

// Program returns the owning program.
func (a *ProgramAttribute) Program() *Program { return a.program }

// Name returns the attribute name.
func (a *ProgramAttribute) Name() string { return a.name }

// Location returns the attribute index.
func (a *ProgramAttribute) Location() int32 { return a.location }

// Type returns the attribute type.
func (a *ProgramAttribute) Type() ShaderType { return a.typ }

// ProgramUniform is an active uniform of a program.
type ProgramUniform struct {
	program  *Program
	name     string
	location int32
	typ      ShaderType
	size     int32
}

// Program returns the owning program.
func (u *ProgramUniform) Program() *Program { return u.program }

// Name returns the uniform name. Array uniforms are named without the
// trailing "[0]".
func (u *ProgramUniform) Name() string { return u.name }

// Location returns the uniform location.
func (u *ProgramUniform) Location() int32 { return u.location }

// Type returns the uniform type.
func (u *ProgramUniform) Type() ShaderType { return u.typ }

// Size returns the array length, 1 for non-array uniforms.
func (u *ProgramUniform) Size() int32 { return u.size }
