package fake

import (
	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/glenum"
)

type renderbuffer struct {
	internal      uint32
	width, height int32
	color         bool
	depth         int
	stencil       int
}

type attachment struct {
	kind      uint32 // gl.RENDERBUFFER or glenum.TEXTURE
	name      uint32
	texTarget uint32
}

type framebuffer struct {
	attachments map[uint32]attachment
}

func (f *framebuffer) detach(kind, name uint32) {
	for point, a := range f.attachments {
		if a.kind == kind && a.name == name {
			delete(f.attachments, point)
		}
	}
}

// renderbufferFormat describes one accepted renderbuffer internal format.
type renderbufferFormat struct {
	color        bool
	depth        int
	stencil      int
	es2          bool
	es2Extension []string
}

var renderbufferFormats = map[uint32]renderbufferFormat{
	glenum.RGBA4:             {color: true, es2: true},
	glenum.RGB5_A1:           {color: true, es2: true},
	glenum.RGB565:            {color: true, es2: true},
	gl.DEPTH_COMPONENT16:     {depth: 16, es2: true},
	glenum.STENCIL_INDEX8:    {stencil: 8, es2: true},
	gl.DEPTH24_STENCIL8:      {depth: 24, stencil: 8, es2: true, es2Extension: []string{"GL_OES_packed_depth_stencil", "GL_EXT_packed_depth_stencil"}},
	gl.RGBA8:                 {color: true},
	gl.RGB8:                  {color: true},
	gl.DEPTH_COMPONENT24:     {depth: 24},
	glenum.DEPTH_COMPONENT32F: {depth: 32},
}

// FramebufferAttachment reports what is attached to framebuffer fb at
// the attachment point, as (gl.RENDERBUFFER or TEXTURE, object name).
func (d *Driver) FramebufferAttachment(fb, point uint32) (kind, name uint32, ok bool) {
	f, exists := d.framebuffers[fb]
	if !exists {
		return 0, 0, false
	}
	a, exists := f.attachments[point]
	if !exists {
		return 0, 0, false
	}
	return a.kind, a.name, true
}

// FramebufferExists reports whether fb names a live framebuffer object.
func (d *Driver) FramebufferExists(fb uint32) bool {
	_, ok := d.framebuffers[fb]
	return ok
}

// GenRenderbuffer implements native.Framebuffers.
func (d *Driver) GenRenderbuffer() uint32 {
	d.record("GenRenderbuffer")
	id := d.newName()
	d.renderbuffers[id] = &renderbuffer{}
	return id
}

// DeleteRenderbuffer implements native.Framebuffers. The renderbuffer is
// detached from the currently bound framebuffer only.
func (d *Driver) DeleteRenderbuffer(id uint32) {
	d.record("DeleteRenderbuffer")
	if _, ok := d.renderbuffers[id]; !ok {
		return
	}
	delete(d.renderbuffers, id)
	if d.boundRB == id {
		d.boundRB = 0
	}
	if fb, ok := d.framebuffers[d.drawFB]; ok {
		fb.detach(gl.RENDERBUFFER, id)
	}
}

// BindRenderbuffer implements native.Framebuffers.
func (d *Driver) BindRenderbuffer(target, id uint32) {
	d.record("BindRenderbuffer")
	if target != gl.RENDERBUFFER {
		d.setError(gl.INVALID_ENUM)
		return
	}
	if _, ok := d.renderbuffers[id]; id != 0 && !ok {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	d.boundRB = id
}

// RenderbufferStorage implements native.Framebuffers.
func (d *Driver) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	d.record("RenderbufferStorage")
	if target != gl.RENDERBUFFER {
		d.setError(gl.INVALID_ENUM)
		return
	}
	rb, ok := d.renderbuffers[d.boundRB]
	if d.boundRB == 0 || !ok {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	f, ok := renderbufferFormats[internalFormat]
	if !ok || (d.es2() && !f.es2) || (d.es2() && !d.anyExtension(f.es2Extension)) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	maxSize := int32(d.profile.MaxTextureSize)
	if width < 0 || height < 0 || width > maxSize || height > maxSize {
		d.setError(gl.INVALID_VALUE)
		return
	}
	*rb = renderbuffer{
		internal: internalFormat,
		width:    width,
		height:   height,
		color:    f.color,
		depth:    f.depth,
		stencil:  f.stencil,
	}
}

// anyExtension reports whether names is empty or any of them is present.
func (d *Driver) anyExtension(names []string) bool {
	if len(names) == 0 {
		return true
	}
	return d.exts.Contains(names[0]) || (len(names) > 1 && d.anyExtension(names[1:]))
}

// GenFramebuffer implements native.Framebuffers.
func (d *Driver) GenFramebuffer() uint32 {
	d.record("GenFramebuffer")
	id := d.newName()
	d.framebuffers[id] = &framebuffer{attachments: make(map[uint32]attachment)}
	return id
}

// DeleteFramebuffer implements native.Framebuffers.
func (d *Driver) DeleteFramebuffer(id uint32) {
	d.record("DeleteFramebuffer")
	if _, ok := d.framebuffers[id]; !ok {
		return
	}
	delete(d.framebuffers, id)
	if d.drawFB == id {
		d.drawFB = 0
	}
}

func (d *Driver) validFramebufferTarget(target uint32) bool {
	switch target {
	case gl.FRAMEBUFFER:
		return true
	case gl.DRAW_FRAMEBUFFER, gl.READ_FRAMEBUFFER:
		return !d.es2()
	}
	return false
}

// BindFramebuffer implements native.Framebuffers. Read and draw
// bindings are not tracked separately.
func (d *Driver) BindFramebuffer(target, id uint32) {
	d.record("BindFramebuffer")
	if !d.validFramebufferTarget(target) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	if _, ok := d.framebuffers[id]; id != 0 && !ok {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	d.drawFB = id
}

func (d *Driver) validAttachmentPoint(point uint32) bool {
	switch point {
	case gl.DEPTH_ATTACHMENT, gl.STENCIL_ATTACHMENT:
		return true
	case gl.DEPTH_STENCIL_ATTACHMENT:
		return !d.es2()
	}
	return point >= gl.COLOR_ATTACHMENT0 && int(point-gl.COLOR_ATTACHMENT0) < d.maxColorAttachments()
}

// boundFramebuffer returns the bound framebuffer object or raises
// INVALID_OPERATION when the default framebuffer is bound.
func (d *Driver) boundFramebuffer(target uint32) *framebuffer {
	if !d.validFramebufferTarget(target) {
		d.setError(gl.INVALID_ENUM)
		return nil
	}
	fb, ok := d.framebuffers[d.drawFB]
	if d.drawFB == 0 || !ok {
		d.setError(gl.INVALID_OPERATION)
		return nil
	}
	return fb
}

func (d *Driver) attach(fb *framebuffer, point uint32, a attachment) {
	if a.name == 0 {
		delete(fb.attachments, point)
		if point == gl.DEPTH_STENCIL_ATTACHMENT {
			delete(fb.attachments, gl.DEPTH_ATTACHMENT)
			delete(fb.attachments, gl.STENCIL_ATTACHMENT)
		}
		return
	}
	if point == gl.DEPTH_STENCIL_ATTACHMENT {
		fb.attachments[gl.DEPTH_ATTACHMENT] = a
		fb.attachments[gl.STENCIL_ATTACHMENT] = a
		return
	}
	fb.attachments[point] = a
}

// FramebufferTexture2D implements native.Framebuffers.
func (d *Driver) FramebufferTexture2D(target, attachmentPoint, texTarget, texture uint32, level int32) {
	d.record("FramebufferTexture2D")
	fb := d.boundFramebuffer(target)
	if fb == nil {
		return
	}
	if !d.validAttachmentPoint(attachmentPoint) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	if texTarget != gl.TEXTURE_2D && !isCubeFace(texTarget) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	if texture != 0 {
		t, ok := d.textures[texture]
		if !ok {
			d.setError(gl.INVALID_OPERATION)
			return
		}
		if (texTarget == gl.TEXTURE_2D) != (t.target == gl.TEXTURE_2D) {
			d.setError(gl.INVALID_OPERATION)
			return
		}
		if level != 0 {
			d.setError(gl.INVALID_VALUE)
			return
		}
	}
	d.attach(fb, attachmentPoint, attachment{kind: glenum.TEXTURE, name: texture, texTarget: texTarget})
}

// FramebufferRenderbuffer implements native.Framebuffers.
func (d *Driver) FramebufferRenderbuffer(target, attachmentPoint, rbTarget, rb uint32) {
	d.record("FramebufferRenderbuffer")
	fb := d.boundFramebuffer(target)
	if fb == nil {
		return
	}
	if !d.validAttachmentPoint(attachmentPoint) || rbTarget != gl.RENDERBUFFER {
		d.setError(gl.INVALID_ENUM)
		return
	}
	if _, ok := d.renderbuffers[rb]; rb != 0 && !ok {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	d.attach(fb, attachmentPoint, attachment{kind: gl.RENDERBUFFER, name: rb})
}

// attachmentInfo returns the renderability and size of an attached image.
func (d *Driver) attachmentInfo(a attachment) (color bool, depth, stencil int, w, h int32, ok bool) {
	switch a.kind {
	case gl.RENDERBUFFER:
		rb, exists := d.renderbuffers[a.name]
		if !exists || rb.internal == 0 {
			return false, 0, 0, 0, 0, false
		}
		return rb.color, rb.depth, rb.stencil, rb.width, rb.height, true
	case glenum.TEXTURE:
		t, exists := d.textures[a.name]
		if !exists {
			return false, 0, 0, 0, 0, false
		}
		img, exists := t.images[a.texTarget]
		if !exists {
			return false, 0, 0, 0, 0, false
		}
		pf, _ := d.lookupPixelFormat(img.internal, img.format, img.typ)
		return pf.color, pf.depth, pf.stencil, img.width, img.height, true
	}
	return false, 0, 0, 0, 0, false
}

// CheckFramebufferStatus implements native.Framebuffers.
func (d *Driver) CheckFramebufferStatus(target uint32) uint32 {
	d.record("CheckFramebufferStatus")
	if !d.validFramebufferTarget(target) {
		d.setError(gl.INVALID_ENUM)
		return 0
	}
	return d.status()
}

func (d *Driver) status() uint32 {
	fb, ok := d.framebuffers[d.drawFB]
	if d.drawFB == 0 || !ok {
		return gl.FRAMEBUFFER_COMPLETE
	}
	if len(fb.attachments) == 0 {
		return glenum.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT
	}
	var width, height int32 = -1, -1
	for point, a := range fb.attachments {
		color, depth, stencil, w, h, ok := d.attachmentInfo(a)
		if !ok || w == 0 || h == 0 {
			return glenum.FRAMEBUFFER_INCOMPLETE_ATTACHMENT
		}
		switch point {
		case gl.DEPTH_ATTACHMENT:
			ok = depth > 0
		case gl.STENCIL_ATTACHMENT:
			ok = stencil > 0
		default:
			ok = color
		}
		if !ok {
			return glenum.FRAMEBUFFER_INCOMPLETE_ATTACHMENT
		}
		if width >= 0 && d.es2() && (w != width || h != height) {
			return glenum.FRAMEBUFFER_INCOMPLETE_DIMENSIONS
		}
		width, height = w, h
	}
	if ds, hasDepth := fb.attachments[gl.DEPTH_ATTACHMENT]; hasDepth {
		if s, hasStencil := fb.attachments[gl.STENCIL_ATTACHMENT]; hasStencil && s != ds {
			return glenum.FRAMEBUFFER_UNSUPPORTED
		}
	}
	return gl.FRAMEBUFFER_COMPLETE
}

// framebufferBits returns the depth (or stencil) bits of the bound
// framebuffer.
func (d *Driver) framebufferBits(depth bool) int {
	fb, ok := d.framebuffers[d.drawFB]
	if d.drawFB == 0 || !ok {
		if depth {
			return d.profile.DepthBits
		}
		return d.profile.StencilBits
	}
	point := uint32(gl.STENCIL_ATTACHMENT)
	if depth {
		point = gl.DEPTH_ATTACHMENT
	}
	a, ok := fb.attachments[point]
	if !ok {
		return 0
	}
	_, db, sb, _, _, ok := d.attachmentInfo(a)
	if !ok {
		return 0
	}
	if depth {
		return db
	}
	return sb
}

// GetFramebufferAttachmentParameteriv implements native.Framebuffers.
// Size queries are only available on 3.0 contexts.
func (d *Driver) GetFramebufferAttachmentParameteriv(target, attachmentPoint, pname uint32) int32 {
	d.record("GetFramebufferAttachmentParameteriv")
	if !d.validFramebufferTarget(target) {
		d.setError(gl.INVALID_ENUM)
		return 0
	}
	switch pname {
	case glenum.FRAMEBUFFER_ATTACHMENT_OBJECT_TYPE:
	case glenum.FRAMEBUFFER_ATTACHMENT_DEPTH_SIZE, glenum.FRAMEBUFFER_ATTACHMENT_STENCIL_SIZE:
		if d.major < 3 {
			d.setError(gl.INVALID_ENUM)
			return 0
		}
	default:
		d.setError(gl.INVALID_ENUM)
		return 0
	}

	if d.drawFB == 0 {
		var bits int
		switch attachmentPoint {
		case glenum.DEPTH:
			bits = d.profile.DepthBits
		case glenum.STENCIL:
			bits = d.profile.StencilBits
		default:
			d.setError(gl.INVALID_ENUM)
			return 0
		}
		switch pname {
		case glenum.FRAMEBUFFER_ATTACHMENT_OBJECT_TYPE:
			if bits == 0 {
				return glenum.NONE
			}
			return glenum.FRAMEBUFFER_DEFAULT
		case glenum.FRAMEBUFFER_ATTACHMENT_DEPTH_SIZE:
			if attachmentPoint == glenum.DEPTH {
				return int32(bits)
			}
			return 0
		default:
			if attachmentPoint == glenum.STENCIL {
				return int32(bits)
			}
			return 0
		}
	}

	fb := d.framebuffers[d.drawFB]
	if !d.validAttachmentPoint(attachmentPoint) {
		d.setError(gl.INVALID_ENUM)
		return 0
	}
	a, ok := fb.attachments[attachmentPoint]
	if pname == glenum.FRAMEBUFFER_ATTACHMENT_OBJECT_TYPE {
		if !ok {
			return glenum.NONE
		}
		return int32(a.kind)
	}
	if !ok {
		d.setError(gl.INVALID_OPERATION)
		return 0
	}
	_, depth, stencil, _, _, _ := d.attachmentInfo(a)
	if pname == glenum.FRAMEBUFFER_ATTACHMENT_DEPTH_SIZE {
		return int32(depth)
	}
	return int32(stencil)
}

// DrawBuffers implements native.Framebuffers. OpenGL ES 3 additionally
// requires slot i to name COLOR_ATTACHMENTi or NONE.
func (d *Driver) DrawBuffers(buffers []uint32) {
	d.record("DrawBuffers")
	if d.es2() {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	if d.drawFB == 0 {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	if len(buffers) > d.profile.MaxDrawBuffers {
		d.setError(gl.INVALID_VALUE)
		return
	}
	for i, b := range buffers {
		if b == glenum.NONE {
			continue
		}
		if b < gl.COLOR_ATTACHMENT0 || int(b-gl.COLOR_ATTACHMENT0) >= d.maxColorAttachments() {
			d.setError(gl.INVALID_ENUM)
			return
		}
		if d.es && int(b-gl.COLOR_ATTACHMENT0) != i {
			d.setError(gl.INVALID_OPERATION)
			return
		}
	}
	d.drawBuffers = append(d.drawBuffers[:0], buffers...)
}
