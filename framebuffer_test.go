package glcheck

import (
	"testing"

	"github.com/gogpu/wgpu/hal/gles/gl"
	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/glcheck/fake"
	"github.com/gogpu/glcheck/internal/glenum"
)

func mustRenderbuffer(t *testing.T, c *Common, f RenderbufferFormat, w, h int) *Renderbuffer {
	t.Helper()
	rb, err := c.RenderbufferAllocate(f, w, h)
	mustNoErr(t, err)
	return rb
}

func mustAttachment(t *testing.T) func(Attachment, error) Attachment {
	return func(a Attachment, err error) Attachment {
		t.Helper()
		mustNoErr(t, err)
		return a
	}
}

// ===== Assembly =====

func TestFramebufferAllocateComplete(t *testing.T) {
	iface, drv := openNamed(t, "gl33")
	c := common(iface)
	att := mustAttachment(t)

	color := mustRenderbuffer(t, c, RenderbufferRGBA8888, 64, 64)
	depth := mustRenderbuffer(t, c, RenderbufferDepth24Stencil8, 64, 64)

	fb, status, err := c.FramebufferAllocate(
		att(ColorRenderbuffer(0, color)),
		att(DepthStencilRenderbuffer(depth)),
	)
	mustNoErr(t, err)
	if status != FramebufferComplete {
		t.Errorf("status = %v, want %v", status, FramebufferComplete)
	}
	if !fb.HasDepth() || !fb.HasStencil() || !fb.HasColorAttachment(0) {
		t.Errorf("framebuffer = depth %v stencil %v color0 %v", fb.HasDepth(), fb.HasStencil(), fb.HasColorAttachment(0))
	}

	for _, point := range []uint32{gl.COLOR_ATTACHMENT0, gl.DEPTH_ATTACHMENT, gl.STENCIL_ATTACHMENT} {
		kind, _, ok := drv.FramebufferAttachment(fb.NativeID(), point)
		if !ok || kind != gl.RENDERBUFFER {
			t.Errorf("attachment 0x%X = (0x%X, %v), want a renderbuffer", point, kind, ok)
		}
	}
	if anyBound, err := c.FramebufferDrawAnyIsBound(); err != nil || anyBound {
		t.Errorf("FramebufferDrawAnyIsBound() = %v, %v after allocation", anyBound, err)
	}
}

func TestFramebufferAllocateViolations(t *testing.T) {
	iface, drv := openNamed(t, "gl33")
	c := common(iface)
	att := mustAttachment(t)

	color := mustRenderbuffer(t, c, RenderbufferRGBA8888, 32, 32)
	ds := mustRenderbuffer(t, c, RenderbufferDepth24Stencil8, 32, 32)
	depth := mustRenderbuffer(t, c, RenderbufferDepth24, 32, 32)

	tests := []struct {
		name        string
		attachments []Attachment
		want        string
	}{
		{
			"two depth buffers",
			[]Attachment{att(ColorRenderbuffer(0, color)), att(DepthStencilRenderbuffer(ds)), att(DepthRenderbuffer(depth))},
			"Only one depth+stencil buffer provided",
		},
		{
			"depth only",
			[]Attachment{att(DepthRenderbuffer(depth))},
			"Framebuffer has at least one color buffer",
		},
		{
			"duplicate color",
			[]Attachment{att(ColorRenderbuffer(1, color)), att(ColorRenderbuffer(1, color))},
			"Color buffer not already present at this index",
		},
		{
			"color point out of range",
			[]Attachment{att(ColorRenderbuffer(8, color))},
			"Color attachment point",
		},
		{
			"empty attachment",
			[]Attachment{{}},
			"Attachment not null",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := drv.CallCount("CheckFramebufferStatus")
			fb, _, err := c.FramebufferAllocate(tt.attachments...)
			wantViolation(t, err, tt.want)
			if fb != nil {
				t.Error("failed allocation returned a framebuffer")
			}
			if n := drv.CallCount("CheckFramebufferStatus") - before; n != 0 {
				t.Errorf("CheckFramebufferStatus called %d times, want 0", n)
			}
		})
	}
}

func TestFramebufferAllocateDepthStencilExclusive(t *testing.T) {
	iface, drv := openNamed(t, "gles2")
	e := iface.(*Embedded)
	c := e.Common
	att := mustAttachment(t)

	packed, ok := e.PackedDepthStencil()
	if !ok {
		t.Fatal("gles2 profile has no packed depth/stencil")
	}
	newDS := func() *Renderbuffer {
		rb, err := packed.RenderbufferAllocateDepth24Stencil8(16, 16)
		mustNoErr(t, err)
		return rb
	}
	color := mustRenderbuffer(t, c, RenderbufferRGBA4444, 16, 16)
	ds1, ds2 := newDS(), newDS()
	stencil := mustRenderbuffer(t, c, RenderbufferStencil8, 16, 16)

	tests := []struct {
		name        string
		attachments []Attachment
	}{
		{
			"two depth+stencil buffers",
			[]Attachment{att(ColorRenderbuffer(0, color)), att(DepthStencilRenderbuffer(ds1)), att(DepthStencilRenderbuffer(ds2))},
		},
		{
			"stencil then depth+stencil",
			[]Attachment{att(ColorRenderbuffer(0, color)), att(StencilRenderbuffer(stencil)), att(DepthStencilRenderbuffer(ds1))},
		},
		{
			"depth+stencil then stencil",
			[]Attachment{att(ColorRenderbuffer(0, color)), att(DepthStencilRenderbuffer(ds1)), att(StencilRenderbuffer(stencil))},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := drv.CallCount("CheckFramebufferStatus")
			fb, _, err := c.FramebufferAllocate(tt.attachments...)
			wantViolation(t, err, "Only one depth+stencil buffer provided")
			if fb != nil {
				t.Error("failed allocation returned a framebuffer")
			}
			if n := drv.CallCount("CheckFramebufferStatus") - before; n != 0 {
				t.Errorf("CheckFramebufferStatus called %d times, want 0", n)
			}
		})
	}
}

func TestFramebufferAttachmentRoles(t *testing.T) {
	iface, _ := openNamed(t, "gl33")
	c := common(iface)

	color := mustRenderbuffer(t, c, RenderbufferRGBA8888, 16, 16)
	depth := mustRenderbuffer(t, c, RenderbufferDepth16, 16, 16)

	_, err := DepthRenderbuffer(color)
	wantViolation(t, err, "Renderbuffer is depth-renderable")
	_, err = ColorRenderbuffer(0, depth)
	wantViolation(t, err, "Renderbuffer is color-renderable")
	_, err = DepthStencilRenderbuffer(depth)
	wantViolation(t, err, "Renderbuffer is depth+stencil-renderable")
	_, err = DepthTexture2D(newTexture(t, c, 16, 16))
	wantViolation(t, err, "Texture is depth-renderable")
	_, err = ColorRenderbuffer(0, nil)
	wantViolation(t, err, "Renderbuffer not null")

	mustNoErr(t, c.RenderbufferDelete(color))
	_, err = ColorRenderbuffer(0, color)
	wantViolation(t, err, "Renderbuffer not deleted")
}

func TestFramebufferAttachmentDeletedAfterBuild(t *testing.T) {
	iface, _ := openNamed(t, "gl21")
	c := common(iface)
	tex := newTexture(t, c, 16, 16)
	a, err := ColorTexture2D(0, tex)
	mustNoErr(t, err)

	mustNoErr(t, c.Texture2DDelete(tex))
	_, _, err = c.FramebufferAllocate(a)
	wantViolation(t, err, "Texture not deleted")
}

func TestFramebufferTextureAttachments(t *testing.T) {
	iface, drv := openNamed(t, "gl33")
	c := common(iface)

	cube, err := c.TextureCubeAllocate(TextureCubeDescriptor{
		Size: 32, Format: rgba8,
		WrapR: clampToEdge, WrapS: clampToEdge, WrapT: clampToEdge,
		MinFilter: nearest, MagFilter: nearest,
	})
	mustNoErr(t, err)
	plain := newTexture(t, c, 32, 32)

	a0, err := ColorTexture2D(0, plain)
	mustNoErr(t, err)
	a1, err := ColorTextureCube(1, cube, CubeMapPositiveY)
	mustNoErr(t, err)

	fb, status, err := c.FramebufferAllocate(a0, a1)
	mustNoErr(t, err)
	if status != FramebufferComplete {
		t.Errorf("status = %v, want %v", status, FramebufferComplete)
	}
	kind, name, ok := drv.FramebufferAttachment(fb.NativeID(), gl.COLOR_ATTACHMENT0+1)
	if !ok || kind != glenum.TEXTURE || name != cube.NativeID() {
		t.Errorf("attachment 1 = (0x%X, %d, %v), want cube texture %d", kind, name, ok, cube.NativeID())
	}
	if diff := cmp.Diff([]ColorAttachmentPoint{0, 1}, fb.ColorAttachmentPoints()); diff != "" {
		t.Errorf("ColorAttachmentPoints() mismatch (-want +got):\n%s", diff)
	}

	_, err = ColorTextureCube(0, cube, 0)
	wantViolation(t, err, "Cube face")
}

func TestFramebufferIncompleteIsNotAnError(t *testing.T) {
	iface, _ := openNamed(t, "gles2")
	c := common(iface)
	att := mustAttachment(t)

	color := mustRenderbuffer(t, c, RenderbufferRGBA4444, 64, 64)
	depth := mustRenderbuffer(t, c, RenderbufferDepth16, 32, 32)

	fb, status, err := c.FramebufferAllocate(att(ColorRenderbuffer(0, color)), att(DepthRenderbuffer(depth)))
	mustNoErr(t, err)
	if fb == nil {
		t.Fatal("incomplete framebuffer not returned")
	}
	if status != FramebufferIncompleteDimensions {
		t.Errorf("status = %v, want %v", status, FramebufferIncompleteDimensions)
	}
}

func TestFramebufferEmbeddedColorPoints(t *testing.T) {
	iface, _ := openNamed(t, "gles2")
	c := common(iface)
	color := mustRenderbuffer(t, c, RenderbufferRGB565, 8, 8)
	a, err := ColorRenderbuffer(1, color)
	mustNoErr(t, err)
	_, _, err = c.FramebufferAllocate(a)
	wantViolation(t, err, "Color attachment point in range [0, 0]")
}

func TestRenderbufferFormatsPerTier(t *testing.T) {
	tests := []struct {
		profile string
		format  RenderbufferFormat
		ok      bool
	}{
		{"gles2", RenderbufferRGBA4444, true},
		{"gles2", RenderbufferStencil8, true},
		{"gles2", RenderbufferRGBA8888, false},
		{"gles2", RenderbufferDepth24Stencil8, false},
		{"gles3", RenderbufferRGBA8888, true},
		{"gles3", RenderbufferRGB565, true},
		{"gl33", RenderbufferDepth24Stencil8, true},
		{"gl33", RenderbufferRGBA4444, false},
		{"gl21", RenderbufferStencil8, false},
	}
	for _, tt := range tests {
		t.Run(tt.profile+"/"+tt.format.String(), func(t *testing.T) {
			iface, _ := openNamed(t, tt.profile)
			rb, err := common(iface).RenderbufferAllocate(tt.format, 8, 8)
			if !tt.ok {
				wantViolation(t, err, "Renderbuffer format "+tt.format.String()+" is supported")
				return
			}
			mustNoErr(t, err)
			if rb.Format() != tt.format {
				t.Errorf("Format() = %v, want %v", rb.Format(), tt.format)
			}
		})
	}
}

// ===== Binding =====

func TestFramebufferBinding(t *testing.T) {
	for _, profile := range allProfiles {
		t.Run(profile, func(t *testing.T) {
			iface, _ := openNamed(t, profile)
			c := common(iface)
			fb, _, err := c.FramebufferAllocate(mustAttachment(t)(ColorTexture2D(0, newTexture(t, c, 8, 8))))
			mustNoErr(t, err)

			mustNoErr(t, c.FramebufferDrawBind(fb))
			bound, err := c.FramebufferDrawIsBound(fb)
			mustNoErr(t, err)
			if !bound {
				t.Error("FramebufferDrawIsBound() = false after bind")
			}
			status, err := c.FramebufferDrawValidate()
			mustNoErr(t, err)
			if status != FramebufferComplete {
				t.Errorf("FramebufferDrawValidate() = %v, want %v", status, FramebufferComplete)
			}

			mustNoErr(t, c.FramebufferDrawUnbind())
			anyBound, err := c.FramebufferDrawAnyIsBound()
			mustNoErr(t, err)
			if anyBound {
				t.Error("FramebufferDrawAnyIsBound() = true after unbind")
			}

			mustNoErr(t, c.FramebufferDelete(fb))
			wantViolation(t, c.FramebufferDrawBind(fb), "Framebuffer not deleted")
		})
	}
}

// ===== Draw buffers =====

func TestFramebufferDrawSetBuffers(t *testing.T) {
	p, _ := fake.LookupProfile("gl33")
	p.MaxDrawBuffers = 4
	iface, drv := openProfile(t, p)
	m := iface.(*Modern)
	att := mustAttachment(t)

	if got := len(m.FramebufferDrawBuffers()); got != 4 {
		t.Fatalf("FramebufferDrawBuffers() has %d slots, want 4", got)
	}

	fb, _, err := m.FramebufferAllocate(
		att(ColorTexture2D(0, newTexture(t, m.Common, 8, 8))),
		att(ColorTexture2D(2, newTexture(t, m.Common, 8, 8))),
	)
	mustNoErr(t, err)

	mapping := map[DrawBuffer]ColorAttachmentPoint{1: 2}
	wantViolation(t, m.FramebufferDrawSetBuffers(fb, mapping), "Framebuffer is bound")

	mustNoErr(t, m.FramebufferDrawBind(fb))
	mustNoErr(t, m.FramebufferDrawSetBuffers(fb, mapping))
	want := []uint32{glenum.NONE, gl.COLOR_ATTACHMENT0 + 2, glenum.NONE, glenum.NONE}
	if diff := cmp.Diff(want, drv.LastDrawBuffers()); diff != "" {
		t.Errorf("draw buffers mismatch (-want +got):\n%s", diff)
	}

	wantViolation(t, m.FramebufferDrawSetBuffers(fb, map[DrawBuffer]ColorAttachmentPoint{4: 0}), "Draw buffer")
	wantViolation(t, m.FramebufferDrawSetBuffers(fb, map[DrawBuffer]ColorAttachmentPoint{0: 8}), "Color attachment point")
}

func TestDrawBufferNames(t *testing.T) {
	got := drawBufferNames(nil, 3, map[DrawBuffer]ColorAttachmentPoint{0: 0, 2: 5})
	want := []uint32{gl.COLOR_ATTACHMENT0, glenum.NONE, gl.COLOR_ATTACHMENT0 + 5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("drawBufferNames mismatch (-want +got):\n%s", diff)
	}
	if got := drawBufferNames(nil, 0, nil); len(got) != 0 {
		t.Errorf("drawBufferNames(0) = %v, want empty", got)
	}
}
