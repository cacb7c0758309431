package glcheck

import (
	"strings"
	"testing"

	"github.com/gogpu/wgpu/hal/gles/gl"
	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/glcheck/fake"
)

// ===== Registry =====

func TestExtensionVisibility(t *testing.T) {
	r := newExtensionRegistry([]string{"A", "B"}, StaticPolicy{Hidden: []string{"B"}})

	tests := []struct {
		name      string
		supported bool
		visible   bool
	}{
		{"A", true, true},
		{"B", true, false},
		{"C", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.IsSupported(tt.name); got != tt.supported {
				t.Errorf("IsSupported(%q) = %v, want %v", tt.name, got, tt.supported)
			}
			if got := r.IsVisible(tt.name); got != tt.visible {
				t.Errorf("IsVisible(%q) = %v, want %v", tt.name, got, tt.visible)
			}
		})
	}
	if diff := cmp.Diff([]string{"A"}, r.Visible()); diff != "" {
		t.Errorf("Visible() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtensionSupportedIsCopy(t *testing.T) {
	r := newExtensionRegistry([]string{"A"}, DefaultPolicy())
	s := r.Supported()
	s.Add("Z")
	if r.IsSupported("Z") {
		t.Error("mutating Supported() changed the registry")
	}
}

func TestStaticPolicyClamp(t *testing.T) {
	tests := []struct {
		max, n, want int
	}{
		{0, 16, 16},
		{-1, 16, 16},
		{4, 16, 4},
		{32, 16, 16},
	}
	for _, tt := range tests {
		p := StaticPolicy{MaxTextureUnits: tt.max}
		if got := p.ClampTextureUnitCount(tt.n); got != tt.want {
			t.Errorf("StaticPolicy{%d}.ClampTextureUnitCount(%d) = %d, want %d", tt.max, tt.n, got, tt.want)
		}
	}
}

func TestLoadPolicy(t *testing.T) {
	src := `
hidden = ["GL_EXT_texture_filter_anisotropic", "GL_OES_depth_texture"]
max_texture_units = 4
`
	p, err := LoadPolicy(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadPolicy error = %v", err)
	}
	want := StaticPolicy{
		Hidden:          []string{ExtTextureFilterAnisotropic, ExtDepthTexture},
		MaxTextureUnits: 4,
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("LoadPolicy mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadPolicy(strings.NewReader("hidden = 3")); err == nil {
		t.Error("LoadPolicy accepted a malformed policy")
	}
}

// ===== Discovery =====

func TestExtensionDiscovery(t *testing.T) {
	tests := []struct {
		profile string
		indexed bool
	}{
		{"gles2", false},
		{"gl21", false},
		{"gl33", true},
	}
	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			iface, drv := openNamed(t, tt.profile)
			want := append([]string(nil), drv.Profile().Extensions...)
			got := iface.Extensions().Visible()
			if diff := cmp.Diff(sortedCopy(want), got); diff != "" {
				t.Errorf("Visible() mismatch (-want +got):\n%s", diff)
			}
			calls := drv.CallCount("GetStringi")
			if tt.indexed && calls != len(want) {
				t.Errorf("GetStringi called %d times, want %d", calls, len(want))
			}
			if !tt.indexed && calls != 0 {
				t.Errorf("GetStringi called %d times, want 0", calls)
			}
		})
	}
}

func sortedCopy(s []string) []string {
	m := make(map[string]bool, len(s))
	for _, v := range s {
		m[v] = true
	}
	return sortedKeys(m)
}

// ===== Capabilities =====

func TestEmbeddedCapabilities(t *testing.T) {
	iface, _ := openNamed(t, "gles2")
	e := iface.(*Embedded)

	ds, ok := e.PackedDepthStencil()
	if !ok {
		t.Fatal("PackedDepthStencil() not available on gles2")
	}
	if ds.Name() != ExtPackedDepthStencilOES {
		t.Errorf("Name() = %q, want %q", ds.Name(), ExtPackedDepthStencilOES)
	}
	rb, err := ds.RenderbufferAllocateDepth24Stencil8(64, 64)
	mustNoErr(t, err)
	if rb.Role() != RoleDepthStencil {
		t.Errorf("Role() = %v, want %v", rb.Role(), RoleDepthStencil)
	}

	dt, ok := e.DepthTexture()
	if !ok {
		t.Fatal("DepthTexture() not available on gles2")
	}
	tex, err := dt.Texture2DAllocate(Texture2DDescriptor{
		Width: 64, Height: 64, Format: depth24,
		WrapS: clampToEdge, WrapT: clampToEdge, MinFilter: nearest, MagFilter: nearest,
	})
	mustNoErr(t, err)
	if tex.Role() != RoleDepth {
		t.Errorf("Role() = %v, want %v", tex.Role(), RoleDepth)
	}

	_, err = dt.Texture2DAllocate(Texture2DDescriptor{
		Width: 64, Height: 64, Format: rgba8,
		WrapS: clampToEdge, WrapT: clampToEdge, MinFilter: nearest, MagFilter: nearest,
	})
	wantViolation(t, err, "is a depth format")
}

func TestEmbeddedCapabilitiesHidden(t *testing.T) {
	policy := StaticPolicy{Hidden: []string{ExtPackedDepthStencilOES, ExtDepthTexture}}
	iface, _ := openNamed(t, "gles2", WithRestrictions(policy))
	e := iface.(*Embedded)

	if _, ok := e.PackedDepthStencil(); ok {
		t.Error("PackedDepthStencil() available with the extension hidden")
	}
	if _, ok := e.DepthTexture(); ok {
		t.Error("DepthTexture() available with the extension hidden")
	}
	_, err := e.Texture2DAllocate(Texture2DDescriptor{
		Width: 64, Height: 64, Format: depth24,
		WrapS: clampToEdge, WrapT: clampToEdge, MinFilter: nearest, MagFilter: nearest,
	})
	wantViolation(t, err, "is a color format")
}

func TestTextureFilterAnisotropic(t *testing.T) {
	iface, drv := openNamed(t, "gl33")
	c := common(iface)

	a, ok := c.TextureFilterAnisotropic()
	if !ok {
		t.Fatal("TextureFilterAnisotropic() not available on gl33")
	}
	if got := a.MaximumAnisotropy(); got != drv.Profile().MaxAnisotropy {
		t.Errorf("MaximumAnisotropy() = %v, want %v", got, drv.Profile().MaxAnisotropy)
	}
	tex := newTexture(t, c, 16, 16)
	mustNoErr(t, a.Texture2DSetAnisotropy(tex, 8))
	if got, _ := drv.TextureParameter(tex.NativeID(), gl.TEXTURE_MAX_ANISOTROPY); got != 8 {
		t.Errorf("TEXTURE_MAX_ANISOTROPY = %v, want 8", got)
	}
	wantViolation(t, a.Texture2DSetAnisotropy(tex, 0.5), "Anisotropy in range")
	wantViolation(t, a.Texture2DSetAnisotropy(tex, 64), "Anisotropy in range")

	mustNoErr(t, c.Texture2DDelete(tex))
	wantViolation(t, a.Texture2DSetAnisotropy(tex, 2), "Texture not deleted")
}

func TestTextureFilterAnisotropicAbsent(t *testing.T) {
	iface, _ := openNamed(t, "gles3")
	if _, ok := common(iface).TextureFilterAnisotropic(); ok {
		t.Error("TextureFilterAnisotropic() available without the extension")
	}

	p, _ := fake.LookupProfile("gl46")
	iface, _ = openProfile(t, p, WithRestrictions(StaticPolicy{Hidden: []string{ExtTextureFilterAnisotropic}}))
	if _, ok := common(iface).TextureFilterAnisotropic(); ok {
		t.Error("TextureFilterAnisotropic() available with the extension hidden")
	}
}
