package glcheck

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glcheck/fake"
)

func openProfile(t *testing.T, p fake.Profile, opts ...Option) (Interface, *fake.Driver) {
	t.Helper()
	drv, err := fake.New(p)
	if err != nil {
		t.Fatalf("fake.New(%q) error = %v", p.Name, err)
	}
	iface, err := Open(drv, opts...)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", p.Name, err)
	}
	return iface, drv
}

func openNamed(t *testing.T, name string, opts ...Option) (Interface, *fake.Driver) {
	t.Helper()
	p, ok := fake.LookupProfile(name)
	if !ok {
		t.Fatalf("unknown profile %q", name)
	}
	return openProfile(t, p, opts...)
}

// common returns the shared operations of any facade.
func common(iface Interface) *Common {
	switch c := iface.(type) {
	case *Embedded:
		return c.Common
	case *Legacy:
		return c.Common
	case *Modern:
		return c.Common
	}
	panic("unreachable")
}

func wantViolation(t *testing.T, err error, substr string) {
	t.Helper()
	var v *ConstraintViolation
	if !errors.As(err, &v) {
		t.Fatalf("error = %v, want constraint violation containing %q", err, substr)
	}
	if !strings.Contains(v.Description, substr) {
		t.Errorf("violation = %q, want it to contain %q", v.Description, substr)
	}
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

var allProfiles = []string{"gles2", "gles3", "gl21", "gl33", "gl46"}

const (
	vertexSource = `attribute vec3 position;
attribute vec2 uv;
uniform mat4 transform;
uniform float alpha;
void main() { gl_Position = transform * vec4(position, 1.0); }
`
	fragmentSource = `uniform sampler2D image;
uniform vec4 tint;
uniform int mode;
uniform vec3 lights[4];
void main() { gl_FragColor = tint; }
`
)

func newProgram(t *testing.T, c *Common) *Program {
	t.Helper()
	v, err := c.VertexShaderCompile("vertex", vertexSource)
	mustNoErr(t, err)
	f, err := c.FragmentShaderCompile("fragment", fragmentSource)
	mustNoErr(t, err)
	p, err := c.ProgramCreate("program", v, f)
	mustNoErr(t, err)
	return p
}

const (
	rgba8       = gputypes.TextureFormatRGBA8Unorm
	depth24     = gputypes.TextureFormatDepth24Plus
	clampToEdge = gputypes.AddressModeClampToEdge
	nearest     = gputypes.FilterModeNearest
)

func newTexture(t *testing.T, c *Common, width, height int) *Texture2D {
	t.Helper()
	tex, err := c.Texture2DAllocate(Texture2DDescriptor{
		Width: width, Height: height, Format: rgba8,
		WrapS: clampToEdge, WrapT: clampToEdge, MinFilter: nearest, MagFilter: nearest,
	})
	mustNoErr(t, err)
	return tex
}

func newDescriptor(t *testing.T) *ArrayBufferDescriptor {
	t.Helper()
	d, err := NewArrayBufferDescriptor(
		ArrayBufferAttributeDescriptor{Name: "position", Type: ScalarFloat, Elements: 3},
		ArrayBufferAttributeDescriptor{Name: "uv", Type: ScalarFloat, Elements: 2},
	)
	mustNoErr(t, err)
	return d
}
