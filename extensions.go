package glcheck

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/glenum"
	"github.com/gogpu/glcheck/native"
)

// Extension names glcheck knows about.
const (
	ExtPackedDepthStencilOES     = "GL_OES_packed_depth_stencil"
	ExtPackedDepthStencilEXT     = "GL_EXT_packed_depth_stencil"
	ExtDepthTexture              = "GL_OES_depth_texture"
	ExtElementIndexUint          = "GL_OES_element_index_uint"
	ExtTextureFilterAnisotropic  = "GL_EXT_texture_filter_anisotropic"
	ExtFramebufferObjectARB      = "GL_ARB_framebuffer_object"
	ExtFramebufferObjectEXT      = "GL_EXT_framebuffer_object"
	ExtFramebufferMultisampleEXT = "GL_EXT_framebuffer_multisample"
	ExtFramebufferBlitEXT        = "GL_EXT_framebuffer_blit"
)

// RestrictionPolicy narrows what a context reports. It is used to test
// code paths for less capable drivers on a capable one.
type RestrictionPolicy interface {
	// AllowExtension reports whether a supported extension is exposed.
	AllowExtension(name string) bool
	// ClampTextureUnitCount returns at most n texture units.
	ClampTextureUnitCount(n int) int
}

type defaultPolicy struct{}

func (defaultPolicy) AllowExtension(string) bool      { return true }
func (defaultPolicy) ClampTextureUnitCount(n int) int { return n }

// DefaultPolicy returns the policy that allows every extension and does
// not clamp texture units.
func DefaultPolicy() RestrictionPolicy { return defaultPolicy{} }

// StaticPolicy is a RestrictionPolicy read from configuration:
//
//	hidden = ["GL_EXT_texture_filter_anisotropic"]
//	max_texture_units = 4
type StaticPolicy struct {
	Hidden          []string `toml:"hidden"`
	MaxTextureUnits int      `toml:"max_texture_units"`
}

// AllowExtension implements RestrictionPolicy.
func (p StaticPolicy) AllowExtension(name string) bool {
	return !slices.Contains(p.Hidden, name)
}

// ClampTextureUnitCount implements RestrictionPolicy. A non-positive
// MaxTextureUnits leaves n unchanged.
func (p StaticPolicy) ClampTextureUnitCount(n int) int {
	if p.MaxTextureUnits > 0 && p.MaxTextureUnits < n {
		return p.MaxTextureUnits
	}
	return n
}

// LoadPolicy decodes a StaticPolicy from TOML.
func LoadPolicy(r io.Reader) (StaticPolicy, error) {
	var p StaticPolicy
	if _, err := toml.NewDecoder(r).Decode(&p); err != nil {
		return StaticPolicy{}, fmt.Errorf("glcheck: decode policy: %w", err)
	}
	return p, nil
}

// LoadPolicyFile reads a StaticPolicy from a TOML file.
func LoadPolicyFile(path string) (StaticPolicy, error) {
	f, err := os.Open(path)
	if err != nil {
		return StaticPolicy{}, err
	}
	defer f.Close()
	return LoadPolicy(f)
}

// ExtensionRegistry records the extensions a context supports and which
// of them the policy exposes.
type ExtensionRegistry struct {
	supported mapset.Set[string]
	policy    RestrictionPolicy
}

func newExtensionRegistry(names []string, policy RestrictionPolicy) *ExtensionRegistry {
	return &ExtensionRegistry{
		supported: mapset.NewThreadUnsafeSet(names...),
		policy:    policy,
	}
}

// Supported returns a copy of the supported extension set.
func (r *ExtensionRegistry) Supported() mapset.Set[string] {
	return r.supported.Clone()
}

// IsSupported reports whether the driver advertises name.
func (r *ExtensionRegistry) IsSupported(name string) bool {
	return r.supported.Contains(name)
}

// IsVisible reports whether name is supported and allowed by the policy.
func (r *ExtensionRegistry) IsVisible(name string) bool {
	return r.supported.Contains(name) && r.policy.AllowExtension(name)
}

// Visible returns the sorted names of the visible extensions.
func (r *ExtensionRegistry) Visible() []string {
	var names []string
	r.supported.Each(func(name string) bool {
		if r.policy.AllowExtension(name) {
			names = append(names, name)
		}
		return false
	})
	sort.Strings(names)
	return names
}

// discoverExtensions lists the extensions of the current context. Modern
// contexts have no single extension string.
func discoverExtensions(drv native.Driver, tier Tier, check func() error) ([]string, error) {
	if tier != TierModern {
		s := drv.GetString(gl.EXTENSIONS)
		if err := check(); err != nil {
			return nil, err
		}
		return strings.Fields(s), nil
	}

	n := []int32{0}
	drv.GetIntegerv(glenum.NUM_EXTENSIONS, n)
	if err := check(); err != nil {
		return nil, err
	}
	names := make([]string, 0, n[0])
	for i := range uint32(n[0]) {
		names = append(names, drv.GetStringi(gl.EXTENSIONS, i))
	}
	if err := check(); err != nil {
		return nil, err
	}
	return names, nil
}
