package glcheck

import (
	"context"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/glcheck/internal/glenum"
	"github.com/gogpu/glcheck/native"
)

// Interface is a validated context returned by Open. It is one of
// *Embedded, *Legacy or *Modern:
//
//	switch c := iface.(type) {
//	case *glcheck.Modern:
//	    c.FramebufferDrawSetBuffers(fb, mapping)
//	case *glcheck.Embedded:
//	    ...
//	}
type Interface interface {
	Tier() Tier
	Version() Version
	Vendor() string
	Renderer() string
	AdapterInfo() gpucontext.AdapterInfo
	Extensions() *ExtensionRegistry
	sealed()
}

var (
	_ Interface = (*Embedded)(nil)
	_ Interface = (*Legacy)(nil)
	_ Interface = (*Modern)(nil)
)

// Common holds the state and operations shared by every tier.
type Common struct {
	drv      native.Driver
	backend  tierBackend
	version  Version
	vendor   string
	renderer string
	ext      *ExtensionRegistry
	policy   RestrictionPolicy
	cache    *stateCache
	log      *slog.Logger
}

// Extended adds the operations of desktop contexts.
type Extended struct {
	*Common
}

// Embedded is an OpenGL ES 2.0 or later context.
type Embedded struct {
	*Common
}

// Legacy is a desktop OpenGL 2.1 context.
type Legacy struct {
	*Extended
}

// Modern is a desktop OpenGL 3.0 or later context.
type Modern struct {
	*Extended
}

func (*Embedded) sealed() {}
func (*Legacy) sealed()   {}
func (*Modern) sealed()   {}

// Open validates the context behind drv and returns the facade for its
// tier. drv must be current on the calling thread for as long as the
// facade is used.
func Open(drv native.Driver, opts ...Option) (Interface, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}
	if o.trace {
		drv = native.Trace(drv, log)
	}

	c := &Common{
		drv:    drv,
		policy: o.policy,
		cache:  newStateCache(),
		log:    log,
	}

	raw := drv.GetString(gl.VERSION)
	if err := c.check(); err != nil {
		return nil, err
	}
	v, err := ParseVersion(raw)
	if err != nil {
		return nil, err
	}
	c.version = v
	c.vendor = drv.GetString(gl.VENDOR)
	c.renderer = drv.GetString(gl.RENDERER)
	if err := c.check(); err != nil {
		return nil, err
	}

	names, err := discoverExtensions(drv, v.Tier, c.check)
	if err != nil {
		return nil, err
	}
	c.ext = newExtensionRegistry(names, o.policy)

	switch v.Tier {
	case TierEmbedded:
		c.backend = embeddedBackend{gl3: v.Major >= 3}
	case TierLegacy:
		c.backend = legacyBackend{}
	default:
		c.backend = modernBackend{}
	}
	if err := c.backend.baseline(c.ext); err != nil {
		return nil, err
	}
	if err := c.initCache(); err != nil {
		return nil, err
	}

	if log.Enabled(context.Background(), slog.LevelInfo) {
		log.Info("glcheck: context opened",
			"version", v.String(),
			"tier", v.Tier.String(),
			"vendor", c.vendor,
			"renderer", c.renderer,
			"extensions", c.ext.supported.Cardinality(),
			"texture_units", len(c.cache.units))
	}

	switch v.Tier {
	case TierEmbedded:
		return &Embedded{Common: c}, nil
	case TierLegacy:
		return &Legacy{Extended: &Extended{Common: c}}, nil
	default:
		return &Modern{Extended: &Extended{Common: c}}, nil
	}
}

// initCache reads the limits that do not change for the lifetime of the
// context.
func (c *Common) initCache() error {
	units, err := c.queryInt(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS)
	if err != nil {
		return err
	}
	// A policy is not trusted to only ever lower the count.
	units = min(c.policy.ClampTextureUnitCount(units), units)
	c.cache.units = makeUnits(max(units, 0))

	if c.cache.maxTextureSize, err = c.queryInt(gl.MAX_TEXTURE_SIZE); err != nil {
		return err
	}
	if c.cache.maxRenderbufferSize, err = c.queryInt(gl.MAX_RENDERBUFFER_SIZE); err != nil {
		return err
	}

	points, err := c.backend.maxColorAttachments(c)
	if err != nil {
		return err
	}
	c.cache.colorPoints = makeColorPoints(points)

	if c.version.Tier != TierEmbedded {
		n, err := c.queryInt(gl.MAX_DRAW_BUFFERS)
		if err != nil {
			return err
		}
		c.cache.drawBuffers = makeDrawBuffers(n)
	}

	if c.cache.aliasedLineWidth, err = c.queryFloat2(glenum.ALIASED_LINE_WIDTH_RANGE); err != nil {
		return err
	}
	if c.version.Tier == TierEmbedded {
		c.cache.smoothLineWidth = c.cache.aliasedLineWidth
	} else if c.cache.smoothLineWidth, err = c.queryFloat2(glenum.SMOOTH_LINE_WIDTH_RANGE); err != nil {
		return err
	}

	if c.ext.IsVisible(ExtTextureFilterAnisotropic) {
		r, err := c.queryFloat2(glenum.MAX_TEXTURE_MAX_ANISOTROPY)
		if err != nil {
			return err
		}
		c.cache.maxAnisotropy = r[0]
	}
	return nil
}

// check reads the error flag after a native call.
func (c *Common) check() error {
	code := c.drv.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	err := &RuntimeError{Code: code, Description: ErrorDescription(code)}
	if c.log.Enabled(context.Background(), slog.LevelWarn) {
		c.log.Warn("glcheck: native error", "code", code, "description", err.Description)
	}
	return err
}

// debugEnabled gates every debug log call so attributes are only built
// when they will be written.
func (c *Common) debugEnabled() bool {
	return c.log.Enabled(context.Background(), slog.LevelDebug)
}

// Tier returns the capability tier of the context.
func (c *Common) Tier() Tier { return c.version.Tier }

// Version returns the parsed context version.
func (c *Common) Version() Version { return c.version }

// Vendor returns the GL_VENDOR string.
func (c *Common) Vendor() string { return c.vendor }

// Renderer returns the GL_RENDERER string.
func (c *Common) Renderer() string { return c.renderer }

// Logger returns the logger the facade writes to: the one given with
// WithLogger, or the package logger at the time of Open.
func (c *Common) Logger() *slog.Logger { return c.log }

// Extensions returns the extension registry.
func (c *Common) Extensions() *ExtensionRegistry { return c.ext }

// TextureUnits returns the usable texture units after the restriction
// policy has been applied.
func (c *Common) TextureUnits() []TextureUnit {
	return append([]TextureUnit(nil), c.cache.units...)
}

// TextureMaximumSize returns the largest texture width or height.
func (c *Common) TextureMaximumSize() int { return c.cache.maxTextureSize }

// RenderbufferMaximumSize returns the largest renderbuffer width or
// height.
func (c *Common) RenderbufferMaximumSize() int { return c.cache.maxRenderbufferSize }

// FramebufferColorAttachmentPoints returns the color attachment points
// of the tier.
func (c *Common) FramebufferColorAttachmentPoints() []ColorAttachmentPoint {
	return append([]ColorAttachmentPoint(nil), c.cache.colorPoints...)
}

// LineWidthRange returns the aliased and smooth line width ranges.
func (c *Common) LineWidthRange() (aliased, smooth [2]float32) {
	return c.cache.aliasedLineWidth, c.cache.smoothLineWidth
}
