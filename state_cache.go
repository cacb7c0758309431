package glcheck

// stateCache holds the per-facade scratch buffers for native queries and
// the limits read once by Open. Nothing here is shared between facades.
type stateCache struct {
	ints   []int32
	floats []float32
	bools  []bool
	names  []uint32

	units       []TextureUnit
	colorPoints []ColorAttachmentPoint
	drawBuffers []DrawBuffer

	maxTextureSize      int
	maxRenderbufferSize int

	aliasedLineWidth [2]float32
	smoothLineWidth  [2]float32

	maxAnisotropy float32

	polygonMode PolygonMode
}

func newStateCache() *stateCache {
	return &stateCache{
		ints:        make([]int32, 4),
		floats:      make([]float32, 4),
		bools:       make([]bool, 4),
		polygonMode: PolygonFill,
	}
}

// queryInt returns the first integer of a query result. The scratch
// buffer is cleared first so a failed query reads as zero.
func (c *Common) queryInt(pname uint32) (int, error) {
	clear(c.cache.ints)
	c.drv.GetIntegerv(pname, c.cache.ints)
	if err := c.check(); err != nil {
		return 0, err
	}
	return int(c.cache.ints[0]), nil
}

// queryFloat2 returns the first two floats of a query result.
func (c *Common) queryFloat2(pname uint32) ([2]float32, error) {
	clear(c.cache.floats)
	c.drv.GetFloatv(pname, c.cache.floats)
	if err := c.check(); err != nil {
		return [2]float32{}, err
	}
	return [2]float32{c.cache.floats[0], c.cache.floats[1]}, nil
}

// queryBools returns the first n booleans of a query result.
func (c *Common) queryBools(pname uint32, n int) ([]bool, error) {
	clear(c.cache.bools)
	c.drv.GetBooleanv(pname, c.cache.bools)
	if err := c.check(); err != nil {
		return nil, err
	}
	return c.cache.bools[:n], nil
}

func makeUnits(n int) []TextureUnit {
	units := make([]TextureUnit, n)
	for i := range units {
		units[i] = TextureUnit(i)
	}
	return units
}

func makeColorPoints(n int) []ColorAttachmentPoint {
	points := make([]ColorAttachmentPoint, n)
	for i := range points {
		points[i] = ColorAttachmentPoint(i)
	}
	return points
}

func makeDrawBuffers(n int) []DrawBuffer {
	buffers := make([]DrawBuffer, n)
	for i := range buffers {
		buffers[i] = DrawBuffer(i)
	}
	return buffers
}
