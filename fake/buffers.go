package fake

import (
	"github.com/gogpu/wgpu/hal/gles/gl"
)

type buffer struct {
	data   []byte
	usage  uint32
	mapped bool
	access uint32
}

type vertexAttrib struct {
	enabled    bool
	buffer     uint32
	size       int32
	typ        uint32
	normalized bool
	stride     int32
	offset     int
}

// VertexAttrib describes the state of one vertex attribute array.
type VertexAttrib struct {
	Enabled bool
	Buffer  uint32
	Size    int32
	Type    uint32
	Stride  int32
	Offset  int
}

// VertexAttribState returns the state of attribute array index.
func (d *Driver) VertexAttribState(index uint32) VertexAttrib {
	if int(index) >= len(d.attribs) {
		return VertexAttrib{}
	}
	a := d.attribs[index]
	return VertexAttrib{
		Enabled: a.enabled,
		Buffer:  a.buffer,
		Size:    a.size,
		Type:    a.typ,
		Stride:  a.stride,
		Offset:  a.offset,
	}
}

// BufferContents returns a copy of the store of buffer id.
func (d *Driver) BufferContents(id uint32) ([]byte, bool) {
	b, ok := d.buffers[id]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b.data...), true
}

func validUsage(u uint32) bool {
	switch u {
	case gl.STREAM_DRAW, gl.STREAM_READ, gl.STREAM_COPY,
		gl.STATIC_DRAW, gl.STATIC_READ, gl.STATIC_COPY,
		gl.DYNAMIC_DRAW, gl.DYNAMIC_READ, gl.DYNAMIC_COPY:
		return true
	}
	return false
}

func (d *Driver) bufferBinding(target uint32) (*uint32, bool) {
	switch target {
	case gl.ARRAY_BUFFER:
		return &d.arrayBuffer, true
	case gl.ELEMENT_ARRAY_BUFFER:
		return &d.elementBuffer, true
	}
	d.setError(gl.INVALID_ENUM)
	return nil, false
}

// bound returns the buffer bound at target, raising the matching error
// when there is none.
func (d *Driver) bound(target uint32) *buffer {
	binding, ok := d.bufferBinding(target)
	if !ok {
		return nil
	}
	b, ok := d.buffers[*binding]
	if *binding == 0 || !ok {
		d.setError(gl.INVALID_OPERATION)
		return nil
	}
	return b
}

// GenBuffer implements native.Buffers.
func (d *Driver) GenBuffer() uint32 {
	d.record("GenBuffer")
	id := d.newName()
	d.buffers[id] = &buffer{usage: gl.STATIC_DRAW}
	return id
}

// DeleteBuffer implements native.Buffers. Deleting a bound buffer
// reverts the binding to zero.
func (d *Driver) DeleteBuffer(id uint32) {
	d.record("DeleteBuffer")
	if _, ok := d.buffers[id]; !ok {
		return
	}
	delete(d.buffers, id)
	if d.arrayBuffer == id {
		d.arrayBuffer = 0
	}
	if d.elementBuffer == id {
		d.elementBuffer = 0
	}
	for i := range d.attribs {
		if d.attribs[i].buffer == id {
			d.attribs[i].buffer = 0
		}
	}
}

// BindBuffer implements native.Buffers.
func (d *Driver) BindBuffer(target, id uint32) {
	d.record("BindBuffer")
	binding, ok := d.bufferBinding(target)
	if !ok {
		return
	}
	if _, exists := d.buffers[id]; id != 0 && !exists {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	*binding = id
}

// BufferData implements native.Buffers.
func (d *Driver) BufferData(target uint32, size int, data []byte, usage uint32) {
	d.record("BufferData")
	b := d.bound(target)
	if b == nil {
		return
	}
	if size < 0 {
		d.setError(gl.INVALID_VALUE)
		return
	}
	if !validUsage(usage) {
		d.setError(gl.INVALID_ENUM)
		return
	}
	b.data = make([]byte, size)
	copy(b.data, data)
	b.usage = usage
	b.mapped = false
}

// BufferSubData implements native.Buffers.
func (d *Driver) BufferSubData(target uint32, offset int, data []byte) {
	d.record("BufferSubData")
	b := d.bound(target)
	if b == nil {
		return
	}
	if offset < 0 || offset+len(data) > len(b.data) {
		d.setError(gl.INVALID_VALUE)
		return
	}
	if b.mapped {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	copy(b.data[offset:], data)
}

// MapBuffer implements native.Buffers. OpenGL ES 2 has no buffer
// mapping without GL_OES_mapbuffer.
func (d *Driver) MapBuffer(target, access uint32) []byte {
	d.record("MapBuffer")
	if d.es2() && !d.exts.Contains("GL_OES_mapbuffer") {
		d.setError(gl.INVALID_OPERATION)
		return nil
	}
	b := d.bound(target)
	if b == nil {
		return nil
	}
	switch access {
	case gl.READ_ONLY, gl.WRITE_ONLY, gl.READ_WRITE:
	default:
		d.setError(gl.INVALID_ENUM)
		return nil
	}
	if b.mapped {
		d.setError(gl.INVALID_OPERATION)
		return nil
	}
	b.mapped = true
	b.access = access
	return b.data
}

// UnmapBuffer implements native.Buffers.
func (d *Driver) UnmapBuffer(target uint32) bool {
	d.record("UnmapBuffer")
	b := d.bound(target)
	if b == nil {
		return false
	}
	if !b.mapped {
		d.setError(gl.INVALID_OPERATION)
		return false
	}
	b.mapped = false
	return true
}

// EnableVertexAttribArray implements native.Buffers.
func (d *Driver) EnableVertexAttribArray(index uint32) {
	d.record("EnableVertexAttribArray")
	if int(index) >= len(d.attribs) {
		d.setError(gl.INVALID_VALUE)
		return
	}
	d.attribs[index].enabled = true
}

// DisableVertexAttribArray implements native.Buffers.
func (d *Driver) DisableVertexAttribArray(index uint32) {
	d.record("DisableVertexAttribArray")
	if int(index) >= len(d.attribs) {
		d.setError(gl.INVALID_VALUE)
		return
	}
	d.attribs[index].enabled = false
}

// VertexAttribPointer implements native.Buffers.
func (d *Driver) VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset int) {
	d.record("VertexAttribPointer")
	if int(index) >= len(d.attribs) || size < 1 || size > 4 || stride < 0 || offset < 0 {
		d.setError(gl.INVALID_VALUE)
		return
	}
	switch typ {
	case gl.BYTE, gl.UNSIGNED_BYTE, gl.SHORT, gl.UNSIGNED_SHORT, gl.INT, gl.UNSIGNED_INT, gl.FLOAT:
	default:
		d.setError(gl.INVALID_ENUM)
		return
	}
	if d.arrayBuffer == 0 {
		d.setError(gl.INVALID_OPERATION)
		return
	}
	a := &d.attribs[index]
	a.buffer = d.arrayBuffer
	a.size = size
	a.typ = typ
	a.normalized = normalized
	a.stride = stride
	a.offset = offset
}
