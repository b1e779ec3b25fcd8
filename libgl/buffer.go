package libgl

import (
	"encoding/binary"
	"log"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type buffer struct {
	glId      uint32
	size      int
	flags     uint32
	immutable bool
}

type UnboundBuffer interface {
	LabeledGlObject
	Id() uint32
	Allocate(data any, flags int)
	AllocateEmpty(size int, flags int)
	Grow(size int) bool
	Write(offset int, data any)
	WritePointer(offset int, size int, data unsafe.Pointer)
	Size() int
	Delete()
}

func NewBuffer() UnboundBuffer {
	var id uint32
	gl.CreateBuffers(1, &id)
	return &buffer{
		glId: id,
	}
}

func (vbo *buffer) Id() uint32 {
	return vbo.glId
}

func (vbo *buffer) SetDebugLabel(label string) {
	setObjectLabel(gl.BUFFER, vbo.glId, label)
}

func (vbo *buffer) Size() int {
	return vbo.size
}

func (vbo *buffer) AllocateEmpty(size int, flags int) {
	if vbo.immutable {
		log.Panicf("buffer %d is immutable", vbo.glId)
	}
	gl.NamedBufferStorage(vbo.glId, size, nil, uint32(flags))
	vbo.size = size
	vbo.flags = uint32(flags)
	vbo.immutable = true
}

// Allocate creates immutable storage sized and initialized from data, which must
// have a fixed binary size.
func (vbo *buffer) Allocate(data any, flags int) {
	if vbo.immutable {
		log.Panicf("buffer %d is immutable", vbo.glId)
	}
	size := binary.Size(data)
	if size <= 0 {
		log.Panicf("%T does not have a fixed, non-zero size", data)
	}
	gl.NamedBufferStorage(vbo.glId, size, Pointer(data), uint32(flags))
	vbo.size = size
	vbo.flags = uint32(flags)
	vbo.immutable = true
}

// Grow replaces the storage with a larger one when size does not fit, keeping
// the old contents. Because the buffer name changes, callers must rebind it
// to any vertex array when Grow returns true.
func (vbo *buffer) Grow(size int) bool {
	if size <= vbo.size {
		return false
	}
	newSize := vbo.size * 2
	if newSize < size {
		newSize = size
	}

	var newId uint32
	gl.CreateBuffers(1, &newId)
	gl.NamedBufferStorage(newId, newSize, nil, vbo.flags)
	if vbo.size > 0 {
		gl.CopyNamedBufferSubData(vbo.glId, newId, 0, 0, vbo.size)
	}
	gl.DeleteBuffers(1, &vbo.glId)
	vbo.glId = newId
	vbo.size = newSize
	return true
}

func (vbo *buffer) Write(offset int, data any) {
	size := binary.Size(data)
	if size == -1 {
		log.Panicf("%T does not have a fixed size", data)
	}
	if size == 0 {
		return
	}
	gl.NamedBufferSubData(vbo.glId, offset, size, Pointer(data))
}

// WritePointer copies size bytes from memory not owned by Go, such as the
// overlay's draw lists.
func (vbo *buffer) WritePointer(offset int, size int, data unsafe.Pointer) {
	if size == 0 {
		return
	}
	gl.NamedBufferSubData(vbo.glId, offset, size, data)
}

func (vbo *buffer) Delete() {
	gl.DeleteBuffers(1, &vbo.glId)
	vbo.glId = 0
}

type vertexArray struct {
	glId          uint32
	bindingRanges [][2]int
}

type UnboundVertexArray interface {
	LabeledGlObject
	Layout(bufferIndex int, attributeIndex int, size int, dataType int, normalized bool, offset int)
	BindBuffer(bufferIndex int, vbo UnboundBuffer, offset int, stride int)
	ReBindBuffer(bufferIndex int, vbo UnboundBuffer)
	BindElementBuffer(ebo UnboundBuffer)
	Id() uint32
	Bind() BoundVertexArray
	Delete()
}

type BoundVertexArray interface {
	UnboundVertexArray
}

func NewVertexArray() UnboundVertexArray {
	var id uint32
	gl.CreateVertexArrays(1, &id)
	return &vertexArray{
		glId:          id,
		bindingRanges: make([][2]int, 16),
	}
}

func (vao *vertexArray) SetDebugLabel(label string) {
	setObjectLabel(gl.VERTEX_ARRAY, vao.glId, label)
}

func (vao *vertexArray) Bind() BoundVertexArray {
	State.BindVertexArray(vao.glId)
	return BoundVertexArray(vao)
}

func (vao *vertexArray) Id() uint32 {
	return vao.glId
}

func (vao *vertexArray) Layout(bufferIndex int, attributeIndex int, size int, dataType int, normalized bool, offset int) {
	gl.EnableVertexArrayAttrib(vao.glId, uint32(attributeIndex))
	gl.VertexArrayAttribFormat(vao.glId, uint32(attributeIndex), int32(size), uint32(dataType), normalized, uint32(offset))
	gl.VertexArrayAttribBinding(vao.glId, uint32(attributeIndex), uint32(bufferIndex))
}

func (vao *vertexArray) BindBuffer(bufferIndex int, vbo UnboundBuffer, offset int, stride int) {
	vao.bindingRanges[bufferIndex] = [2]int{offset, stride}
	gl.VertexArrayVertexBuffer(vao.glId, uint32(bufferIndex), vbo.Id(), offset, int32(stride))
}

// ReBindBuffer attaches vbo with the offset and stride of the previous binding.
func (vao *vertexArray) ReBindBuffer(bufferIndex int, vbo UnboundBuffer) {
	r := vao.bindingRanges[bufferIndex]
	gl.VertexArrayVertexBuffer(vao.glId, uint32(bufferIndex), vbo.Id(), r[0], int32(r[1]))
}

func (vao *vertexArray) BindElementBuffer(ebo UnboundBuffer) {
	gl.VertexArrayElementBuffer(vao.glId, ebo.Id())
}

func (vao *vertexArray) Delete() {
	gl.DeleteVertexArrays(1, &vao.glId)
	vao.glId = 0
}
