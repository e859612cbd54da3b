package opengl

import (
	"errors"

	"quad-engine/core"
	"quad-engine/math"
)

// ErrContextInit is returned when the OpenGL function pointers cannot be
// loaded, usually because no context is current on the calling thread.
var ErrContextInit = errors.New("opengl context initialization failed")

// ShaderStage identifies the step of program creation that failed.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
	StageLink
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageLink:
		return "link"
	}
	return "unknown"
}

// TextureFilter selects minification and magnification sampling.
type TextureFilter int

const (
	FilterLinear TextureFilter = iota
	FilterNearest
)

// TextureWrap selects the S and T wrap mode.
type TextureWrap int

const (
	WrapRepeat TextureWrap = iota
	WrapClamp
)

type TextureOptions struct {
	Filter  TextureFilter
	Wrap    TextureWrap
	Mipmaps bool
}

// DefaultTextureOptions matches what image assets want: linear, repeating, mipmapped.
func DefaultTextureOptions() TextureOptions {
	return TextureOptions{Filter: FilterLinear, Wrap: WrapRepeat, Mipmaps: true}
}

// Device is the GPU surface the renderer needs. GL implements it against a
// live context; gltest.Device records calls for tests.
//
// Handles are opaque uint32 names; 0 is never a valid handle.
type Device interface {
	Viewport(x, y, width, height int32)
	ClearColor(c core.Color)
	Clear()
	SetBlending(enabled bool)
	SetDepthTest(enabled bool)

	CreateShader(stage ShaderStage, source string) uint32
	// ShaderCompiled reports whether the shader compiled and returns its info log.
	ShaderCompiled(shader uint32) (bool, string)
	DeleteShader(shader uint32)
	CreateProgram(shaders ...uint32) uint32
	ProgramLinked(program uint32) (bool, string)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1iv(location int32, v []int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	Uniform4f(location int32, x, y, z, w float32)
	UniformMatrix4(location int32, m math.Mat4)

	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	CreateBuffer() uint32
	DeleteBuffer(buffer uint32)
	// AllocateVertexBuffer binds vbo and reserves size bytes of dynamic storage.
	AllocateVertexBuffer(vbo uint32, size int)
	// UploadIndexBuffer binds ebo to the bound vertex array and uploads indices once.
	UploadIndexBuffer(ebo uint32, indices []uint32)
	VertexAttrib(attr core.VertexAttribute, stride int32)
	UploadVertices(vbo uint32, vertices []core.Vertex)
	DrawIndexed(count int32)

	CreateTexture(width, height int, pixels []byte, opts TextureOptions) uint32
	BindTexture(unit int, texture uint32)
	DeleteTexture(texture uint32)

	MaxTextureUnits() int
}
