package opengl

import (
	"fmt"
	"log/slog"

	"quad-engine/math"
)

// ShaderError reports a failed compile or link together with the driver log.
type ShaderError struct {
	Stage ShaderStage
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Stage == StageLink {
		return fmt.Sprintf("link failed: %s", e.Log)
	}
	return fmt.Sprintf("%s: compile failed: %s", e.Stage, e.Log)
}

// Shader is a linked program plus a cache of uniform locations. Unknown
// uniforms are cached as -1 so the lookup and the warning happen once.
type Shader struct {
	dev       Device
	program   uint32
	locations map[string]int32
	logger    *slog.Logger
}

// CreateFromSource compiles both stages and links them. The per-stage
// objects are released on every path, including failures.
func CreateFromSource(dev Device, vertexSrc, fragmentSrc string, logger *slog.Logger) (*Shader, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	vert, err := compileStage(dev, StageVertex, vertexSrc)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(vert)

	frag, err := compileStage(dev, StageFragment, fragmentSrc)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(frag)

	prog := dev.CreateProgram(vert, frag)
	if ok, log := dev.ProgramLinked(prog); !ok {
		dev.DeleteProgram(prog)
		return nil, &ShaderError{Stage: StageLink, Log: log}
	}

	return &Shader{
		dev:       dev,
		program:   prog,
		locations: make(map[string]int32),
		logger:    logger,
	}, nil
}

func compileStage(dev Device, stage ShaderStage, src string) (uint32, error) {
	id := dev.CreateShader(stage, src)
	if ok, log := dev.ShaderCompiled(id); !ok {
		dev.DeleteShader(id)
		return 0, &ShaderError{Stage: stage, Log: log}
	}
	return id, nil
}

func (s *Shader) Program() uint32 { return s.program }

func (s *Shader) Bind() {
	s.dev.UseProgram(s.program)
}

func (s *Shader) Unbind() {
	s.dev.UseProgram(0)
}

// Destroy releases the program. Safe to call more than once.
func (s *Shader) Destroy() {
	if s.program == 0 {
		return
	}
	s.dev.DeleteProgram(s.program)
	s.program = 0
}

func (s *Shader) location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := s.dev.UniformLocation(s.program, name)
	if loc < 0 {
		s.logger.Warn("uniform not found", "name", name, "program", s.program)
		loc = -1
	}
	s.locations[name] = loc
	return loc
}

func (s *Shader) SetInt(name string, v int32) {
	if loc := s.location(name); loc >= 0 {
		s.dev.Uniform1i(loc, v)
	}
}

func (s *Shader) SetIntArray(name string, v []int32) {
	if loc := s.location(name); loc >= 0 {
		s.dev.Uniform1iv(loc, v)
	}
}

func (s *Shader) SetFloat(name string, v float32) {
	if loc := s.location(name); loc >= 0 {
		s.dev.Uniform1f(loc, v)
	}
}

func (s *Shader) SetVec3(name string, v math.Vec3) {
	if loc := s.location(name); loc >= 0 {
		s.dev.Uniform3f(loc, v.X, v.Y, v.Z)
	}
}

func (s *Shader) SetVec4(name string, v math.Vec4) {
	if loc := s.location(name); loc >= 0 {
		s.dev.Uniform4f(loc, v.X, v.Y, v.Z, v.W)
	}
}

func (s *Shader) SetMat4(name string, m math.Mat4) {
	if loc := s.location(name); loc >= 0 {
		s.dev.UniformMatrix4(loc, m)
	}
}
