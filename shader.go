package main

import (
	"errors"
	"fmt"
	"os"

	eb "github.com/hajimehoshi/ebiten/v2"
)

type ShaderId int

const (
	ShaderFx ShaderId = iota
	ShaderTrail
	ShaderGradient
	ShaderSize
)

func (id ShaderId) String() string {
	switch id {
	case ShaderFx:
		return "fx"
	case ShaderTrail:
		return "trail"
	case ShaderGradient:
		return "gradient"
	}
	return fmt.Sprintf("ShaderId(%d)", int(id))
}

type ShaderProgram struct {
	// source file read when hot reloading
	Path     string
	Embedded []byte

	Shader    *eb.Shader
	LoadError error
}

var TheShaderManager struct {
	Programs [ShaderSize]ShaderProgram

	// bumped every time any shader is replaced
	Generation int
}

func RegisterShader(id ShaderId, path string, embedded []byte) {
	sm := &TheShaderManager

	sm.Programs[id] = ShaderProgram{
		Path:     path,
		Embedded: embedded,
	}
}

func compileShader(p *ShaderProgram, fromDisk bool) (*eb.Shader, error) {
	code := p.Embedded
	if fromDisk {
		var err error
		code, err = os.ReadFile(p.Path)
		if err != nil {
			return nil, err
		}
	}

	timer := NewProfTimer("compiling " + p.Path)
	defer timer.Report()

	return eb.NewShader(code)
}

// LoadShaders compiles every registered shader. A shader that fails keeps
// its previous compiled version, if any.
func LoadShaders(fromDisk bool) error {
	sm := &TheShaderManager

	var errs []error

	for id := range ShaderSize {
		p := &sm.Programs[id]
		shader, err := compileShader(p, fromDisk)
		if err != nil {
			p.LoadError = fmt.Errorf("%v shader: %w", id, err)
			errs = append(errs, p.LoadError)
			ErrorLogger.Print(p.LoadError)
			continue
		}

		if p.Shader != nil {
			p.Shader.Deallocate()
		}
		p.Shader = shader
		p.LoadError = nil
	}

	sm.Generation++

	return errors.Join(errs...)
}

// GetShader returns the compiled shader, or nil if it never compiled.
func GetShader(id ShaderId) *eb.Shader {
	return TheShaderManager.Programs[id].Shader
}

func ShaderLoadError(id ShaderId) error {
	return TheShaderManager.Programs[id].LoadError
}
