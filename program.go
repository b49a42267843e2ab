package aether

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
)

// InputType describes a uniform declared by a Kage program.
type InputType struct {
	Type string // Kage type name: float, int, vec2, vec3, vec4, ...
	Len  int    // array length, 0 for non-array inputs
}

// Accepts reports whether a value of kind k can be bound to the input.
func (t InputType) Accepts(k UniformKind) bool {
	if t.Len != 0 {
		return false
	}
	switch k {
	case KindFloat1:
		return t.Type == "float"
	case KindFloat2:
		return t.Type == "vec2"
	case KindFloat3:
		return t.Type == "vec3"
	case KindFloat4, KindColor:
		return t.Type == "vec4"
	case KindInt1:
		return t.Type == "int"
	}
	return false
}

// components returns how many float slots a non-array vector input uses.
func (t InputType) components() int {
	switch t.Type {
	case "vec2":
		return 2
	case "vec3":
		return 3
	case "vec4":
		return 4
	}
	return 0
}

// Inputs maps uniform names to their declared types.
type Inputs map[string]InputType

// ParseInputs returns the uniforms declared at the top level of a Kage
// program. Kage sources are Go syntax, so the standard parser reads them;
// only exported variables are uniforms.
func ParseInputs(src string) (Inputs, error) {
	f, err := parser.ParseFile(token.NewFileSet(), "shader.kage", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("aether: parse shader: %w", err)
	}
	inputs := make(Inputs)
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR {
			continue
		}
		for _, spec := range gen.Specs {
			vs := spec.(*ast.ValueSpec)
			if vs.Type == nil {
				continue
			}
			typ, err := inputType(vs.Type)
			if err != nil {
				return nil, err
			}
			for _, name := range vs.Names {
				if !ast.IsExported(name.Name) {
					continue
				}
				inputs[name.Name] = typ
			}
		}
	}
	return inputs, nil
}

func inputType(expr ast.Expr) (InputType, error) {
	switch e := expr.(type) {
	case *ast.Ident:
		return InputType{Type: e.Name}, nil
	case *ast.ArrayType:
		elem, ok := e.Elt.(*ast.Ident)
		lit, okLen := e.Len.(*ast.BasicLit)
		if !ok || !okLen || lit.Kind != token.INT {
			break
		}
		n, err := strconv.Atoi(lit.Value)
		if err != nil || n <= 0 {
			break
		}
		return InputType{Type: elem.Name, Len: n}, nil
	}
	return InputType{}, fmt.Errorf("aether: unsupported uniform declaration %T", expr)
}

// Program is a compiled Kage shader together with its declared inputs and
// the persistent uniform buffer handed to DrawRectShader. Programs are owned
// by a ProgramCache and shared by every overlay using the same source; binding
// and drawing must happen on the render goroutine.
type Program struct {
	source string
	shader *ebiten.Shader
	inputs Inputs
	values map[string]any
}

// NewProgram wraps an already-compiled shader. The shader may be nil, in which
// case the program binds uniforms but draws nothing; custom CompileFuncs use
// this for headless tooling.
func NewProgram(src string, shader *ebiten.Shader) (*Program, error) {
	inputs, err := ParseInputs(src)
	if err != nil {
		return nil, err
	}
	return newProgram(src, shader, inputs), nil
}

func newProgram(src string, shader *ebiten.Shader, inputs Inputs) *Program {
	p := &Program{
		source: src,
		shader: shader,
		inputs: inputs,
		values: make(map[string]any, len(inputs)),
	}
	// Vector inputs get a persistent slice so per-frame binding writes in
	// place instead of allocating.
	for name, t := range inputs {
		if n := t.components(); n > 0 && t.Len == 0 {
			p.values[name] = make([]float32, n)
		}
	}
	return p
}

// CompileFunc turns Kage source into a Program.
type CompileFunc func(src string) (*Program, error)

// CompileKage parses the source's inputs and compiles it with ebiten.NewShader.
func CompileKage(src string) (*Program, error) {
	inputs, err := ParseInputs(src)
	if err != nil {
		return nil, err
	}
	shader, err := ebiten.NewShader([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("aether: compile shader: %w", err)
	}
	return newProgram(src, shader, inputs), nil
}

// Source returns the Kage source the program was compiled from.
func (p *Program) Source() string { return p.source }

// Shader returns the underlying Ebitengine shader, possibly nil.
func (p *Program) Shader() *ebiten.Shader { return p.shader }

// Input returns the declared type of a uniform.
func (p *Program) Input(name string) (InputType, bool) {
	t, ok := p.inputs[name]
	return t, ok
}

// Value returns the currently bound value of a uniform as Ebitengine will
// receive it (float32, int32 or []float32).
func (p *Program) Value(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// resetValues zeroes every bound uniform so a draw only sees what it binds
// itself. Vector buffers are kept and cleared in place; dropped scalars read
// as zero in the shader.
func (p *Program) resetValues() {
	for name, v := range p.values {
		if f, ok := v.([]float32); ok {
			clear(f)
			continue
		}
		delete(p.values, name)
	}
}

// release frees GPU state. Ebitengine reallocates a deallocated shader on its
// next use, so overlays still holding an evicted program keep working.
func (p *Program) release() {
	if p.shader != nil {
		p.shader.Deallocate()
	}
}
