package shaderbox

// Attribute and uniform names shared with the shader program.
const (
	AttribPosition = "in_pos"
	AttribUV       = "in_uv"
	UniformTime    = "time"
	UniformAspect  = "aspect"
)

// Program is a linked vertex+fragment pair with its locations resolved.
// Locations are looked up once in Link and cached for the program's lifetime.
type Program struct {
	Vertex   *Stage
	Fragment *Stage
	Handle   uint32

	attribs  map[string]int32
	uniforms map[string]int32
}

// Link links vs and fs into a program. Both stages are released afterwards,
// whether the link succeeded or not. On failure the program object is
// released and a *ProgramLinkError is returned.
func Link(dev Device, vs, fs *Stage) (*Program, error) {
	handle, log, ok := dev.LinkProgram(vs.Handle, fs.Handle)

	// Linked into the program now (or useless on failure).
	vs.release(dev)
	fs.release(dev)

	if !ok {
		if handle != 0 {
			dev.DeleteProgram(handle)
		}
		if log == "" {
			log = "no linker output"
		}
		defaultLogger.Error("shader program linking failed", "log", log)
		return nil, &ProgramLinkError{Log: log}
	}

	p := &Program{
		Vertex:   vs,
		Fragment: fs,
		Handle:   handle,
		attribs:  make(map[string]int32, 2),
		uniforms: make(map[string]int32, 2),
	}
	for _, name := range []string{AttribPosition, AttribUV} {
		p.attribs[name] = dev.AttribLocation(handle, name)
	}
	for _, name := range []string{UniformTime, UniformAspect} {
		p.uniforms[name] = dev.UniformLocation(handle, name)
	}

	defaultLogger.Debug("shader program linked",
		"handle", handle,
		AttribPosition, p.attribs[AttribPosition],
		AttribUV, p.attribs[AttribUV],
		UniformTime, p.uniforms[UniformTime],
		UniformAspect, p.uniforms[UniformAspect],
	)
	return p, nil
}

// AttribLocation returns the cached location of an attribute, or -1.
func (p *Program) AttribLocation(name string) int32 {
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	return -1
}

// UniformLocation returns the cached location of a uniform, or -1.
func (p *Program) UniformLocation(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

// SetFloat writes a scalar uniform. Writing a uniform the shader does not
// declare is a no-op.
func (p *Program) SetFloat(dev Device, name string, v float32) {
	loc := p.UniformLocation(name)
	if loc < 0 {
		return
	}
	dev.Uniform1f(p.Handle, loc, v)
}

// Delete releases the program object.
func (p *Program) Delete(dev Device) {
	if p.Handle != 0 {
		dev.DeleteProgram(p.Handle)
		p.Handle = 0
	}
}
