package shaderbox

// StageKind identifies a shader stage.
type StageKind int

const (
	VertexStage StageKind = iota
	FragmentStage
)

func (k StageKind) String() string {
	switch k {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// Stage is one compiled unit of shader code.
// It is owned by the Program it is linked into and released after the link.
type Stage struct {
	Kind   StageKind
	Source string
	Handle uint32
}

// Compile compiles source as a stage of the given kind.
// On failure the backend object is released and a *ShaderCompileError
// carrying the raw compiler log is returned.
func Compile(dev Device, source string, kind StageKind) (*Stage, error) {
	handle, log, ok := dev.CompileShader(kind, source)
	if !ok {
		if handle != 0 {
			dev.DeleteShader(handle)
		}
		if log == "" {
			log = "no compiler output"
		}
		defaultLogger.Error("shader compilation failed", "stage", kind, "log", log)
		return nil, &ShaderCompileError{Kind: kind, Log: log}
	}
	defaultLogger.Debug("shader compiled", "stage", kind, "handle", handle)
	return &Stage{Kind: kind, Source: source, Handle: handle}, nil
}

// release deletes the backend object. Safe to call more than once.
func (s *Stage) release(dev Device) {
	if s == nil || s.Handle == 0 {
		return
	}
	dev.DeleteShader(s.Handle)
	s.Handle = 0
}
