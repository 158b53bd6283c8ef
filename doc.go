// Package shaderbox is a full-screen shader harness.
//
// It compiles a vertex/fragment shader pair, draws a single full-screen quad
// and feeds the fragment shader two uniforms every frame:
//
//	uniform float time;   // seconds since the render loop started, non-decreasing
//	uniform float aspect; // framebuffer width / height, always > 0
//
// The vertex stage receives `in_pos` (vec3) and `in_uv` (vec2) from an
// interleaved buffer with a 20-byte stride.
//
// # Setup
//
// The core is backend-independent; it drives a Device and is scheduled by a
// Host. The backend/opengl package provides both on top of GLFW and OpenGL 4.1:
//
//	window, err := opengl.OpenWindow(cfg.Window)
//	dev := opengl.NewDevice()
//	rc := shaderbox.NewRendererContext(dev)
//	w, h := window.FramebufferSize()
//	if err := rc.Setup(ctx, cfg.Shaders, w, h, cfg.ClearColor); err != nil {
//	    return err
//	}
//	window.SetResizeHandler(rc.Resize)
//	err = shaderbox.NewLoop(rc, window).Run(ctx)
//
// Setup fails with *IOError, *ShaderCompileError or *ProgramLinkError and
// never leaves a half-initialized renderer behind.
//
// # Threading
//
// Everything runs on the goroutine that owns the GL context. Resize callbacks
// are dispatched from Host.NextFrame, between frames, so a frame always sees
// a fully applied resize. Loop.Stop is the only method safe to call from
// another goroutine.
package shaderbox
