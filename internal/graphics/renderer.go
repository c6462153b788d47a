package graphics

import (
	"image"
	"image/color"

	"slicecraft/internal/game"
	"slicecraft/internal/meshing"
	"slicecraft/internal/palette"
	"slicecraft/internal/profiling"
	"slicecraft/internal/snapshot"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// floats per quad vertex: x, y, r, g, b, a
const quadStride = 6

// Renderer draws a game.Frame as flat colored quads plus the one-line label
type Renderer struct {
	quadShader  *Shader
	labelShader *Shader
	camera      *Camera

	quadVAO  uint32
	quadVBO  uint32
	labelVAO uint32
	labelVBO uint32
	labelTex uint32

	vertices   []float32
	labelText  string
	labelSize  image.Point
	viewWidth  int
	viewHeight int
}

// NewRenderer initializes OpenGL; a context must be current on the calling thread
func NewRenderer(width, height, blockPixels int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)

	quadShader, err := LoadShader("quad")
	if err != nil {
		return nil, err
	}
	labelShader, err := LoadShader("label")
	if err != nil {
		quadShader.Delete()
		return nil, err
	}

	r := &Renderer{
		quadShader:  quadShader,
		labelShader: labelShader,
		camera:      NewCamera(width, height, blockPixels),
		viewWidth:   width,
		viewHeight:  height,
	}
	r.setupQuadVAO()
	r.setupLabelVAO()
	return r, nil
}

func (r *Renderer) setupQuadVAO() {
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)

	stride := int32(quadStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 2*4)
}

func (r *Renderer) setupLabelVAO() {
	gl.GenVertexArrays(1, &r.labelVAO)
	gl.BindVertexArray(r.labelVAO)

	gl.GenBuffers(1, &r.labelVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.labelVBO)

	stride := int32(4 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)
}

// UpdateViewport adapts the projection to a resized framebuffer
func (r *Renderer) UpdateViewport(width, height, blockPixels int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	center := r.camera.CenterX
	r.camera = NewCamera(width, height, blockPixels)
	r.camera.CenterX = center
	r.viewWidth, r.viewHeight = width, height
}

// Render draws f, following the player horizontally
func (r *Renderer) Render(f game.Frame, showLabel bool) {
	defer profiling.Track("graphics.Render")()

	sky := palette.Floats(palette.Sky)
	gl.ClearColor(sky[0], sky[1], sky[2], sky[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r.camera.Follow(float32(f.Player.Position.X()), f.Width)
	projection := r.camera.Projection()

	r.vertices = r.vertices[:0]
	for _, rc := range meshing.GreedyRects(f.Interior, f.Width, f.Height) {
		r.appendQuad(float32(rc.X), float32(rc.Y), float32(rc.W), float32(rc.H), palette.Backfill)
	}
	for _, rc := range meshing.GreedyRects(f.Blocks, f.Width, f.Height) {
		r.appendQuad(float32(rc.X), float32(rc.Y), float32(rc.W), float32(rc.H), palette.Block(rc.Type))
	}
	p := f.Player
	r.appendQuad(
		float32(p.Position.X()-p.Width/2), float32(p.Position.Y()),
		float32(p.Width), float32(p.Height),
		palette.Player,
	)

	r.quadShader.Use()
	r.quadShader.SetMatrix4("projection", &projection[0])
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.vertices)*4, gl.Ptr(r.vertices), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.vertices)/quadStride))

	if showLabel && f.Label != "" {
		r.renderLabel(f.Label)
	}
}

func (r *Renderer) appendQuad(x, y, w, h float32, c color.RGBA) {
	if c.A == 0 {
		return
	}
	col := palette.Floats(c)
	corners := [6][2]float32{
		{x, y}, {x + w, y}, {x + w, y + h},
		{x, y}, {x + w, y + h}, {x, y + h},
	}
	for _, v := range corners {
		r.vertices = append(r.vertices, v[0], v[1], col[0], col[1], col[2], col[3])
	}
}

// renderLabel rasterizes the label only when its text changes
func (r *Renderer) renderLabel(text string) {
	if text != r.labelText || r.labelTex == 0 {
		size := snapshot.LabelSize(text)
		img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
		snapshot.DrawLabel(img, text, 0, 0)
		r.labelTex = UploadRGBA(r.labelTex, img)
		r.labelText = text
		r.labelSize = size
	}

	// Pixel space with y down, label anchored 4px from the top-left corner
	projection := mgl32.Ortho2D(0, float32(r.viewWidth), float32(r.viewHeight), 0)
	x0, y0 := float32(4), float32(4)
	x1, y1 := x0+float32(r.labelSize.X), y0+float32(r.labelSize.Y)
	quad := []float32{
		x0, y0, 0, 0,
		x1, y0, 1, 0,
		x1, y1, 1, 1,
		x0, y0, 0, 0,
		x1, y1, 1, 1,
		x0, y1, 0, 1,
	}

	r.labelShader.Use()
	r.labelShader.SetMatrix4("projection", &projection[0])
	r.labelShader.SetInt("labelTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.labelTex)
	gl.BindVertexArray(r.labelVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.labelVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

func (r *Renderer) Dispose() {
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteVertexArrays(1, &r.quadVAO)
	gl.DeleteBuffers(1, &r.labelVBO)
	gl.DeleteVertexArrays(1, &r.labelVAO)
	if r.labelTex != 0 {
		gl.DeleteTextures(1, &r.labelTex)
	}
	r.quadShader.Delete()
	r.labelShader.Delete()
}
