// Package primitives draws the built-in shapes that prefab parts are made of.
package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// cached holds mesh and material for a shape. base orients and centers the raylib mesh so it
// is a unit shape centered on the origin with its axis along world Z.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
	base rl.Matrix
}

// Registry maps shape names to mesh+material. Meshes are created on first use
// so that GPU resources are allocated after the window/OpenGL context exists.
type Registry struct {
	cache    map[string]cached
	shader   rl.Shader
	loaded   bool
	viewPos  [3]float32
	lightDir [3]float32
}

// NewRegistry returns a registry with no shapes loaded.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[string]cached),
		lightDir: [3]float32{0.4, 0.3, 1}, // from above, Z up
	}
}

// SetView sets camera position and direction-to-light for this frame. Call once per frame
// before drawing objects.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

const (
	sphereRings    = 16
	sphereSlices   = 16
	cylinderSlices = 16
)

var quarterTurnX = rl.MatrixRotateX(rl.Pi / 2)

// generators build each shape. Raylib meshes are Y-up; cylinder and plane are turned a quarter
// around X so their axis and normal point along Z.
var generators = map[string]func() (rl.Mesh, rl.Matrix){
	"cube": func() (rl.Mesh, rl.Matrix) {
		return rl.GenMeshCube(1, 1, 1), rl.MatrixIdentity()
	},
	"sphere": func() (rl.Mesh, rl.Matrix) {
		return rl.GenMeshSphere(0.5, sphereRings, sphereSlices), rl.MatrixIdentity()
	},
	"cylinder": func() (rl.Mesh, rl.Matrix) {
		// raylib cylinder: base Y=0, top Y=1
		return rl.GenMeshCylinder(0.5, 1, cylinderSlices), rl.MatrixMultiply(rl.MatrixTranslate(0, -0.5, 0), quarterTurnX)
	},
	"plane": func() (rl.Mesh, rl.Matrix) {
		return rl.GenMeshPlane(1, 1, 1, 1), quarterTurnX
	},
}

func (r *Registry) ensure(shape string) (cached, bool) {
	if c, ok := r.cache[shape]; ok {
		return c, true
	}
	gen, ok := generators[shape]
	if !ok {
		return cached{}, false
	}
	if !r.loaded {
		r.shader = rl.LoadShaderFromMemory(litVS, litFS)
		r.loaded = true
	}
	mesh, base := gen()
	mtl := rl.LoadMaterialDefault()
	if rl.IsShaderValid(r.shader) {
		mtl.Shader = r.shader
	}
	c := cached{mesh: mesh, mtl: mtl, base: base}
	r.cache[shape] = c
	return c, true
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), 48.0) * specularStrength * (NdotL > 0.0 ? 1.0 : 0.0);
  vec3 rgb = ambient.rgb * colDiffuse.rgb + colDiffuse.rgb * NdotL * 0.75 + vec3(spec);
  finalColor = vec4(rgb, colDiffuse.a);
}
`
)

var ambient = [4]float32{0.25, 0.26, 0.3, 1}

const specularStrength = float32(0.3)

// setUniforms uploads the per-frame lighting values (cgo-safe: local arrays).
func (r *Registry) setUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos, lightDir, amb := r.viewPos, r.lightDir, ambient
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{specularStrength}, rl.ShaderUniformFloat)
	}
}

// Draw draws one unit shape transformed by model (applied after the shape's base orientation)
// in color. Must be called between BeginMode3D and EndMode3D. Unknown shapes are skipped.
func (r *Registry) Draw(shape string, model rl.Matrix, color rl.Color) {
	c, ok := r.ensure(shape)
	if !ok {
		return
	}
	r.setUniforms(c.mtl.Shader)
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = color
	}
	rl.DrawMesh(c.mesh, c.mtl, rl.MatrixMultiply(c.base, model))
}

// Unload frees every cached mesh and the shared shader.
func (r *Registry) Unload() {
	for k, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		delete(r.cache, k)
	}
	if r.loaded && rl.IsShaderValid(r.shader) {
		rl.UnloadShader(r.shader)
	}
	r.loaded = false
}
