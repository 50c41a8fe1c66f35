package render

import (
	"strconv"
	"strings"
)

// Placeholders substituted into the shader sources before compilation.
const (
	EntitiesPlaceholder = "__NUM_ENTITIES__"
	LightsPlaceholder   = "__NUM_LIGHT_SOURCES__"
)

// Template replaces every entity/light placeholder in src with the given
// counts. GLSL rejects zero-sized arrays, so counts below 1 become 1.
func Template(src string, entities, lights int) string {
	return strings.NewReplacer(
		EntitiesPlaceholder, strconv.Itoa(max(entities, 1)),
		LightsPlaceholder, strconv.Itoa(max(lights, 1)),
	).Replace(src)
}

// Instanced sphere shaders. Per-body data lives in uniform arrays indexed by
// gl_InstanceID; array sizes are fixed when the program is compiled from the
// initial body and light counts.
const (
	sphereVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 projection;
uniform mat4 view;
uniform mat4 models[__NUM_ENTITIES__];
uniform mat4 normals[__NUM_ENTITIES__];
out vec3 fragPosition;
out vec3 fragNormal;
flat out int instance;
void main() {
  vec4 worldPos = models[gl_InstanceID] * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(normals[gl_InstanceID]) * vertexNormal;
  instance = gl_InstanceID;
  gl_Position = projection * view * worldPos;
}
`
	sphereFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
flat in int instance;
uniform vec3 modelColors[__NUM_ENTITIES__];
uniform vec3 locations[__NUM_ENTITIES__];
uniform float radii[__NUM_ENTITIES__];
uniform int isLightSource[__NUM_ENTITIES__];
uniform int lightSourceIndices[__NUM_LIGHT_SOURCES__];
uniform int remainingLights;
uniform vec3 ambientColor;
out vec4 finalColor;
void main() {
  vec3 color = modelColors[instance];
  if (isLightSource[instance] == 1) {
    finalColor = vec4(color, 1.0);
    return;
  }
  vec3 N = normalize(fragNormal);
  vec3 lit = ambientColor * color;
  for (int k = 0; k < remainingLights; k++) {
    int idx = lightSourceIndices[k];
    vec3 toLight = locations[idx] - fragPosition;
    float dist = length(toLight);
    float NdotL = max(dot(N, toLight / dist), 0.0);
    float reach = radii[idx] * 40.0;
    float falloff = reach * reach / (reach * reach + dist * dist);
    lit += color * NdotL * falloff;
  }
  finalColor = vec4(min(lit, vec3(1.0)), 1.0);
}
`
)
