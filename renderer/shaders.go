package renderer

import (
	"fmt"
	"strings"
)

// Uniform names shared by the batch shader and the Go side.
const (
	uniformViewProjection = "uViewProjection"
	uniformTextures       = "uTextures"
)

const quadVertexShader = `#version 330 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;
layout (location = 2) in vec2 aTexCoord;
layout (location = 3) in float aTexIndex;

uniform mat4 uViewProjection;

out vec4 vColor;
out vec2 vTexCoord;
flat out int vTexIndex;

void main() {
    vColor = aColor;
    vTexCoord = aTexCoord;
    vTexIndex = int(aTexIndex + 0.5);
    gl_Position = uViewProjection * vec4(aPos, 0.0, 1.0);
}
`

// quadFragmentShader returns the batch fragment shader for a sampler array of
// the given size. GLSL 3.30 only allows constant indices into sampler arrays,
// so the lookup is unrolled into a switch.
func quadFragmentShader(slots int) string {
	var cases strings.Builder
	for i := 0; i < slots; i++ {
		fmt.Fprintf(&cases, "        case %d: texel = texture(uTextures[%d], vTexCoord); break;\n", i, i)
	}

	return fmt.Sprintf(`#version 330 core
in vec4 vColor;
in vec2 vTexCoord;
flat in int vTexIndex;

uniform sampler2D uTextures[%d];

out vec4 color;

void main() {
    vec4 texel = vec4(1.0);
    switch (vTexIndex) {
%s    }
    color = texel * vColor;
}
`, slots, cases.String())
}
