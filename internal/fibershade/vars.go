package fibershade

var (
	Debug = false // set to true for verbose debug output
	PNG   = true  // write the lobe PNG
	GIF   = false // write the light-sweep GIF
	// Compile time checks to ensure that every variant implements Shader
	_ Shader = (*SpecularShader)(nil)
	_ Shader = (*KajiyaKayShader)(nil)
	_ Shader = (*MarschnerShader)(nil)
)
