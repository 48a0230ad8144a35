package metadata

import "github.com/spaghettifunk/anima-draw/engine/math"

/** @brief The name of the default material. */
const DefaultMaterialName string = "default"

// Names of the shader properties written by the batch compiler. The instanced
// shape shader reads one array element per instance.
const (
	PropertyShapeType        = "_ShapeType"
	PropertyShapeParams1     = "_ShapeParams1"
	PropertyShapeParams2     = "_ShapeParams2"
	PropertyShapeParams3     = "_ShapeParams3"
	PropertyFillColor        = "_FillColor"
	PropertyOutlineColor     = "_OutlineColor"
	PropertyOutlineThickness = "_OutlineThickness"
	PropertyCornerRadius     = "_CornerRadius"
	PropertyExtrusion        = "_Extrusion"
	PropertyEnableLighting   = "_EnableLighting"
	PropertySmoothness       = "_Smoothness"
	PropertyInstanceMatrices = "_InstanceMatrices"
	// single colour used by the unlit polygon material
	PropertyColor = "_Color"
)

/**
 * @brief Material configuration passed to the host when a material is acquired.
 */
type MaterialConfig struct {
	/** @brief The name of the material. */
	Name string
	/** @brief The shader the material is built from. */
	ShaderName string
	/** @brief The diffuse colour of the material. */
	DiffuseColour math.Vec4
	/** @brief Whether the material supports instanced draws. */
	Instanced bool
}

/**
 * @brief A material handle owned by the host renderer.
 */
type Material struct {
	/** @brief The material identifier. */
	ID uint32
	/** @brief The material generation. */
	Generation uint32
	/** @brief The material name. */
	Name string
	/** @brief The shader the material was created from. */
	ShaderName    string
	DiffuseColour math.Vec4
	Instanced     bool
}
