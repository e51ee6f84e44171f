package geom

// BlendMode selects how a source color combines with the destination.
type BlendMode uint8

// Porter-Duff modes first, then the advanced modes. The order matters:
// every mode after LastPipelineBlendMode needs the destination as a
// texture or framebuffer fetch.
const (
	BlendModeClear BlendMode = iota
	BlendModeSource
	BlendModeDestination
	BlendModeSourceOver
	BlendModeDestinationOver
	BlendModeSourceIn
	BlendModeDestinationIn
	BlendModeSourceOut
	BlendModeDestinationOut
	BlendModeSourceATop
	BlendModeDestinationATop
	BlendModeXor
	BlendModePlus
	BlendModeModulate

	BlendModeScreen
	BlendModeOverlay
	BlendModeDarken
	BlendModeLighten
	BlendModeColorDodge
	BlendModeColorBurn
	BlendModeHardLight
	BlendModeSoftLight
	BlendModeDifference
	BlendModeExclusion
	BlendModeMultiply
	BlendModeHue
	BlendModeSaturation
	BlendModeColor
	BlendModeLuminosity
)

// LastPipelineBlendMode is the last mode fixed-function blending can express.
const LastPipelineBlendMode = BlendModeModulate

// LastAdvancedBlendMode is the last valid mode.
const LastAdvancedBlendMode = BlendModeLuminosity

var blendModeNames = [...]string{
	"Clear", "Source", "Destination", "SourceOver", "DestinationOver",
	"SourceIn", "DestinationIn", "SourceOut", "DestinationOut", "SourceATop",
	"DestinationATop", "Xor", "Plus", "Modulate", "Screen", "Overlay",
	"Darken", "Lighten", "ColorDodge", "ColorBurn", "HardLight", "SoftLight",
	"Difference", "Exclusion", "Multiply", "Hue", "Saturation", "Color",
	"Luminosity",
}

// String returns the mode name.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return "Unknown"
}

// IsAdvanced reports whether m cannot be expressed by pipeline blending.
func (m BlendMode) IsAdvanced() bool {
	return m > LastPipelineBlendMode
}

// IsDestructive reports whether m can change destination pixels where the
// source is transparent. Layers with such modes must flood their clip.
func (m BlendMode) IsDestructive() bool {
	switch m {
	case BlendModeClear, BlendModeSource, BlendModeSourceIn,
		BlendModeDestinationIn, BlendModeSourceOut, BlendModeDestinationOut,
		BlendModeDestinationATop, BlendModeXor, BlendModeModulate:
		return true
	default:
		return false
	}
}
