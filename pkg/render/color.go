// pkg/render/color.go
package render

import (
	"image/color"

	"go-hex-lanes/internal/config"
	"go-hex-lanes/pkg/hexmap"
)

// MapColors holds the fills for every tile kind.
type MapColors struct {
	Background  color.RGBA
	Environment color.RGBA
	Hub         color.RGBA
	Pathway     color.RGBA
	Defender    color.RGBA
	Spawn       color.RGBA
	Junction    color.RGBA
	TextDark    color.RGBA
	TextLight   color.RGBA
	StrokeWidth float32
}

// DefaultColors returns the palette from config.
func DefaultColors() MapColors {
	return MapColors{
		Background:  config.BackgroundColor,
		Environment: config.EnvironmentColor,
		Hub:         config.HubColor,
		Pathway:     config.PathwayColor,
		Defender:    config.DefenderColor,
		Spawn:       config.SpawnColor,
		Junction:    config.JunctionColor,
		TextDark:    config.TextDarkColor,
		TextLight:   config.TextLightColor,
		StrokeWidth: float32(config.StrokeWidth),
	}
}

// TileColor returns the fill of a tile. Buildable tiles are brightened by
// their terrain height.
func (c MapColors) TileColor(t *hexmap.Tile) color.RGBA {
	switch t.Kind {
	case hexmap.CenterHub:
		return c.Hub
	case hexmap.Pathway:
		if t.IsJunction {
			return c.Junction
		}
		return c.Pathway
	case hexmap.EdgeSpawn:
		return c.Spawn
	case hexmap.DefenderSpot:
		return LightenColor(c.Defender, t.Height*0.12)
	}
	return LightenColor(c.Environment, t.Height*0.12)
}

// TextColorFor picks dark or light text for a fill.
func (c MapColors) TextColorFor(fill color.RGBA) color.RGBA {
	if (int(fill.R)+int(fill.G)+int(fill.B))/3 > 128 {
		return c.TextDark
	}
	return c.TextLight
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// LightenColor moves a color towards white by f in [0, 1].
func LightenColor(c color.RGBA, f float64) color.RGBA {
	if f <= 0 {
		return c
	}
	if f > 1 {
		f = 1
	}
	mix := func(v uint8) uint8 { return uint8(float64(v) + (255-float64(v))*f) }
	return color.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}
