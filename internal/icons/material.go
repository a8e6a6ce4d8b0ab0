package icons

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"slices"
	"strings"

	"golang.org/x/exp/shiny/iconvg"
	mdicons "golang.org/x/exp/shiny/materialdesign/icons"
)

// DefaultIconName is drawn when an item's icon cannot be resolved.
const DefaultIconName = "image/wb_sunny"

var materialIcons = map[string][]byte{
	"action/alarm":                   mdicons.ActionAlarm,
	"action/autorenew":               mdicons.ActionAutorenew,
	"action/build":                   mdicons.ActionBuild,
	"action/favorite":                mdicons.ActionFavorite,
	"action/home":                    mdicons.ActionHome,
	"action/search":                  mdicons.ActionSearch,
	"action/settings":                mdicons.ActionSettings,
	"action/settings_input_component": mdicons.ActionSettingsInputComponent,
	"action/shopping_cart":           mdicons.ActionShoppingCart,
	"av/play_arrow":                  mdicons.AVPlayArrow,
	"communication/call":             mdicons.CommunicationCall,
	"communication/email":            mdicons.CommunicationEmail,
	"content/add":                    mdicons.ContentAdd,
	"hardware/developer_board":       mdicons.HardwareDeveloperBoard,
	"image/camera_alt":               mdicons.ImageCameraAlt,
	"image/palette":                  mdicons.ImagePalette,
	"image/wb_sunny":                 mdicons.ImageWBSunny,
	"maps/directions_car":            mdicons.MapsDirectionsCar,
	"maps/place":                     mdicons.MapsPlace,
	"social/person":                  mdicons.SocialPerson,
	"social/public":                  mdicons.SocialPublic,
}

// MaterialNames returns the material icon names in sorted order.
func MaterialNames() []string {
	names := make([]string, 0, len(materialIcons))
	for name := range materialIcons {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Material rasterizes material design icons in a single color.
type Material struct {
	palette iconvg.Palette
}

// NewMaterial creates a Material provider painting icons in fg.
func NewMaterial(fg color.Color) *Material {
	m := &Material{palette: iconvg.DefaultPalette}
	m.palette[0] = color.RGBAModel.Convert(fg).(color.RGBA)
	return m
}

// Icon implements Provider.
func (m *Material) Icon(name string, sizePx int) (image.Image, error) {
	data, ok := materialIcons[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown material icon %q", name)
	}
	return m.rasterize(data, sizePx)
}

func (m *Material) rasterize(data []byte, sizePx int) (image.Image, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("invalid icon size %d", sizePx)
	}
	dst := image.NewRGBA(image.Rect(0, 0, sizePx, sizePx))

	var z iconvg.Rasterizer
	z.SetDstImage(dst, dst.Bounds(), draw.Src)
	if err := iconvg.Decode(&z, data, &iconvg.DecodeOptions{Palette: &m.palette}); err != nil {
		return nil, fmt.Errorf("failed to decode icon: %w", err)
	}
	return dst, nil
}

// DefaultIcon rasterizes the fallback icon at sizePx.
func DefaultIcon(fg color.Color, sizePx int) (image.Image, error) {
	return NewMaterial(fg).Icon(DefaultIconName, sizePx)
}
