// Package icons resolves icon references for the circle selector.
//
// A reference has the form scheme:name. The built-in schemes are
// md (material design icons), file (image files) and qr (QR codes of the
// text after the colon). A reference without a scheme uses md.
package icons

import (
	"image"
	"image/color"
	"strings"

	"github.com/spf13/afero"

	"github.com/iburimskiy/circle-selector/internal/circle"
	"github.com/iburimskiy/circle-selector/internal/logging"
)

// Scheme names.
const (
	SchemeMaterial = "md"
	SchemeFile     = "file"
	SchemeQR       = "qr"
)

// Provider resolves the name part of a reference to a sizePx square image.
type Provider interface {
	Icon(name string, sizePx int) (image.Image, error)
}

// Split separates ref into scheme and name.
func Split(ref circle.IconRef) (scheme, name string) {
	s := string(ref)
	if i := strings.Index(s, ":"); i > 0 {
		scheme = strings.ToLower(s[:i])
		if _, isScheme := knownSchemes[scheme]; isScheme {
			return scheme, s[i+1:]
		}
	}
	return SchemeMaterial, s
}

var knownSchemes = map[string]struct{}{
	SchemeMaterial: {},
	SchemeFile:     {},
	SchemeQR:       {},
}

// Router dispatches references to the provider registered for their
// scheme. It implements circle.IconProvider.
type Router struct {
	providers map[string]Provider
	log       *logging.Logger
}

var _ circle.IconProvider = (*Router)(nil)

// NewRouter creates an empty Router. A nil logger discards output.
func NewRouter(log *logging.Logger) *Router {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Router{
		providers: make(map[string]Provider),
		log:       log.WithComponent("icons"),
	}
}

// Handle registers p for scheme, replacing any previous provider.
func (r *Router) Handle(scheme string, p Provider) {
	r.providers[strings.ToLower(scheme)] = p
}

// New builds the standard provider chain: md, file and qr schemes behind
// an LRU cache of cacheSize icons. Material icons are painted in fg.
func New(fs afero.Fs, fg color.Color, cacheSize int, log *logging.Logger) (circle.IconProvider, error) {
	r := NewRouter(log)
	r.Handle(SchemeMaterial, NewMaterial(fg))
	r.Handle(SchemeFile, NewFile(fs))
	r.Handle(SchemeQR, NewQR())
	return NewCache(r, cacheSize)
}

// Resolve returns the icon for ref, or nil when it cannot be produced.
func (r *Router) Resolve(ref circle.IconRef, sizePx int) image.Image {
	scheme, name := Split(ref)
	p, ok := r.providers[scheme]
	if !ok {
		r.log.Warn("no provider for icon scheme", "scheme", scheme, "icon", string(ref))
		return nil
	}
	img, err := p.Icon(name, sizePx)
	if err != nil {
		r.log.Warn("failed to resolve icon", "icon", string(ref), "size", sizePx, "error", err)
		return nil
	}
	return img
}
