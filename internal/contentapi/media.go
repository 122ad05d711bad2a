package contentapi

import (
	"net/url"
	"strings"
)

// PlaceholderImage is served when an item has no media.
const PlaceholderImage = "/static/img/placeholder.svg"

// MediaResolver turns the relative file references of the content API into
// absolute URLs.
type MediaResolver struct {
	origin string
}

// NewMediaResolver returns a resolver for files hosted under origin.
func NewMediaResolver(origin string) MediaResolver {
	return MediaResolver{origin: strings.TrimRight(origin, "/")}
}

// HallMedia returns the URL of a hall media file.
func (r MediaResolver) HallMedia(m Media) string {
	if m.File == "" {
		return PlaceholderImage
	}
	if isAbsolute(m.File) {
		return m.File
	}
	return r.origin + "/resource/halls/media/" + url.PathEscape(strings.Trim(m.File, "/")) + "/"
}

// HallCover returns the first media of the hall, or the placeholder.
func (r MediaResolver) HallCover(h Hall) string {
	if len(h.Medias) == 0 {
		return PlaceholderImage
	}
	return r.HallMedia(h.Medias[0])
}

// DishImage returns the URL of a dish photo. Dish images are origin-relative
// paths.
func (r MediaResolver) DishImage(d Dish) string {
	if d.Image == "" {
		return PlaceholderImage
	}
	if isAbsolute(d.Image) {
		return d.Image
	}
	if !strings.HasPrefix(d.Image, "/") {
		return r.origin + "/" + d.Image
	}
	return r.origin + d.Image
}

func isAbsolute(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
