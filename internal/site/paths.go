package site

import "net/url"

// HomeHref returns the landing page of a menu.
func HomeHref(locale, menuID string) string {
	return "/" + locale + "/" + url.PathEscape(menuID)
}

// OfferHref returns the detail page of an offer.
func OfferHref(locale, menuID, slug string) string {
	return HomeHref(locale, menuID) + "/offers/" + url.PathEscape(slug)
}

// BackHref returns where the offer page's back link points.
func BackHref(locale string) string {
	return "/" + locale + "/#offers"
}
