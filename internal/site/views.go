package site

import (
	"strconv"

	"lounge-site/internal/contentapi"
	"lounge-site/internal/i18n"
)

// Hero rotation policies understood by cmd/herovideo.
const (
	PolicyLookahead  = "lookahead"
	PolicyLazyUnload = "lazy-unload"
)

// OfferView is one hall presented as an offer.
type OfferView struct {
	ID       string
	Title    string
	SubTitle string
	Cover    string
	Href     string
}

// OfferDetailView is the offer page.
type OfferDetailView struct {
	OfferView
	Description string
	Images      []string
	ShareURL    string
	BackHref    string
}

// HeroSlotView is one background video slot.
type HeroSlotView struct {
	Index  int
	Src    string
	Poster string
	Active bool
	// Attached is false for slots whose source the lazy-unload policy assigns
	// only once they become active.
	Attached bool
}

// HeroView is the hero section.
type HeroView struct {
	Policy      string
	Slots       []HeroSlotView
	Image       string
	MobileImage string
	Collage     []string
	MenuPDF     string
	Since       int
}

// MenuView is the menu section.
type MenuView struct {
	ID          string
	Title       string
	Groups      []MenuGroup
	Active      int
	Unavailable bool
}

// Tab is one category tab.
type Tab struct {
	Key    string
	Title  string
	Href   string
	Active bool
}

// Tabs lists every group as a tab, including empty ones.
func (m MenuView) Tabs() []Tab {
	out := make([]Tab, 0, len(m.Groups))
	for i, g := range m.Groups {
		out = append(out, Tab{Key: g.Key, Title: g.Title, Href: TabHref(i, g.Key), Active: i == m.Active})
	}
	return out
}

// Panels returns only the groups that have dishes.
func (m MenuView) Panels() []MenuGroup {
	out := make([]MenuGroup, 0, len(m.Groups))
	for _, g := range m.Groups {
		if len(g.Dishes) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// Page is the data every template receives.
type Page struct {
	Name      string
	L         *i18n.Localizer
	Path      string
	Languages []i18n.Option
	Content   Content
	MenuID    string
	Hero      *HeroView
	Offers    []OfferView
	Menu      *MenuView
	Offer     *OfferDetailView
}

// BuildHero lays out the hero slots for the given policy. Slot 0 starts
// active; with lazy-unload only the active slot gets its source up front.
func BuildHero(c Content, policy string) HeroView {
	if policy != PolicyLazyUnload {
		policy = PolicyLookahead
	}
	slots := make([]HeroSlotView, 0, len(c.Hero.Videos))
	for i, v := range c.Hero.Videos {
		slots = append(slots, HeroSlotView{
			Index:    i,
			Src:      v.Src,
			Poster:   v.Poster,
			Active:   i == 0,
			Attached: policy == PolicyLookahead || i == 0,
		})
	}
	return HeroView{
		Policy:      policy,
		Slots:       slots,
		Image:       c.Hero.Image,
		MobileImage: c.Hero.MobileImage,
		Collage:     c.Hero.Collage,
		MenuPDF:     c.Site.MenuPDF,
		Since:       c.Site.Since,
	}
}

// BuildOffer turns a hall into an offer card linking into menuID.
func BuildOffer(h contentapi.Hall, locale, menuID string, media contentapi.MediaResolver) OfferView {
	id := strconv.FormatInt(h.ID, 10)
	return OfferView{
		ID:       id,
		Title:    h.Name(locale),
		SubTitle: h.SubTitle(locale),
		Cover:    media.HallCover(h),
		Href:     OfferHref(locale, menuID, id),
	}
}

// BuildOfferDetail turns a hall into the offer page. Halls without media
// show the placeholder.
func BuildOfferDetail(h contentapi.Hall, locale, menuID string, media contentapi.MediaResolver) OfferDetailView {
	images := make([]string, 0, len(h.Medias))
	for _, m := range h.Medias {
		images = append(images, media.HallMedia(m))
	}
	if len(images) == 0 {
		images = append(images, contentapi.PlaceholderImage)
	}
	offer := BuildOffer(h, locale, menuID, media)
	return OfferDetailView{
		OfferView:   offer,
		Description: h.Description(locale),
		Images:      images,
		ShareURL:    offer.Href,
		BackHref:    BackHref(locale),
	}
}
