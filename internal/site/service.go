// Package site renders the public pages: the landing page, the menu page and
// the offer pages, all localized and fed by the content API.
package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"lounge-site/internal/contentapi"
)

var (
	// ErrMenuNotFound is returned when the requested menu does not exist.
	ErrMenuNotFound = errors.New("menu not found")
	// ErrOfferNotFound is returned when the requested hall does not exist.
	ErrOfferNotFound = errors.New("offer not found")
)

// ContentSource is the subset of the content API the pages read.
type ContentSource interface {
	Menu(ctx context.Context, id string) (contentapi.Menu, error)
	Categories(ctx context.Context) ([]contentapi.Category, error)
	Dishes(ctx context.Context) ([]contentapi.Dish, error)
	Halls(ctx context.Context) ([]contentapi.Hall, error)
	Hall(ctx context.Context, id string) (contentapi.Hall, error)
}

// Service assembles page views from the site content and the content API.
type Service struct {
	src     ContentSource
	content Content
	media   contentapi.MediaResolver
	policy  string
	log     *slog.Logger
}

// NewService returns a Service. policy selects the hero rotation policy
// announced to the browser module.
func NewService(src ContentSource, content Content, media contentapi.MediaResolver, policy string, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{src: src, content: content, media: media, policy: policy, log: log}
}

// Content returns the site content the service was built with.
func (s *Service) Content() Content {
	return s.content
}

// Hero returns the hero section.
func (s *Service) Hero() HeroView {
	return BuildHero(s.content, s.policy)
}

// Offers returns the offer cards for menuID. A failing halls request yields
// no offers; the page still renders.
func (s *Service) Offers(ctx context.Context, locale, menuID string) []OfferView {
	halls, err := s.src.Halls(ctx)
	if err != nil {
		s.log.Warn("halls unavailable", slog.String("error", err.Error()))
		return nil
	}
	out := make([]OfferView, 0, len(halls))
	for _, h := range halls {
		out = append(out, BuildOffer(h, locale, menuID, s.media))
	}
	return out
}

// Menu builds the menu section. The menu, categories and dishes are fetched
// concurrently. An unknown or malformed menu id is returned as
// ErrMenuNotFound; any other failure, including a 404 from the categories or
// dishes endpoints, yields a view marked Unavailable.
func (s *Service) Menu(ctx context.Context, locale, menuID string, tab int) (MenuView, error) {
	var (
		menu       contentapi.Menu
		categories []contentapi.Category
		dishes     []contentapi.Dish
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.src.Menu(gctx, menuID)
		if err != nil {
			if errors.Is(err, contentapi.ErrNotFound) || errors.Is(err, contentapi.ErrInvalidPath) {
				return fmt.Errorf("%w: %s", ErrMenuNotFound, menuID)
			}
			return fmt.Errorf("menu %s: %w", menuID, err)
		}
		menu = m
		return nil
	})
	g.Go(func() error {
		c, err := s.src.Categories(gctx)
		if err != nil {
			return fmt.Errorf("categories: %w", err)
		}
		categories = c
		return nil
	})
	g.Go(func() error {
		d, err := s.src.Dishes(gctx)
		if err != nil {
			return fmt.Errorf("dishes: %w", err)
		}
		dishes = d
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrMenuNotFound) {
			return MenuView{ID: menuID}, err
		}
		s.log.Warn("menu unavailable", slog.String("menu_id", menuID), slog.String("error", err.Error()))
		return MenuView{ID: menuID, Unavailable: true}, nil
	}

	groups := BuildMenuGroups(menu, categories, dishes, locale, s.media)
	return MenuView{
		ID:     menuID,
		Title:  menu.Title(locale),
		Groups: groups,
		Active: ClampTab(tab, len(groups)),
	}, nil
}

// Offer builds the detail page of hall offerID.
func (s *Service) Offer(ctx context.Context, locale, menuID, offerID string) (OfferDetailView, error) {
	h, err := s.src.Hall(ctx, offerID)
	if err != nil {
		if errors.Is(err, contentapi.ErrNotFound) || errors.Is(err, contentapi.ErrInvalidPath) {
			return OfferDetailView{}, ErrOfferNotFound
		}
		return OfferDetailView{}, fmt.Errorf("hall %s: %w", offerID, err)
	}
	return BuildOfferDetail(h, locale, menuID, s.media), nil
}
