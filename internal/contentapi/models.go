package contentapi

// Dish is one menu item as served by the dishes endpoint.
type Dish struct {
	ID            int64  `json:"id"`
	NameRU        string `json:"name_ru"`
	NameEN        string `json:"name_en"`
	NameKK        string `json:"name_kk"`
	DescriptionRU string `json:"description_ru"`
	Price         string `json:"price"`
	Image         string `json:"image"`
}

// Name returns the dish name for locale, falling back to Russian.
func (d Dish) Name(locale string) string {
	return pick(locale, d.NameRU, d.NameEN, d.NameKK)
}

// Category groups dishes; Dishes lists dish IDs.
type Category struct {
	ID            int64   `json:"id"`
	NameRU        string  `json:"name_ru"`
	NameEN        string  `json:"name_en"`
	NameKK        string  `json:"name_kk"`
	DescriptionRU string  `json:"description_ru"`
	Dishes        []int64 `json:"dishes"`
}

// Name returns the category name for locale, falling back to Russian.
func (c Category) Name(locale string) string {
	return pick(locale, c.NameRU, c.NameEN, c.NameKK)
}

// Menu is one published menu; Categories lists category IDs.
type Menu struct {
	ID            int64   `json:"id"`
	TitleRU       string  `json:"title_ru"`
	TitleEN       string  `json:"title_en"`
	DescriptionRU string  `json:"description_ru"`
	Categories    []int64 `json:"categories"`
	Hall          int64   `json:"hall"`
	IsActive      bool    `json:"is_active"`
}

// Title returns the menu title for locale, falling back to Russian.
func (m Menu) Title(locale string) string {
	return pick(locale, m.TitleRU, m.TitleEN, "")
}

// Media is one file attached to a hall.
type Media struct {
	ID   int64  `json:"id"`
	File string `json:"file"`
}

// Hall is a venue space; the site presents halls as offers.
type Hall struct {
	ID            int64   `json:"id"`
	NameRU        string  `json:"name_ru"`
	NameEN        *string `json:"name_en"`
	NameKK        *string `json:"name_kk"`
	SubTitleRU    *string `json:"sub_title_ru"`
	SubTitleEN    *string `json:"sub_title_en"`
	SubTitleKK    *string `json:"sub_title_kk"`
	DescriptionRU *string `json:"description_ru"`
	DescriptionEN *string `json:"description_en"`
	DescriptionKK *string `json:"description_kk"`
	Medias        []Media `json:"medias"`
}

// Name returns the hall name for locale, falling back to Russian.
func (h Hall) Name(locale string) string {
	return pick(locale, h.NameRU, deref(h.NameEN), deref(h.NameKK))
}

// SubTitle returns the hall subtitle for locale, falling back to Russian.
func (h Hall) SubTitle(locale string) string {
	return pick(locale, deref(h.SubTitleRU), deref(h.SubTitleEN), deref(h.SubTitleKK))
}

// Description returns the hall description for locale, falling back to Russian.
func (h Hall) Description(locale string) string {
	return pick(locale, deref(h.DescriptionRU), deref(h.DescriptionEN), deref(h.DescriptionKK))
}

// FieldSuffix maps a site locale to the suffix the content API uses for
// translated fields. The site says "kz"; the API says "kk".
func FieldSuffix(locale string) string {
	if locale == "kz" {
		return "kk"
	}
	return locale
}

func pick(locale, ru, en, kk string) string {
	switch FieldSuffix(locale) {
	case "en":
		if en != "" {
			return en
		}
	case "kk":
		if kk != "" {
			return kk
		}
	}
	return ru
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
