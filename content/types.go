// Package content owns the storefront's content model: the singleton
// SiteConfig, the ordered Service catalog, and their persisted snapshot.
package content

// Service is one catalog entry. JSON names match the persisted layout.
type Service struct {
	ID          string `json:"id" toml:"id"`
	Title       string `json:"title" toml:"title"`
	Description string `json:"description" toml:"description"`
	Icon        string `json:"icon" toml:"icon"`
	ImageURL    string `json:"imageUrl,omitempty" toml:"imageUrl,omitempty"`
	Price       string `json:"price,omitempty" toml:"price,omitempty"`
}

// IconKind resolves the stored icon tag to the closed Icon set.
func (s Service) IconKind() Icon {
	return ParseIcon(s.Icon)
}

// SiteConfig holds the shop identity and contact fields shown on every page.
type SiteConfig struct {
	ShopName  string `json:"shopName" toml:"shopName"`
	Tagline   string `json:"tagline" toml:"tagline"`
	Phone     string `json:"phone" toml:"phone"`
	TextPhone string `json:"textPhone" toml:"textPhone"`
	Email     string `json:"email" toml:"email"`
	Address   string `json:"address" toml:"address"`
}

// Snapshot is the complete content state at one point in time.
type Snapshot struct {
	Config   SiteConfig `json:"config" toml:"config"`
	Services []Service  `json:"services" toml:"services"`
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{Config: s.Config, Services: cloneServices(s.Services)}
}

func cloneServices(in []Service) []Service {
	out := make([]Service, len(in))
	copy(out, in)
	return out
}
