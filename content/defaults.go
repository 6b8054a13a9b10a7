package content

// Keys under which the snapshot halves are persisted.
const (
	ConfigKey   = "shine_config"
	ServicesKey = "shine_services"
)

// TitleSuffix is appended to the shop name to form the document title.
const TitleSuffix = "Premium Electronics & Security"

// Field values given to a new service when the caller leaves them empty.
const (
	NewServiceTitle       = "New Service"
	NewServiceDescription = "Description of the new service."
	NewServiceIcon        = "settings"
)

// DefaultConfig returns the compiled-in site configuration.
func DefaultConfig() SiteConfig {
	return SiteConfig{
		ShopName:  "Shine Electronic & Computer",
		Tagline:   "Precision Tech Services Since 1983",
		Phone:     "(212) 799-1773",
		TextPhone: "(917) 960-2277",
		Email:     "shineelectronic@gmail.com",
		Address:   "137 West 83rd Street, New York, NY 10024",
	}
}

// DefaultServices returns a fresh copy of the compiled-in catalog.
func DefaultServices() []Service {
	return []Service{
		{
			ID:          "1",
			Title:       "Computer Repair & Sales",
			Description: "Full service for PC and Mac. OS upgrades, motherboard repair, and performance tuning. Authorized sales and expert diagnostics.",
			Icon:        "laptop",
			ImageURL:    "https://images.unsplash.com/photo-1591405351990-4726e331f141?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID:          "2",
			Title:       "Electronic & TV Systems",
			Description: "Professional Home Audio & Video installation. TV mounting, online streaming setup, and high-end audio system upgrades.",
			Icon:        "tv",
			ImageURL:    "https://images.unsplash.com/photo-1593305841991-05c297ba4575?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID:          "3",
			Title:       "Networking & Data",
			Description: "Secure home and office networking. Professional data backup solutions and recovery for failed drives.",
			Icon:        "network",
			ImageURL:    "https://images.unsplash.com/photo-1544197150-b99a580bb7a8?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID:          "4",
			Title:       "Security & CCTV",
			Description: "Complete security system design and installation. High-definition CCTV monitoring to protect your property.",
			Icon:        "shield",
			ImageURL:    "https://images.unsplash.com/photo-1557597774-9d273605dfa9?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID:          "5",
			Title:       "Old Media Conversion",
			Description: "Preserve your memories. Professional conversion of old VHS and Camcorder tapes to MP3, MP4, and digital video clips.",
			Icon:        "database",
			ImageURL:    "https://images.unsplash.com/photo-1601933431326-4e97995931f2?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID:          "6",
			Title:       "Mobile & Tablets",
			Description: "Expert screen and battery replacements for all major mobile brands. Charging port and internal component repairs.",
			Icon:        "smartphone",
			ImageURL:    "https://images.unsplash.com/photo-1591799264318-7e6ef8ddb7ea?auto=format&fit=crop&q=80&w=800",
		},
	}
}

// DefaultSnapshot returns the snapshot used when nothing has been persisted.
func DefaultSnapshot() Snapshot {
	return Snapshot{Config: DefaultConfig(), Services: DefaultServices()}
}

// Title derives the document title for a shop name.
func Title(shopName string) string {
	return shopName + " | " + TitleSuffix
}
