package content

// Icon is the closed set of service glyphs. Unknown tags resolve to
// IconDefault.
type Icon int

const (
	IconDefault Icon = iota
	IconLaptop
	IconSmartphone
	IconCPU
	IconHardDrive
	IconShield
	IconNetwork
	IconCamera
	IconTV
	IconDatabase
)

var iconTags = map[Icon]string{
	IconDefault:    "settings",
	IconLaptop:     "laptop",
	IconSmartphone: "smartphone",
	IconCPU:        "cpu",
	IconHardDrive:  "hard-drive",
	IconShield:     "shield",
	IconNetwork:    "network",
	IconCamera:     "camera",
	IconTV:         "tv",
	IconDatabase:   "database",
}

var iconsByTag = func() map[string]Icon {
	m := make(map[string]Icon, len(iconTags))
	for icon, tag := range iconTags {
		m[tag] = icon
	}
	return m
}()

// ParseIcon maps a stored tag to its Icon. It never fails.
func ParseIcon(tag string) Icon {
	if icon, ok := iconsByTag[tag]; ok {
		return icon
	}
	return IconDefault
}

// String returns the tag stored for the icon.
func (i Icon) String() string {
	if tag, ok := iconTags[i]; ok {
		return tag
	}
	return iconTags[IconDefault]
}

// Icons lists every icon in declaration order, for pickers.
func Icons() []Icon {
	return []Icon{
		IconLaptop, IconSmartphone, IconCPU, IconHardDrive, IconShield,
		IconNetwork, IconCamera, IconTV, IconDatabase, IconDefault,
	}
}
