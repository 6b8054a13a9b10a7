package content

// ConfigField selects one SiteConfig field for UpdateConfigField.
type ConfigField int

const (
	FieldShopName ConfigField = iota
	FieldTagline
	FieldPhone
	FieldTextPhone
	FieldEmail
	FieldAddress
)

var fieldNames = [...]string{
	FieldShopName:  "shopName",
	FieldTagline:   "tagline",
	FieldPhone:     "phone",
	FieldTextPhone: "textPhone",
	FieldEmail:     "email",
	FieldAddress:   "address",
}

// ConfigFields lists every field in form order.
func ConfigFields() []ConfigField {
	return []ConfigField{FieldShopName, FieldTagline, FieldPhone, FieldTextPhone, FieldEmail, FieldAddress}
}

// ParseConfigField maps a wire name such as "textPhone" to its selector.
func ParseConfigField(name string) (ConfigField, bool) {
	for i, n := range fieldNames {
		if n == name {
			return ConfigField(i), true
		}
	}
	return 0, false
}

// Valid reports whether f names a real field.
func (f ConfigField) Valid() bool {
	return f >= FieldShopName && int(f) < len(fieldNames)
}

func (f ConfigField) String() string {
	if !f.Valid() {
		return "unknown"
	}
	return fieldNames[f]
}

// Get returns the value of field f in c.
func (c SiteConfig) Get(f ConfigField) string {
	switch f {
	case FieldShopName:
		return c.ShopName
	case FieldTagline:
		return c.Tagline
	case FieldPhone:
		return c.Phone
	case FieldTextPhone:
		return c.TextPhone
	case FieldEmail:
		return c.Email
	case FieldAddress:
		return c.Address
	}
	return ""
}

// set assigns v to field f and reports whether f was a known field.
func (c *SiteConfig) set(f ConfigField, v string) bool {
	switch f {
	case FieldShopName:
		c.ShopName = v
	case FieldTagline:
		c.Tagline = v
	case FieldPhone:
		c.Phone = v
	case FieldTextPhone:
		c.TextPhone = v
	case FieldEmail:
		c.Email = v
	case FieldAddress:
		c.Address = v
	default:
		return false
	}
	return true
}
