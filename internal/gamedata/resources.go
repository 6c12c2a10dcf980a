package gamedata

// Resource is a currency kind earned in combat and spent on crafting.
type Resource string

const (
	Souls   Resource = "souls"
	Bones   Resource = "bones"
	Gloom   Resource = "gloom"
	Crystal Resource = "crystal"
)

// ResourceKinds lists every resource in display order.
var ResourceKinds = []Resource{Souls, Bones, Gloom, Crystal}

// Valid reports whether r is a known resource kind.
func (r Resource) Valid() bool {
	for _, k := range ResourceKinds {
		if r == k {
			return true
		}
	}
	return false
}
