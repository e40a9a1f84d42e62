package physics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/attractors/internal/dynamo"
)

// Family identifies one of the supported attractor equations.
type Family int

const (
	Lorenz Family = iota
	Banlue
	Halvorsen
	Aizawa
	LuChen
	Genesio
)

// Count is the number of supported families.
const Count = 6

var familyNames = [Count]string{"lorenz", "banlue", "halvorsen", "aizawa", "luchen", "genesio"}

func (f Family) String() string {
	if !f.Valid() {
		return fmt.Sprintf("family(%d)", int(f))
	}
	return familyNames[f]
}

// Valid reports whether f is one of the six families.
func (f Family) Valid() bool { return f >= 0 && f < Count }

// Families returns all families in id order.
func Families() []Family {
	return []Family{Lorenz, Banlue, Halvorsen, Aizawa, LuChen, Genesio}
}

// ParseFamily resolves a family by name (case-insensitive) or by numeric id.
func ParseFamily(s string) (Family, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range familyNames {
		if n == name {
			return Family(i), nil
		}
	}
	if id, err := strconv.Atoi(name); err == nil && Family(id).Valid() {
		return Family(id), nil
	}
	return 0, fmt.Errorf("%w: %q", dynamo.ErrUnknownFamily, s)
}

// Derive evaluates the vector field of family f at p.
func Derive(f Family, p dynamo.Point3, k dynamo.Params) dynamo.Point3 {
	switch f {
	case Lorenz:
		return lorenz(p, k)
	case Banlue:
		return banlue(p, k)
	case Halvorsen:
		return halvorsen(p, k)
	case Aizawa:
		return aizawa(p, k)
	case LuChen:
		return luChen(p, k)
	case Genesio:
		return genesio(p, k)
	}
	panic(fmt.Sprintf("physics: derive on %v", f))
}
