package purge

import "fmt"

// Flavor selects which helper a Purger watches and which store operation the
// generated methods call.
type Flavor struct {
	Name        string
	Helper      string // monitored helper, e.g. mapActions
	StoreMethod string // dispatch or commit
	Returns     bool   // generated body returns the store call
}

// Built-in flavors.
var (
	Actions = Flavor{
		Name:        "actions",
		Helper:      "mapActions",
		StoreMethod: "dispatch",
		Returns:     true,
	}
	Mutations = Flavor{
		Name:        "mutations",
		Helper:      "mapMutations",
		StoreMethod: "commit",
		Returns:     false,
	}
)

// DefaultFlavors is used when the caller does not pick any.
var DefaultFlavors = []Flavor{Actions, Mutations}

// FlavorByName resolves a flavor from its name.
func FlavorByName(name string) (Flavor, error) {
	switch name {
	case Actions.Name, Actions.Helper:
		return Actions, nil
	case Mutations.Name, Mutations.Helper:
		return Mutations, nil
	}

	return Flavor{}, fmt.Errorf("unsupported flavor: %q", name)
}

// ResolveFlavors maps names to flavors, defaulting to all flavors.
func ResolveFlavors(names []string) ([]Flavor, error) {
	if len(names) == 0 {
		return DefaultFlavors, nil
	}

	flavors := make([]Flavor, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		flavor, err := FlavorByName(name)
		if err != nil {
			return nil, err
		}

		if _, ok := seen[flavor.Name]; ok {
			continue
		}

		seen[flavor.Name] = struct{}{}
		flavors = append(flavors, flavor)
	}

	return flavors, nil
}

// ForFlavors chains one Purger per flavor.
func ForFlavors(flavors ...Flavor) Transform {
	transforms := make([]Transform, 0, len(flavors))
	for _, flavor := range flavors {
		transforms = append(transforms, New(flavor))
	}

	return Chain(transforms...)
}
