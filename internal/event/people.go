package event

// Defaults applied when a person entry lacks a field entirely.
var (
	UnknownName    = Bilingual{En: "Unknown", Zh: "未知"}
	DefaultTheme   = Same("Presentation")
	DefaultVIPRole = Same("Guest")
)

// RepairSpeakers rebuilds the speakers list. Elements that are not mappings
// are dropped; the role key is "theme".
func RepairSpeakers(v Value) []Speaker {
	return repairPeople(v, "theme", DefaultTheme, func(name, theme Bilingual) Speaker {
		return Speaker{Name: name, Theme: theme}
	})
}

// RepairVIPs rebuilds the vips list. Elements that are not mappings are
// dropped; the role key is "role".
func RepairVIPs(v Value) []VIP {
	return repairPeople(v, "role", DefaultVIPRole, func(name, role Bilingual) VIP {
		return VIP{Name: name, Role: role}
	})
}

func repairPeople[T any](v Value, roleKey string, roleDefault Bilingual, build func(name, role Bilingual) T) []T {
	out := []T{}
	elems, ok := v.List()
	if !ok {
		return out
	}

	for _, elem := range elems {
		entry := ValueOf(elem)
		m, ok := entry.Map()
		if !ok {
			continue
		}

		name := UnknownName
		if nv := Lookup(m, "name"); nv.Present() {
			name = CoerceBilingual(nv, "")
		}

		role := roleDefault
		if rv := Lookup(m, roleKey); rv.Present() {
			role = CoerceBilingual(rv, "")
		}

		out = append(out, build(name, role))
	}
	return out
}
