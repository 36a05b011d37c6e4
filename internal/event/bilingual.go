package event

// CoerceBilingual turns a raw field into Bilingual text.
//
// A mapping that already carries both "en" and "zh" is kept as is. A plain
// string is copied into both slots; that is the same text in both languages,
// not a translation. Anything else yields def in both slots.
func CoerceBilingual(v Value, def string) Bilingual {
	switch v.Kind() {
	case KindMap:
		m, _ := v.Map()
		en, hasEn := m["en"]
		zh, hasZh := m["zh"]
		if hasEn && hasZh {
			return Bilingual{En: stringify(en), Zh: stringify(zh)}
		}
		return Same(def)
	case KindString:
		s, _ := v.Str()
		return Same(s)
	case KindAbsent, KindNull, KindList, KindOther:
		return Same(def)
	}
	return Same(def)
}
