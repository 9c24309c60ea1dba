package override

func ptr[T any](v T) *T { return &v }

func add(entity string, version Version, tier int) BuiltinOverride {
	return BuiltinOverride{Entity: entity, Tier: ptr(tier), Version: version}
}

func del(entity string, version Version) BuiltinOverride {
	return BuiltinOverride{Entity: entity, Version: version, Delete: true}
}

func tiers(rows []BuiltinOverride) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		if r.Tier != nil {
			out = append(out, *r.Tier)
		}
	}
	return out
}
