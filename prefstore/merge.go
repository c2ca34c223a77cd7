package prefstore

// mergeOverlay applies overlay on top of base, in place.
//
// For each overlay member: when both sides hold objects the merge
// recurses, otherwise the overlay value replaces the base value (the
// type may change and the overlay may introduce keys absent from
// base). Base members without an overlay counterpart stay untouched.
// A non-object base is replaced wholesale by an object overlay, which
// covers merging an overlay onto an empty (null) document.
func mergeOverlay(base *Value, overlay Value) {
	if !overlay.IsObject() {
		return
	}
	if !base.IsObject() {
		*base = overlay.Clone()
		return
	}
	for _, m := range overlay.Members() {
		existing := base.member(m.Key)
		if existing != nil && existing.IsObject() && m.Value.IsObject() {
			mergeOverlay(existing, m.Value)
			continue
		}
		base.setMember(m.Key, m.Value.Clone())
	}
}

// diffDocuments builds the overwrites overlay: an object holding every
// member of doc whose value differs structurally from defaults,
// including members absent from defaults entirely. An empty object
// means doc and defaults are equal.
func diffDocuments(doc, defaults Value) Value {
	out := ObjectValue()
	if !doc.IsObject() {
		return out
	}
	for _, m := range doc.Members() {
		base := defaults.member(m.Key)
		switch {
		case base == nil:
			out.setMember(m.Key, m.Value.Clone())
		case base.IsObject() && m.Value.IsObject():
			sub := diffDocuments(m.Value, *base)
			if len(sub.Members()) > 0 {
				out.setMember(m.Key, sub)
			}
		case !m.Value.Equal(*base):
			out.setMember(m.Key, m.Value.Clone())
		}
	}
	return out
}

// changedPaths collects every dotted path whose value differs between
// the two documents: the differing leaves plus every ancestor along
// the way. When a node flips between an object and a scalar, the paths
// inside the object side are reported as changed too.
func changedPaths(before, after Value) []string {
	var out []string
	collectChangedPaths(before, after, "", &out)
	return out
}

func collectChangedPaths(before, after Value, prefix string, out *[]string) {
	for _, key := range memberKeyUnion(before, after) {
		var b, a Value
		if p := before.member(key); p != nil {
			b = *p
		}
		if p := after.member(key); p != nil {
			a = *p
		}
		if b.Equal(a) {
			continue
		}
		path := prefix + key
		*out = append(*out, path)
		collectChangedPaths(b, a, path+".", out)
	}
}

// memberKeyUnion returns the member keys of both values (non-objects
// contribute none), in first-appearance order.
func memberKeyUnion(a, b Value) []string {
	keys := make([]string, 0, len(a.Members())+len(b.Members()))
	seen := make(map[string]struct{}, cap(keys))
	for _, v := range []Value{a, b} {
		for _, m := range v.Members() {
			if _, dup := seen[m.Key]; dup {
				continue
			}
			seen[m.Key] = struct{}{}
			keys = append(keys, m.Key)
		}
	}
	return keys
}
