package engine

// Hierarchy-wide search helpers. All walks are depth-first over child
// snapshots, self before children.

// FindByName returns the first node in the subtree (including root) whose
// name matches.
func FindByName(root *GameObject, name string) (*GameObject, bool) {
	if root == nil {
		return nil, false
	}
	if root.Name() == name {
		return root, true
	}
	for _, c := range root.Children() {
		if found, ok := FindByName(c, name); ok {
			return found, true
		}
	}
	return nil, false
}

// FindByTag returns the first node in the subtree carrying the tag.
func FindByTag(root *GameObject, tag Tag) (*GameObject, bool) {
	if root == nil {
		return nil, false
	}
	if root.Tag == tag && tag != TagUntagged {
		return root, true
	}
	for _, c := range root.Children() {
		if found, ok := FindByTag(c, tag); ok {
			return found, true
		}
	}
	return nil, false
}

// FindAllByTag collects every node in the subtree carrying the tag.
func FindAllByTag(root *GameObject, tag Tag) []*GameObject {
	if root == nil || tag == TagUntagged {
		return nil
	}
	var out []*GameObject
	if root.Tag == tag {
		out = append(out, root)
	}
	for _, c := range root.Children() {
		out = append(out, FindAllByTag(c, tag)...)
	}
	return out
}

// Walk visits every node in the subtree depth-first, self before children.
// Returning false from the visitor stops the walk.
func Walk(root *GameObject, visit func(*GameObject) bool) bool {
	if root == nil {
		return true
	}
	if !visit(root) {
		return false
	}
	for _, c := range root.Children() {
		if !Walk(c, visit) {
			return false
		}
	}
	return true
}
