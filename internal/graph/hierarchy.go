package graph

// Hierarchy 是从层级关系（默认 CONTAINS）推导出的树形信息。
type Hierarchy struct {
	Level       int      `json:"level"`
	Parent      string   `json:"parent,omitempty"`
	Ancestors   []string `json:"ancestors"`
	Children    []string `json:"children"`
	Descendants []string `json:"descendants"`
}

// Hierarchy 计算实体的层级信息，每次调用都重新遍历。
// 数据中存在环时依靠访问集合截断，保证结束。
func (g *Graph) Hierarchy(guid string) Hierarchy {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ancestors := g.ancestorsLocked(guid)
	h := Hierarchy{
		Level:       len(ancestors),
		Ancestors:   ancestors,
		Children:    g.childrenLocked(guid),
		Descendants: g.descendantsLocked(guid),
	}
	if len(ancestors) > 0 {
		h.Parent = ancestors[0]
	}
	return h
}

// parentLocked 取第一条逆向层级关系指向的实体，没有则为根。
func (g *Graph) parentLocked(guid string) string {
	e, ok := g.entities[guid]
	if !ok {
		return ""
	}
	for _, t := range g.hierarchy {
		if rels := e.incoming[g.inverse[t]]; len(rels) > 0 {
			return rels[0].Target
		}
	}
	return ""
}

func (g *Graph) ancestorsLocked(guid string) []string {
	ancestors := []string{}
	visited := map[string]struct{}{guid: {}}
	for cur := g.parentLocked(guid); cur != ""; cur = g.parentLocked(cur) {
		if _, seen := visited[cur]; seen {
			break
		}
		visited[cur] = struct{}{}
		ancestors = append(ancestors, cur)
	}
	return ancestors
}

func (g *Graph) levelLocked(guid string) int {
	return len(g.ancestorsLocked(guid))
}

func (g *Graph) childrenLocked(guid string) []string {
	children := []string{}
	e, ok := g.entities[guid]
	if !ok {
		return children
	}
	seen := make(map[string]struct{})
	for _, t := range g.hierarchy {
		for _, rel := range e.outgoing[t] {
			if _, dup := seen[rel.Target]; dup {
				continue
			}
			seen[rel.Target] = struct{}{}
			children = append(children, rel.Target)
		}
	}
	return children
}

func (g *Graph) descendantsLocked(guid string) []string {
	descendants := []string{}
	visited := map[string]struct{}{guid: {}}
	queue := []string{guid}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range g.childrenLocked(cur) {
			if _, seen := visited[child]; seen {
				continue
			}
			visited[child] = struct{}{}
			descendants = append(descendants, child)
			queue = append(queue, child)
		}
	}
	return descendants
}
