package generate

import (
	"fmt"
	"path"
	"sort"
)

// importMap assigns a name to each imported package path, avoiding clashes
// by suffixing a counter to the package's base name.
type importMap struct {
	byName map[string]string
	byPath map[string]string
}

func (m *importMap) add(p string) string {
	if name, ok := m.byPath[p]; ok {
		return name
	}
	if m.byName == nil {
		m.byName = make(map[string]string)
		m.byPath = make(map[string]string)
	}
	base := path.Base(p)
	for i := 0; ; i++ {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s_%d", base, i)
		}
		if _, ok := m.byName[name]; ok { // name clash
			continue
		}
		m.byName[name] = p
		m.byPath[p] = name
		return name
	}
}

// sorted returns (name, path) pairs ordered by import path, for rendering
// the import block deterministically.
func (m *importMap) sorted() [][2]string {
	pairs := make([][2]string, 0, len(m.byPath))
	for p, name := range m.byPath {
		pairs = append(pairs, [2]string{name, p})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i][1] < pairs[j][1] })
	return pairs
}
