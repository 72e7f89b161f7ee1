package catalog

import "strings"

type FilterOptions struct {
	Groups    []string `json:"groups"`
	Colors    []string `json:"colors"`
	FreeWords string   `json:"free_words"`
}

func containsFold(hay []string, needle string) bool {
	for _, h := range hay {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}

// Filter narrows the catalog for the category picker. Every free word must
// appear in the name or the group.
func (c *Catalog) Filter(opt FilterOptions) []Category {
	out := []Category{}
	for _, e := range c.entries {
		if len(opt.Groups) > 0 && !containsFold(opt.Groups, e.Group) {
			continue
		}
		if len(opt.Colors) > 0 && !containsFold(opt.Colors, e.Color) {
			continue
		}
		if opt.FreeWords != "" {
			ok := true
			hay := strings.ToLower(e.Name + " " + e.Group)
			for _, k := range strings.Fields(opt.FreeWords) {
				if !strings.Contains(hay, strings.ToLower(k)) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
