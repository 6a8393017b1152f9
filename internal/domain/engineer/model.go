package engineer

// Engineer is a staffable person. Reference data: the allocation core reads
// engineers but never creates or mutates them.
type Engineer struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Department string   `json:"department,omitempty"`
	Skills     []string `json:"skills,omitempty"`
}

// HasSkill reports whether the engineer lists the given skill tag.
func (e *Engineer) HasSkill(skill string) bool {
	for _, s := range e.Skills {
		if s == skill {
			return true
		}
	}
	return false
}
