package types

import "strings"

// Paragraph is one deb822 stanza. Lookups ignore case the way dpkg does,
// while Fields keeps the spelling and order of the source file.
type Paragraph struct {
	names  []string
	values []string
	index  map[string]int
}

func NewParagraph() Paragraph {
	return Paragraph{index: map[string]int{}}
}

// Set stores value under name. An existing field with the same name in any
// case keeps its position and original spelling.
func (p *Paragraph) Set(name string, value string) {
	if p.index == nil {
		p.index = map[string]int{}
	}
	key := strings.ToLower(name)
	if pos, ok := p.index[key]; ok {
		p.values[pos] = value
		return
	}
	p.index[key] = len(p.names)
	p.names = append(p.names, name)
	p.values = append(p.values, value)
}

func (p *Paragraph) Get(name string) (string, bool) {
	pos, ok := p.index[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return p.values[pos], true
}

func (p *Paragraph) Has(name string) bool {
	_, ok := p.index[strings.ToLower(name)]
	return ok
}

func (p *Paragraph) Fields() []string {
	return append([]string(nil), p.names...)
}

func (p *Paragraph) Len() int {
	return len(p.names)
}
