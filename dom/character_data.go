package dom

// https://dom.spec.whatwg.org/#characterdata
type CharacterData struct {
	Data string
}

func (c *CharacterData) Length() int {
	return len(c.Data)
}

// https://dom.spec.whatwg.org/#text
type Text struct {
	*CharacterData
}

// https://dom.spec.whatwg.org/#interface-comment
type Comment struct {
	*CharacterData
}
