package traverse

// relation is the step walked from each source element.
type relation uint

const (
	invalidRelation relation = iota
	selfRelation
	childrenRelation
	siblingsRelation
	parentRelation
	ancestorsRelation
	nextRelation
	prevRelation
	descendantsRelation
	closestRelation
)

var relationNames = map[relation]string{
	selfRelation:        "self",
	childrenRelation:    "children",
	siblingsRelation:    "siblings",
	parentRelation:      "parent",
	ancestorsRelation:   "parents",
	nextRelation:        "next",
	prevRelation:        "prev",
	descendantsRelation: "descendants",
	closestRelation:     "closest",
}

// Spec selects the relation a traversal walks and how far it walks it. The
// only valid Specs are the exported variables below; the zero Spec is
// rejected by Traverse.
type Spec struct {
	rel relation
	// accumulate walks the relation repeatedly until the root or the
	// leaves instead of taking one step.
	accumulate bool
	// predicateRequired marks walks that stop on the first predicate match.
	predicateRequired bool
}

var (
	// Self keeps the source elements themselves; with a predicate it filters.
	Self = Spec{rel: selfRelation}
	// Children walks to every element child.
	Children = Spec{rel: childrenRelation}
	// Siblings walks to every other element child of the parent.
	Siblings = Spec{rel: siblingsRelation}
	// Parent walks one step to the parent element.
	Parent = Spec{rel: parentRelation}
	// Parents collects every ancestor element, nearest first.
	Parents = Spec{rel: ancestorsRelation, accumulate: true}
	// Next walks to the following element sibling.
	Next = Spec{rel: nextRelation}
	// Prev walks to the preceding element sibling.
	Prev = Spec{rel: prevRelation}
	// Descendants collects every element below the source, in tree order.
	Descendants = Spec{rel: descendantsRelation, accumulate: true}
	// Closest tests the element and then its ancestors, stopping at the
	// first match. It requires a predicate.
	Closest = Spec{rel: closestRelation, accumulate: true, predicateRequired: true}
)

func (s Spec) String() string {
	if name, ok := relationNames[s.rel]; ok {
		return name
	}
	return "invalid"
}

// Predicate is an optional selector. None means no filtering.
type Predicate struct {
	selector string
	present  bool
}

// None is the absent predicate.
var None = Predicate{}

// Match returns a predicate for selector. The empty selector means None.
func Match(selector string) Predicate {
	if selector == "" {
		return None
	}
	return Predicate{selector: selector, present: true}
}

// Selector returns the selector string and whether the predicate is present.
func (p Predicate) Selector() (string, bool) {
	return p.selector, p.present
}

func (p Predicate) String() string {
	if !p.present {
		return "<none>"
	}
	return p.selector
}
