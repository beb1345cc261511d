package report

// Keyer maps display names to the identity keys used when joining records.
// Chapters and teachers are referenced by name across plans, logs and tests;
// every join in this package goes through a Keyer so that an id-based join
// can replace name matching later.
type Keyer interface {
	Chapter(name string) string
	Teacher(name string) string
}

// NameKeys treats names as keys verbatim.
type NameKeys struct{}

func (NameKeys) Chapter(name string) string { return name }
func (NameKeys) Teacher(name string) string { return name }

func keysOf(in Input) Keyer {
	if in.Keys == nil {
		return NameKeys{}
	}
	return in.Keys
}
