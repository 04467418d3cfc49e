package valueobject

import "fmt"

// Source records how the text of a job post reached the scorer.
type Source struct {
	value string
}

var (
	SourceText  = Source{value: "TEXT"}
	SourceImage = Source{value: "IMAGE"}
)

// SourceFromString parses a Source. The empty string defaults to TEXT.
func SourceFromString(s string) (Source, error) {
	switch s {
	case "TEXT", "":
		return SourceText, nil
	case "IMAGE":
		return SourceImage, nil
	default:
		return Source{}, fmt.Errorf("invalid source: %s", s)
	}
}

func (s Source) String() string { return s.value }

func (s Source) IsZero() bool { return s.value == "" }

func (s Source) Equal(other Source) bool { return s.value == other.value }
