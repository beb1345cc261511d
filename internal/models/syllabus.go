package models

type TopicStatus string

const (
	TopicNotStarted TopicStatus = "Not Started"
	TopicInProgress TopicStatus = "In Progress"
	TopicCompleted  TopicStatus = "Completed"
	TopicRevise     TopicStatus = "Revise"
)

type Subtopic struct {
	Name           string      `json:"name"`
	Status         TopicStatus `json:"status"`
	CoachingStatus TopicStatus `json:"coachingStatus"`
}

type MajorTopic struct {
	Name      string     `json:"name"`
	Subtopics []Subtopic `json:"subtopics"`
}

type ChapterProgress struct {
	Level1    bool `json:"level1"`
	Level2    bool `json:"level2"`
	Mains     bool `json:"mains"`
	Advanced  bool `json:"advanced"`
	PYQs      bool `json:"pyqs"`
	PYQsCount int  `json:"pyqsCount"`
}

type Chapter struct {
	Name           string          `json:"name"`
	Status         TopicStatus     `json:"status"`
	CoachingStatus TopicStatus     `json:"coachingStatus"`
	Progress       ChapterProgress `json:"progress"`
	MajorTopics    []MajorTopic    `json:"majorTopics"`
}

type ChemistrySection struct {
	Name     string    `json:"name"`
	Chapters []Chapter `json:"chapters"`
}

type PhysicsSubject struct {
	Name     string    `json:"name"`
	Chapters []Chapter `json:"chapters"`
}

// ChemistrySubject is the only subject with a section level between the
// subject and its chapters.
type ChemistrySubject struct {
	Name     string             `json:"name"`
	Sections []ChemistrySection `json:"sections"`
}

type MathSubject struct {
	Name     string    `json:"name"`
	Chapters []Chapter `json:"chapters"`
}

// Syllabus is the full subject → chapter → major topic → subtopic tree.
type Syllabus struct {
	Physics   PhysicsSubject   `json:"physics"`
	Chemistry ChemistrySubject `json:"chemistry"`
	Math      MathSubject      `json:"math"`
}

// SubjectChapter is a chapter with its position in the tree. Section is only
// set for chemistry chapters.
type SubjectChapter struct {
	Subject Subject
	Section string
	Chapter Chapter
}

// Chapters flattens the tree into one list, physics first, chemistry
// sections in order, then math.
func (s Syllabus) Chapters() []SubjectChapter {
	var out []SubjectChapter
	for _, ch := range s.Physics.Chapters {
		out = append(out, SubjectChapter{Subject: Physics, Chapter: ch})
	}
	for _, sec := range s.Chemistry.Sections {
		for _, ch := range sec.Chapters {
			out = append(out, SubjectChapter{Subject: Chemistry, Section: sec.Name, Chapter: ch})
		}
	}
	for _, ch := range s.Math.Chapters {
		out = append(out, SubjectChapter{Subject: Math, Chapter: ch})
	}
	return out
}

func (s Syllabus) IsEmpty() bool {
	return len(s.Physics.Chapters) == 0 && len(s.Chemistry.Sections) == 0 && len(s.Math.Chapters) == 0
}
