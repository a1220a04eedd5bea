package models

import "time"

// Artifact names one of the optional generated fields of an AnalysisResult.
type Artifact string

const (
	ArtifactSuggestions Artifact = "suggestions"
	ArtifactSummary     Artifact = "summary"
	ArtifactQuiz        Artifact = "quiz"
	ArtifactSlides      Artifact = "slides"
	ArtifactCourseSheet Artifact = "course_sheet"
	ArtifactTPSheet     Artifact = "tp_sheet"
)

// Artifacts lists every generated field in presentation order.
var Artifacts = []Artifact{
	ArtifactSuggestions,
	ArtifactSummary,
	ArtifactQuiz,
	ArtifactSlides,
	ArtifactCourseSheet,
	ArtifactTPSheet,
}

func ParseArtifact(s string) (Artifact, bool) {
	for _, a := range Artifacts {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

type AnalysisResult struct {
	FileID      string       `json:"file_id"`
	AnalyzedAt  time.Time    `json:"analyzed_at"`
	Content     Content      `json:"content"`
	Suggestions *Suggestions `json:"suggestions,omitempty"`
	Summary     *Summary     `json:"summary,omitempty"`
	Quiz        *Quiz        `json:"quiz,omitempty"`
	Slides      *Slides      `json:"slides,omitempty"`
	CourseSheet *CourseSheet `json:"course_sheet,omitempty"`
	TPSheet     *TPSheet     `json:"tp_sheet,omitempty"`
}

// Has reports whether the given artifact has been generated.
func (r *AnalysisResult) Has(a Artifact) bool {
	switch a {
	case ArtifactSuggestions:
		return r.Suggestions != nil
	case ArtifactSummary:
		return r.Summary != nil
	case ArtifactQuiz:
		return r.Quiz != nil
	case ArtifactSlides:
		return r.Slides != nil
	case ArtifactCourseSheet:
		return r.CourseSheet != nil
	case ArtifactTPSheet:
		return r.TPSheet != nil
	}
	return false
}

// Missing returns the artifacts not generated yet.
func (r *AnalysisResult) Missing() []Artifact {
	var missing []Artifact
	for _, a := range Artifacts {
		if !r.Has(a) {
			missing = append(missing, a)
		}
	}
	return missing
}

// Content is the base analysis produced for every completed file.
type Content struct {
	Title     string `json:"title"`
	Overview  string `json:"overview"`
	WordCount int    `json:"word_count"`
	ReadTime  int    `json:"read_time"`
}

type Suggestions struct {
	Improvements []string `json:"improvements"`
	Strengths    []string `json:"strengths"`
}

type SummarySection struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	KeyPoints []string `json:"key_points"`
}

type Summary struct {
	Title    string           `json:"title"`
	Sections []SummarySection `json:"sections"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type Quiz struct {
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

type Slide struct {
	Title            string   `json:"title"`
	Content          string   `json:"content"`
	BulletPoints     []string `json:"bullet_points"`
	VisualSuggestion string   `json:"visual_suggestion"`
}

type Slides struct {
	Title  string  `json:"title"`
	Slides []Slide `json:"slides"`
}

type CourseInfo struct {
	CourseName    string `json:"course_name"`
	Objectives    string `json:"objectives"`
	Prerequisites string `json:"prerequisites"`
	Duration      string `json:"duration"`
}

type KeyConcept struct {
	Concept    string   `json:"concept"`
	Definition string   `json:"definition"`
	Examples   []string `json:"examples"`
}

type CourseSheet struct {
	Title       string       `json:"title"`
	General     CourseInfo   `json:"general"`
	KeyConcepts []KeyConcept `json:"key_concepts"`
	Methodology string       `json:"methodology"`
	References  []string     `json:"references"`
}

type TPMetadata struct {
	Duration      string `json:"duration"`
	Level         string `json:"level"`
	Prerequisites string `json:"prerequisites"`
}

type TPStep struct {
	Step         string `json:"step"`
	Instructions string `json:"instructions"`
}

type TPSheet struct {
	Title              string     `json:"title"`
	Metadata           TPMetadata `json:"metadata"`
	Objectives         []string   `json:"objectives"`
	Materials          []string   `json:"materials"`
	Steps              []TPStep   `json:"steps"`
	Questions          []string   `json:"questions"`
	EvaluationCriteria []string   `json:"evaluation_criteria"`
}
