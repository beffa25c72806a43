package tutor

// Profile is optional information about the student used to personalize prompts.
type Profile struct {
	Name     string `json:"name,omitempty"`
	Grade    string `json:"grade,omitempty"`
	School   string `json:"school,omitempty"`
	Location string `json:"location,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Board    string `json:"board,omitempty"`
}

// AskInput is a typed question for the tutor.
type AskInput struct {
	Question string
	Subject  string
	Board    string
	Language string
	Profile  *Profile
}

// Document is an uploaded file sent to the model inline.
type Document struct {
	Data     []byte
	MIMEType string
	FileName string
}

// PlanInput describes the exam a study plan is built for.
type PlanInput struct {
	ExamDate string
	Subject  string
	Level    string
	Topics   string
}

// StudyPlan is the planner's answer.
type StudyPlan struct {
	Summary     string     `json:"summary"`
	Schedule    []PlanItem `json:"schedule"`
	RamadanTips string     `json:"ramadan_tips,omitempty"`
}

// PlanItem is one day of a StudyPlan.
type PlanItem struct {
	Day  string `json:"day"`
	Task string `json:"task"`
	Time string `json:"time"`
}

// QuizQuestion is one multiple-choice question. Answer indexes Options.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      int      `json:"answer"`
	Explanation string   `json:"explanation"`
}

// GradeReport is the examiner's feedback on a student's answer.
type GradeReport struct {
	Score              string   `json:"score"`
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	ImprovementTips    string   `json:"improvement_tips"`
	ModelAnswerSnippet string   `json:"model_answer_snippet"`
}

// Flashcard is a single front/back study card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// FlashcardSet is the flashcard generator's answer.
type FlashcardSet struct {
	Flashcards []Flashcard `json:"flashcards"`
}
