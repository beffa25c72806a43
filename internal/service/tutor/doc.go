// Package tutor implements the study tools of the API: the persona-driven
// tutor, image and document questions, summaries, mind maps, exam plans,
// quizzes, answer grading, flashcards and motivational quotes.
//
// Every operation renders an embedded prompt template, sends it through a
// generation.Generator and cleans up the model output. Operations performed
// by a signed-in student are announced as events.HistoryEvent so they can be
// stored without delaying the response.
package tutor
