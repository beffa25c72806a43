// Package events provides types and interfaces for an event-driven architecture.
//
// Services emit events without knowing which handlers will process them. The
// tutor service emits a HistoryEvent after each answered request of a
// signed-in student; the task package turns it into a background write.
//
// The primary components are:
//   - HistoryEvent: a finished question/answer pair to be recorded
//   - EventHandler: Interface for components that can handle events
//   - EventEmitter: Interface for components that can emit events
package events
