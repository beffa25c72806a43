// Package task manages background job queuing and processing. History
// writes run here so that answering a student never waits on the database.
package task
