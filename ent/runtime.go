// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/abhisek/gramiz/ent/attempt"
	"github.com/abhisek/gramiz/ent/schema"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	attemptFields := schema.Attempt{}.Fields()
	_ = attemptFields
	// attemptDescSessionID is the schema descriptor for session_id field.
	attemptDescSessionID := attemptFields[0].Descriptor()
	// attempt.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	attempt.SessionIDValidator = attemptDescSessionID.Validators[0].(func(string) error)
	// attemptDescQuestionID is the schema descriptor for question_id field.
	attemptDescQuestionID := attemptFields[1].Descriptor()
	// attempt.QuestionIDValidator is a validator for the "question_id" field. It is called by the builders before save.
	attempt.QuestionIDValidator = attemptDescQuestionID.Validators[0].(func(string) error)
	// attemptDescSection is the schema descriptor for section field.
	attemptDescSection := attemptFields[2].Descriptor()
	// attempt.SectionValidator is a validator for the "section" field. It is called by the builders before save.
	attempt.SectionValidator = attemptDescSection.Validators[0].(func(string) error)
	// attemptDescTimestamp is the schema descriptor for timestamp field.
	attemptDescTimestamp := attemptFields[4].Descriptor()
	// attempt.DefaultTimestamp holds the default value on creation for the timestamp field.
	attempt.DefaultTimestamp = attemptDescTimestamp.Default.(func() time.Time)
}
