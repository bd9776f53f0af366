package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Attempt records a single answer submission. The attempts table is
// append-only: rows are never updated, and deleted only by a full reset.
// Every statistic in the app is recomputed from this table.
type Attempt struct {
	ent.Schema
}

func (Attempt) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Immutable().
			Comment("Quiz session this attempt belongs to"),
		field.String("question_id").
			NotEmpty().
			Immutable().
			Comment("Catalog question this attempt was for"),
		field.String("section").
			NotEmpty().
			Immutable().
			Comment("Denormalized section key, kept for compound indexes"),
		field.Bool("correct").
			Immutable().
			Comment("Whether the answer was accepted"),
		field.Time("timestamp").
			Default(time.Now).
			Immutable().
			Comment("UTC wall-clock time of the submission"),
	}
}

// Indexes back the query shapes the aggregator and generator need:
// per-section counts split by correctness, newest-first section history,
// timestamp range scans, and per-session lookups.
func (Attempt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("section", "correct"),
		index.Fields("section", "timestamp"),
		index.Fields("timestamp"),
		index.Fields("correct"),
		index.Fields("question_id"),
		index.Fields("session_id"),
	}
}
