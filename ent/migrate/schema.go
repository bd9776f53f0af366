// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// AttemptsColumns holds the columns for the "attempts" table.
	AttemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "session_id", Type: field.TypeString},
		{Name: "question_id", Type: field.TypeString},
		{Name: "section", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool},
		{Name: "timestamp", Type: field.TypeTime},
	}
	// AttemptsTable holds the schema information for the "attempts" table.
	AttemptsTable = &schema.Table{
		Name:       "attempts",
		Columns:    AttemptsColumns,
		PrimaryKey: []*schema.Column{AttemptsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "attempt_section_correct",
				Unique:  false,
				Columns: []*schema.Column{AttemptsColumns[3], AttemptsColumns[4]},
			},
			{
				Name:    "attempt_section_timestamp",
				Unique:  false,
				Columns: []*schema.Column{AttemptsColumns[3], AttemptsColumns[5]},
			},
			{
				Name:    "attempt_timestamp",
				Unique:  false,
				Columns: []*schema.Column{AttemptsColumns[5]},
			},
			{
				Name:    "attempt_correct",
				Unique:  false,
				Columns: []*schema.Column{AttemptsColumns[4]},
			},
			{
				Name:    "attempt_question_id",
				Unique:  false,
				Columns: []*schema.Column{AttemptsColumns[2]},
			},
			{
				Name:    "attempt_session_id",
				Unique:  false,
				Columns: []*schema.Column{AttemptsColumns[1]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		AttemptsTable,
	}
)

func init() {
}
