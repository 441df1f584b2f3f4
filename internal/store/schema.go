package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// SnapshotsColumns holds the columns for the "snapshots" table.
	SnapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "data", Type: field.TypeJSON},
	}
	// SnapshotsTable holds the schema information for the "snapshots" table.
	SnapshotsTable = &schema.Table{
		Name:       "snapshots",
		Columns:    SnapshotsColumns,
		PrimaryKey: []*schema.Column{SnapshotsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "snapshot_timestamp", Columns: []*schema.Column{SnapshotsColumns[2]}},
		},
	}

	// EvaluationEventsColumns holds the columns for the "evaluation_events" table.
	EvaluationEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "observed", Type: field.TypeInt},
		{Name: "skipped", Type: field.TypeInt},
		{Name: "mean_score", Type: field.TypeFloat64},
	}
	// EvaluationEventsTable holds the schema information for the "evaluation_events" table.
	EvaluationEventsTable = &schema.Table{
		Name:       "evaluation_events",
		Columns:    EvaluationEventsColumns,
		PrimaryKey: []*schema.Column{EvaluationEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "evaluationevent_session_id", Columns: []*schema.Column{EvaluationEventsColumns[3]}},
		},
	}

	// PhrasesColumns holds the columns for the "phrases" table.
	PhrasesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "text", Type: field.TypeString},
		{Name: "phonemes", Type: field.TypeString, Default: ""},
		{Name: "category", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
	}
	// PhrasesTable holds the schema information for the "phrases" table.
	PhrasesTable = &schema.Table{
		Name:       "phrases",
		Columns:    PhrasesColumns,
		PrimaryKey: []*schema.Column{PhrasesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "phrase_text", Unique: true, Columns: []*schema.Column{PhrasesColumns[1]}},
			{Name: "phrase_category", Columns: []*schema.Column{PhrasesColumns[3]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		SnapshotsTable,
		EvaluationEventsTable,
		PhrasesTable,
	}
)

// migrate creates or upgrades every table in Tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, Tables...)
}

// builder returns a SQL builder for the SQLite dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}
