package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/google/uuid"
)

// Annotation rows exist for the delete-cascade contract; the collaboration
// bus itself never persists them.
type Annotation struct{ ent.Schema }

func (Annotation) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "annotations"},
	}
}

func (Annotation) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).Default(uuid.New).Immutable(),
		field.UUID("document_id", uuid.UUID{}),
		field.UUID("author_id", uuid.UUID{}),
		field.String("content").NotEmpty().
			SchemaType(map[string]string{dialect.Postgres: "text"}),
		field.Time("created_at").Default(time.Now),
	}
}

func (Annotation) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("document", Document.Type).
			Ref("annotations").
			Field("document_id").
			Unique().
			Required(),
	}
}

func (Annotation) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("document_id"),
	}
}
