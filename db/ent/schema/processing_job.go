package schema

import (
	"encoding/json"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/google/uuid"

	"github.com/docstreamhq/docstream/constants"
	"github.com/docstreamhq/docstream/db/ent/schema/utils"
)

type ProcessingJob struct{ ent.Schema }

func (ProcessingJob) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "processing_jobs"},
	}
}

func (ProcessingJob) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).Default(uuid.New).Immutable(),
		field.UUID("document_id", uuid.UUID{}),
		field.String("status").Default(string(constants.JobStatusPending)).
			Validate(utils.EnumValidator(constants.JobStatuses...)),
		field.Int("progress").Default(0).Min(0).Max(100),
		field.JSON("result", json.RawMessage{}).Optional(),
		field.String("error_message").Optional().Nillable(),
		field.Time("started_at").Optional().Nillable(),
		field.Time("completed_at").Optional().Nillable(),
		field.Time("created_at").Default(time.Now),
		field.Time("updated_at").Default(time.Now).UpdateDefault(time.Now),
	}
}

func (ProcessingJob) Edges() []ent.Edge {
	return []ent.Edge{
		// MANY jobs -> ONE document
		edge.From("document", Document.Type).
			Ref("jobs").
			Field("document_id").
			Unique().
			Required(),
	}
}

func (ProcessingJob) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("document_id", "status"),
	}
}
