package schema

import (
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

type Document struct{ ent.Schema }

func (Document) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "documents"},
	}
}

func (Document) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).Default(uuid.New).Immutable(),
		// explicit FK so the repository can filter by owner without a join
		field.UUID("owner_id", uuid.UUID{}),
		field.String("title").NotEmpty().MaxLen(constants.MaxTitleLength),
		field.String("storage_key").NotEmpty(),
		field.String("mime_type").NotEmpty(),
		field.Int64("file_size").NonNegative(),
		field.String("status").Default(string(constants.DocumentStatusUploaded)).
			Validate(utils.EnumValidator(constants.DocumentStatuses...)),
		// set iff status is COMPLETED
		field.Int("page_count").Optional().Nillable(),
		field.Time("created_at").Default(time.Now),
		field.Time("updated_at").Default(time.Now).UpdateDefault(time.Now),
	}
}

func (Document) Edges() []ent.Edge {
	return []ent.Edge{
		// MANY documents -> ONE user
		edge.From("owner", User.Type).
			Ref("documents").
			Field("owner_id").
			Unique().
			Required(),
		edge.To("jobs", ProcessingJob.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
		edge.To("annotations", Annotation.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
	}
}

func (Document) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("owner_id", "created_at"),
	}
}
