// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// AnnotationsColumns holds the columns for the "annotations" table.
	AnnotationsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "author_id", Type: field.TypeUUID},
		{Name: "content", Type: field.TypeString, SchemaType: map[string]string{"postgres": "text"}},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "document_id", Type: field.TypeUUID},
	}
	// AnnotationsTable holds the schema information for the "annotations" table.
	AnnotationsTable = &schema.Table{
		Name:       "annotations",
		Columns:    AnnotationsColumns,
		PrimaryKey: []*schema.Column{AnnotationsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "annotations_documents_annotations",
				Columns:    []*schema.Column{AnnotationsColumns[4]},
				RefColumns: []*schema.Column{DocumentsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "annotation_document_id",
				Unique:  false,
				Columns: []*schema.Column{AnnotationsColumns[4]},
			},
		},
	}
	// DocumentsColumns holds the columns for the "documents" table.
	DocumentsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "title", Type: field.TypeString, Size: 500},
		{Name: "storage_key", Type: field.TypeString},
		{Name: "mime_type", Type: field.TypeString},
		{Name: "file_size", Type: field.TypeInt64},
		{Name: "status", Type: field.TypeString, Default: "UPLOADED"},
		{Name: "page_count", Type: field.TypeInt, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
		{Name: "owner_id", Type: field.TypeUUID},
	}
	// DocumentsTable holds the schema information for the "documents" table.
	DocumentsTable = &schema.Table{
		Name:       "documents",
		Columns:    DocumentsColumns,
		PrimaryKey: []*schema.Column{DocumentsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "documents_users_documents",
				Columns:    []*schema.Column{DocumentsColumns[9]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "document_owner_id_created_at",
				Unique:  false,
				Columns: []*schema.Column{DocumentsColumns[9], DocumentsColumns[7]},
			},
		},
	}
	// ProcessingJobsColumns holds the columns for the "processing_jobs" table.
	ProcessingJobsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "status", Type: field.TypeString, Default: "PENDING"},
		{Name: "progress", Type: field.TypeInt, Default: 0},
		{Name: "result", Type: field.TypeJSON, Nullable: true},
		{Name: "error_message", Type: field.TypeString, Nullable: true},
		{Name: "started_at", Type: field.TypeTime, Nullable: true},
		{Name: "completed_at", Type: field.TypeTime, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
		{Name: "document_id", Type: field.TypeUUID},
	}
	// ProcessingJobsTable holds the schema information for the "processing_jobs" table.
	ProcessingJobsTable = &schema.Table{
		Name:       "processing_jobs",
		Columns:    ProcessingJobsColumns,
		PrimaryKey: []*schema.Column{ProcessingJobsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "processing_jobs_documents_jobs",
				Columns:    []*schema.Column{ProcessingJobsColumns[9]},
				RefColumns: []*schema.Column{DocumentsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "processingjob_document_id_status",
				Unique:  false,
				Columns: []*schema.Column{ProcessingJobsColumns[9], ProcessingJobsColumns[1]},
			},
		},
	}
	// UsersColumns holds the columns for the "users" table.
	UsersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "email", Type: field.TypeString, Unique: true},
		{Name: "name", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
	}
	// UsersTable holds the schema information for the "users" table.
	UsersTable = &schema.Table{
		Name:       "users",
		Columns:    UsersColumns,
		PrimaryKey: []*schema.Column{UsersColumns[0]},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		AnnotationsTable,
		DocumentsTable,
		ProcessingJobsTable,
		UsersTable,
	}
)

func init() {
	AnnotationsTable.ForeignKeys[0].RefTable = DocumentsTable
	AnnotationsTable.Annotation = &entsql.Annotation{
		Table: "annotations",
	}
	DocumentsTable.ForeignKeys[0].RefTable = UsersTable
	DocumentsTable.Annotation = &entsql.Annotation{
		Table: "documents",
	}
	ProcessingJobsTable.ForeignKeys[0].RefTable = DocumentsTable
	ProcessingJobsTable.Annotation = &entsql.Annotation{
		Table: "processing_jobs",
	}
	UsersTable.Annotation = &entsql.Annotation{
		Table: "users",
	}
}
