// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/docstreamhq/docstream/db/ent/schema"
	"github.com/docstreamhq/docstream/gen/ent/annotation"
	"github.com/docstreamhq/docstream/gen/ent/document"
	"github.com/docstreamhq/docstream/gen/ent/processingjob"
	"github.com/docstreamhq/docstream/gen/ent/user"
	"github.com/google/uuid"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	annotationFields := schema.Annotation{}.Fields()
	_ = annotationFields
	// annotationDescContent is the schema descriptor for content field.
	annotationDescContent := annotationFields[3].Descriptor()
	// annotation.ContentValidator is a validator for the "content" field. It is called by the builders before save.
	annotation.ContentValidator = annotationDescContent.Validators[0].(func(string) error)
	// annotationDescCreatedAt is the schema descriptor for created_at field.
	annotationDescCreatedAt := annotationFields[4].Descriptor()
	// annotation.DefaultCreatedAt holds the default value on creation for the created_at field.
	annotation.DefaultCreatedAt = annotationDescCreatedAt.Default.(func() time.Time)
	// annotationDescID is the schema descriptor for id field.
	annotationDescID := annotationFields[0].Descriptor()
	// annotation.DefaultID holds the default value on creation for the id field.
	annotation.DefaultID = annotationDescID.Default.(func() uuid.UUID)
	documentFields := schema.Document{}.Fields()
	_ = documentFields
	// documentDescTitle is the schema descriptor for title field.
	documentDescTitle := documentFields[2].Descriptor()
	// document.TitleValidator is a validator for the "title" field. It is called by the builders before save.
	document.TitleValidator = func() func(string) error {
		validators := documentDescTitle.Validators
		fns := [...]func(string) error{
			validators[0].(func(string) error),
			validators[1].(func(string) error),
		}
		return func(title string) error {
			for _, fn := range fns {
				if err := fn(title); err != nil {
					return err
				}
			}
			return nil
		}
	}()
	// documentDescStorageKey is the schema descriptor for storage_key field.
	documentDescStorageKey := documentFields[3].Descriptor()
	// document.StorageKeyValidator is a validator for the "storage_key" field. It is called by the builders before save.
	document.StorageKeyValidator = documentDescStorageKey.Validators[0].(func(string) error)
	// documentDescMimeType is the schema descriptor for mime_type field.
	documentDescMimeType := documentFields[4].Descriptor()
	// document.MimeTypeValidator is a validator for the "mime_type" field. It is called by the builders before save.
	document.MimeTypeValidator = documentDescMimeType.Validators[0].(func(string) error)
	// documentDescFileSize is the schema descriptor for file_size field.
	documentDescFileSize := documentFields[5].Descriptor()
	// document.FileSizeValidator is a validator for the "file_size" field. It is called by the builders before save.
	document.FileSizeValidator = documentDescFileSize.Validators[0].(func(int64) error)
	// documentDescStatus is the schema descriptor for status field.
	documentDescStatus := documentFields[6].Descriptor()
	// document.DefaultStatus holds the default value on creation for the status field.
	document.DefaultStatus = documentDescStatus.Default.(string)
	// document.StatusValidator is a validator for the "status" field. It is called by the builders before save.
	document.StatusValidator = documentDescStatus.Validators[0].(func(string) error)
	// documentDescCreatedAt is the schema descriptor for created_at field.
	documentDescCreatedAt := documentFields[8].Descriptor()
	// document.DefaultCreatedAt holds the default value on creation for the created_at field.
	document.DefaultCreatedAt = documentDescCreatedAt.Default.(func() time.Time)
	// documentDescUpdatedAt is the schema descriptor for updated_at field.
	documentDescUpdatedAt := documentFields[9].Descriptor()
	// document.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	document.DefaultUpdatedAt = documentDescUpdatedAt.Default.(func() time.Time)
	// document.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	document.UpdateDefaultUpdatedAt = documentDescUpdatedAt.UpdateDefault.(func() time.Time)
	// documentDescID is the schema descriptor for id field.
	documentDescID := documentFields[0].Descriptor()
	// document.DefaultID holds the default value on creation for the id field.
	document.DefaultID = documentDescID.Default.(func() uuid.UUID)
	processingjobFields := schema.ProcessingJob{}.Fields()
	_ = processingjobFields
	// processingjobDescStatus is the schema descriptor for status field.
	processingjobDescStatus := processingjobFields[2].Descriptor()
	// processingjob.DefaultStatus holds the default value on creation for the status field.
	processingjob.DefaultStatus = processingjobDescStatus.Default.(string)
	// processingjob.StatusValidator is a validator for the "status" field. It is called by the builders before save.
	processingjob.StatusValidator = processingjobDescStatus.Validators[0].(func(string) error)
	// processingjobDescProgress is the schema descriptor for progress field.
	processingjobDescProgress := processingjobFields[3].Descriptor()
	// processingjob.DefaultProgress holds the default value on creation for the progress field.
	processingjob.DefaultProgress = processingjobDescProgress.Default.(int)
	// processingjob.ProgressValidator is a validator for the "progress" field. It is called by the builders before save.
	processingjob.ProgressValidator = func() func(int) error {
		validators := processingjobDescProgress.Validators
		fns := [...]func(int) error{
			validators[0].(func(int) error),
			validators[1].(func(int) error),
		}
		return func(progress int) error {
			for _, fn := range fns {
				if err := fn(progress); err != nil {
					return err
				}
			}
			return nil
		}
	}()
	// processingjobDescCreatedAt is the schema descriptor for created_at field.
	processingjobDescCreatedAt := processingjobFields[8].Descriptor()
	// processingjob.DefaultCreatedAt holds the default value on creation for the created_at field.
	processingjob.DefaultCreatedAt = processingjobDescCreatedAt.Default.(func() time.Time)
	// processingjobDescUpdatedAt is the schema descriptor for updated_at field.
	processingjobDescUpdatedAt := processingjobFields[9].Descriptor()
	// processingjob.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	processingjob.DefaultUpdatedAt = processingjobDescUpdatedAt.Default.(func() time.Time)
	// processingjob.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	processingjob.UpdateDefaultUpdatedAt = processingjobDescUpdatedAt.UpdateDefault.(func() time.Time)
	// processingjobDescID is the schema descriptor for id field.
	processingjobDescID := processingjobFields[0].Descriptor()
	// processingjob.DefaultID holds the default value on creation for the id field.
	processingjob.DefaultID = processingjobDescID.Default.(func() uuid.UUID)
	userFields := schema.User{}.Fields()
	_ = userFields
	// userDescEmail is the schema descriptor for email field.
	userDescEmail := userFields[1].Descriptor()
	// user.EmailValidator is a validator for the "email" field. It is called by the builders before save.
	user.EmailValidator = userDescEmail.Validators[0].(func(string) error)
	// userDescName is the schema descriptor for name field.
	userDescName := userFields[2].Descriptor()
	// user.NameValidator is a validator for the "name" field. It is called by the builders before save.
	user.NameValidator = userDescName.Validators[0].(func(string) error)
	// userDescCreatedAt is the schema descriptor for created_at field.
	userDescCreatedAt := userFields[3].Descriptor()
	// user.DefaultCreatedAt holds the default value on creation for the created_at field.
	user.DefaultCreatedAt = userDescCreatedAt.Default.(func() time.Time)
	// userDescID is the schema descriptor for id field.
	userDescID := userFields[0].Descriptor()
	// user.DefaultID holds the default value on creation for the id field.
	user.DefaultID = userDescID.Default.(func() uuid.UUID)
}
