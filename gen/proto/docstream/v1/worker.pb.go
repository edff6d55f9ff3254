// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.12
// 	protoc        (unknown)
// source: docstream/v1/worker.proto

package docstreamv1

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	timestamppb "google.golang.org/protobuf/types/known/timestamppb"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

type JobStatus int32

const (
	JobStatus_JOB_STATUS_UNSPECIFIED JobStatus = 0
	JobStatus_JOB_STATUS_PENDING     JobStatus = 1
	JobStatus_JOB_STATUS_RUNNING     JobStatus = 2
	JobStatus_JOB_STATUS_COMPLETED   JobStatus = 3
	JobStatus_JOB_STATUS_FAILED      JobStatus = 4
)

// Enum value maps for JobStatus.
var (
	JobStatus_name = map[int32]string{
		0: "JOB_STATUS_UNSPECIFIED",
		1: "JOB_STATUS_PENDING",
		2: "JOB_STATUS_RUNNING",
		3: "JOB_STATUS_COMPLETED",
		4: "JOB_STATUS_FAILED",
	}
	JobStatus_value = map[string]int32{
		"JOB_STATUS_UNSPECIFIED": 0,
		"JOB_STATUS_PENDING":     1,
		"JOB_STATUS_RUNNING":     2,
		"JOB_STATUS_COMPLETED":   3,
		"JOB_STATUS_FAILED":      4,
	}
)

func (x JobStatus) Enum() *JobStatus {
	p := new(JobStatus)
	*p = x
	return p
}

func (x JobStatus) String() string {
	return protoimpl.X.EnumStringOf(x.Descriptor(), protoreflect.EnumNumber(x))
}

func (JobStatus) Descriptor() protoreflect.EnumDescriptor {
	return file_docstream_v1_worker_proto_enumTypes[0].Descriptor()
}

func (JobStatus) Type() protoreflect.EnumType {
	return &file_docstream_v1_worker_proto_enumTypes[0]
}

func (x JobStatus) Number() protoreflect.EnumNumber {
	return protoreflect.EnumNumber(x)
}

// Deprecated: Use JobStatus.Descriptor instead.
func (JobStatus) EnumDescriptor() ([]byte, []int) {
	return file_docstream_v1_worker_proto_rawDescGZIP(), []int{0}
}

type StartProcessingRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	DocumentId    string                 `protobuf:"bytes,1,opt,name=document_id,json=documentId,proto3" json:"document_id,omitempty"`
	OwnerId       string                 `protobuf:"bytes,2,opt,name=owner_id,json=ownerId,proto3" json:"owner_id,omitempty"`
	StorageKey    string                 `protobuf:"bytes,3,opt,name=storage_key,json=storageKey,proto3" json:"storage_key,omitempty"`
	MimeType      string                 `protobuf:"bytes,4,opt,name=mime_type,json=mimeType,proto3" json:"mime_type,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *StartProcessingRequest) Reset() {
	*x = StartProcessingRequest{}
	mi := &file_docstream_v1_worker_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *StartProcessingRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*StartProcessingRequest) ProtoMessage() {}

func (x *StartProcessingRequest) ProtoReflect() protoreflect.Message {
	mi := &file_docstream_v1_worker_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use StartProcessingRequest.ProtoReflect.Descriptor instead.
func (*StartProcessingRequest) Descriptor() ([]byte, []int) {
	return file_docstream_v1_worker_proto_rawDescGZIP(), []int{0}
}

func (x *StartProcessingRequest) GetDocumentId() string {
	if x != nil {
		return x.DocumentId
	}
	return ""
}

func (x *StartProcessingRequest) GetOwnerId() string {
	if x != nil {
		return x.OwnerId
	}
	return ""
}

func (x *StartProcessingRequest) GetStorageKey() string {
	if x != nil {
		return x.StorageKey
	}
	return ""
}

func (x *StartProcessingRequest) GetMimeType() string {
	if x != nil {
		return x.MimeType
	}
	return ""
}

type StartProcessingResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	JobId         string                 `protobuf:"bytes,1,opt,name=job_id,json=jobId,proto3" json:"job_id,omitempty"`
	Status        JobStatus              `protobuf:"varint,2,opt,name=status,proto3,enum=docstream.v1.JobStatus" json:"status,omitempty"`
	AcceptedAt    *timestamppb.Timestamp `protobuf:"bytes,3,opt,name=accepted_at,json=acceptedAt,proto3" json:"accepted_at,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *StartProcessingResponse) Reset() {
	*x = StartProcessingResponse{}
	mi := &file_docstream_v1_worker_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *StartProcessingResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*StartProcessingResponse) ProtoMessage() {}

func (x *StartProcessingResponse) ProtoReflect() protoreflect.Message {
	mi := &file_docstream_v1_worker_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use StartProcessingResponse.ProtoReflect.Descriptor instead.
func (*StartProcessingResponse) Descriptor() ([]byte, []int) {
	return file_docstream_v1_worker_proto_rawDescGZIP(), []int{1}
}

func (x *StartProcessingResponse) GetJobId() string {
	if x != nil {
		return x.JobId
	}
	return ""
}

func (x *StartProcessingResponse) GetStatus() JobStatus {
	if x != nil {
		return x.Status
	}
	return JobStatus_JOB_STATUS_UNSPECIFIED
}

func (x *StartProcessingResponse) GetAcceptedAt() *timestamppb.Timestamp {
	if x != nil {
		return x.AcceptedAt
	}
	return nil
}

type ObserveProgressRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	JobId         string                 `protobuf:"bytes,1,opt,name=job_id,json=jobId,proto3" json:"job_id,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ObserveProgressRequest) Reset() {
	*x = ObserveProgressRequest{}
	mi := &file_docstream_v1_worker_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ObserveProgressRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ObserveProgressRequest) ProtoMessage() {}

func (x *ObserveProgressRequest) ProtoReflect() protoreflect.Message {
	mi := &file_docstream_v1_worker_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ObserveProgressRequest.ProtoReflect.Descriptor instead.
func (*ObserveProgressRequest) Descriptor() ([]byte, []int) {
	return file_docstream_v1_worker_proto_rawDescGZIP(), []int{2}
}

func (x *ObserveProgressRequest) GetJobId() string {
	if x != nil {
		return x.JobId
	}
	return ""
}

type ProgressUpdate struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	JobId         string                 `protobuf:"bytes,1,opt,name=job_id,json=jobId,proto3" json:"job_id,omitempty"`
	Status        JobStatus              `protobuf:"varint,2,opt,name=status,proto3,enum=docstream.v1.JobStatus" json:"status,omitempty"`
	Progress      int32                  `protobuf:"varint,3,opt,name=progress,proto3" json:"progress,omitempty"`
	ErrorMessage  string                 `protobuf:"bytes,4,opt,name=error_message,json=errorMessage,proto3" json:"error_message,omitempty"`
	UpdatedAt     *timestamppb.Timestamp `protobuf:"bytes,5,opt,name=updated_at,json=updatedAt,proto3" json:"updated_at,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ProgressUpdate) Reset() {
	*x = ProgressUpdate{}
	mi := &file_docstream_v1_worker_proto_msgTypes[3]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ProgressUpdate) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ProgressUpdate) ProtoMessage() {}

func (x *ProgressUpdate) ProtoReflect() protoreflect.Message {
	mi := &file_docstream_v1_worker_proto_msgTypes[3]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ProgressUpdate.ProtoReflect.Descriptor instead.
func (*ProgressUpdate) Descriptor() ([]byte, []int) {
	return file_docstream_v1_worker_proto_rawDescGZIP(), []int{3}
}

func (x *ProgressUpdate) GetJobId() string {
	if x != nil {
		return x.JobId
	}
	return ""
}

func (x *ProgressUpdate) GetStatus() JobStatus {
	if x != nil {
		return x.Status
	}
	return JobStatus_JOB_STATUS_UNSPECIFIED
}

func (x *ProgressUpdate) GetProgress() int32 {
	if x != nil {
		return x.Progress
	}
	return 0
}

func (x *ProgressUpdate) GetErrorMessage() string {
	if x != nil {
		return x.ErrorMessage
	}
	return ""
}

func (x *ProgressUpdate) GetUpdatedAt() *timestamppb.Timestamp {
	if x != nil {
		return x.UpdatedAt
	}
	return nil
}

var File_docstream_v1_worker_proto protoreflect.FileDescriptor

const file_docstream_v1_worker_proto_rawDesc = "" +
	"\n" +
	"\x19docstream/v1/worker.proto\x12\fdocstream.v1\x1a\x1fgoogle/protobuf/timestamp.proto\"\x92\x01\n" +
	"\x16StartProcessingRequest\x12\x1f\n" +
	"\vdocument_id\x18\x01 \x01(\tR\n" +
	"documentId\x12\x19\n" +
	"\bowner_id\x18\x02 \x01(\tR\aownerId\x12\x1f\n" +
	"\vstorage_key\x18\x03 \x01(\tR\n" +
	"storageKey\x12\x1b\n" +
	"\tmime_type\x18\x04 \x01(\tR\bmimeType\"\x9e\x01\n" +
	"\x17StartProcessingResponse\x12\x15\n" +
	"\x06job_id\x18\x01 \x01(\tR\x05jobId\x12/\n" +
	"\x06status\x18\x02 \x01(\x0e2\x17.docstream.v1.JobStatusR\x06status\x12;\n" +
	"\vaccepted_at\x18\x03 \x01(\v2\x1a.google.protobuf.TimestampR\n" +
	"acceptedAt\"/\n" +
	"\x16ObserveProgressRequest\x12\x15\n" +
	"\x06job_id\x18\x01 \x01(\tR\x05jobId\"\xd4\x01\n" +
	"\x0eProgressUpdate\x12\x15\n" +
	"\x06job_id\x18\x01 \x01(\tR\x05jobId\x12/\n" +
	"\x06status\x18\x02 \x01(\x0e2\x17.docstream.v1.JobStatusR\x06status\x12\x1a\n" +
	"\bprogress\x18\x03 \x01(\x05R\bprogress\x12#\n" +
	"\rerror_message\x18\x04 \x01(\tR\ferrorMessage\x129\n" +
	"\n" +
	"updated_at\x18\x05 \x01(\v2\x1a.google.protobuf.TimestampR\tupdatedAt*\x88\x01\n" +
	"\tJobStatus\x12\x1a\n" +
	"\x16JOB_STATUS_UNSPECIFIED\x10\x00\x12\x16\n" +
	"\x12JOB_STATUS_PENDING\x10\x01\x12\x16\n" +
	"\x12JOB_STATUS_RUNNING\x10\x02\x12\x18\n" +
	"\x14JOB_STATUS_COMPLETED\x10\x03\x12\x15\n" +
	"\x11JOB_STATUS_FAILED\x10\x042\xcc\x01\n" +
	"\x11ProcessingService\x12^\n" +
	"\x0fStartProcessing\x12$.docstream.v1.StartProcessingRequest\x1a%.docstream.v1.StartProcessingResponse\x12W\n" +
	"\x0fObserveProgress\x12$.docstream.v1.ObserveProgressRequest\x1a\x1c.docstream.v1.ProgressUpdate0\x01BEZCgithub.com/docstreamhq/docstream/gen/proto/docstream/v1;docstreamv1b\x06proto3"

var (
	file_docstream_v1_worker_proto_rawDescOnce sync.Once
	file_docstream_v1_worker_proto_rawDescData []byte
)

func file_docstream_v1_worker_proto_rawDescGZIP() []byte {
	file_docstream_v1_worker_proto_rawDescOnce.Do(func() {
		file_docstream_v1_worker_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_docstream_v1_worker_proto_rawDesc), len(file_docstream_v1_worker_proto_rawDesc)))
	})
	return file_docstream_v1_worker_proto_rawDescData
}

var file_docstream_v1_worker_proto_enumTypes = make([]protoimpl.EnumInfo, 1)
var file_docstream_v1_worker_proto_msgTypes = make([]protoimpl.MessageInfo, 4)
var file_docstream_v1_worker_proto_goTypes = []any{
	(JobStatus)(0),                  // 0: docstream.v1.JobStatus
	(*StartProcessingRequest)(nil),  // 1: docstream.v1.StartProcessingRequest
	(*StartProcessingResponse)(nil), // 2: docstream.v1.StartProcessingResponse
	(*ObserveProgressRequest)(nil),  // 3: docstream.v1.ObserveProgressRequest
	(*ProgressUpdate)(nil),          // 4: docstream.v1.ProgressUpdate
	(*timestamppb.Timestamp)(nil),   // 5: google.protobuf.Timestamp
}
var file_docstream_v1_worker_proto_depIdxs = []int32{
	0, // 0: docstream.v1.StartProcessingResponse.status:type_name -> docstream.v1.JobStatus
	5, // 1: docstream.v1.StartProcessingResponse.accepted_at:type_name -> google.protobuf.Timestamp
	0, // 2: docstream.v1.ProgressUpdate.status:type_name -> docstream.v1.JobStatus
	5, // 3: docstream.v1.ProgressUpdate.updated_at:type_name -> google.protobuf.Timestamp
	1, // 4: docstream.v1.ProcessingService.StartProcessing:input_type -> docstream.v1.StartProcessingRequest
	3, // 5: docstream.v1.ProcessingService.ObserveProgress:input_type -> docstream.v1.ObserveProgressRequest
	2, // 6: docstream.v1.ProcessingService.StartProcessing:output_type -> docstream.v1.StartProcessingResponse
	4, // 7: docstream.v1.ProcessingService.ObserveProgress:output_type -> docstream.v1.ProgressUpdate
	6, // [6:8] is the sub-list for method output_type
	4, // [4:6] is the sub-list for method input_type
	4, // [4:4] is the sub-list for extension type_name
	4, // [4:4] is the sub-list for extension extendee
	0, // [0:4] is the sub-list for field type_name
}

func init() { file_docstream_v1_worker_proto_init() }
func file_docstream_v1_worker_proto_init() {
	if File_docstream_v1_worker_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_docstream_v1_worker_proto_rawDesc), len(file_docstream_v1_worker_proto_rawDesc)),
			NumEnums:      1,
			NumMessages:   4,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_docstream_v1_worker_proto_goTypes,
		DependencyIndexes: file_docstream_v1_worker_proto_depIdxs,
		EnumInfos:         file_docstream_v1_worker_proto_enumTypes,
		MessageInfos:      file_docstream_v1_worker_proto_msgTypes,
	}.Build()
	File_docstream_v1_worker_proto = out.File
	file_docstream_v1_worker_proto_goTypes = nil
	file_docstream_v1_worker_proto_depIdxs = nil
}
