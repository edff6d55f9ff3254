package collab

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Inbound message types accepted on the collaboration socket.
const (
	MsgJoinDocument  = "join-document"
	MsgCursorMove    = "cursor-move"
	MsgAddAnnotation = "add-annotation"
)

// Outbound event names fanned out to room members.
const (
	EventCursorChanged   = "cursor-changed"
	EventAnnotationAdded = "annotation-added"
)

// inboundMessage is the superset of fields a client may send; the schema
// for the declared type decides which are required.
type inboundMessage struct {
	Type       string  `json:"type"`
	DocumentID string  `json:"documentId"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Content    string  `json:"content"`
}

// outboundFrame is what room members receive.
type outboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type cursorChangedData struct {
	ClientID string  `json:"clientId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type annotationAddedData struct {
	ClientID   string `json:"clientId"`
	DocumentID string `json:"documentId"`
	Content    string `json:"content"`
}

// busEnvelope wraps a frame for cross-instance broadcast. Origin lets the
// publishing hub skip its own copy; local members already got the frame.
type busEnvelope struct {
	Origin string          `json:"origin"`
	Room   string          `json:"room"`
	Event  string          `json:"event"`
	Data   json.RawMessage `json:"data"`
}

var messageSchemas = map[string]*jsonschema.Schema{
	MsgJoinDocument: mustCompileSchema(map[string]any{
		"type":     "object",
		"required": []any{"type", "documentId"},
		"properties": map[string]any{
			"type":       map[string]any{"const": MsgJoinDocument},
			"documentId": map[string]any{"type": "string", "minLength": 1},
		},
	}),
	MsgCursorMove: mustCompileSchema(map[string]any{
		"type":     "object",
		"required": []any{"type", "documentId", "x", "y"},
		"properties": map[string]any{
			"type":       map[string]any{"const": MsgCursorMove},
			"documentId": map[string]any{"type": "string", "minLength": 1},
			"x":          map[string]any{"type": "number"},
			"y":          map[string]any{"type": "number"},
		},
	}),
	MsgAddAnnotation: mustCompileSchema(map[string]any{
		"type":     "object",
		"required": []any{"type", "documentId", "content"},
		"properties": map[string]any{
			"type":       map[string]any{"const": MsgAddAnnotation},
			"documentId": map[string]any{"type": "string", "minLength": 1},
			"content":    map[string]any{"type": "string", "minLength": 1, "maxLength": 4000},
		},
	}),
}

func mustCompileSchema(schemaMap map[string]any) *jsonschema.Schema {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		panic(fmt.Sprintf("marshal schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		panic(fmt.Sprintf("add schema: %v", err))
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return schema
}

// validateMessage checks raw against the schema for its declared type.
func validateMessage(msgType string, raw []byte) error {
	schema, ok := messageSchemas[msgType]
	if !ok {
		return fmt.Errorf("unknown message type %q", msgType)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("unmarshal message: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("message does not match schema: %w", err)
	}
	return nil
}

// RoomTopic is the bus channel used for cross-instance room broadcast.
func RoomTopic(documentID string) string {
	return "room:doc:" + documentID
}

func roomName(documentID string) string {
	return "doc:" + documentID
}
