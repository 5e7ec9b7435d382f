package models

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Image is an embedded image reference. Clients (and legacy documents) may
// supply either a bare filename string or a structured object, so decoding
// accepts both shapes; the struct is the canonical representation.
type Image struct {
	Filename     string `bson:"filename,omitempty"     json:"filename,omitempty"`
	OriginalName string `bson:"originalName,omitempty" json:"originalName,omitempty"`
	URL          string `bson:"url,omitempty"          json:"url,omitempty"`
	Path         string `bson:"path,omitempty"         json:"path,omitempty"`
	Size         int64  `bson:"size,omitempty"         json:"size,omitempty"`
}

// imagePlain avoids recursing into the custom decoders.
type imagePlain Image

func (img *Image) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*img = Image{Filename: name}
		return nil
	}
	var p imagePlain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*img = Image(p)
	return nil
}

func (img *Image) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.String:
		var name string
		if err := bson.UnmarshalValue(t, data, &name); err != nil {
			return err
		}
		*img = Image{Filename: name}
		return nil
	case bsontype.EmbeddedDocument:
		var p imagePlain
		if err := bson.Unmarshal(data, &p); err != nil {
			return err
		}
		*img = Image(p)
		return nil
	default:
		return fmt.Errorf("image: cannot decode bson type %s", t)
	}
}
