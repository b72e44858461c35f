package inventory

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/shard-legends/codex-service/internal/models"
)

type saveFileStack struct {
	Key      string              `json:"key"`
	Name     string              `json:"name"`
	ID       json.Number         `json:"id"`
	Quantity models.FlexQuantity `json:"quantity"`
}

type saveFile struct {
	Items []saveFileStack `json:"items"`
}

// ParseSaveFile reads an exported save file. Two layouts are accepted: an object
// with an "items" array, or a bare array. Each stack is keyed by "key", then
// "name", then "id".
func ParseSaveFile(r io.Reader) ([]models.RawStack, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read save file")
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("save file is empty")
	}

	var stacks []saveFileStack
	if data[0] == '[' {
		if err := json.Unmarshal(data, &stacks); err != nil {
			return nil, errors.Wrap(err, "failed to decode save file")
		}
	} else {
		var file saveFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, errors.Wrap(err, "failed to decode save file")
		}
		stacks = file.Items
	}

	out := make([]models.RawStack, 0, len(stacks))
	for _, s := range stacks {
		key := s.Key
		if key == "" {
			key = s.Name
		}
		if key == "" {
			key = s.ID.String()
		}
		out = append(out, models.RawStack{Key: key, Quantity: string(s.Quantity)})
	}
	return out, nil
}
