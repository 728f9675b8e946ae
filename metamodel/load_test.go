package metamodel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleModel = `{
	"metaData": {"version": "3.17.0"},
	"requests": [
		{
			"method": "textDocument/hover",
			"typeName": "Hover",
			"params": {"kind": "reference", "name": "HoverParams"},
			"result": {"kind": "or", "items": [
				{"kind": "reference", "name": "Hover"},
				{"kind": "base", "name": "null"}]},
			"messageDirection": "clientToServer"
		}
	],
	"notifications": [
		{
			"method": "exit",
			"typeName": "Exit",
			"messageDirection": "clientToServer"
		}
	],
	"structures": [
		{
			"name": "Position",
			"properties": [
				{"name": "line", "type": {"kind": "base", "name": "uinteger"}},
				{"name": "character", "type": {"kind": "base", "name": "uinteger"}}
			]
		}
	],
	"enumerations": [
		{
			"name": "TraceValue",
			"type": {"kind": "base", "name": "string"},
			"values": [
				{"name": "Off", "value": "off"},
				{"name": "Messages", "value": "messages"}
			]
		}
	],
	"typeAliases": [
		{
			"name": "TraceValues",
			"type": {"kind": "reference", "name": "TraceValue"}
		}
	]
}`

func TestDecode(t *testing.T) {
	model, err := Decode(strings.NewReader(sampleModel))
	require.NoError(t, err)

	assert.Equal(t, "3.17.0", model.MetaData.Version)
	require.Len(t, model.Requests, 1)
	assert.Equal(t, "textDocument/hover", model.Requests[0].Method)
	assert.Equal(t, DirectionInitiatorToResponder, model.Requests[0].MessageDirection)
	require.Len(t, model.Notifications, 1)
	assert.Nil(t, model.Notifications[0].Params, "absent params decode to nil")
	require.Len(t, model.Structures, 1)
	assert.Equal(t, "Position", model.Structures[0].Name)
	require.Len(t, model.Enumerations, 1)
	assert.Equal(t, "off", model.Enumerations[0].Values[0].Value.StringValue)
	require.Len(t, model.TypeAliases, 1)
}

func TestDecode_UnknownTopLevelFieldsTolerated(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"metaData": {"version": "1.0.0"}, "futureSection": []}`))
	assert.NoError(t, err)
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"metaData": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding model")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metaModel.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleModel), 0644))

	model, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "3.17.0", model.MetaData.Version)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.json")
}

func TestCheckVersion(t *testing.T) {
	model := &MetaModel{MetaData: MetaData{Version: "3.17.0"}}

	tests := []struct {
		name       string
		constraint string
		wantErr    bool
	}{
		{"empty constraint accepts anything", "", false},
		{"satisfied range", ">= 3.16.0, < 4.0.0", false},
		{"exact match", "3.17.0", false},
		{"below range", ">= 4.0.0", true},
		{"above range", "< 3.0.0", true},
		{"invalid constraint", "not-a-range", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.CheckVersion(tt.constraint)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckVersion_NonSemverModel(t *testing.T) {
	model := &MetaModel{MetaData: MetaData{Version: "next"}}

	require.NoError(t, model.CheckVersion(""), "empty constraint skips parsing")

	err := model.CheckVersion(">= 3.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not semver")
}
