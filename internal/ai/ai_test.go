package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvokeUnknownOperation(t *testing.T) {
	s := &AIService{}
	_, err := s.Invoke(context.Background(), "summon_dragon", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operation")
}

func TestInvokeRejectsMalformedPayload(t *testing.T) {
	s := &AIService{}
	_, err := s.Invoke(context.Background(), OpGenerateCopy, map[string]interface{}{
		"keywords": "not-an-array",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid generate_copy payload")
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"title":"Tee"}`, `{"title":"Tee"}`},
		{"json fence", "```json\n{\"title\":\"Tee\"}\n```", `{"title":"Tee"}`},
		{"anonymous fence", "```\n{\"title\":\"Tee\"}\n```", `{"title":"Tee"}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.in))
		})
	}
}
