package quizshow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionPoolIsFIFO(t *testing.T) {
	qp := NewQuestionPool()
	assert.True(t, qp.IsEmpty())
	assert.Nil(t, qp.Get())

	for _, key := range []string{"a", "b", "c"} {
		qp.Add(&Question{Key: key})
	}
	assert.Equal(t, 3, qp.Size())

	first := qp.Get()
	require.NotNil(t, first)
	assert.Equal(t, "a", first.Key)
	assert.Equal(t, StatusTentative, first.Status)
	assert.Equal(t, "b", qp.Get().Key)
}

func TestQuestionPoolReplacesRevisedDraft(t *testing.T) {
	qp := NewQuestionPool()
	qp.Add(&Question{Key: "a", Text: "draft"})
	qp.Add(&Question{Key: "b"})
	qp.Add(&Question{Key: "a", Text: "revised", Status: StatusRevised})

	assert.Equal(t, 2, qp.Size())
	assert.Equal(t, "b", qp.Get().Key)
	q := qp.Get()
	assert.Equal(t, "revised", q.Text)
	assert.Equal(t, StatusRevised, q.Status)
}

func TestQuestionPoolRemove(t *testing.T) {
	qp := NewQuestionPool()
	qp.Add(&Question{Key: "a"})
	qp.Add(&Question{Key: "b"})

	qp.Remove("a")
	qp.Remove("missing")
	assert.Equal(t, 1, qp.Size())
	assert.Equal(t, "b", qp.Get().Key)
	assert.True(t, qp.IsEmpty())
}
